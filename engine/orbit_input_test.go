package engine

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/Carmen-Shannon/oxy-planet/engine/camera"
	"github.com/Carmen-Shannon/oxy-planet/engine/window"
)

func newTestInput() (*orbitInput, camera.OrbitController) {
	ctrl := camera.NewOrbitController()
	return newOrbitInput(func() camera.OrbitController { return ctrl }), ctrl
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestLeftDragRotates(t *testing.T) {
	in, ctrl := newTestInput()

	in.mouseDown(window.MouseButtonLeft, 100, 100)
	in.mouseMove(110, 100)

	if near(ctrl.Azimuth(), 0) {
		t.Error("left drag did not change the azimuth")
	}
	if ctrl.Target() != [3]float32{} {
		t.Errorf("left drag moved the target to %v", ctrl.Target())
	}
}

func TestRightDragPans(t *testing.T) {
	in, ctrl := newTestInput()

	in.mouseDown(window.MouseButtonRight, 100, 100)
	in.mouseMove(120, 90)

	if ctrl.Target() == [3]float32{} {
		t.Error("right drag did not move the target")
	}
	if !near(ctrl.Azimuth(), 0) {
		t.Errorf("right drag rotated the camera, azimuth = %v", ctrl.Azimuth())
	}
}

func TestDragEndsOnMatchingRelease(t *testing.T) {
	in, ctrl := newTestInput()

	in.mouseDown(window.MouseButtonLeft, 0, 0)
	in.mouseUp(window.MouseButtonRight, 0, 0)
	in.mouseMove(10, 0)
	moved := ctrl.Azimuth()
	if near(moved, 0) {
		t.Fatal("releasing another button ended the drag")
	}

	in.mouseUp(window.MouseButtonLeft, 10, 0)
	in.mouseMove(50, 0)
	if ctrl.Azimuth() != moved {
		t.Error("mouse move after release still rotated")
	}
}

func TestMoveWithoutDragIgnored(t *testing.T) {
	in, ctrl := newTestInput()
	before := ctrl.Position()

	in.mouseMove(40, 40)
	in.mouseDown(window.MouseButtonMiddle, 40, 40)
	in.mouseMove(80, 80)

	if ctrl.Position() != before {
		t.Error("camera moved without a left or right drag")
	}
}

func TestScrollZooms(t *testing.T) {
	in, ctrl := newTestInput()
	r0 := ctrl.Radius()

	in.scroll(1)
	if !(ctrl.Radius() < r0) {
		t.Errorf("scroll up radius = %v, want below %v", ctrl.Radius(), r0)
	}
	in.scroll(-2)
	if !(ctrl.Radius() > r0) {
		t.Errorf("scroll down radius = %v, want above %v", ctrl.Radius(), r0)
	}
}

func TestKeyBindings(t *testing.T) {
	tests := []struct {
		name  string
		key   uint32
		check func(ctrl camera.OrbitController) bool
	}{
		{"left arrow", common.KeyLeft, func(c camera.OrbitController) bool { return c.Azimuth() < 0 }},
		{"a", common.KeyA, func(c camera.OrbitController) bool { return c.Azimuth() < 0 }},
		{"right arrow", common.KeyRight, func(c camera.OrbitController) bool { return c.Azimuth() > 0 }},
		{"d", common.KeyD, func(c camera.OrbitController) bool { return c.Azimuth() > 0 }},
		{"up arrow", common.KeyUp, func(c camera.OrbitController) bool { return c.Elevation() > 0 }},
		{"w", common.KeyW, func(c camera.OrbitController) bool { return c.Elevation() > 0 }},
		{"down arrow", common.KeyDown, func(c camera.OrbitController) bool { return c.Elevation() < 0 }},
		{"s", common.KeyS, func(c camera.OrbitController) bool { return c.Elevation() < 0 }},
		{"plus", common.KeyEqual, func(c camera.OrbitController) bool { return c.Radius() < 5 }},
		{"keypad plus", common.KeyKPAdd, func(c camera.OrbitController) bool { return c.Radius() < 5 }},
		{"minus", common.KeyMinus, func(c camera.OrbitController) bool { return c.Radius() > 5 }},
		{"keypad minus", common.KeyKPSubtract, func(c camera.OrbitController) bool { return c.Radius() > 5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, ctrl := newTestInput()
			in.keyDown(tt.key)
			if !tt.check(ctrl) {
				t.Errorf("key %d: azimuth=%v elevation=%v radius=%v", tt.key, ctrl.Azimuth(), ctrl.Elevation(), ctrl.Radius())
			}
		})
	}
}

func TestUnboundKeyIgnored(t *testing.T) {
	in, ctrl := newTestInput()
	before := ctrl.Position()
	in.keyDown(common.KeyEsc)
	if ctrl.Position() != before {
		t.Error("unbound key moved the camera")
	}
}

func TestNilControllerIgnored(t *testing.T) {
	in := newOrbitInput(func() camera.OrbitController { return nil })
	in.mouseDown(window.MouseButtonLeft, 0, 0)
	in.mouseMove(10, 10)
	in.scroll(1)
	in.keyDown(common.KeyLeft)
}

func TestBindRegistersCallbacks(t *testing.T) {
	in, ctrl := newTestInput()
	w := newFakeWindow(0)
	in.bind(w)

	w.onMouseDown(window.MouseButtonLeft, 0, 0)
	w.onMouseMove(20, 0)
	w.onMouseUp(window.MouseButtonLeft, 20, 0)
	w.onScroll(1)
	w.onKeyDown(common.KeyUp)

	if near(ctrl.Azimuth(), 0) || !(ctrl.Radius() < 5) || !(ctrl.Elevation() > 0) {
		t.Errorf("bound callbacks not applied: azimuth=%v radius=%v elevation=%v", ctrl.Azimuth(), ctrl.Radius(), ctrl.Elevation())
	}
}
