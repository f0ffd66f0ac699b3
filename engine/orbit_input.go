package engine

import (
	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/Carmen-Shannon/oxy-planet/engine/camera"
	"github.com/Carmen-Shannon/oxy-planet/engine/window"
)

// orbitInput maps window input onto an orbit controller: left drag rotates, right drag
// pans, the wheel zooms. Arrow keys and WASD orbit in steps and +/- zoom.
//
// Window callbacks arrive on the message loop goroutine, so no locking is needed here.
type orbitInput struct {
	controller func() camera.OrbitController

	dragging bool
	button   window.MouseButton
	lastX    int32
	lastY    int32
}

// newOrbitInput creates an input mapping resolving its controller on every event, so a
// camera swapped at runtime keeps receiving input.
func newOrbitInput(controller func() camera.OrbitController) *orbitInput {
	return &orbitInput{controller: controller}
}

// bind registers the input callbacks on w.
func (in *orbitInput) bind(w window.Window) {
	w.SetMouseDownCallback(in.mouseDown)
	w.SetMouseUpCallback(in.mouseUp)
	w.SetMouseMoveCallback(in.mouseMove)
	w.SetScrollCallback(in.scroll)
	w.SetKeyDownCallback(in.keyDown)
}

func (in *orbitInput) mouseDown(button window.MouseButton, x, y int32) {
	if button != window.MouseButtonLeft && button != window.MouseButtonRight {
		return
	}
	in.dragging = true
	in.button = button
	in.lastX, in.lastY = x, y
}

func (in *orbitInput) mouseUp(button window.MouseButton, _, _ int32) {
	if in.dragging && button == in.button {
		in.dragging = false
	}
}

func (in *orbitInput) mouseMove(x, y int32) {
	if !in.dragging {
		return
	}
	dx := float32(x - in.lastX)
	dy := float32(y - in.lastY)
	in.lastX, in.lastY = x, y

	ctrl := in.controller()
	if ctrl == nil || (dx == 0 && dy == 0) {
		return
	}
	switch in.button {
	case window.MouseButtonLeft:
		ctrl.Rotate(dx, dy)
	case window.MouseButtonRight:
		ctrl.Pan(dx, dy)
	}
}

func (in *orbitInput) scroll(delta float32) {
	if ctrl := in.controller(); ctrl != nil && delta != 0 {
		ctrl.Zoom(delta)
	}
}

func (in *orbitInput) keyDown(keyCode uint32) {
	ctrl := in.controller()
	if ctrl == nil {
		return
	}
	switch keyCode {
	case common.KeyLeft, common.KeyA:
		ctrl.OrbitLeft()
	case common.KeyRight, common.KeyD:
		ctrl.OrbitRight()
	case common.KeyUp, common.KeyW:
		ctrl.OrbitUp()
	case common.KeyDown, common.KeyS:
		ctrl.OrbitDown()
	case common.KeyEqual, common.KeyKPAdd:
		ctrl.Zoom(1)
	case common.KeyMinus, common.KeyKPSubtract:
		ctrl.Zoom(-1)
	}
}
