package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/Carmen-Shannon/oxy-planet/engine/camera"
	"github.com/Carmen-Shannon/oxy-planet/engine/loader"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer"
	"github.com/Carmen-Shannon/oxy-planet/engine/scene"
	"github.com/Carmen-Shannon/oxy-planet/engine/window"
)

// fakeWindow runs its message loop for at most maxIterations updates.
type fakeWindow struct {
	window.Window

	width, height int
	maxIterations int
	iterations    int
	running       bool
	closed        bool

	onUpdate    func()
	onResize    func(width, height int)
	onScroll    func(delta float32)
	onKeyDown   func(keyCode uint32)
	onMouseDown func(button window.MouseButton, x, y int32)
	onMouseUp   func(button window.MouseButton, x, y int32)
	onMouseMove func(x, y int32)
}

func newFakeWindow(maxIterations int) *fakeWindow {
	return &fakeWindow{width: 600, height: 600, maxIterations: maxIterations, running: true}
}

func (w *fakeWindow) SetUpdateCallback(cb func())                  { w.onUpdate = cb }
func (w *fakeWindow) SetResizeCallback(cb func(width, height int)) { w.onResize = cb }
func (w *fakeWindow) SetScrollCallback(cb func(delta float32))     { w.onScroll = cb }
func (w *fakeWindow) SetKeyDownCallback(cb func(keyCode uint32))   { w.onKeyDown = cb }
func (w *fakeWindow) SetMouseDownCallback(cb func(button window.MouseButton, x, y int32)) {
	w.onMouseDown = cb
}
func (w *fakeWindow) SetMouseUpCallback(cb func(button window.MouseButton, x, y int32)) {
	w.onMouseUp = cb
}
func (w *fakeWindow) SetMouseMoveCallback(cb func(x, y int32)) { w.onMouseMove = cb }
func (w *fakeWindow) RequestClose()                            { w.running = false }
func (w *fakeWindow) IsRunning() bool                          { return w.running }
func (w *fakeWindow) Width() int                               { return w.width }
func (w *fakeWindow) Height() int                              { return w.height }

func (w *fakeWindow) Close() error {
	w.closed = true
	w.running = false
	return nil
}

func (w *fakeWindow) ProcessMessages() {
	for w.running && w.iterations < w.maxIterations {
		w.iterations++
		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}

type fakeRenderer struct {
	renderer.Renderer

	beginErr error
	begins   int
	ends     int
	presents int
	resizes  [][2]int
	released bool
}

func (r *fakeRenderer) BeginFrame() error {
	r.begins++
	return r.beginErr
}
func (r *fakeRenderer) EndFrame()                { r.ends++ }
func (r *fakeRenderer) Present()                 { r.presents++ }
func (r *fakeRenderer) Resize(width, height int) { r.resizes = append(r.resizes, [2]int{width, height}) }
func (r *fakeRenderer) Release()                 { r.released = true }

type fakeScene struct {
	scene.Scene

	initErr   error
	drawErr   error
	events    []string
	elapsed   []float64
	draws     int
	resizes   [][2]int
	teardowns int
	loader    loader.Loader
}

func (s *fakeScene) Name() string          { return "fake" }
func (s *fakeScene) Camera() camera.Camera { return nil }

func (s *fakeScene) Init(_ renderer.Renderer, l loader.Loader) error {
	s.events = append(s.events, "init")
	s.loader = l
	return s.initErr
}

func (s *fakeScene) Update(elapsed float64) {
	s.events = append(s.events, "update")
	s.elapsed = append(s.elapsed, elapsed)
}

func (s *fakeScene) Draw(renderer.Renderer) error {
	s.draws++
	return s.drawErr
}

func (s *fakeScene) Resize(width, height int) { s.resizes = append(s.resizes, [2]int{width, height}) }

func (s *fakeScene) Teardown() {
	s.events = append(s.events, "teardown")
	s.teardowns++
}

func newTestEngine(w *fakeWindow, r *fakeRenderer, s *fakeScene, options ...EngineBuilderOption) Engine {
	opts := append([]EngineBuilderOption{WithWindow(w), WithRenderer(r), WithScene(s)}, options...)
	return NewEngine(opts...)
}

func TestRunDrawsUntilWindowCloses(t *testing.T) {
	w, r, s := newFakeWindow(5), &fakeRenderer{}, &fakeScene{}
	e := newTestEngine(w, r, s)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if s.events[0] != "init" || s.events[len(s.events)-1] != "teardown" {
		t.Errorf("events = %v, want init first and teardown last", s.events)
	}
	if len(s.elapsed) != 5 || s.draws != 5 {
		t.Errorf("updates = %d, draws = %d, want 5 each", len(s.elapsed), s.draws)
	}
	for i := 1; i < len(s.elapsed); i++ {
		if s.elapsed[i] < s.elapsed[i-1] {
			t.Errorf("elapsed went backwards: %v", s.elapsed)
		}
	}
	if r.begins != 5 || r.ends != 5 || r.presents != 5 {
		t.Errorf("begin/end/present = %d/%d/%d, want 5 each", r.begins, r.ends, r.presents)
	}
	if len(r.resizes) != 1 || r.resizes[0] != [2]int{600, 600} {
		t.Errorf("renderer resizes = %v, want the initial framebuffer size", r.resizes)
	}
	if len(s.resizes) != 1 {
		t.Errorf("scene resizes = %v, want one", s.resizes)
	}
	if !r.released || !w.closed || s.teardowns != 1 {
		t.Errorf("released=%v closed=%v teardowns=%d, want everything released once", r.released, w.closed, s.teardowns)
	}
}

func TestRunPassesLoaderToScene(t *testing.T) {
	w, r, s := newFakeWindow(1), &fakeRenderer{}, &fakeScene{}
	l := loader.NewLoader(loader.BackendTypeImage)
	e := newTestEngine(w, r, s, WithLoader(l))

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.loader != l {
		t.Error("scene did not receive the engine's loader")
	}
	var loadErr error
	l.Load("anything.png", func(_ *common.ImportedTexture, err error) { loadErr = err })
	if !errors.Is(loadErr, loader.ErrClosed) {
		t.Errorf("loader not closed after Run, Load error = %v", loadErr)
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	w, r, s := newFakeWindow(100), &fakeRenderer{}, &fakeScene{}
	e := newTestEngine(w, r, s)

	frames := 0
	e.SetFrameCallback(func(float64) {
		frames++
		if frames == 3 {
			e.Quit()
			e.Quit()
		}
	})

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.draws != 3 {
		t.Errorf("draws = %d, want 3", s.draws)
	}
	if !w.closed {
		t.Error("window not closed")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	w, r, s := newFakeWindow(100), &fakeRenderer{}, &fakeScene{}
	e := newTestEngine(w, r, s)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := e.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.draws != 0 || w.iterations != 1 {
		t.Errorf("draws = %d, iterations = %d, want no frames", s.draws, w.iterations)
	}
	if s.teardowns != 1 || !r.released {
		t.Error("resources not released after cancel")
	}
}

func TestRunInitFailureReleases(t *testing.T) {
	errBoom := errors.New("boom")
	w, r, s := newFakeWindow(5), &fakeRenderer{}, &fakeScene{initErr: errBoom}
	e := newTestEngine(w, r, s)

	err := e.Run(context.Background())
	if !errors.Is(err, errBoom) {
		t.Fatalf("Run error = %v, want wrapped init error", err)
	}
	if w.iterations != 0 || r.begins != 0 {
		t.Error("loop ran after a failed init")
	}
	if !r.released || !w.closed || s.teardowns != 1 {
		t.Error("resources not released after a failed init")
	}
}

func TestRunDrawErrorEndsFrameAndStops(t *testing.T) {
	errDraw := errors.New("draw failed")
	w, r, s := newFakeWindow(5), &fakeRenderer{}, &fakeScene{drawErr: errDraw}
	e := newTestEngine(w, r, s)

	err := e.Run(context.Background())
	if !errors.Is(err, errDraw) {
		t.Fatalf("Run error = %v, want wrapped draw error", err)
	}
	if r.begins != 1 || r.ends != 1 || r.presents != 0 {
		t.Errorf("begin/end/present = %d/%d/%d, want 1/1/0", r.begins, r.ends, r.presents)
	}
}

func TestRunSkipsFrameWhenSurfaceUnavailable(t *testing.T) {
	w, r, s := newFakeWindow(3), &fakeRenderer{beginErr: errors.New("outdated")}, &fakeScene{}
	e := newTestEngine(w, r, s)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(s.elapsed) != 3 || s.draws != 0 || r.presents != 0 {
		t.Errorf("updates = %d, draws = %d, presents = %d, want 3/0/0", len(s.elapsed), s.draws, r.presents)
	}
}

func TestRunMissingComponents(t *testing.T) {
	e := NewEngine(WithWindow(newFakeWindow(1)))
	if err := e.Run(context.Background()); !errors.Is(err, ErrMissingComponent) {
		t.Errorf("Run error = %v, want ErrMissingComponent", err)
	}
}

func TestResizeCallbackForwards(t *testing.T) {
	w, r, s := newFakeWindow(0), &fakeRenderer{}, &fakeScene{}
	newTestEngine(w, r, s)

	w.onResize(800, 400)
	w.onResize(0, 400)

	if len(r.resizes) != 1 || r.resizes[0] != [2]int{800, 400} {
		t.Errorf("renderer resizes = %v, want only 800x400", r.resizes)
	}
	if len(s.resizes) != 1 || s.resizes[0] != [2]int{800, 400} {
		t.Errorf("scene resizes = %v, want only 800x400", s.resizes)
	}
}

func TestRenderFrameLimitSleeps(t *testing.T) {
	w, r, s := newFakeWindow(2), &fakeRenderer{}, &fakeScene{}
	var slept []time.Duration
	e := newTestEngine(w, r, s, WithRenderFrameLimit(1), func(e *engine) {
		e.sleep = func(d time.Duration) { slept = append(slept, d) }
	})

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(slept) != 2 {
		t.Fatalf("slept %d times, want 2", len(slept))
	}
	for _, d := range slept {
		if d <= 0 || d > time.Second {
			t.Errorf("sleep = %v, want within (0, 1s]", d)
		}
	}
}

func TestSetRenderFrameLimit(t *testing.T) {
	e := NewEngine().(*engine)
	e.SetRenderFrameLimit(50)
	if e.renderFrameLimit != 20*time.Millisecond {
		t.Errorf("limit = %v, want 20ms", e.renderFrameLimit)
	}
	e.SetRenderFrameLimit(0)
	if e.renderFrameLimit != 0 {
		t.Errorf("limit = %v, want uncapped", e.renderFrameLimit)
	}
}
