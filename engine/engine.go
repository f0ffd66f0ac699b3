package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/Carmen-Shannon/oxy-planet/engine/camera"
	"github.com/Carmen-Shannon/oxy-planet/engine/loader"
	"github.com/Carmen-Shannon/oxy-planet/engine/profiler"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer"
	"github.com/Carmen-Shannon/oxy-planet/engine/scene"
	"github.com/Carmen-Shannon/oxy-planet/engine/window"
)

// ErrMissingComponent is returned by Run when the window, renderer or scene was not supplied.
var ErrMissingComponent = errors.New("engine: window, renderer and scene are required")

// engine implements the Engine interface.
// Drives the scene from the window's message loop on the calling goroutine.
type engine struct {
	window   window.Window
	renderer renderer.Renderer
	scene    scene.Scene
	loader   loader.Loader

	input *orbitInput

	quitChannel chan struct{}
	quitOnce    sync.Once

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	frameCallback    func(elapsed float64)

	now   func() time.Time
	sleep func(time.Duration)
}

// Engine is the main entry point. It owns the window, renderer, scene and loader it was
// built with and releases all of them when Run returns.
type Engine interface {
	// Window returns the window being drawn to.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer the scene draws with.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance
	Renderer() renderer.Renderer

	// Scene returns the scene being shown.
	//
	// Returns:
	//   - scene.Scene: the scene instance
	Scene() scene.Scene

	// EnableProfiler enables frame rate and memory reporting to the log.
	EnableProfiler()

	// DisableProfiler disables profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// SetFrameCallback registers a function called after every presented frame.
	//
	// Parameters:
	//   - callback: function receiving the seconds elapsed since Run started
	SetFrameCallback(callback func(elapsed float64))

	// Run initializes the scene, then updates, draws and presents one frame per message
	// loop iteration until the window closes, ctx is cancelled or Quit is called. Everything
	// the engine owns is released before Run returns. Must be called on the goroutine that
	// created the window.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: an initialization or draw error, nil on a normal shutdown
	Run(ctx context.Context) error

	// Quit asks the loop to stop after the current frame.
	// Safe to call multiple times and from any goroutine.
	Quit()
}

// NewEngine creates a new Engine from the provided options and binds window resize and
// orbit input to the scene.
//
// Parameters:
//   - options: functional options supplying the window, renderer, scene and loader
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel: make(chan struct{}),
		profiler:    profiler.NewProfiler(time.Second),
		now:         time.Now,
		sleep:       time.Sleep,
	}

	for _, opt := range options {
		opt(e)
	}

	e.input = newOrbitInput(func() camera.OrbitController {
		if e.scene == nil || e.scene.Camera() == nil {
			return nil
		}
		return e.scene.Camera().Controller()
	})

	if e.window != nil {
		e.input.bind(e.window)
		e.window.SetResizeCallback(e.resize)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) SetFrameCallback(callback func(elapsed float64)) {
	e.frameCallback = callback
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Run(ctx context.Context) error {
	if e.window == nil || e.renderer == nil || e.scene == nil {
		return ErrMissingComponent
	}
	defer e.shutdown()

	if err := e.scene.Init(e.renderer, e.loader); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	e.resize(e.window.Width(), e.window.Height())
	common.Logger().Info("engine started", "scene", e.scene.Name(), "width", e.window.Width(), "height", e.window.Height())

	start := e.now()
	var runErr error
	e.window.SetUpdateCallback(func() {
		if e.stopping(ctx) {
			e.window.RequestClose()
			return
		}

		frameStart := e.now()
		elapsed := frameStart.Sub(start).Seconds()
		if err := e.frame(elapsed); err != nil {
			runErr = err
			e.window.RequestClose()
			return
		}

		if e.frameCallback != nil {
			e.frameCallback(elapsed)
		}
		if e.profilingEnabled && e.profiler != nil {
			e.profiler.Tick()
		}

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - e.now().Sub(frameStart); remaining > 0 {
				e.sleep(remaining)
			}
		}
	})
	e.window.ProcessMessages()
	e.window.SetUpdateCallback(nil)

	return runErr
}

// stopping reports whether ctx or Quit asked the loop to end.
func (e *engine) stopping(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	select {
	case <-e.quitChannel:
		return true
	default:
		return false
	}
}

// frame runs one update and one render pass. A surface that cannot be acquired skips the
// frame; the next resize reconfigures it.
func (e *engine) frame(elapsed float64) error {
	e.scene.Update(elapsed)

	if err := e.renderer.BeginFrame(); err != nil {
		common.Logger().Debug("frame skipped", "error", err)
		return nil
	}
	drawErr := e.scene.Draw(e.renderer)
	e.renderer.EndFrame()
	if drawErr != nil {
		return fmt.Errorf("engine: draw: %w", drawErr)
	}
	e.renderer.Present()
	return nil
}

// resize forwards a framebuffer size to the renderer and the scene camera.
func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if e.renderer != nil {
		e.renderer.Resize(width, height)
	}
	if e.scene != nil {
		e.scene.Resize(width, height)
	}
}

// shutdown releases everything in dependency order: loads stop before the scene frees
// its textures, and the scene frees its resources before the device goes away.
func (e *engine) shutdown() {
	if e.loader != nil {
		e.loader.Close()
	}
	e.scene.Teardown()
	e.renderer.Release()
	if err := e.window.Close(); err != nil {
		common.Logger().Warn("window close failed", "error", err)
	}
	common.Logger().Info("engine stopped")
}
