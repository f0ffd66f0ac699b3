// Command planet opens a window showing a spinning planet with an atmosphere, a nebula
// backdrop and a twinkling star field.
//
// Controls: left drag rotates, right drag pans, the wheel zooms. Arrow keys or WASD
// orbit and +/- zoom. Escape quits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/Carmen-Shannon/oxy-planet/engine"
	"github.com/Carmen-Shannon/oxy-planet/engine/loader"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer"
	"github.com/Carmen-Shannon/oxy-planet/engine/scene"
	"github.com/Carmen-Shannon/oxy-planet/engine/window"
)

func init() {
	// GLFW and the surface must stay on the main thread.
	runtime.LockOSThread()
}

// options collects the host settings that are not part of the scene.
type options struct {
	width, height int
	vsync         bool
	profile       bool
	fps           float64
	maxTexture    int
}

func main() {
	cfg := scene.DefaultConfig()

	stars := flag.Int("stars", cfg.StarCount, "Number of stars (0 disables the star field)")
	seed := flag.Uint64("seed", 0, "Random seed for stars and nebula (0 picks one at startup)")
	textures := flag.String("textures", ".", "Directory texture paths are resolved against")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	var opts options
	flag.IntVar(&opts.width, "width", 600, "Window width in pixels")
	flag.IntVar(&opts.height, "height", 600, "Window height in pixels")
	flag.BoolVar(&opts.vsync, "vsync", true, "Wait for vertical blank when presenting")
	flag.BoolVar(&opts.profile, "profile", false, "Log frame rate and memory once per second")
	flag.Float64Var(&opts.fps, "fps", 0, "Frame rate cap (0 uncapped)")
	flag.IntVar(&opts.maxTexture, "max-texture", 4096, "Downscale textures larger than this on a side (0 disables)")
	flag.Parse()

	common.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(*logLevel)})))

	cfg.StarCount = *stars
	cfg.Seed = *seed
	cfg = withTextureRoot(cfg, *textures)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Print(banner(cfg, opts))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg, opts)
	stop()
	if err != nil {
		common.Logger().Error("planet exited", "error", err)
		os.Exit(1)
	}
}

// run builds the window, renderer, loader and scene and drives them until the window
// closes or ctx is cancelled.
func run(ctx context.Context, cfg scene.Config, opts options) error {
	w := window.NewWindow(
		window.WithTitle("oxy-planet"),
		window.WithSize(opts.width, opts.height),
	)

	presentMode := renderer.PresentModeVSync
	if !opts.vsync {
		presentMode = renderer.PresentModeUncapped
	}
	r := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		w,
		renderer.WithPresentMode(presentMode),
	)

	l := loader.NewLoader(
		loader.BackendTypeImage,
		loader.WithMaxDimension(opts.maxTexture),
	)

	eng := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithRenderer(r),
		engine.WithLoader(l),
		engine.WithScene(scene.NewScene("planet", cfg)),
		engine.WithProfiling(opts.profile),
		engine.WithRenderFrameLimit(opts.fps),
	)

	err := eng.Run(ctx)
	if err == nil && errors.Is(ctx.Err(), context.Canceled) {
		common.Logger().Info("interrupted")
	}
	return err
}

// parseLevel maps a level name onto a slog level, defaulting to Info.
func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// withTextureRoot resolves every relative texture path in cfg against root.
func withTextureRoot(cfg scene.Config, root string) scene.Config {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, p)
	}
	cfg.DayTexturePath = resolve(cfg.DayTexturePath)
	cfg.NightTexturePath = resolve(cfg.NightTexturePath)
	cfg.CloudsTexturePath = resolve(cfg.CloudsTexturePath)
	cfg.StarTexturePath = resolve(cfg.StarTexturePath)
	cfg.Nebula.TexturePath = resolve(cfg.Nebula.TexturePath)
	return cfg
}
