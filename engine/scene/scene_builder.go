package scene

import (
	"github.com/Carmen-Shannon/oxy-planet/engine/camera"
	"github.com/Carmen-Shannon/oxy-planet/engine/nebula"
	"github.com/Carmen-Shannon/oxy-planet/engine/starfield"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithCamera replaces the default orbit camera built from Config.CameraPosition.
//
// Parameters:
//   - cam: the camera to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
	}
}

// WithStarFieldOptions passes extra options to the star field generator. They are applied
// after the options derived from the Config, so they win.
//
// Parameters:
//   - options: star field options
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithStarFieldOptions(options ...starfield.StarFieldBuilderOption) SceneBuilderOption {
	return func(s *scene) {
		s.starFieldOptions = append(s.starFieldOptions, options...)
	}
}

// WithNebulaOptions passes extra options to the nebula generator, applied after Config.Nebula.
//
// Parameters:
//   - options: nebula options
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithNebulaOptions(options ...nebula.NebulaBuilderOption) SceneBuilderOption {
	return func(s *scene) {
		s.nebulaOptions = append(s.nebulaOptions, options...)
	}
}

// WithFrameUpdater replaces the per-frame updater. Defaults to one spinning by Config.PlanetSpin.
//
// Parameters:
//   - u: the updater
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFrameUpdater(u FrameUpdater) SceneBuilderOption {
	return func(s *scene) {
		s.updater = u
	}
}
