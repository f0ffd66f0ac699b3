package starfield

import "math/rand/v2"

const (
	// DefaultRotationDrift is the bulk rotation subtracted from the field every frame.
	DefaultRotationDrift float32 = 0.0002
	// DefaultUpdateHue is the hue every star is recolored with on each frame.
	DefaultUpdateHue float32 = 0.6
	// DefaultPointSize is the world-space size of a star sprite.
	DefaultPointSize float32 = 0.2
	// DefaultTexturePath is the star sprite image.
	DefaultTexturePath = "./circle.png"
)

// StarFieldBuilderOption is a functional option for configuring a starField.
// Use the With* functions to create options.
type StarFieldBuilderOption func(s *starField)

// WithRand sets the random source used to generate the field.
//
// Parameters:
//   - r: the random source
//
// Returns:
//   - StarFieldBuilderOption: option function to apply
func WithRand(r *rand.Rand) StarFieldBuilderOption {
	return func(s *starField) {
		s.rng = r
	}
}

// WithSeed seeds a deterministic random source for the field. Two fields built with the
// same seed and count are identical.
//
// Parameters:
//   - seed: the seed value
//
// Returns:
//   - StarFieldBuilderOption: option function to apply
func WithSeed(seed uint64) StarFieldBuilderOption {
	return func(s *starField) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithPointSize sets the world-space size of each star sprite.
//
// Parameters:
//   - size: the sprite size
//
// Returns:
//   - StarFieldBuilderOption: option function to apply
func WithPointSize(size float32) StarFieldBuilderOption {
	return func(s *starField) {
		s.pointSize = size
	}
}

// WithTexturePath sets the star sprite texture path.
//
// Parameters:
//   - path: the image path
//
// Returns:
//   - StarFieldBuilderOption: option function to apply
func WithTexturePath(path string) StarFieldBuilderOption {
	return func(s *starField) {
		s.texturePath = path
	}
}

// WithRotationDrift sets the per-frame bulk rotation decrement.
//
// Parameters:
//   - drift: radians subtracted from the Y rotation each Update
//
// Returns:
//   - StarFieldBuilderOption: option function to apply
func WithRotationDrift(drift float32) StarFieldBuilderOption {
	return func(s *starField) {
		s.drift = drift
	}
}

// WithUpdateHue sets the hue used when recoloring stars each frame.
//
// Parameters:
//   - hue: hue in turns
//
// Returns:
//   - StarFieldBuilderOption: option function to apply
func WithUpdateHue(hue float32) StarFieldBuilderOption {
	return func(s *starField) {
		s.updateHue = hue
	}
}

// WithInitialHue makes every star use the same hue for its initial color instead of
// its own random hue.
//
// Parameters:
//   - hue: hue in turns
//
// Returns:
//   - StarFieldBuilderOption: option function to apply
func WithInitialHue(hue float32) StarFieldBuilderOption {
	return func(s *starField) {
		s.initialHue = hue
		s.useInitialHue = true
	}
}
