package nebula

import "math/rand/v2"

// NebulaBuilderOption is a functional option for configuring a nebula.
// Use the With* functions to create options.
type NebulaBuilderOption func(n *nebula)

// WithConfig replaces the whole generation config.
//
// Parameters:
//   - cfg: the config to generate from
//
// Returns:
//   - NebulaBuilderOption: option function to apply
func WithConfig(cfg Config) NebulaBuilderOption {
	return func(n *nebula) {
		n.cfg = cfg
	}
}

// WithCount sets the number of sprites.
//
// Parameters:
//   - count: the sprite count
//
// Returns:
//   - NebulaBuilderOption: option function to apply
func WithCount(count int) NebulaBuilderOption {
	return func(n *nebula) {
		n.cfg.Count = count
	}
}

// WithHue sets the base hue in turns.
//
// Parameters:
//   - hue: the hue
//
// Returns:
//   - NebulaBuilderOption: option function to apply
func WithHue(hue float32) NebulaBuilderOption {
	return func(n *nebula) {
		n.cfg.Hue = hue
	}
}

// WithSaturation sets the lightness knob of the base color.
//
// Parameters:
//   - sat: the value in [0, 1]
//
// Returns:
//   - NebulaBuilderOption: option function to apply
func WithSaturation(sat float32) NebulaBuilderOption {
	return func(n *nebula) {
		n.cfg.Saturation = sat
	}
}

// WithOpacity sets the per-sprite opacity.
//
// Parameters:
//   - opacity: the alpha in [0, 1]
//
// Returns:
//   - NebulaBuilderOption: option function to apply
func WithOpacity(opacity float32) NebulaBuilderOption {
	return func(n *nebula) {
		n.cfg.Opacity = opacity
	}
}

// WithRadius sets the planar placement radius.
//
// Parameters:
//   - radius: the maximum distance from the Z axis
//
// Returns:
//   - NebulaBuilderOption: option function to apply
func WithRadius(radius float32) NebulaBuilderOption {
	return func(n *nebula) {
		n.cfg.Radius = radius
	}
}

// WithDepth sets the base Z of the sprite layer.
//
// Parameters:
//   - z: the base depth
//
// Returns:
//   - NebulaBuilderOption: option function to apply
func WithDepth(z float32) NebulaBuilderOption {
	return func(n *nebula) {
		n.cfg.Depth = z
	}
}

// WithSize sets the base sprite size.
//
// Parameters:
//   - size: the size before jitter
//
// Returns:
//   - NebulaBuilderOption: option function to apply
func WithSize(size float32) NebulaBuilderOption {
	return func(n *nebula) {
		n.cfg.Size = size
	}
}

// WithTexturePath sets the shared sprite texture.
//
// Parameters:
//   - path: the image path
//
// Returns:
//   - NebulaBuilderOption: option function to apply
func WithTexturePath(path string) NebulaBuilderOption {
	return func(n *nebula) {
		n.cfg.TexturePath = path
	}
}

// WithRand sets the random source used for placement and jitter.
//
// Parameters:
//   - r: the random source
//
// Returns:
//   - NebulaBuilderOption: option function to apply
func WithRand(r *rand.Rand) NebulaBuilderOption {
	return func(n *nebula) {
		n.rng = r
	}
}

// WithSeed seeds a deterministic random source.
//
// Parameters:
//   - seed: the seed value
//
// Returns:
//   - NebulaBuilderOption: option function to apply
func WithSeed(seed uint64) NebulaBuilderOption {
	return func(n *nebula) {
		n.rng = rand.New(rand.NewPCG(seed, ^seed))
	}
}
