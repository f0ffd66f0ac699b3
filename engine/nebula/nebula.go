package nebula

import (
	"math"
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/lucasb-eyer/go-colorful"
)

// Config describes how a nebula sprite group is generated.
type Config struct {
	// Count is the number of sprites; zero or less yields an empty group.
	Count int
	// Hue is the base hue in turns.
	Hue float32
	// Saturation is used as the HSL lightness of the base color.
	Saturation float32
	// Opacity is the constant per-sprite opacity.
	Opacity float32
	// Radius bounds the planar distance of each sprite from the Z axis.
	Radius float32
	// Depth is the base Z of the sprite layer; each sprite adds U(0,1).
	Depth float32
	// Size is the base sprite scale before jitter.
	Size float32
	// TexturePath is the shared sprite image.
	TexturePath string
}

// DefaultConfig returns the nebula configuration used by the planet scene.
//
// Returns:
//   - Config: eight soft blue sprites behind the planet
func DefaultConfig() Config {
	return Config{
		Count:       8,
		Hue:         0.65,
		Saturation:  0.5,
		Opacity:     0.2,
		Radius:      10,
		Depth:       -10.5,
		Size:        24,
		TexturePath: "./rad-grad.png",
	}
}

// Sprite is a single immutable billboard in the nebula group.
type Sprite struct {
	// Position is the sprite center; the Y component is mirrored at placement.
	Position [3]float32
	// Scale is the isotropic sprite size.
	Scale float32
	// Color is the linear RGB tint.
	Color [3]float32
	// Opacity is the sprite alpha.
	Opacity float32
}

// Nebula is a generated group of additive billboard sprites sharing one texture.
type Nebula interface {
	// Sprites retrieves the generated sprites in creation order.
	//
	// Returns:
	//   - []Sprite: the sprites (must not be modified)
	Sprites() []Sprite

	// Count retrieves the number of sprites.
	//
	// Returns:
	//   - int: the sprite count
	Count() int

	// TexturePath retrieves the shared sprite texture path.
	//
	// Returns:
	//   - string: the image path
	TexturePath() string

	// Config retrieves the configuration the group was generated from.
	//
	// Returns:
	//   - Config: the generation config
	Config() Config

	// Instances serializes every sprite into a per-instance vertex buffer.
	//
	// Returns:
	//   - []byte: Count() * GPUSpriteInstance size bytes, nil when empty
	Instances() []byte
}

// nebula is the implementation of the Nebula interface.
type nebula struct {
	cfg     Config
	rng     *rand.Rand
	sprites []Sprite
}

var _ Nebula = &nebula{}

// NewNebula generates a sprite group. Sprite i sits on the ray at angle i/count*2pi with a
// random radial factor, its color is HSL(hue, 1, saturation) with a +/-0.1 lightness jitter,
// and its scale is size jittered by +/-0.5.
//
// Parameters:
//   - options: variadic list of NebulaBuilderOption functions
//
// Returns:
//   - Nebula: the generated sprite group
func NewNebula(options ...NebulaBuilderOption) Nebula {
	n := &nebula{
		cfg: DefaultConfig(),
	}
	for _, opt := range options {
		opt(n)
	}
	if n.rng == nil {
		n.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	count := max(n.cfg.Count, 0)
	n.sprites = make([]Sprite, 0, count)
	for i := range count {
		n.sprites = append(n.sprites, n.newSprite(i, count))
	}

	common.Logger().Debug("nebula generated", "sprites", count, "texture", n.cfg.TexturePath)
	return n
}

func (n *nebula) newSprite(i, count int) Sprite {
	angle := float64(i) / float64(count) * 2 * math.Pi
	sin, cos := math.Sincos(angle)
	radius := float64(n.cfg.Radius)

	x := cos * n.rng.Float64() * radius
	y := sin * n.rng.Float64() * radius
	z := float64(n.cfg.Depth) + n.rng.Float64()

	base := colorful.Hsl(float64(n.cfg.Hue)*360, 1, float64(n.cfg.Saturation))
	h, s, l := base.Hsl()
	l = float64(common.Clamp(float32(l+n.rng.Float64()*0.2-0.1), 0, 1))
	col := colorful.Hsl(h, s, l).Clamped()

	return Sprite{
		Position: [3]float32{float32(x), float32(-y), float32(z)},
		Scale:    n.cfg.Size + n.rng.Float32() - 0.5,
		Color:    [3]float32{float32(col.R), float32(col.G), float32(col.B)},
		Opacity:  n.cfg.Opacity,
	}
}

func (n *nebula) Sprites() []Sprite {
	return n.sprites
}

func (n *nebula) Count() int {
	return len(n.sprites)
}

func (n *nebula) TexturePath() string {
	return n.cfg.TexturePath
}

func (n *nebula) Config() Config {
	return n.cfg
}

func (n *nebula) Instances() []byte {
	if len(n.sprites) == 0 {
		return nil
	}
	out := make([]byte, 0, len(n.sprites)*GPUSpriteInstanceSize)
	for _, s := range n.sprites {
		inst := GPUSpriteInstance{
			Position: s.Position,
			Scale:    s.Scale,
			Color:    [4]float32{s.Color[0], s.Color[1], s.Color[2], s.Opacity},
		}
		out = append(out, inst.Marshal()...)
	}
	return out
}
