package starfield

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-planet/common"
)

// StarField owns a fixed set of StarPoints and the two parallel buffers the renderer draws
// from. The position buffer is immutable after construction; the color buffer is rewritten
// in place every frame and flagged dirty so the renderer re-uploads it.
//
// A StarField is owned by a single frame thread and performs no locking.
type StarField interface {
	// Count retrieves the number of stars in the field.
	//
	// Returns:
	//   - int: the star count
	Count() int

	// Points retrieves the star records in buffer order.
	//
	// Returns:
	//   - []StarPoint: the star records (must not be modified)
	Points() []StarPoint

	// Positions retrieves the position buffer, 3 floats per star.
	//
	// Returns:
	//   - []float32: the position buffer of length 3*Count()
	Positions() []float32

	// Colors retrieves the color buffer, 3 floats per star.
	//
	// Returns:
	//   - []float32: the color buffer of length 3*Count()
	Colors() []float32

	// Update advances the field to elapsed time t: recolors every star from its brightness
	// at t, marks the color buffer dirty and applies one step of bulk rotation drift.
	//
	// Parameters:
	//   - t: elapsed time since scene start in seconds
	Update(t float64)

	// Recolor rewrites the color buffer from every star's brightness at t and marks it dirty.
	// Rotation is left untouched.
	//
	// Parameters:
	//   - t: elapsed time since scene start in seconds
	Recolor(t float64)

	// RotationY retrieves the bulk rotation of the field around the Y axis in radians.
	//
	// Returns:
	//   - float32: the current rotation
	RotationY() float32

	// SetRotationY sets the bulk rotation of the field around the Y axis.
	//
	// Parameters:
	//   - r: rotation in radians
	SetRotationY(r float32)

	// Dirty reports whether the color buffer changed since the last ClearDirty.
	//
	// Returns:
	//   - bool: true if the color buffer needs re-upload
	Dirty() bool

	// ClearDirty resets the dirty flag after the renderer uploaded the color buffer.
	ClearDirty()

	// PointSize retrieves the world-space size of a star sprite.
	//
	// Returns:
	//   - float32: the sprite size
	PointSize() float32

	// TexturePath retrieves the path of the star sprite texture.
	//
	// Returns:
	//   - string: the texture path
	TexturePath() string

	// ModelMatrix builds the field's model matrix from its bulk rotation.
	//
	// Returns:
	//   - [16]float32: the column-major model matrix
	ModelMatrix() [16]float32

	// Params builds the GPU uniform for the star pipeline.
	//
	// Returns:
	//   - GPUStarParams: the uniform data
	Params() GPUStarParams
}

// starField is the implementation of the StarField interface.
type starField struct {
	rng           *rand.Rand
	points        []StarPoint
	positions     []float32
	colors        []float32
	rotationY     float32
	drift         float32
	updateHue     float32
	initialHue    float32
	useInitialHue bool
	pointSize     float32
	texturePath   string
	dirty         bool
}

var _ StarField = &starField{}

// NewStarField generates count stars on spherical shells and builds their buffers.
// A count of zero or less produces an empty but valid field.
//
// Parameters:
//   - count: number of stars to generate
//   - options: variadic list of StarFieldBuilderOption functions
//
// Returns:
//   - StarField: the newly generated star field
func NewStarField(count int, options ...StarFieldBuilderOption) StarField {
	s := &starField{
		drift:       DefaultRotationDrift,
		updateHue:   DefaultUpdateHue,
		pointSize:   DefaultPointSize,
		texturePath: DefaultTexturePath,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	count = max(count, 0)
	s.points = make([]StarPoint, count)
	s.positions = make([]float32, 3*count)
	s.colors = make([]float32, 3*count)

	for i := range s.points {
		p := newStarPoint(s.rng)
		s.points[i] = p

		hue := p.Hue
		if s.useInitialHue {
			hue = s.initialHue
		}
		col := HSLToRGB(hue, Saturation, s.rng.Float32())

		copy(s.positions[i*3:i*3+3], p.Position[:])
		copy(s.colors[i*3:i*3+3], col[:])
	}
	s.dirty = count > 0

	common.Logger().Debug("star field generated", "stars", count, "bytes", 4*(len(s.positions)+len(s.colors)))
	return s
}

func (s *starField) Count() int {
	return len(s.points)
}

func (s *starField) Points() []StarPoint {
	return s.points
}

func (s *starField) Positions() []float32 {
	return s.positions
}

func (s *starField) Colors() []float32 {
	return s.colors
}

func (s *starField) Update(t float64) {
	s.rotationY -= s.drift
	s.Recolor(t)
}

func (s *starField) Recolor(t float64) {
	for i, p := range s.points {
		col := HSLToRGB(s.updateHue, Saturation, p.Brightness(t))
		s.colors[i*3] = col[0]
		s.colors[i*3+1] = col[1]
		s.colors[i*3+2] = col[2]
	}
	s.dirty = true
}

func (s *starField) RotationY() float32 {
	return s.rotationY
}

func (s *starField) SetRotationY(r float32) {
	s.rotationY = r
}

func (s *starField) Dirty() bool {
	return s.dirty
}

func (s *starField) ClearDirty() {
	s.dirty = false
}

func (s *starField) PointSize() float32 {
	return s.pointSize
}

func (s *starField) TexturePath() string {
	return s.texturePath
}

func (s *starField) ModelMatrix() [16]float32 {
	var m [16]float32
	common.BuildModelMatrix(m[:], [3]float32{}, [3]float32{0, s.rotationY, 0}, 1)
	return m
}

func (s *starField) Params() GPUStarParams {
	return GPUStarParams{
		Model:     s.ModelMatrix(),
		PointSize: s.pointSize,
	}
}
