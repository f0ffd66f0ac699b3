package light

import (
	"github.com/Carmen-Shannon/oxy-planet/common"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a distant source such as the sun. It shines from its
	// position towards the origin with no distance attenuation.
	LightTypeDirectional LightType = iota

	// LightTypeHemisphere represents ambient sky light: the sky color from above fading to
	// the ground color from below.
	LightTypeHemisphere
)

// String returns the light type name.
func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "directional"
	case LightTypeHemisphere:
		return "hemisphere"
	default:
		return "unknown"
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType   LightType
	position    [3]float32
	color       [3]float32
	groundColor [3]float32
	intensity   float32
	enabled     bool
}

// Light defines the interface for a light source in the scene.
//
// Both types share this interface; type-specific properties (the ground color of a
// hemisphere light) return zero values when not applicable.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position of the light. For a directional light
	// this places the source; for a hemisphere light it orients the sky (default straight up).
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Direction returns the unit direction the light travels, from its position towards
	// the origin.
	//
	// Returns:
	//   - [3]float32: normalized direction as (x, y, z)
	Direction() [3]float32

	// Color returns the RGB color of the light (the sky color for hemisphere lights).
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// GroundColor returns the RGB color lighting surfaces facing away from the sky.
	// Zero for directional lights.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	GroundColor() [3]float32

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Enabled returns whether this light is active.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// SetPosition moves the light.
	//
	// Parameters:
	//   - position: the new position
	SetPosition(position [3]float32)

	// SetIntensity changes the intensity multiplier.
	//
	// Parameters:
	//   - intensity: the new intensity
	SetIntensity(intensity float32)

	// SetEnabled toggles the light.
	//
	// Parameters:
	//   - enabled: whether the light is active
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a white light of intensity 1. Hemisphere lights default to a sky
// straight up; directional lights default to shining from (0, 1, 0).
//
// Parameters:
//   - lightType: the kind of light
//   - opts: variadic list of LightBuilderOption functions
//
// Returns:
//   - Light: the new light
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		position:  [3]float32{0, 1, 0},
		color:     [3]float32{1, 1, 1},
		intensity: 1,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.lightType != LightTypeHemisphere {
		l.groundColor = [3]float32{}
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Direction() [3]float32 {
	return common.Normalize3([3]float32{-l.position[0], -l.position[1], -l.position[2]})
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) GroundColor() [3]float32 {
	return l.groundColor
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(position [3]float32) {
	l.position = position
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}
