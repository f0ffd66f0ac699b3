package material

import (
	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/Carmen-Shannon/oxy-planet/engine/light"
)

// SurfaceMaterialBuilderOption is a function that configures a surface material during construction.
type SurfaceMaterialBuilderOption func(*surfaceMaterial)

// AtmosphereMaterialBuilderOption is a function that configures an atmosphere material during construction.
type AtmosphereMaterialBuilderOption func(*atmosphereMaterial)

// WithSunDirection sets the direction towards the sun. The vector is normalized; a zero
// vector keeps the default direction.
//
// Parameters:
//   - dir: the sun direction
//
// Returns:
//   - SurfaceMaterialBuilderOption: option function to apply
func WithSunDirection(dir [3]float32) SurfaceMaterialBuilderOption {
	return func(m *surfaceMaterial) {
		if common.Length3(dir) == 0 {
			return
		}
		m.lights.SunDirection = negate3(common.Normalize3(dir))
	}
}

// WithSceneLights packs a hemisphere light and a directional light into the surface uniform.
// The sun light's direction replaces the default; a nil sun or one with no direction keeps it.
//
// Parameters:
//   - hemisphere: the ambient sky light
//   - sun: the directional light
//
// Returns:
//   - SurfaceMaterialBuilderOption: option function to apply
func WithSceneLights(hemisphere, sun light.Light) SurfaceMaterialBuilderOption {
	return func(m *surfaceMaterial) {
		packed := light.NewGPUSceneLights(hemisphere, sun)
		if common.Length3(packed.SunDirection) == 0 {
			packed.SunDirection = m.lights.SunDirection
		}
		m.lights = packed
	}
}

// WithTexturePath sets the file a surface slot is loaded from.
//
// Parameters:
//   - slot: the texture slot
//   - path: the image path
//
// Returns:
//   - SurfaceMaterialBuilderOption: option function to apply
func WithTexturePath(slot TextureSlot, path string) SurfaceMaterialBuilderOption {
	return func(m *surfaceMaterial) {
		m.paths[slot] = path
	}
}

// WithTexture assigns an already decoded image to a surface slot.
//
// Parameters:
//   - slot: the texture slot
//   - tex: the decoded image
//
// Returns:
//   - SurfaceMaterialBuilderOption: option function to apply
func WithTexture(slot TextureSlot, tex *common.ImportedTexture) SurfaceMaterialBuilderOption {
	return func(m *surfaceMaterial) {
		if tex != nil {
			m.textures[slot] = tex
		}
	}
}

// WithRimColor sets the grazing-angle color from a 0xRRGGBB sRGB value.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - AtmosphereMaterialBuilderOption: option function to apply
func WithRimColor(hex uint32) AtmosphereMaterialBuilderOption {
	return func(m *atmosphereMaterial) {
		m.rimColor = ParseHexColor(hex)
	}
}

// WithFacingColor sets the head-on color from a 0xRRGGBB sRGB value.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - AtmosphereMaterialBuilderOption: option function to apply
func WithFacingColor(hex uint32) AtmosphereMaterialBuilderOption {
	return func(m *atmosphereMaterial) {
		m.facingColor = ParseHexColor(hex)
	}
}

// WithFresnel sets the fresnel bias, scale and power.
//
// Parameters:
//   - bias: constant term
//   - scale: multiplier of the power term
//   - power: exponent applied to 1 + dot(I, N)
//
// Returns:
//   - AtmosphereMaterialBuilderOption: option function to apply
func WithFresnel(bias, scale, power float32) AtmosphereMaterialBuilderOption {
	return func(m *atmosphereMaterial) {
		m.bias = bias
		m.scale = scale
		m.power = power
	}
}
