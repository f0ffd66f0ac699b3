// package common contains common types and helpers shared across the planet engine. They are not interface-wrapped structs, just plain structs
// and functions that express commonly used data-types.
package common

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
// This is used by the BindGroupProvider to stage texture data before creating the GPU texture and bind group.
type TextureStagingData struct {
	// Pixels is the RGBA pixel data, 4 bytes per pixel, row-major.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside [0, 1].
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the level of detail range.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}

// DefaultSampler returns linear filtering with repeat wrapping on U and clamp on V,
// the layout an equirectangular planet map expects.
//
// Returns:
//   - *SamplerStagingData: the default sampler configuration
func DefaultSampler() *SamplerStagingData {
	return &SamplerStagingData{
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
}

// ImportedTexture is a decoded 2D image ready for GPU upload.
// Textures are produced by the loader and are read-only once handed to a material.
type ImportedTexture struct {
	// Name is an identifier for this texture (e.g., "day", "clouds").
	Name string

	// Path is the file the texture was decoded from, empty for generated textures.
	Path string

	// Pixels holds RGBA8 pixel data, 4 bytes per pixel, row-major.
	Pixels []byte

	// Width is the texture width in pixels.
	Width int

	// Height is the texture height in pixels.
	Height int

	// SamplerData overrides the default sampler when non-nil.
	SamplerData *SamplerStagingData
}

// Staging converts the texture into TextureStagingData for a bind group provider.
//
// Returns:
//   - TextureStagingData: the staged pixel data
func (t *ImportedTexture) Staging() TextureStagingData {
	return TextureStagingData{
		Pixels: t.Pixels,
		Width:  uint32(t.Width),
		Height: uint32(t.Height),
	}
}

// SolidTexture creates a 1x1 texture filled with a single RGBA8 texel.
// Used as a stand-in while the real image is still loading.
//
// Parameters:
//   - name: identifier for the texture
//   - r, g, b, a: the texel channels
//
// Returns:
//   - *ImportedTexture: the 1x1 texture
func SolidTexture(name string, r, g, b, a uint8) *ImportedTexture {
	return &ImportedTexture{
		Name:   name,
		Pixels: []byte{r, g, b, a},
		Width:  1,
		Height: 1,
	}
}
