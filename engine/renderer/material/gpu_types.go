package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUAtmosphereParamsSource is the canonical WGSL definition of the AtmosphereParams struct.
// Matches GPUAtmosphereParams layout exactly (48 bytes, std140 aligned).
//
//go:embed assets/atmosphere_params.wgsl
var GPUAtmosphereParamsSource string

// SurfaceShaderSource is the WGSL program that shades the planet surface.
//
//go:embed assets/surface.wgsl
var SurfaceShaderSource string

// AtmosphereShaderSource is the WGSL program that shades the atmosphere shell.
//
//go:embed assets/atmosphere.wgsl
var AtmosphereShaderSource string

// GPUAtmosphereParams is the GPU-aligned uniform for the atmosphere shader.
// Size: 48 bytes (2 x vec4<f32> + 3 x f32 + 4 bytes padding).
type GPUAtmosphereParams struct {
	RimColor    [4]float32 // offset  0: linear RGBA seen at grazing angles (16 bytes)
	FacingColor [4]float32 // offset 16: linear RGBA seen head-on (16 bytes)
	Bias        float32    // offset 32: fresnel bias (4 bytes)
	Scale       float32    // offset 36: fresnel scale (4 bytes)
	Power       float32    // offset 40: fresnel power (4 bytes)
	_pad        float32    // offset 44: padding to 16-byte alignment (4 bytes)
}

// Size returns the size of the GPUAtmosphereParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUAtmosphereParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUAtmosphereParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload.
func (g *GPUAtmosphereParams) Marshal() []byte {
	buf := make([]byte, 48)
	for i, v := range g.RimColor {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(v))
	}
	for i, v := range g.FacingColor {
		binary.LittleEndian.PutUint32(buf[16+i*4:20+i*4], math.Float32bits(v))
	}
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.Bias))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(g.Scale))
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(g.Power))
	return buf
}
