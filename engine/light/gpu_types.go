package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-planet/common"
)

// GPUSceneLightsSource is the canonical WGSL definition of the SceneLights struct.
// Matches GPUSceneLights layout exactly (64 bytes).
//
//go:embed assets/scene_lights.wgsl
var GPUSceneLightsSource string

// GPUSceneLights is the GPU-aligned summary of one hemisphere light and one directional
// light, pre-multiplied by intensity. Disabled lights contribute zero color.
// Size: 64 bytes (4 x vec4<f32>).
type GPUSceneLights struct {
	SkyColor     [3]float32 // offset  0: hemisphere sky color x intensity
	_pad0        float32    // offset 12
	GroundColor  [3]float32 // offset 16: hemisphere ground color x intensity
	_pad1        float32    // offset 28
	SunDirection [3]float32 // offset 32: unit direction the sun light travels
	_pad2        float32    // offset 44
	SunColor     [3]float32 // offset 48: sun color x intensity
	_pad3        float32    // offset 60
}

// NewGPUSceneLights packs a hemisphere light and a directional light. Either may be nil.
//
// Parameters:
//   - hemisphere: the ambient sky light
//   - sun: the directional light
//
// Returns:
//   - GPUSceneLights: the packed uniform
func NewGPUSceneLights(hemisphere, sun Light) GPUSceneLights {
	var g GPUSceneLights
	if hemisphere != nil && hemisphere.Enabled() {
		g.SkyColor = common.Scale3(hemisphere.Color(), hemisphere.Intensity())
		g.GroundColor = common.Scale3(hemisphere.GroundColor(), hemisphere.Intensity())
	}
	if sun != nil {
		g.SunDirection = sun.Direction()
		if sun.Enabled() {
			g.SunColor = common.Scale3(sun.Color(), sun.Intensity())
		}
	}
	return g
}

// Size returns the size of the GPUSceneLights struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPUSceneLights) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUSceneLights struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPUSceneLights) Marshal() []byte {
	buf := make([]byte, 64)
	for i, v := range [4][3]float32{g.SkyColor, g.GroundColor, g.SunDirection, g.SunColor} {
		for j := range 3 {
			binary.LittleEndian.PutUint32(buf[i*16+j*4:], math.Float32bits(v[j]))
		}
	}
	return buf
}
