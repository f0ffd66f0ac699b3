package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (208 bytes).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Matches the WGSL CameraUniform struct layout exactly (see GPUCameraUniformSource).
// Size: 208 bytes (3 x mat4x4<f32> + vec4<f32>).
type GPUCameraUniform struct {
	View     [16]float32 // offset   0: world-to-view matrix (mat4x4<f32>)
	Proj     [16]float32 // offset  64: view-to-clip matrix (mat4x4<f32>)
	ViewProj [16]float32 // offset 128: combined view-projection matrix (mat4x4<f32>)
	Position [4]float32  // offset 192: world-space eye position, w = 1 (vec4<f32>)
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (208)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.View[i]))
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Proj[i]))
		binary.LittleEndian.PutUint32(buf[128+i*4:], math.Float32bits(g.ViewProj[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[192+i*4:], math.Float32bits(g.Position[i]))
	}
	return buf
}
