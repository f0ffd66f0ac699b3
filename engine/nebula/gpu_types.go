package nebula

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderSource is the WGSL program that draws nebula sprites as additive billboards.
//
//go:embed assets/nebula.wgsl
var ShaderSource string

// QuadVertexCount is the number of vertices drawn per sprite instance.
const QuadVertexCount = 6

// GPUSpriteInstanceSize is the byte size of one GPUSpriteInstance.
const GPUSpriteInstanceSize = 32

// GPUSpriteInstance is the per-instance vertex record for one nebula sprite.
// Size: 32 bytes.
type GPUSpriteInstance struct {
	Position [3]float32 // offset  0: sprite center in world space (12 bytes)
	Scale    float32    // offset 12: isotropic sprite size (4 bytes)
	Color    [4]float32 // offset 16: linear RGB tint + opacity (16 bytes)
}

// Size returns the size of the GPUSpriteInstance struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUSpriteInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUSpriteInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUSpriteInstance) Marshal() []byte {
	buf := make([]byte, GPUSpriteInstanceSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Scale))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Color[3]))
	return buf
}

// VertexLayouts returns the per-instance layout the nebula shader reads from slot 0.
//
// Returns:
//   - []wgpu.VertexBufferLayout: the sprite instance layout
func VertexLayouts() []wgpu.VertexBufferLayout {
	return []wgpu.VertexBufferLayout{
		{
			ArrayStride: GPUSpriteInstanceSize,
			StepMode:    wgpu.VertexStepModeInstance,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
				{Format: wgpu.VertexFormatFloat32, Offset: 12, ShaderLocation: 1},
				{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
			},
		},
	}
}
