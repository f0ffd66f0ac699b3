package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct for mesh pipelines.
// Matches GPUVertex layout exactly (32 bytes).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertexSize is the byte stride of one GPUVertex.
const GPUVertexSize = 32

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Matches the WGSL VertexInput struct layout exactly (see GPUVertexSource).
// Size: 32 bytes (no padding required).
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: unit vertex normal (12 bytes)
	TexCoord [2]float32 // offset 24: UV texture coordinate (8 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, GPUVertexSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Normal[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Normal[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Normal[2]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.TexCoord[0]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.TexCoord[1]))
	return buf
}

// VertexLayout returns the per-vertex buffer layout matching GPUVertex.
//
// Returns:
//   - wgpu.VertexBufferLayout: position at location 0, normal at 1, uv at 2
func VertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: GPUVertexSize,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
		},
	}
}

// GPUModelParamsSource is the canonical WGSL definition of the ModelParams struct.
// Matches GPUModelParams layout exactly (128 bytes).
//
//go:embed assets/model_params.wgsl
var GPUModelParamsSource string

// GPUModelParams is the per-mesh uniform carrying the model-to-world transform and the
// matrix that carries normals into world space.
// Size: 128 bytes (2 x mat4x4<f32>).
type GPUModelParams struct {
	Model  [16]float32 // offset  0: model-to-world matrix, column-major (64 bytes)
	Normal [16]float32 // offset 64: inverse transpose of Model (64 bytes)
}

// Size returns the size of the GPUModelParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUModelParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUModelParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 128-byte buffer ready for GPU upload.
func (g *GPUModelParams) Marshal() []byte {
	buf := make([]byte, 128)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(g.Model[i]))
		binary.LittleEndian.PutUint32(buf[64+i*4:64+(i+1)*4], math.Float32bits(g.Normal[i]))
	}
	return buf
}

func putUint32(b []byte, v uint32) {
	binary.LittleEndian.PutUint32(b, v)
}
