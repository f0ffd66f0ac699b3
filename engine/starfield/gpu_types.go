package starfield

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPUStarParamsSource is the canonical WGSL definition of the StarParams struct.
// Matches GPUStarParams layout exactly (80 bytes, std140 aligned).
//
//go:embed assets/star_params.wgsl
var GPUStarParamsSource string

// ShaderSource is the WGSL program that draws the star field as instanced billboards.
//
//go:embed assets/starfield.wgsl
var ShaderSource string

// QuadVertexCount is the number of vertices drawn per star instance (two triangles).
const QuadVertexCount = 6

// BillboardSize returns the view-space width of a star quad as the vertex program sizes it.
// Dividing by the projection's vertical focal term makes a star cover
// pointSize*(viewportHeight/2)/depth pixels, the same attenuation as a sized point sprite.
//
// Parameters:
//   - pointSize: the field's point size
//   - projYY: element [1][1] of the camera projection matrix
//
// Returns:
//   - float32: the quad width in view-space units
func BillboardSize(pointSize, projYY float32) float32 {
	if projYY == 0 {
		return pointSize
	}
	return pointSize / projYY
}

// GPUStarParams is the per-field uniform for the star pipeline.
// Size: 80 bytes (mat4x4 + f32 + 12 bytes padding).
type GPUStarParams struct {
	Model     [16]float32 // offset  0: field model matrix carrying the bulk rotation (64 bytes)
	PointSize float32     // offset 64: sprite size before focal attenuation (4 bytes)
	_pad      [3]float32  // offset 68: padding to 16-byte alignment (12 bytes)
}

// Size returns the size of the GPUStarParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUStarParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUStarParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload.
func (g *GPUStarParams) Marshal() []byte {
	buf := make([]byte, 80)
	for i, v := range g.Model {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(v))
	}
	binary.LittleEndian.PutUint32(buf[64:68], math.Float32bits(g.PointSize))
	return buf
}

// VertexLayouts returns the two per-instance vertex buffer layouts the star shader reads:
// slot 0 carries positions and slot 1 carries colors, 3 floats each.
//
// Returns:
//   - []wgpu.VertexBufferLayout: the position and color layouts
func VertexLayouts() []wgpu.VertexBufferLayout {
	return []wgpu.VertexBufferLayout{
		{
			ArrayStride: 12,
			StepMode:    wgpu.VertexStepModeInstance,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			},
		},
		{
			ArrayStride: 12,
			StepMode:    wgpu.VertexStepModeInstance,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 1},
			},
		},
	}
}
