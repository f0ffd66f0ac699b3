package pipeline

import (
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// BlendMode selects how a pipeline's fragments combine with the color target.
type BlendMode int

const (
	// BlendModeOpaque writes fragments without blending.
	BlendModeOpaque BlendMode = iota

	// BlendModeAlpha blends by source alpha over the destination.
	BlendModeAlpha

	// BlendModeAdditive adds source color scaled by source alpha onto the destination.
	BlendModeAdditive
)

// String returns the blend mode name.
func (b BlendMode) String() string {
	switch b {
	case BlendModeOpaque:
		return "opaque"
	case BlendModeAlpha:
		return "alpha"
	case BlendModeAdditive:
		return "additive"
	default:
		return "unknown"
	}
}

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	pipelineKey string
	shader      shader.Shader

	// vertexLayouts are the buffer layouts in slot order.
	vertexLayouts []wgpu.VertexBufferLayout

	renderPipeline *wgpu.RenderPipeline

	depthTestEnabled  bool
	depthWriteEnabled bool
	blendMode         BlendMode
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
}

// Pipeline describes one render pipeline: its shader program, vertex buffer layouts, and
// fixed-function state. The renderer creates the GPU object from it in RegisterPipelines.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader returns the program drawn by this pipeline.
	//
	// Returns:
	//   - shader.Shader: the shader
	Shader() shader.Shader

	// VertexLayouts returns the vertex buffer layouts in slot order.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layouts
	VertexLayouts() []wgpu.VertexBufferLayout

	// RenderPipeline returns the GPU pipeline, or nil before registration.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the GPU pipeline
	RenderPipeline() *wgpu.RenderPipeline

	// DepthTestEnabled returns whether fragments are tested against the depth buffer.
	//
	// Returns:
	//   - bool: true if depth testing is enabled
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether fragments write the depth buffer.
	//
	// Returns:
	//   - bool: true if depth writing is enabled
	DepthWriteEnabled() bool

	// BlendMode returns the configured blend mode.
	//
	// Returns:
	//   - BlendMode: the blend mode
	BlendMode() BlendMode

	// BlendState returns the wgpu blend state for the blend mode, or nil when opaque.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state
	BlendState() *wgpu.BlendState

	// CullMode returns the face culling mode.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the topology
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order.
	//
	// Returns:
	//   - wgpu.FrontFace: the winding order
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the write mask
	WriteMask() wgpu.ColorWriteMask

	// SetRenderPipeline stores the GPU pipeline created by the renderer.
	//
	// Parameters:
	//   - p: the GPU pipeline
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release frees the GPU pipeline. Safe to call more than once.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a pipeline description. Defaults: depth test and write on, opaque,
// no culling, triangle lists, counter-clockwise front faces.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - s: the shader program; must not be nil
//   - opts: a variadic list of PipelineBuilderOption functions
//
// Returns:
//   - Pipeline: the pipeline description
func NewPipeline(pipelineKey string, s shader.Shader, opts ...PipelineBuilderOption) Pipeline {
	if s == nil {
		panic("pipeline: " + pipelineKey + " requires a shader")
	}
	p := &pipeline{
		pipelineKey:       pipelineKey,
		shader:            s,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		blendMode:         BlendModeOpaque,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) VertexLayouts() []wgpu.VertexBufferLayout {
	return p.vertexLayouts
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) BlendMode() BlendMode {
	return p.blendMode
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	switch p.blendMode {
	case BlendModeAlpha:
		return &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		}
	case BlendModeAdditive:
		return &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOne,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorZero,
				DstFactor: wgpu.BlendFactorOne,
				Operation: wgpu.BlendOperationAdd,
			},
		}
	default:
		return nil
	}
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
