package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the implementation of the BindGroupProvider interface.
type bindGroupProvider struct {
	label string

	// GPU binding resources keyed by @binding index within the provider's group.
	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	buffers         map[int]*wgpu.Buffer
	textures        map[int]*wgpu.Texture
	textureViews    map[int]*wgpu.TextureView
	samplers        map[int]*wgpu.Sampler

	// Geometry resources keyed by vertex buffer slot.
	vertexBuffers map[int]*wgpu.Buffer
	indexBuffer   *wgpu.Buffer
	indexCount    int
	vertexCount   int
	instanceCount int
}

// BindGroupProvider owns the GPU resources of one bind group plus the optional geometry
// buffers drawn with it. The renderer populates a provider during Init and reads it back
// when issuing draw calls; the scene releases it on teardown.
type BindGroupProvider interface {
	// Release frees every GPU resource held by the provider. Safe to call more than once.
	Release()

	// ReleaseBindGroup frees only the bind group so it can be rebuilt against new views.
	ReleaseBindGroup()

	// Label retrieves the debug label used for the provider's GPU objects.
	//
	// Returns:
	//   - string: the label
	Label() string

	// BindGroup retrieves the bound group, or nil before initialization.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout retrieves the layout the bind group was created against.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the layout
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer retrieves the uniform or storage buffer at a binding index.
	//
	// Parameters:
	//   - binding: the @binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer, or nil
	Buffer(binding int) *wgpu.Buffer

	// Texture retrieves the texture backing the view at a binding index.
	//
	// Parameters:
	//   - binding: the @binding index
	//
	// Returns:
	//   - *wgpu.Texture: the texture, or nil
	Texture(binding int) *wgpu.Texture

	// TextureView retrieves the texture view at a binding index.
	//
	// Parameters:
	//   - binding: the @binding index
	//
	// Returns:
	//   - *wgpu.TextureView: the view, or nil
	TextureView(binding int) *wgpu.TextureView

	// Sampler retrieves the sampler at a binding index.
	//
	// Parameters:
	//   - binding: the @binding index
	//
	// Returns:
	//   - *wgpu.Sampler: the sampler, or nil
	Sampler(binding int) *wgpu.Sampler

	// VertexBuffer retrieves the vertex buffer bound at a slot.
	//
	// Parameters:
	//   - slot: the vertex buffer slot
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer, or nil
	VertexBuffer(slot int) *wgpu.Buffer

	// VertexBufferCount retrieves the number of contiguous vertex buffer slots starting at 0.
	//
	// Returns:
	//   - int: the slot count
	VertexBufferCount() int

	// IndexBuffer retrieves the index buffer, or nil for non-indexed draws.
	//
	// Returns:
	//   - *wgpu.Buffer: the index buffer
	IndexBuffer() *wgpu.Buffer

	// IndexCount retrieves the number of indices to draw.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// VertexCount retrieves the number of vertices per instance for non-indexed draws.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// InstanceCount retrieves the number of instances to draw. Zero skips the draw.
	//
	// Returns:
	//   - int: the instance count
	InstanceCount() int

	SetBindGroup(bg *wgpu.BindGroup)
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)
	SetBuffer(binding int, buf *wgpu.Buffer)
	SetTexture(binding int, tex *wgpu.Texture)
	SetTextureView(binding int, tv *wgpu.TextureView)
	SetSampler(binding int, s *wgpu.Sampler)
	SetVertexBuffer(slot int, buf *wgpu.Buffer)
	SetIndexBuffer(buf *wgpu.Buffer)
	SetIndexCount(count int)
	SetVertexCount(count int)
	SetInstanceCount(count int)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty provider. Instance count defaults to 1.
//
// Parameters:
//   - label: debug label for the provider's GPU objects
//   - options: variadic list of BindGroupProviderOption functions
//
// Returns:
//   - BindGroupProvider: the new provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:         label,
		buffers:       make(map[int]*wgpu.Buffer),
		textures:      make(map[int]*wgpu.Texture),
		textureViews:  make(map[int]*wgpu.TextureView),
		samplers:      make(map[int]*wgpu.Sampler),
		vertexBuffers: make(map[int]*wgpu.Buffer),
		instanceCount: 1,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) Texture(binding int) *wgpu.Texture {
	return p.textures[binding]
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.textureViews[binding]
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	return p.samplers[binding]
}

func (p *bindGroupProvider) VertexBuffer(slot int) *wgpu.Buffer {
	return p.vertexBuffers[slot]
}

func (p *bindGroupProvider) VertexBufferCount() int {
	n := 0
	for p.vertexBuffers[n] != nil {
		n++
	}
	return n
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) VertexCount() int {
	return p.vertexCount
}

func (p *bindGroupProvider) InstanceCount() int {
	return p.instanceCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetTexture(binding int, tex *wgpu.Texture) {
	p.textures[binding] = tex
}

func (p *bindGroupProvider) SetTextureView(binding int, tv *wgpu.TextureView) {
	p.textureViews[binding] = tv
}

func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) {
	p.samplers[binding] = s
}

func (p *bindGroupProvider) SetVertexBuffer(slot int, buf *wgpu.Buffer) {
	p.vertexBuffers[slot] = buf
}

func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer) {
	p.indexBuffer = buf
}

func (p *bindGroupProvider) SetIndexCount(count int) {
	p.indexCount = count
}

func (p *bindGroupProvider) SetVertexCount(count int) {
	p.vertexCount = count
}

func (p *bindGroupProvider) SetInstanceCount(count int) {
	p.instanceCount = count
}

func (p *bindGroupProvider) ReleaseBindGroup() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
}

func (p *bindGroupProvider) Release() {
	p.ReleaseBindGroup()
	for i, tv := range p.textureViews {
		if tv != nil {
			tv.Release()
		}
		delete(p.textureViews, i)
	}
	for i, tex := range p.textures {
		if tex != nil {
			tex.Release()
		}
		delete(p.textures, i)
	}
	for i, s := range p.samplers {
		if s != nil {
			s.Release()
		}
		delete(p.samplers, i)
	}
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}
	for i, buf := range p.vertexBuffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.vertexBuffers, i)
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
}
