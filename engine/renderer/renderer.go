package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           [4]float64
}

// Renderer is the high-level drawing API used by the scene. It caches pipelines by key,
// creates GPU buffers, textures, samplers and bind groups into bind group providers, and
// records one render pass per frame.
type Renderer interface {
	// Pipeline retrieves the registered Pipeline associated with the given key, or nil.
	//
	// Parameters:
	//   - key: the pipeline key
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline, or nil if not registered
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines creates the GPU pipeline objects and caches them by PipelineKey.
	// Keys that are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize reconfigures the surface, depth, and MSAA targets for a new framebuffer size.
	// Zero sizes (a minimized window) are ignored.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// SetPresentMode changes the present mode; it takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the present mode
	SetPresentMode(mode PresentMode)

	// InitMeshBuffers creates one vertex buffer per slot and an optional index buffer.
	// Vertex buffers are writable so per-frame data can be re-uploaded in place.
	//
	// Parameters:
	//   - provider: the provider receiving the buffers
	//   - vertexData: initial contents for each vertex slot, in slot order
	//   - indexData: uint32 index data, or nil for non-indexed draws
	//   - indexCount: the number of indices
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData [][]byte, indexData []byte, indexCount int) error

	// InitBindGroup creates the provider's layout on first use, a uniform buffer for every
	// buffer entry that has none yet, and the bind group. Texture and sampler entries must
	// already be initialized with InitTexture and InitSampler.
	//
	// Parameters:
	//   - provider: the provider to bind
	//   - descriptor: the layout descriptor parsed from the shader
	//
	// Returns:
	//   - error: an error if a resource is missing or creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// InitTexture uploads RGBA8 pixel data as a 2D texture at a binding, replacing any texture
	// already there. The bind group must be rebuilt afterwards.
	//
	// Parameters:
	//   - provider: the provider receiving the texture
	//   - binding: the @binding index
	//   - staging: the pixel data
	//
	// Returns:
	//   - error: an error if creation fails
	InitTexture(provider bind_group_provider.BindGroupProvider, binding int, staging common.TextureStagingData) error

	// InitSampler creates a sampler at a binding.
	//
	// Parameters:
	//   - provider: the provider receiving the sampler
	//   - binding: the @binding index
	//   - staging: the sampler configuration
	//
	// Returns:
	//   - error: an error if creation fails
	InitSampler(provider bind_group_provider.BindGroupProvider, binding int, staging common.SamplerStagingData) error

	// WriteBuffers queues uniform and vertex buffer uploads.
	//
	// Parameters:
	//   - writes: the writes to apply
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next surface texture and opens the frame's render pass.
	//
	// Returns:
	//   - error: an error if the surface texture could not be acquired
	BeginFrame() error

	// DrawCall records a draw with the given pipeline. The mesh provider supplies vertex
	// buffers, the optional index buffer, and counts; bindGroups are bound to groups 0..n-1.
	// Draws with zero instances are skipped.
	//
	// Parameters:
	//   - pipelineKey: the registered pipeline key
	//   - meshProvider: the geometry source
	//   - bindGroups: providers bound in group order
	//
	// Returns:
	//   - error: an error if the pipeline is not registered
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame closes the render pass and submits the frame's commands.
	EndFrame()

	// Present shows the submitted frame.
	Present()

	// Release frees every pipeline and the device objects.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing to the window's surface. Panics when no adapter or
// device is available.
//
// Parameters:
//   - backendType: the rendering backend
//   - surface: the window providing the surface descriptor and framebuffer size
//   - options: variadic list of RendererBuilderOption functions
//
// Returns:
//   - Renderer: the configured renderer
func NewRenderer(backendType RendererBackendType, surface SurfaceSource, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		presentMode:   PresentModeVSync,
		msaa:          MSAA4x,
		clearColor:    [4]float64{0, 0, 0, 1},
	}
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa, r.clearColor)
	}
	r.backend.SetPresentMode(r.presentMode)
	r.backend.ConfigureSurface(surface.Width(), surface.Height())
	return r
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("register pipeline %q: %w", key, err)
		}
		common.Logger().Debug("pipeline registered", "key", key, "blend", p.BlendMode().String())
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData [][]byte, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	return r.backend.InitBindGroup(provider, descriptor)
}

func (r *renderer) InitTexture(provider bind_group_provider.BindGroupProvider, binding int, staging common.TextureStagingData) error {
	return r.backend.InitTexture(provider, binding, staging)
}

func (r *renderer) InitSampler(provider bind_group_provider.BindGroupProvider, binding int, staging common.SamplerStagingData) error {
	return r.backend.InitSampler(provider, binding, staging)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()

	if !exists {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}
	if meshProvider.InstanceCount() <= 0 {
		return nil
	}
	r.backend.DrawCall(p, meshProvider, bindGroups)
	return nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.mu.Unlock()
	r.backend.Release()
}
