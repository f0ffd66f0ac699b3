package material

import (
	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/bind_group_provider"
)

// material holds the fields shared by every shading model.
type material struct {
	name              string
	pipelineKey       string
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Material is the part of a shading model the scene and renderer need to draw with it:
// an identity, the pipeline it renders through, the GPU resources bound for it, and the
// uniform bytes that parameterize it.
//
// Shading parameters are set at construction and read-only afterwards. The pipeline key and
// bind group provider are assigned during scene initialization.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// PipelineKey retrieves the key identifying the render pipeline this material uses.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// BindGroupProvider retrieves the provider holding this material's GPU resources,
	// or nil before scene initialization.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the provider
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// Uniform serializes the material's shading parameters for GPU upload.
	//
	// Returns:
	//   - []byte: the uniform bytes
	Uniform() []byte

	// Textures lists the images the material samples, in binding order.
	//
	// Returns:
	//   - []*common.ImportedTexture: the textures, empty for untextured materials
	Textures() []*common.ImportedTexture

	// SetPipelineKey sets the render pipeline key.
	//
	// Parameters:
	//   - key: the pipeline key
	SetPipelineKey(key string)

	// SetBindGroupProvider assigns the provider holding this material's GPU resources.
	//
	// Parameters:
	//   - provider: the provider
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

func (m *material) Name() string {
	return m.name
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *material) Textures() []*common.ImportedTexture {
	return nil
}

func (m *material) SetPipelineKey(key string) {
	m.pipelineKey = key
}

func (m *material) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	m.bindGroupProvider = provider
}
