package model

import (
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// model is the implementation of the Model interface.
type model struct {
	name         string
	mesh         Mesh
	material     material.Material
	meshProvider bind_group_provider.BindGroupProvider
	matrix       mgl32.Mat4
	vertexData   []byte
	indexData    []byte
}

// Model defines the interface for a drawable mesh.
// A Model pairs CPU-side geometry with the material that shades it, the BindGroupProvider
// holding its GPU vertex and index buffers, and the model-to-world transform uploaded
// with its material uniforms.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Mesh retrieves the CPU-side geometry.
	//
	// Returns:
	//   - Mesh: the mesh
	Mesh() Mesh

	// Material retrieves the shading model used to draw this model.
	//
	// Returns:
	//   - material.Material: the material, or nil if none is assigned
	Material() material.Material

	// SetMaterial assigns the shading model used to draw this model.
	//
	// Parameters:
	//   - mat: the material
	SetMaterial(mat material.Material)

	// MeshProvider retrieves the BindGroupProvider holding GPU mesh resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider, nil before upload
	MeshProvider() bind_group_provider.BindGroupProvider

	// SetMeshProvider assigns the BindGroupProvider holding GPU mesh resources.
	//
	// Parameters:
	//   - provider: the mesh provider
	SetMeshProvider(provider bind_group_provider.BindGroupProvider)

	// ModelMatrix retrieves the model-to-world transform.
	//
	// Returns:
	//   - [16]float32: the column-major matrix
	ModelMatrix() [16]float32

	// SetModelMatrix replaces the model-to-world transform.
	//
	// Parameters:
	//   - m: the column-major matrix
	SetModelMatrix(m [16]float32)

	// Params builds the per-mesh transform uniform, including the normal matrix.
	//
	// Returns:
	//   - GPUModelParams: the uniform data
	Params() GPUModelParams

	// VertexData returns the serialized vertex buffer, computed once.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the serialized index buffer, computed once.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices in the mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// BoundingRadius returns the bounding sphere radius of the mesh.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a new Model around a mesh with an identity transform.
//
// Parameters:
//   - mesh: the geometry
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(mesh Mesh, options ...ModelBuilderOption) Model {
	m := &model{mesh: mesh, matrix: mgl32.Ident4()}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Mesh() Mesh {
	return m.mesh
}

func (m *model) Material() material.Material {
	return m.material
}

func (m *model) SetMaterial(mat material.Material) {
	m.material = mat
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) SetMeshProvider(provider bind_group_provider.BindGroupProvider) {
	m.meshProvider = provider
}

func (m *model) ModelMatrix() [16]float32 {
	return m.matrix
}

func (m *model) SetModelMatrix(matrix [16]float32) {
	m.matrix = matrix
}

func (m *model) Params() GPUModelParams {
	normal := m.matrix.Inv().Transpose()
	return GPUModelParams{Model: m.matrix, Normal: normal}
}

func (m *model) VertexData() []byte {
	if m.vertexData == nil {
		m.vertexData = m.mesh.VertexData()
	}
	return m.vertexData
}

func (m *model) IndexData() []byte {
	if m.indexData == nil {
		m.indexData = m.mesh.IndexData()
	}
	return m.indexData
}

func (m *model) IndexCount() int {
	return len(m.mesh.Indices)
}

func (m *model) BoundingRadius() float32 {
	return m.mesh.BoundingRadius()
}
