package bind_group_provider

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithIndexCount sets the number of indices drawn from the provider's index buffer.
//
// Parameters:
//   - count: the index count
//
// Returns:
//   - BindGroupProviderOption: a function that sets the index count
func WithIndexCount(count int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.indexCount = count
	}
}

// WithVertexCount sets the per-instance vertex count for non-indexed draws.
//
// Parameters:
//   - count: the vertex count
//
// Returns:
//   - BindGroupProviderOption: a function that sets the vertex count
func WithVertexCount(count int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.vertexCount = count
	}
}

// WithInstanceCount sets the number of instances drawn.
//
// Parameters:
//   - count: the instance count
//
// Returns:
//   - BindGroupProviderOption: a function that sets the instance count
func WithInstanceCount(count int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.instanceCount = count
	}
}
