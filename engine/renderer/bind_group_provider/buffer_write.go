package bind_group_provider

// BufferWrite describes a single GPU buffer write targeting a provider. A negative
// VertexSlot addresses the uniform buffer at Binding; otherwise the vertex buffer at
// VertexSlot is written and Binding is ignored.
type BufferWrite struct {
	Provider   BindGroupProvider
	Binding    int
	VertexSlot int
	Offset     uint64
	Data       []byte
}

// UniformWrite builds a BufferWrite for the uniform buffer at a binding.
//
// Parameters:
//   - p: the target provider
//   - binding: the @binding index
//   - data: the bytes to upload
//
// Returns:
//   - BufferWrite: the write description
func UniformWrite(p BindGroupProvider, binding int, data []byte) BufferWrite {
	return BufferWrite{Provider: p, Binding: binding, VertexSlot: -1, Data: data}
}

// VertexWrite builds a BufferWrite for the vertex buffer at a slot.
//
// Parameters:
//   - p: the target provider
//   - slot: the vertex buffer slot
//   - data: the bytes to upload
//
// Returns:
//   - BufferWrite: the write description
func VertexWrite(p BindGroupProvider, slot int, data []byte) BufferWrite {
	return BufferWrite{Provider: p, VertexSlot: slot, Data: data}
}
