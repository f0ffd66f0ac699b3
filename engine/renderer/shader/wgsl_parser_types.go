package shader

import "github.com/cogentcore/webgpu/wgpu"

// sampledTextureInfo holds the view dimension and multisampled flag for a sampled texture type
type sampledTextureInfo struct {
	viewDimension wgpu.TextureViewDimension
	multisampled  bool
}

// wgslTypeLayout holds the byte size and alignment of a WGSL type, used for MinBindingSize.
type wgslTypeLayout struct {
	size  uint64
	align uint64
}

// parsedField is a single field extracted from a WGSL struct
type parsedField struct {
	name      string
	typeName  string
	isBuiltin bool
}

// parsedStruct is a WGSL struct block extracted during parsing
type parsedStruct struct {
	name   string
	fields []parsedField
}
