package shader

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// shader is the implementation of the Shader interface.
type shader struct {
	key                        string
	source                     string
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	vertexEntryPoint           string
	fragmentEntryPoint         string
	module                     *wgpu.ShaderModuleDescriptor

	pp PreProcessor
}

// Shader is a pre-processed WGSL program holding one @vertex and one @fragment entry point,
// along with the bind group layouts and variable names parsed from its declarations.
type Shader interface {
	// Key retrieves the unique identifier for this shader.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the pre-processed WGSL source.
	//
	// Returns:
	//   - string: the WGSL source code
	Source() string

	// BindGroupLayoutDescriptor retrieves the layout descriptor for one group.
	//
	// Parameters:
	//   - group: the bind group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, or an empty one if the group is unused
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves all parsed layout descriptors keyed by group index.
	// Every entry is visible to both the vertex and fragment stages.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the variable name at a group and binding.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name, or "" if not declared
	BindGroupVarName(group, binding int) string

	// BindGroupFromVarName retrieves the binding index of a variable within a group.
	//
	// Parameters:
	//   - group: the bind group index
	//   - varName: the WGSL variable name
	//
	// Returns:
	//   - int: the binding index, or -1 if not found
	//   - bool: true if the variable was found
	BindGroupFromVarName(group int, varName string) (int, bool)

	// BindGroupVarNames retrieves all variable names keyed by group and binding index.
	//
	// Returns:
	//   - map[int]map[int]string: variable names
	BindGroupVarNames() map[int]map[int]string

	// VertexEntryPoint returns the name of the @vertex function.
	//
	// Returns:
	//   - string: the entry point name
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the @fragment function.
	//
	// Returns:
	//   - string: the entry point name
	FragmentEntryPoint() string

	// Module returns the shader module descriptor built from the processed source.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the module descriptor
	Module() *wgpu.ShaderModuleDescriptor

	// Declarations returns the group annotations found in the source.
	//
	// Returns:
	//   - []Annotation: declarations in source order
	Declarations() []Annotation
}

var _ Shader = &shader{}

// NewShader pre-processes and parses a WGSL program. The sources are embedded at build
// time, so a malformed annotation or a missing entry point is a programming error and panics.
//
// Parameters:
//   - key: a unique identifier for the shader, also used as the module label
//   - source: the raw WGSL source with @planet: annotations
//
// Returns:
//   - Shader: the parsed shader
func NewShader(key string, source string) Shader {
	s, err := ParseShader(key, source)
	if err != nil {
		panic(err.Error())
	}
	return s
}

// ParseShader is the non-panicking form of NewShader.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - source: the raw WGSL source with @planet: annotations
//
// Returns:
//   - Shader: the parsed shader
//   - error: a pre-processing error or a missing entry point
func ParseShader(key string, source string) (Shader, error) {
	if source == "" {
		return nil, fmt.Errorf("shader: %s has no source", key)
	}
	s := &shader{
		key: key,
		pp:  NewPreProcessor(),
	}
	processed, err := s.pp.Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader: failed to pre-process %q: %w", key, err)
	}
	s.source = processed
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	s.vertexEntryPoint = parseEntryPoint(s.source, vertexEntryRegex)
	s.fragmentEntryPoint = parseEntryPoint(s.source, fragmentEntryRegex)
	if s.vertexEntryPoint == "" || s.fragmentEntryPoint == "" {
		return nil, fmt.Errorf("shader: %s needs both a @vertex and a @fragment entry point", key)
	}
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(s.source, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment)
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntryPoint
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntryPoint
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	if s.bindingVarNames[group] == nil {
		return ""
	}
	return s.bindingVarNames[group][binding]
}

func (s *shader) BindGroupFromVarName(group int, varName string) (int, bool) {
	for binding, name := range s.bindingVarNames[group] {
		if name == varName {
			return binding, true
		}
	}
	return -1, false
}

func (s *shader) BindGroupVarNames() map[int]map[int]string {
	return s.bindingVarNames
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) Declarations() []Annotation {
	return s.pp.Declarations()
}
