// annotations.go defines the annotation types, argument constants, and parser for the
// WGSL shader pre-processor. Annotations are single-line WGSL comments prefixed with
// @planet: that drive struct injection and bind group declaration. The parsed results
// are stored as Annotation values and consumed by the PreProcessor and the scene to wire
// GPU resources by name.
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix is the marker that identifies an annotation within a WGSL comment line.
const annotationPrefix = "@planet:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// annotationTypeInclude injects the WGSL source of a registered struct or helper
	// at the annotation site. It produces no declaration.
	//
	// Syntax: //@planet:include <struct_type>
	//
	// Example: //@planet:include camera
	annotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a WGSL @group/@binding variable declaration
	// and records it in the PreProcessor's declarations list.
	//
	// Syntax: //@planet:group <group> <binding> <address_space> <var_name> <type>
	//
	// Example: //@planet:group 0 0 uniform camera camera
	AnnotationTypeBindingGroup AnnotationType = "group"
)

// Annotation represents a single parsed annotation from a WGSL shader source line.
type Annotation struct {
	// Type identifies which annotation was parsed.
	Type AnnotationType

	// Args holds the annotation's arguments:
	//   - include: [0] = struct type key
	//   - group:   [0] = address space, [1] = var name, [2] = struct type key
	Args []AnnotationArg

	// Line is the 1-based source line, used for error reporting.
	Line int

	// Group is the @group index for group annotations. Nil for include annotations.
	Group *int

	// Binding is the @binding index for group annotations. Nil for include annotations.
	Binding *int
}

// VarName returns the WGSL variable name of a group annotation, or "" for other types.
//
// Returns:
//   - string: the declared variable name
func (a Annotation) VarName() string {
	if a.Type != AnnotationTypeBindingGroup || len(a.Args) < 2 {
		return ""
	}
	return string(a.Args[1])
}

// StructType returns the struct type key of the annotation.
//
// Returns:
//   - AnnotationArg: the registered struct key, or "" when absent
func (a Annotation) StructType() AnnotationArg {
	switch a.Type {
	case annotationTypeInclude:
		return a.Args[0]
	case AnnotationTypeBindingGroup:
		return a.Args[2]
	}
	return ""
}

// AnnotationArg is a typed string used as an annotation argument.
type AnnotationArg string

const (
	// AnnotationArgCamera identifies the CameraUniform struct.
	// Source: engine/camera/assets/camera_uniform.wgsl
	AnnotationArgCamera AnnotationArg = "camera"

	// annotationArgVertex identifies the VertexInput struct of sphere meshes.
	// Source: engine/model/assets/vertex.wgsl
	annotationArgVertex AnnotationArg = "vertex"

	// AnnotationArgModelParams identifies the per-model transform uniform.
	// Source: engine/model/assets/model_params.wgsl
	AnnotationArgModelParams AnnotationArg = "model_params"

	// AnnotationArgAtmosphereParams identifies the fresnel atmosphere material uniform.
	// Source: engine/renderer/material/assets/atmosphere_params.wgsl
	AnnotationArgAtmosphereParams AnnotationArg = "atmosphere_params"

	// AnnotationArgStarParams identifies the star field twinkle uniform.
	// Source: engine/starfield/assets/star_params.wgsl
	AnnotationArgStarParams AnnotationArg = "star_params"

	// AnnotationArgSceneLights identifies the packed hemisphere and sun light uniform the
	// planet surface shades with.
	// Source: engine/light/assets/scene_lights.wgsl
	AnnotationArgSceneLights AnnotationArg = "scene_lights"

	// annotationArgColorSpace injects the linear_to_srgb helper. It has no WGSL type and
	// is only valid with include.
	// Source: engine/renderer/shader/assets/color_space.wgsl
	annotationArgColorSpace AnnotationArg = "color_space"
)

// annotationArgAddressUniform is the only address space bound by the scene's shaders.
const annotationArgAddressUniform AnnotationArg = "uniform"

var validStructTypes = []AnnotationArg{
	AnnotationArgCamera,
	annotationArgVertex,
	AnnotationArgModelParams,
	AnnotationArgAtmosphereParams,
	AnnotationArgStarParams,
	AnnotationArgSceneLights,
	annotationArgColorSpace,
}

var validAddressSpaces = []AnnotationArg{
	annotationArgAddressUniform,
}

// parseAnnotation attempts to parse a single line of WGSL source as an annotation.
// Returns nil with no error for lines that do not contain the annotation prefix.
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "//") {
		return nil, nil
	}
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty annotation", lineNum)
	}

	switch args[0] {
	case string(annotationTypeInclude):
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: include annotation requires exactly one argument", lineNum)
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in include annotation", lineNum, args[1])
		}
		return &Annotation{
			Type: annotationTypeInclude,
			Args: []AnnotationArg{AnnotationArg(args[1])},
			Line: lineNum,
		}, nil
	case string(AnnotationTypeBindingGroup):
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: group annotation requires five arguments (group, binding, address space, var name, struct type)", lineNum)
		}
		groupInt, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid group number %q: %w", lineNum, args[1], err)
		}
		bindingInt, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid binding number %q: %w", lineNum, args[2], err)
		}
		if !slices.Contains(validAddressSpaces, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown address space %q in group annotation", lineNum, args[3])
		}
		typeArg := AnnotationArg(args[5])
		if !slices.Contains(validStructTypes, typeArg) || typeArg == annotationArgColorSpace {
			return nil, fmt.Errorf("line %d: unknown struct type %q in group annotation", lineNum, args[5])
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), typeArg},
			Line:    lineNum,
			Group:   &groupInt,
			Binding: &bindingInt,
		}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown annotation type %q", lineNum, args[0])
	}
}
