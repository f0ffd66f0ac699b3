// pre_processor.go implements the WGSL shader pre-processor. It scans shader source for
// @planet: annotations, replaces them with injected struct sources or generated
// declarations, and collects a declarations list the scene uses to wire uniforms to
// bind group entries.
//
// The struct registry maps AnnotationArg keys to embedded WGSL sources and their resolved
// type names. Include annotations inject the source; group annotations use the type name.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-planet/engine/camera"
	"github.com/Carmen-Shannon/oxy-planet/engine/light"
	"github.com/Carmen-Shannon/oxy-planet/engine/model"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-planet/engine/starfield"
)

// registryEntry pairs an embedded WGSL source with the type name emitted in declarations.
type registryEntry struct {
	Source string
	Type   string
}

type preProcessor struct {
	structRegistry       map[AnnotationArg]registryEntry
	addressSpaceRegistry map[AnnotationArg]string
	declarations         []Annotation
}

// PreProcessor processes raw WGSL shader source containing @planet: annotations.
type PreProcessor interface {
	// Process replaces every annotation in source with its WGSL output. Include
	// annotations inject the registered source once per shader; a repeated include of
	// the same key is dropped. Group annotations become @group/@binding declarations.
	//
	// Parameters:
	//   - source: the raw WGSL shader source
	//
	// Returns:
	//   - string: the processed WGSL source
	//   - error: an error if any annotation is malformed
	Process(source string) (string, error)

	// Declarations returns the group annotations collected by the most recent Process
	// call, in source order.
	//
	// Returns:
	//   - []Annotation: the collected declarations
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with every scene GPU struct registered.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgCamera:           {Source: camera.GPUCameraUniformSource, Type: "CameraUniform"},
			annotationArgVertex:           {Source: model.GPUVertexSource, Type: "VertexInput"},
			AnnotationArgModelParams:      {Source: model.GPUModelParamsSource, Type: "ModelParams"},
			AnnotationArgAtmosphereParams: {Source: material.GPUAtmosphereParamsSource, Type: "AtmosphereParams"},
			AnnotationArgStarParams:       {Source: starfield.GPUStarParamsSource, Type: "StarParams"},
			AnnotationArgSceneLights:      {Source: light.GPUSceneLightsSource, Type: "SceneLights"},
			annotationArgColorSpace:       {Source: ColorSpaceSource},
		},
		addressSpaceRegistry: map[AnnotationArg]string{
			annotationArgAddressUniform: "var<uniform>",
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]
	included := make(map[AnnotationArg]bool)

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			if included[a.Args[0]] {
				continue
			}
			included[a.Args[0]] = true
			out = append(out, p.structRegistry[a.Args[0]].Source)
		case AnnotationTypeBindingGroup:
			addrSpace := p.addressSpaceRegistry[a.Args[0]]
			entry := p.structRegistry[a.Args[2]]
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;", *a.Group, *a.Binding, addrSpace, a.Args[1], entry.Type))
			p.declarations = append(p.declarations, *a)
		default:
			return "", fmt.Errorf("line %d: unknown annotation type %q", i+1, a.Type)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
