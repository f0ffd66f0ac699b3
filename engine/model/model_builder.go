package model

import (
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/material"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMaterial is an option builder that sets the material the Model is drawn with.
//
// Parameters:
//   - mat: the material
//
// Returns:
//   - ModelBuilderOption: a function that applies the material option to a model
func WithMaterial(mat material.Material) ModelBuilderOption {
	return func(m *model) {
		m.material = mat
	}
}

// WithModelMatrix is an option builder that sets the initial model-to-world transform.
//
// Parameters:
//   - matrix: the column-major matrix
//
// Returns:
//   - ModelBuilderOption: a function that applies the transform option to a model
func WithModelMatrix(matrix [16]float32) ModelBuilderOption {
	return func(m *model) {
		m.matrix = matrix
	}
}
