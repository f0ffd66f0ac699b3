package light

// LightBuilderOption is a functional option for configuring a Light via NewLight.
type LightBuilderOption func(*lightImpl)

// WithPosition sets the world-space position of the light.
//
// Parameters:
//   - position: the position as (x, y, z)
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithPosition(position [3]float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = position
	}
}

// WithColor sets the light color (the sky color for hemisphere lights).
//
// Parameters:
//   - color: linear RGB
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithColor(color [3]float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = color
	}
}

// WithGroundColor sets the ground color of a hemisphere light. Ignored for other types.
//
// Parameters:
//   - color: linear RGB
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithGroundColor(color [3]float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.groundColor = color
	}
}

// WithIntensity sets the intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithEnabled sets whether the light starts active.
//
// Parameters:
//   - enabled: true to enable
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}
