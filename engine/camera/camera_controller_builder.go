package camera

// OrbitControllerOption is a functional option for configuring an OrbitController.
type OrbitControllerOption func(*orbitController)

// WithPosition places the camera at a world position. The spherical coordinates are
// derived from it relative to the target once every option has been applied.
//
// Parameters:
//   - position: world-space camera position
//
// Returns:
//   - OrbitControllerOption: functional option to set the start position
func WithPosition(position [3]float32) OrbitControllerOption {
	return func(cc *orbitController) {
		p := position
		cc.startPosition = &p
	}
}

// WithTarget sets the look-at/pivot point.
//
// Parameters:
//   - target: world-space target
//
// Returns:
//   - OrbitControllerOption: functional option to set the target position
func WithTarget(target [3]float32) OrbitControllerOption {
	return func(cc *orbitController) {
		cc.target = target
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance
//
// Returns:
//   - OrbitControllerOption: functional option to set radius bounds
func WithRadiusBounds(min, max float32) OrbitControllerOption {
	return func(cc *orbitController) {
		cc.minRadius = min
		cc.maxRadius = max
	}
}

// WithElevationBounds sets the minimum and maximum elevation angles.
//
// Parameters:
//   - min: minimum vertical angle in radians
//   - max: maximum vertical angle in radians
//
// Returns:
//   - OrbitControllerOption: functional option to set elevation bounds
func WithElevationBounds(min, max float32) OrbitControllerOption {
	return func(cc *orbitController) {
		cc.minElevation = min
		cc.maxElevation = max
	}
}

// WithOrbitSpeed sets the keyboard orbit speed.
//
// Parameters:
//   - speed: radians per orbit call
//
// Returns:
//   - OrbitControllerOption: functional option to set orbit speed
func WithOrbitSpeed(speed float32) OrbitControllerOption {
	return func(cc *orbitController) {
		cc.orbitSpeed = speed
	}
}

// WithMouseSensitivity sets the drag rotation sensitivity.
//
// Parameters:
//   - sensitivity: radians per pixel of drag
//
// Returns:
//   - OrbitControllerOption: functional option to set mouse sensitivity
func WithMouseSensitivity(sensitivity float32) OrbitControllerOption {
	return func(cc *orbitController) {
		cc.mouseSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the zoom speed multiplier.
//
// Parameters:
//   - speed: radius change per unit of zoom input
//
// Returns:
//   - OrbitControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) OrbitControllerOption {
	return func(cc *orbitController) {
		cc.zoomSpeed = speed
	}
}

// WithPanSpeed sets the pan speed multiplier.
//
// Parameters:
//   - speed: view-plane offset per pixel of drag per unit of radius
//
// Returns:
//   - OrbitControllerOption: functional option to set pan speed
func WithPanSpeed(speed float32) OrbitControllerOption {
	return func(cc *orbitController) {
		cc.panSpeed = speed
	}
}

// WithDamping smooths input: each frame's Step applies factor of the pending motion and
// keeps the rest. Values outside (0, 1) disable damping.
//
// Parameters:
//   - factor: per-frame damping factor, DefaultDamping for an orbit-controls feel
//
// Returns:
//   - OrbitControllerOption: functional option to set damping
func WithDamping(factor float32) OrbitControllerOption {
	return func(cc *orbitController) {
		if factor <= 0 || factor >= 1 {
			factor = 0
		}
		cc.damping = factor
	}
}
