package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-planet/common"
)

// Default orbit tuning. Radius bounds keep the eye outside the atmosphere shell and
// inside the star shell.
const (
	DefaultMinRadius        float32 = 2.5
	DefaultMaxRadius        float32 = 40.0
	DefaultOrbitSpeed       float32 = 0.03
	DefaultMouseSensitivity float32 = 0.005
	DefaultZoomSpeed        float32 = 0.25
	DefaultPanSpeed         float32 = 0.001

	// DefaultDamping is the per-frame share of pending motion applied when damping is on.
	DefaultDamping float32 = 0.05
)

// dampingEpsilon is the pending motion below which a damped controller settles.
const dampingEpsilon = 1e-6

// OrbitController owns the camera's positional state as spherical coordinates
// (radius, azimuth, elevation) around a target point. The Camera reads Position and
// Target from it when recomputing its matrices.
type OrbitController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - [3]float32: world-space camera position
	Position() [3]float32

	// Target returns the look-at point.
	//
	// Returns:
	//   - [3]float32: world-space target position
	Target() [3]float32

	// SetTarget moves the pivot point, keeping the spherical offset.
	//
	// Parameters:
	//   - target: world-space coordinates
	SetTarget(target [3]float32)

	// Rotate orbits the camera by a pointer drag. Positive dx moves the camera left
	// around the target, positive dy moves it up; elevation is clamped to its bounds.
	//
	// Parameters:
	//   - dx: horizontal drag in pixels
	//   - dy: vertical drag in pixels
	Rotate(dx, dy float32)

	// Pan translates both camera and target in the view plane by a pointer drag.
	// The offset scales with the orbit radius so the drag speed feels constant on screen.
	//
	// Parameters:
	//   - dx: horizontal drag in pixels
	//   - dy: vertical drag in pixels
	Pan(dx, dy float32)

	// Zoom changes the orbit radius. Positive delta moves closer; the radius is clamped.
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)

	// OrbitLeft rotates the camera left around the target by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the camera right around the target by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the camera upward by one orbit speed step, clamped to max elevation.
	OrbitUp()

	// OrbitDown tilts the camera downward by one orbit speed step, clamped to min elevation.
	OrbitDown()

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float32: current distance from target
	Radius() float32

	// Azimuth returns the current horizontal angle around the Y axis.
	//
	// Returns:
	//   - float32: azimuth in radians, 0 on the +Z axis
	Azimuth() float32

	// Elevation returns the current vertical angle from the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// RadiusBounds returns the allowed orbit radius range.
	//
	// Returns:
	//   - float32: minimum radius
	//   - float32: maximum radius
	RadiusBounds() (float32, float32)

	// ElevationBounds returns the allowed elevation range.
	//
	// Returns:
	//   - float32: minimum elevation in radians
	//   - float32: maximum elevation in radians
	ElevationBounds() (float32, float32)

	// Damping returns the per-frame damping factor, 0 when input applies immediately.
	//
	// Returns:
	//   - float32: the damping factor in [0, 1)
	Damping() float32

	// Step advances damped motion by one frame: each pending delta contributes Damping of
	// itself and decays by 1 - Damping. Without damping it does nothing.
	Step()
}

// orbitController is the implementation of OrbitController.
type orbitController struct {
	mu *sync.Mutex

	position [3]float32
	target   [3]float32

	radius    float32
	azimuth   float32
	elevation float32

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed       float32
	mouseSensitivity float32
	zoomSpeed        float32
	panSpeed         float32

	damping          float32
	pendingAzimuth   float32
	pendingElevation float32
	pendingRadius    float32
	pendingPan       [3]float32

	startPosition *[3]float32
}

var _ OrbitController = &orbitController{}

// NewOrbitController creates an orbit controller. Without WithPosition the camera starts
// 5 units out on +Z looking at the target.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(options ...OrbitControllerOption) OrbitController {
	cc := &orbitController{
		mu:               &sync.Mutex{},
		radius:           5,
		minRadius:        DefaultMinRadius,
		maxRadius:        DefaultMaxRadius,
		minElevation:     -math.Pi/2 + 0.01,
		maxElevation:     math.Pi/2 - 0.01,
		orbitSpeed:       DefaultOrbitSpeed,
		mouseSensitivity: DefaultMouseSensitivity,
		zoomSpeed:        DefaultZoomSpeed,
		panSpeed:         DefaultPanSpeed,
	}
	for _, option := range options {
		option(cc)
	}
	if cc.startPosition != nil {
		cc.setFromPosition(*cc.startPosition)
		cc.startPosition = nil
	}
	cc.radius = common.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
	cc.elevation = common.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
	return cc
}

// setFromPosition derives spherical coordinates from a world position relative to the target.
func (cc *orbitController) setFromPosition(p [3]float32) {
	offset := common.Sub3(p, cc.target)
	r := common.Length3(offset)
	if r == 0 {
		return
	}
	cc.radius = r
	cc.azimuth = float32(math.Atan2(float64(offset[0]), float64(offset[2])))
	cc.elevation = float32(math.Asin(float64(common.Clamp(offset[1]/r, -1, 1))))
}

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *orbitController) updatePosition() {
	sinElev, cosElev := math.Sincos(float64(cc.elevation))
	sinAzim, cosAzim := math.Sincos(float64(cc.azimuth))

	cc.position[0] = cc.target[0] + cc.radius*float32(cosElev*sinAzim)
	cc.position[1] = cc.target[1] + cc.radius*float32(sinElev)
	cc.position[2] = cc.target[2] + cc.radius*float32(cosElev*cosAzim)
}

// viewAxes returns the right and up axes consistent with the LookAt matrix.
// Caller must hold the mutex.
func (cc *orbitController) viewAxes() (right, up [3]float32) {
	back := common.Normalize3(common.Sub3(cc.position, cc.target))
	right = common.Normalize3(common.Cross3([3]float32{0, 1, 0}, back))
	up = common.Cross3(back, right)
	return right, up
}

func (cc *orbitController) Position() [3]float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *orbitController) Target() [3]float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *orbitController) SetTarget(target [3]float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = target
	cc.updatePosition()
}

// orbit applies or queues an angular change. Caller must hold the mutex.
func (cc *orbitController) orbit(dAzimuth, dElevation float32) {
	if cc.damping > 0 {
		cc.pendingAzimuth += dAzimuth
		cc.pendingElevation += dElevation
		return
	}
	cc.azimuth += dAzimuth
	cc.elevation = common.Clamp(cc.elevation+dElevation, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

// dolly applies or queues a radius change. Caller must hold the mutex.
func (cc *orbitController) dolly(dRadius float32) {
	if cc.damping > 0 {
		cc.pendingRadius += dRadius
		return
	}
	cc.radius = common.Clamp(cc.radius+dRadius, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

// pan applies or queues a target translation. Caller must hold the mutex.
func (cc *orbitController) pan(offset [3]float32) {
	if cc.damping > 0 {
		cc.pendingPan = common.Add3(cc.pendingPan, offset)
		return
	}
	cc.target = common.Add3(cc.target, offset)
	cc.updatePosition()
}

func (cc *orbitController) Rotate(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.orbit(-dx*cc.mouseSensitivity, dy*cc.mouseSensitivity)
}

func (cc *orbitController) Pan(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	right, up := cc.viewAxes()
	scale := cc.radius * cc.panSpeed
	var offset [3]float32
	for i := range 3 {
		offset[i] = -right[i]*dx*scale + up[i]*dy*scale
	}
	cc.pan(offset)
}

func (cc *orbitController) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.dolly(-delta * cc.zoomSpeed)
}

func (cc *orbitController) OrbitLeft() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.orbit(-cc.orbitSpeed, 0)
}

func (cc *orbitController) OrbitRight() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.orbit(cc.orbitSpeed, 0)
}

func (cc *orbitController) OrbitUp() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.orbit(0, cc.orbitSpeed)
}

func (cc *orbitController) OrbitDown() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.orbit(0, -cc.orbitSpeed)
}

func (cc *orbitController) Step() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.damping <= 0 {
		return
	}
	f := cc.damping
	cc.azimuth += cc.pendingAzimuth * f
	cc.elevation = common.Clamp(cc.elevation+cc.pendingElevation*f, cc.minElevation, cc.maxElevation)
	cc.radius = common.Clamp(cc.radius+cc.pendingRadius*f, cc.minRadius, cc.maxRadius)
	cc.target = common.Add3(cc.target, common.Scale3(cc.pendingPan, f))

	decay := func(v float32) float32 {
		v *= 1 - f
		if v > -dampingEpsilon && v < dampingEpsilon {
			return 0
		}
		return v
	}
	cc.pendingAzimuth = decay(cc.pendingAzimuth)
	cc.pendingElevation = decay(cc.pendingElevation)
	cc.pendingRadius = decay(cc.pendingRadius)
	for i := range cc.pendingPan {
		cc.pendingPan[i] = decay(cc.pendingPan[i])
	}
	cc.updatePosition()
}

func (cc *orbitController) Damping() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.damping
}

func (cc *orbitController) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *orbitController) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *orbitController) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *orbitController) RadiusBounds() (float32, float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minRadius, cc.maxRadius
}

func (cc *orbitController) ElevationBounds() (float32, float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minElevation, cc.maxElevation
}
