package scene

import (
	"github.com/Carmen-Shannon/oxy-planet/engine/starfield"
	"github.com/go-gl/mathgl/mgl32"
)

// PlanetTransform is the planet group's transform. The tilt is applied outside the spin,
// so the spin axis stays tilted while the planet turns. The atmosphere shares it.
type PlanetTransform struct {
	// Tilt is the rotation about Z, in radians.
	Tilt float32
	// Rotation is the mesh's Euler rotation (XYZ order), in radians.
	Rotation [3]float32
	// Scale uniformly scales the group. Zero is treated as 1.
	Scale float32
}

// ModelMatrix composes Rz(tilt) * S(scale) * Rx * Ry * Rz(rotation).
//
// Returns:
//   - [16]float32: the column-major model matrix
func (p PlanetTransform) ModelMatrix() [16]float32 {
	scale := p.Scale
	if scale == 0 {
		scale = 1
	}
	group := mgl32.HomogRotate3DZ(p.Tilt).Mul4(mgl32.Scale3D(scale, scale, scale))
	mesh := mgl32.HomogRotate3DX(p.Rotation[0]).
		Mul4(mgl32.HomogRotate3DY(p.Rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(p.Rotation[2]))
	return group.Mul4(mesh)
}

// FrameUpdater advances the animated state of a scene by one frame. It holds no scene state
// of its own and must not be run concurrently with itself.
type FrameUpdater struct {
	// PlanetSpin is added to the planet's Y rotation on every Apply.
	PlanetSpin float32
}

// Apply spins the planet by one step and recolors and drifts the star field for time elapsed.
// The rotation is unbounded; the star colors depend only on elapsed.
//
// Parameters:
//   - elapsed: seconds since the scene started
//   - planet: the planet transform to spin
//   - stars: the star field to twinkle, may be nil
func (u FrameUpdater) Apply(elapsed float64, planet *PlanetTransform, stars starfield.StarField) {
	if planet != nil {
		planet.Rotation[1] += u.PlanetSpin
	}
	if stars != nil {
		stars.Update(elapsed)
	}
}
