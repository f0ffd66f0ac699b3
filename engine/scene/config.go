package scene

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/Carmen-Shannon/oxy-planet/engine/nebula"
	"github.com/Carmen-Shannon/oxy-planet/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-planet/engine/starfield"
)

// ErrToneMappingUnsupported is returned by Validate when tone mapping is requested.
// The renderer writes shader output to the surface verbatim.
var ErrToneMappingUnsupported = errors.New("scene: tone mapping is not supported")

// Config is the complete, explicit description of a planet scene. There is no global
// state; two scenes built from equal configs with a fixed Seed are identical.
type Config struct {
	// SunPosition places the sun light. The surface shader's sun direction is derived from it once.
	SunPosition [3]float32

	// AxialTilt rotates the planet group about Z, in radians.
	AxialTilt float32
	// PlanetRadius and PlanetDetail shape the surface sphere.
	PlanetRadius float32
	PlanetDetail int
	// PlanetScale uniformly scales the planet group (surface and atmosphere).
	PlanetScale float32
	// AtmosphereRadius and AtmosphereDetail shape the fresnel shell.
	AtmosphereRadius float32
	AtmosphereDetail int
	// PlanetSpin is added to the planet's Y rotation every frame, in radians.
	PlanetSpin float32

	// StarCount is the number of generated stars; zero or less disables the field.
	StarCount int
	// StarTexturePath is the star sprite image.
	StarTexturePath string
	// Nebula configures the backdrop sprites.
	Nebula nebula.Config

	// DayTexturePath, NightTexturePath and CloudsTexturePath locate the surface maps.
	DayTexturePath    string
	NightTexturePath  string
	CloudsTexturePath string

	// Hemisphere light: sky and ground colors as 0xRRGGBB with an intensity.
	HemisphereSky       uint32
	HemisphereGround    uint32
	HemisphereIntensity float32
	// Sun light color as 0xRRGGBB and intensity.
	SunColor     uint32
	SunIntensity float32

	// CameraPosition is the initial eye position; the orbit target is the origin.
	CameraPosition [3]float32

	// ToneMapping must be false.
	ToneMapping bool

	// Seed fixes every random draw when non-zero. Zero seeds from the runtime source.
	Seed uint64
}

// DefaultConfig returns the stylized earth scene.
//
// Returns:
//   - Config: the default scene configuration
func DefaultConfig() Config {
	return Config{
		SunPosition:         [3]float32{-2, 0.5, 1.5},
		AxialTilt:           common.Radians(23.4),
		PlanetRadius:        2,
		PlanetDetail:        64,
		PlanetScale:         1,
		AtmosphereRadius:    2.03,
		AtmosphereDetail:    32,
		PlanetSpin:          0.001,
		StarCount:           3000,
		StarTexturePath:     starfield.DefaultTexturePath,
		Nebula:              nebula.DefaultConfig(),
		DayTexturePath:      material.DefaultDayTexturePath,
		NightTexturePath:    material.DefaultNightTexturePath,
		CloudsTexturePath:   material.DefaultCloudsTexturePath,
		HemisphereSky:       0xffffff,
		HemisphereGround:    0x000000,
		HemisphereIntensity: 3.0,
		SunColor:            0xffffff,
		SunIntensity:        1.0,
		CameraPosition:      [3]float32{0, 0.1, 5},
	}
}

// Validate reports the first setting that cannot produce a scene. Degenerate star and
// nebula counts are valid and yield empty fields.
//
// Returns:
//   - error: nil when the configuration is usable
func (c Config) Validate() error {
	switch {
	case c.SunPosition == [3]float32{}:
		return errors.New("scene: sun position must not be the origin")
	case !(c.PlanetRadius > 0):
		return fmt.Errorf("scene: planet radius must be positive, got %v", c.PlanetRadius)
	case !(c.AtmosphereRadius > 0):
		return fmt.Errorf("scene: atmosphere radius must be positive, got %v", c.AtmosphereRadius)
	case c.PlanetDetail < 0 || c.AtmosphereDetail < 0:
		return fmt.Errorf("scene: mesh detail must not be negative, got %d and %d", c.PlanetDetail, c.AtmosphereDetail)
	case !(c.PlanetScale > 0):
		return fmt.Errorf("scene: planet scale must be positive, got %v", c.PlanetScale)
	case c.CameraPosition == [3]float32{}:
		return errors.New("scene: camera position must not be the origin")
	case c.ToneMapping:
		return ErrToneMappingUnsupported
	}
	return nil
}
