package material

import (
	"math"

	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/lucasb-eyer/go-colorful"
)

// The CPU functions in this file evaluate the same math as the WGSL shading programs.
// They back the property tests and let tooling preview a shaded sample without a GPU.

const (
	// TerminatorLow is the sun orientation at which the surface is fully on the night side.
	TerminatorLow float32 = -0.25
	// TerminatorHigh is the sun orientation at which the surface is fully on the day side.
	TerminatorHigh float32 = 0.5
)

// DayMixFromOrientation maps dot(sunDirection, normal) to the day/night blend factor.
//
// Parameters:
//   - sunOrientation: the cosine between the sun direction and the surface normal
//
// Returns:
//   - float32: 0 on the night side, 1 on the day side, smooth across the terminator band
func DayMixFromOrientation(sunOrientation float32) float32 {
	return common.Smoothstep(TerminatorLow, TerminatorHigh, sunOrientation)
}

// DayMix computes the day/night blend factor for a world-space normal.
//
// Parameters:
//   - sunDirection: unit vector towards the sun
//   - normal: world-space surface normal, normalized internally
//
// Returns:
//   - float32: the blend factor in [0, 1]
func DayMix(sunDirection, normal [3]float32) float32 {
	return DayMixFromOrientation(common.Dot3(sunDirection, common.Normalize3(normal)))
}

// CloudMix computes how much white cloud cover is blended over the base color.
// Clouds only show on the lit side.
//
// Parameters:
//   - cloudChannel: the green channel of the cloud map sample
//   - dayMix: the day/night blend factor
//
// Returns:
//   - float32: the cloud blend factor in [0, 1]
func CloudMix(cloudChannel, dayMix float32) float32 {
	return common.Smoothstep(0, 1, cloudChannel) * dayMix
}

// SurfaceColor shades one surface sample exactly as the surface fragment program does.
//
// Parameters:
//   - sunDirection: unit vector towards the sun
//   - normal: world-space surface normal
//   - day: day map sample (RGB)
//   - night: night map sample (RGB)
//   - cloudChannel: green channel of the cloud map sample
//
// Returns:
//   - [3]float32: the opaque output color
func SurfaceColor(sunDirection, normal, day, night [3]float32, cloudChannel float32) [3]float32 {
	dayMix := DayMix(sunDirection, normal)
	base := common.Mix3(night, day, dayMix)
	return common.Mix3(base, [3]float32{1, 1, 1}, CloudMix(cloudChannel, dayMix))
}

// ViewDirection returns the normalized direction from the camera to a world position.
// The surface program computes it for future specular terms; the final color does not use it yet.
//
// Parameters:
//   - worldPos: the shaded point
//   - cameraPos: the camera position
//
// Returns:
//   - [3]float32: the unit view direction
func ViewDirection(worldPos, cameraPos [3]float32) [3]float32 {
	return common.Normalize3(common.Sub3(worldPos, cameraPos))
}

// FresnelFactor computes the unclamped atmosphere reflection factor
// bias + scale * pow(1 + dot(I, N), power), where I is the view direction.
//
// Parameters:
//   - worldPos: the shaded point
//   - cameraPos: the camera position
//   - worldNormal: world-space normal, normalized internally
//   - bias, scale, power: the fresnel terms
//
// Returns:
//   - float32: the reflection factor
func FresnelFactor(worldPos, cameraPos, worldNormal [3]float32, bias, scale, power float32) float32 {
	return FresnelFromCosine(common.Dot3(ViewDirection(worldPos, cameraPos), common.Normalize3(worldNormal)), bias, scale, power)
}

// FresnelFromCosine computes the reflection factor from dot(I, N) directly.
// The factor is smallest head-on (cosine -1) and grows towards grazing incidence (cosine 0).
//
// Parameters:
//   - cosine: dot(viewDirection, normal) in [-1, 1]
//   - bias, scale, power: the fresnel terms
//
// Returns:
//   - float32: the reflection factor
func FresnelFromCosine(cosine, bias, scale, power float32) float32 {
	base := max(1+cosine, 0)
	return bias + scale*float32(math.Pow(float64(base), float64(power)))
}

// AtmosphereColor resolves the atmosphere fragment color from a reflection factor.
//
// Parameters:
//   - facing: color seen head-on
//   - rim: color seen at grazing angles
//   - reflection: the unclamped reflection factor
//
// Returns:
//   - [3]float32: the RGB color
//   - float32: the alpha, equal to the clamped factor
func AtmosphereColor(facing, rim [3]float32, reflection float32) ([3]float32, float32) {
	f := common.Clamp(reflection, 0, 1)
	return common.Mix3(facing, rim, f), f
}

// ParseHexColor converts a 0xRRGGBB sRGB color into linear RGB, the space shading uniforms work in.
//
// Parameters:
//   - hex: the packed sRGB color
//
// Returns:
//   - [3]float32: the linear RGB color
func ParseHexColor(hex uint32) [3]float32 {
	c := colorful.Color{
		R: float64((hex>>16)&0xff) / 255,
		G: float64((hex>>8)&0xff) / 255,
		B: float64(hex&0xff) / 255,
	}
	r, g, b := c.LinearRgb()
	return [3]float32{float32(r), float32(g), float32(b)}
}
