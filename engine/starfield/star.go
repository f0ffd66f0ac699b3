package starfield

import (
	"math"
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	// MinRadius is the inner radius of the star shell.
	MinRadius = 25.0
	// MaxRadius is the exclusive outer radius of the star shell.
	MaxRadius = 50.0
	// FlickerThreshold is the roll a star must exceed to twinkle.
	FlickerThreshold = 0.8
	// Saturation is the saturation used for every star color.
	Saturation = 0.2
)

// StarPoint is the immutable record for a single star. Brightness is a pure function of
// the fields below and the elapsed time, so a point can be re-evaluated any number of times.
type StarPoint struct {
	// Position is the star's base position on its spherical shell.
	Position [3]float32
	// Radius is the shell radius the star was placed on, in [MinRadius, MaxRadius).
	Radius float32
	// Rate is the angular rate of the flicker sine.
	Rate float32
	// Roll is the fixed flicker roll; the star twinkles when Roll > FlickerThreshold.
	Roll float32
	// Lightness is the base HSL lightness.
	Lightness float32
	// Hue is the star's own hue, used for its initial color.
	Hue float32
}

// Brightness evaluates the star's flicker rule at elapsed time t (seconds).
// The result is deliberately unclamped and may leave [0, 1]; color conversion clamps it.
//
// Parameters:
//   - t: elapsed time since scene start in seconds
//
// Returns:
//   - float32: the lightness to use for the star at time t
func (p StarPoint) Brightness(t float64) float32 {
	if p.Twinkles() {
		return p.Lightness + float32(math.Sin(t*float64(p.Rate)))
	}
	return p.Lightness
}

// Twinkles reports whether the star's brightness varies over time.
func (p StarPoint) Twinkles() bool {
	return p.Roll > FlickerThreshold
}

// newStarPoint samples a point uniformly on a sphere shell with a uniformly drawn radius,
// using the inverse-trig method, and draws its flicker parameters.
func newStarPoint(r *rand.Rand) StarPoint {
	radius := MinRadius + (MaxRadius-MinRadius)*r.Float64()
	theta := 2 * math.Pi * r.Float64()
	phi := math.Acos(2*r.Float64() - 1)

	sinPhi, cosPhi := math.Sincos(phi)
	sinTheta, cosTheta := math.Sincos(theta)

	rad32 := float32(radius)
	if rad32 >= MaxRadius {
		rad32 = math.Nextafter32(MaxRadius, 0)
	}

	return StarPoint{
		Position: [3]float32{
			float32(radius * sinPhi * cosTheta),
			float32(radius * sinPhi * sinTheta),
			float32(radius * cosPhi),
		},
		Radius:    rad32,
		Rate:      r.Float32(),
		Roll:      r.Float32(),
		Lightness: r.Float32(),
		Hue:       r.Float32(),
	}
}

// HSLToRGB converts an HSL triple with hue in turns ([0, 1) wraps) into linear RGB.
// Saturation and lightness are clamped to [0, 1] before conversion so out-of-range
// inputs never produce invalid colors.
//
// Parameters:
//   - h: hue in turns
//   - s: saturation
//   - l: lightness
//
// Returns:
//   - [3]float32: the RGB color with each channel in [0, 1]
func HSLToRGB(h, s, l float32) [3]float32 {
	hue := math.Mod(float64(h), 1)
	if hue < 0 {
		hue++
	}
	c := colorful.Hsl(hue*360, float64(common.Clamp(s, 0, 1)), float64(common.Clamp(l, 0, 1))).Clamped()
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}
}
