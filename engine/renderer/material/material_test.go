package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-planet/common"
	"github.com/Carmen-Shannon/oxy-planet/engine/light"
)

const epsilon = 1e-5

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func TestDayMixEndpoints(t *testing.T) {
	sun := [3]float32{0, 0, 1}
	if got := DayMix(sun, [3]float32{0, 0, -1}); got != 0 {
		t.Errorf("DayMix facing away = %v, want 0", got)
	}
	if got := DayMix(sun, [3]float32{0, 0, 1}); got != 1 {
		t.Errorf("DayMix facing sun = %v, want 1", got)
	}
	if got := DayMixFromOrientation(TerminatorLow); got != 0 {
		t.Errorf("DayMix at low edge = %v, want 0", got)
	}
	if got := DayMixFromOrientation(TerminatorHigh); got != 1 {
		t.Errorf("DayMix at high edge = %v, want 1", got)
	}
}

func TestDayMixMonotonic(t *testing.T) {
	prev := DayMixFromOrientation(-1)
	for i := 1; i <= 200; i++ {
		x := -1 + float32(i)/100
		got := DayMixFromOrientation(x)
		if got < prev {
			t.Fatalf("DayMix decreased at %v: %v < %v", x, got, prev)
		}
		if got < 0 || got > 1 {
			t.Fatalf("DayMix(%v) = %v out of [0, 1]", x, got)
		}
		prev = got
	}
}

func TestDayMixNormalizesNormal(t *testing.T) {
	sun := DefaultSunDirection()
	n := [3]float32{3, 1, 2}
	scaled := [3]float32{30, 10, 20}
	if !approx(DayMix(sun, n), DayMix(sun, scaled)) {
		t.Errorf("DayMix depends on normal length")
	}
}

func TestSurfaceColor(t *testing.T) {
	sun := [3]float32{1, 0, 0}
	day := [3]float32{0.2, 0.4, 0.6}
	night := [3]float32{0.05, 0.05, 0.1}

	tests := []struct {
		name   string
		normal [3]float32
		clouds float32
		want   [3]float32
	}{
		{"day side clear", [3]float32{1, 0, 0}, 0, day},
		{"night side clear", [3]float32{-1, 0, 0}, 0, night},
		{"night side clouds hidden", [3]float32{-1, 0, 0}, 1, night},
		{"day side full clouds", [3]float32{1, 0, 0}, 1, [3]float32{1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SurfaceColor(sun, tt.normal, day, night, tt.clouds)
			for i := range got {
				if !approx(got[i], tt.want[i]) {
					t.Fatalf("SurfaceColor = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestCloudMix(t *testing.T) {
	if got := CloudMix(0.5, 1); !approx(got, 0.5) {
		t.Errorf("CloudMix(0.5, 1) = %v, want 0.5", got)
	}
	if got := CloudMix(1, 0); got != 0 {
		t.Errorf("CloudMix on night side = %v, want 0", got)
	}
}

func TestViewDirection(t *testing.T) {
	got := ViewDirection([3]float32{0, 0, 0}, [3]float32{0, 0, 5})
	want := [3]float32{0, 0, -1}
	for i := range got {
		if !approx(got[i], want[i]) {
			t.Fatalf("ViewDirection = %v, want %v", got, want)
		}
	}
}

func TestFresnelMonotonicTowardsGrazing(t *testing.T) {
	prev := FresnelFromCosine(-1, DefaultFresnelBias, DefaultFresnelScale, DefaultFresnelPower)
	if !approx(prev, DefaultFresnelBias) {
		t.Fatalf("head-on factor = %v, want bias %v", prev, DefaultFresnelBias)
	}
	for i := 1; i <= 100; i++ {
		c := -1 + float32(i)/100
		got := FresnelFromCosine(c, DefaultFresnelBias, DefaultFresnelScale, DefaultFresnelPower)
		if got < prev {
			t.Fatalf("fresnel decreased at cosine %v: %v < %v", c, got, prev)
		}
		prev = got
	}
	if !approx(prev, DefaultFresnelBias+DefaultFresnelScale) {
		t.Errorf("grazing factor = %v, want %v", prev, DefaultFresnelBias+DefaultFresnelScale)
	}
}

func TestFresnelFactorGeometry(t *testing.T) {
	cam := [3]float32{0, 0, 10}
	headOn := FresnelFactor([3]float32{0, 0, 1}, cam, [3]float32{0, 0, 1}, 0.1, 1, 4)
	grazing := FresnelFactor([3]float32{1, 0, 0}, cam, [3]float32{1, 0, 0}, 0.1, 1, 4)
	if headOn >= grazing {
		t.Errorf("head-on factor %v should be below grazing factor %v", headOn, grazing)
	}
}

func TestAtmosphereColorClamped(t *testing.T) {
	rim := ParseHexColor(DefaultRimColor)
	facing := ParseHexColor(DefaultFacingColor)

	for _, r := range []float32{-2, 0, 0.3, 1, 17} {
		rgb, alpha := AtmosphereColor(facing, rim, r)
		if alpha < 0 || alpha > 1 {
			t.Fatalf("alpha %v out of [0, 1] for factor %v", alpha, r)
		}
		for i, c := range rgb {
			if c < 0 || c > 1 {
				t.Fatalf("channel %d = %v out of [0, 1] for factor %v", i, c, r)
			}
		}
	}

	rgb, alpha := AtmosphereColor(facing, rim, 5)
	if alpha != 1 || rgb != rim {
		t.Errorf("saturated factor = (%v, %v), want (%v, 1)", rgb, alpha, rim)
	}
}

func TestParseHexColor(t *testing.T) {
	if got := ParseHexColor(0x000000); got != [3]float32{0, 0, 0} {
		t.Errorf("black = %v", got)
	}
	white := ParseHexColor(0xffffff)
	for i, c := range white {
		if !approx(c, 1) {
			t.Errorf("white channel %d = %v, want 1", i, c)
		}
	}
	rim := ParseHexColor(0x0088ff)
	if rim[0] != 0 || !approx(rim[2], 1) {
		t.Errorf("rim = %v, want red 0 and blue 1", rim)
	}
	// 0x88 is sRGB 0.533; its linear value is well below that.
	if rim[1] <= 0.2 || rim[1] >= 0.3 {
		t.Errorf("rim green = %v, want linearized value near 0.246", rim[1])
	}
}

func TestSurfaceMaterialDefaults(t *testing.T) {
	m := NewSurfaceMaterial("planet")
	if m.Name() != "planet" || m.PipelineKey() != "planet" {
		t.Errorf("name/key = %q/%q", m.Name(), m.PipelineKey())
	}
	if l := common.Length3(m.SunDirection()); !approx(l, 1) {
		t.Errorf("sun direction length = %v, want 1", l)
	}
	if len(m.Textures()) != 3 {
		t.Fatalf("textures = %d, want 3", len(m.Textures()))
	}
	for _, slot := range TextureSlots {
		tex := m.Texture(slot)
		if tex == nil || tex.Width != 1 || tex.Height != 1 {
			t.Errorf("%s fallback = %+v, want 1x1", slot, tex)
		}
	}
	if m.TexturePath(TextureSlotNight) != DefaultNightTexturePath {
		t.Errorf("night path = %q", m.TexturePath(TextureSlotNight))
	}
	if len(m.PendingTextures()) != 0 {
		t.Errorf("new material has pending textures")
	}
}

func TestSurfaceMaterialSetTexture(t *testing.T) {
	m := NewSurfaceMaterial("planet", WithTexturePath(TextureSlotClouds, "clouds.png"))
	if m.TexturePath(TextureSlotClouds) != "clouds.png" {
		t.Fatalf("clouds path = %q", m.TexturePath(TextureSlotClouds))
	}

	tex := common.SolidTexture("clouds", 255, 255, 255, 255)
	m.SetTexture(TextureSlotClouds, tex)
	if m.Texture(TextureSlotClouds) != tex {
		t.Errorf("texture not assigned")
	}
	pending := m.PendingTextures()
	if len(pending) != 1 || pending[0] != TextureSlotClouds {
		t.Errorf("pending = %v, want [clouds]", pending)
	}
	m.ClearPendingTextures()
	if len(m.PendingTextures()) != 0 {
		t.Errorf("pending not cleared")
	}

	m.SetTexture(TextureSlotClouds, nil)
	if m.Texture(TextureSlotClouds) == nil {
		t.Errorf("nil texture did not restore fallback")
	}
}

func TestSurfaceMaterialSunOption(t *testing.T) {
	m := NewSurfaceMaterial("planet", WithSunDirection([3]float32{0, 4, 0}))
	if m.SunDirection() != [3]float32{0, 1, 0} {
		t.Errorf("sun = %v, want normalized (0, 1, 0)", m.SunDirection())
	}
	m = NewSurfaceMaterial("planet", WithSunDirection([3]float32{}))
	if m.SunDirection() != DefaultSunDirection() {
		t.Errorf("zero sun option replaced the default")
	}
}

func TestTextureSlotVarNames(t *testing.T) {
	want := []string{"dayTexture", "nightTexture", "cloudsTexture"}
	for i, slot := range TextureSlots {
		if slot.VarName() != want[i] {
			t.Errorf("slot %d var = %q, want %q", i, slot.VarName(), want[i])
		}
	}
}

func TestSurfaceMaterialSceneLights(t *testing.T) {
	hemisphere := light.NewLight(light.LightTypeHemisphere, light.WithColor([3]float32{1, 1, 1}), light.WithIntensity(3))
	sun := light.NewLight(light.LightTypeDirectional, light.WithPosition([3]float32{0, 0, 2}), light.WithIntensity(0.5))
	m := NewSurfaceMaterial("planet", WithSceneLights(hemisphere, sun))

	if m.SunDirection() != [3]float32{0, 0, 1} {
		t.Errorf("sun = %v, want towards +z", m.SunDirection())
	}
	lights := m.Lights()
	if lights.SkyColor != [3]float32{3, 3, 3} || lights.SunColor != [3]float32{0.5, 0.5, 0.5} {
		t.Errorf("packed lights = %+v", lights)
	}

	buf := m.Uniform()
	if len(buf) != 64 {
		t.Fatalf("uniform = %d bytes, want 64", len(buf))
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[40:44])); got != -1 {
		t.Errorf("uniform sun travel z = %v, want -1", got)
	}

	// The shaded terminator follows the packed light: a normal facing the sun is lit.
	lit := m.Shade([3]float32{0, 0, 1}, [3]float32{1, 1, 1}, [3]float32{}, 0)
	dark := m.Shade([3]float32{0, 0, -1}, [3]float32{1, 1, 1}, [3]float32{}, 0)
	if lit[0] != 1 || dark[0] != 0 {
		t.Errorf("lit = %v, dark = %v", lit, dark)
	}

	m = NewSurfaceMaterial("planet", WithSceneLights(hemisphere, nil))
	if m.SunDirection() != DefaultSunDirection() {
		t.Errorf("missing sun replaced the default direction")
	}
}

func TestAtmosphereParamsMarshal(t *testing.T) {
	m := NewAtmosphereMaterial("atmosphere", WithFresnel(0.2, 2, 3))
	p := m.Params()
	if p.Size() != 48 {
		t.Errorf("Size = %d, want 48", p.Size())
	}
	buf := m.Uniform()
	if len(buf) != 48 {
		t.Fatalf("len = %d, want 48", len(buf))
	}
	read := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off : off+4]))
	}
	if read(32) != 0.2 || read(36) != 2 || read(40) != 3 {
		t.Errorf("fresnel terms = %v %v %v", read(32), read(36), read(40))
	}
	if read(8) != p.RimColor[2] || read(28) != 1 {
		t.Errorf("color layout mismatch")
	}
}

func TestAtmosphereShade(t *testing.T) {
	m := NewAtmosphereMaterial("atmosphere", WithRimColor(0xffffff), WithFacingColor(0x000000))
	cam := [3]float32{0, 0, 10}
	_, headOn := m.Shade([3]float32{0, 0, 1}, cam, [3]float32{0, 0, 1})
	rgb, grazing := m.Shade([3]float32{1, 0, 0}, cam, [3]float32{1, 0, 0})
	if headOn >= grazing {
		t.Errorf("head-on alpha %v should be below grazing alpha %v", headOn, grazing)
	}
	if rgb[0] <= 0 {
		t.Errorf("grazing color = %v, want towards white", rgb)
	}
}
