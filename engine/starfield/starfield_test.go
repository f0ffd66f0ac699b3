package starfield

import (
	"math"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewStarField_BufferLengths(t *testing.T) {
	for _, count := range []int{0, 1, 2, 17, 3000} {
		sf := NewStarField(count, WithSeed(7))
		if sf.Count() != count {
			t.Errorf("Count() = %d, want %d", sf.Count(), count)
		}
		if got := len(sf.Positions()); got != 3*count {
			t.Errorf("count %d: len(Positions()) = %d, want %d", count, got, 3*count)
		}
		if got := len(sf.Colors()); got != 3*count {
			t.Errorf("count %d: len(Colors()) = %d, want %d", count, got, 3*count)
		}
	}
}

func TestNewStarField_NegativeCountIsEmpty(t *testing.T) {
	sf := NewStarField(-5)
	if sf.Count() != 0 || len(sf.Positions()) != 0 || len(sf.Colors()) != 0 {
		t.Fatalf("negative count should produce an empty field, got %d stars", sf.Count())
	}
	sf.Update(1.5)
	if len(sf.Colors()) != 0 {
		t.Errorf("Update on empty field resized the color buffer")
	}
}

func TestNewStarField_PointsOnShell(t *testing.T) {
	sf := NewStarField(2000, WithSeed(42))
	pos := sf.Positions()
	for i, p := range sf.Points() {
		if p.Radius < MinRadius || p.Radius >= MaxRadius {
			t.Fatalf("star %d radius %v outside [%v, %v)", i, p.Radius, MinRadius, MaxRadius)
		}
		x, y, z := float64(pos[i*3]), float64(pos[i*3+1]), float64(pos[i*3+2])
		dist := math.Sqrt(x*x + y*y + z*z)
		if math.Abs(dist-float64(p.Radius)) > 1e-3 {
			t.Fatalf("star %d distance %v does not match radius %v", i, dist, p.Radius)
		}
		if p.Position != [3]float32{pos[i*3], pos[i*3+1], pos[i*3+2]} {
			t.Fatalf("star %d position buffer out of order", i)
		}
	}
}

func TestNewStarField_SeedIsDeterministic(t *testing.T) {
	a := NewStarField(64, WithSeed(99))
	b := NewStarField(64, WithSeed(99))
	if !slices.Equal(a.Positions(), b.Positions()) {
		t.Error("same seed produced different positions")
	}
	if !slices.Equal(a.Colors(), b.Colors()) {
		t.Error("same seed produced different initial colors")
	}
}

func TestStarPoint_Brightness(t *testing.T) {
	tests := []struct {
		name     string
		p        StarPoint
		t        float64
		want     float32
		twinkles bool
	}{
		{"steady star ignores time", StarPoint{Rate: 0.5, Roll: 0.3, Lightness: 0.4}, 10, 0.4, false},
		{"roll at threshold is steady", StarPoint{Rate: 0.5, Roll: FlickerThreshold, Lightness: 0.4}, 10, 0.4, false},
		{"twinkling star at t=0", StarPoint{Rate: 0.5, Roll: 0.9, Lightness: 0.4}, 0, 0.4, true},
		{"twinkling star follows sine", StarPoint{Rate: 1, Roll: 0.9, Lightness: 0.25}, math.Pi / 2, 1.25, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.p.Twinkles() != tt.twinkles {
				t.Errorf("Twinkles() = %v, want %v", tt.p.Twinkles(), tt.twinkles)
			}
			got := tt.p.Brightness(tt.t)
			if math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("Brightness(%v) = %v, want %v", tt.t, got, tt.want)
			}
			if again := tt.p.Brightness(tt.t); again != got {
				t.Errorf("Brightness is not pure: %v then %v", got, again)
			}
		})
	}
}

func TestRecolor_SameTimeSameColors(t *testing.T) {
	sf := NewStarField(500, WithSeed(3))
	sf.Recolor(12.34)
	first := slices.Clone(sf.Colors())
	sf.Recolor(12.34)
	if !slices.Equal(first, sf.Colors()) {
		t.Error("recoloring twice at the same time changed the color buffer")
	}
}

func TestUpdate_ColorsClampedAndDirty(t *testing.T) {
	sf := NewStarField(1000, WithSeed(11))
	sf.ClearDirty()
	for _, tm := range []float64{0, 0.7, 3.3, 100} {
		sf.Update(tm)
		if !sf.Dirty() {
			t.Fatalf("Update(%v) did not mark colors dirty", tm)
		}
		for i, c := range sf.Colors() {
			if c < 0 || c > 1 || math.IsNaN(float64(c)) {
				t.Fatalf("Update(%v): color component %d = %v outside [0,1]", tm, i, c)
			}
		}
		sf.ClearDirty()
	}
}

func TestUpdate_UsesUpdateHue(t *testing.T) {
	sf := NewStarField(10, WithSeed(5), WithUpdateHue(0.6))
	sf.Update(0)
	for i, p := range sf.Points() {
		want := HSLToRGB(0.6, Saturation, p.Brightness(0))
		got := [3]float32{sf.Colors()[i*3], sf.Colors()[i*3+1], sf.Colors()[i*3+2]}
		if got != want {
			t.Errorf("star %d color %v, want %v", i, got, want)
		}
	}
}

func TestUpdate_RotationDrift(t *testing.T) {
	sf := NewStarField(1, WithSeed(1))
	for range 10 {
		sf.Update(0)
	}
	if got, want := sf.RotationY(), float32(-10*DefaultRotationDrift); math.Abs(float64(got-want)) > 1e-7 {
		t.Errorf("RotationY() = %v, want %v", got, want)
	}
}

func TestHSLToRGB_ClampsLightness(t *testing.T) {
	if got := HSLToRGB(0.6, 0.2, 1.8); got != [3]float32{1, 1, 1} {
		t.Errorf("lightness above 1 should be white, got %v", got)
	}
	if got := HSLToRGB(0.6, 0.2, -0.4); got != [3]float32{0, 0, 0} {
		t.Errorf("lightness below 0 should be black, got %v", got)
	}
	a := HSLToRGB(1.25, 0.5, 0.5)
	b := HSLToRGB(0.25, 0.5, 0.5)
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-6 {
			t.Errorf("hue should wrap: %v vs %v", a, b)
		}
	}
}

func TestInitialHueOption(t *testing.T) {
	sf := NewStarField(50, WithSeed(8), WithInitialHue(0.6))
	cols := sf.Colors()
	for i := range sf.Count() {
		r, g, b := cols[i*3], cols[i*3+1], cols[i*3+2]
		// hue 0.6 at low saturation: blue channel is always the largest
		if b < r || b < g {
			t.Fatalf("star %d color (%v, %v, %v) is not a blue tint", i, r, g, b)
		}
	}
}

func TestGPUStarParams_Marshal(t *testing.T) {
	sf := NewStarField(1, WithSeed(1), WithPointSize(0.5))
	p := sf.Params()
	buf := p.Marshal()
	if len(buf) != p.Size() || len(buf) != 80 {
		t.Fatalf("Marshal length %d, Size %d, want 80", len(buf), p.Size())
	}
	if got := math.Float32frombits(leUint32(buf[64:68])); got != 0.5 {
		t.Errorf("point size = %v, want 0.5", got)
	}
	if got := math.Float32frombits(leUint32(buf[0:4])); got != 1 {
		t.Errorf("model[0] = %v, want 1 for zero rotation", got)
	}
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func TestBillboardSize_MatchesAttenuatedPoint(t *testing.T) {
	const (
		pointSize = 0.1
		height    = 600
	)
	for _, fov := range []float32{45, 75, 90} {
		proj := mgl32.Perspective(mgl32.DegToRad(fov), 4.0/3.0, 0.1, 1000)
		size := BillboardSize(pointSize, proj.At(1, 1))
		for _, depth := range []float32{5, 50, 150} {
			top := proj.Mul4x1(mgl32.Vec4{0, size / 2, -depth, 1})
			pixels := top.Y() / top.W() * height
			want := pointSize * (height / 2) / depth
			if math.Abs(float64(pixels-want)) > 1e-4 {
				t.Errorf("fov %v depth %v: %v px, want %v", fov, depth, pixels, want)
			}
		}
	}
	if BillboardSize(0.1, 0) != 0.1 {
		t.Error("degenerate projection changed the size")
	}
}
