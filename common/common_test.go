package common

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"strings"
	"testing"
)

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		x, want float32
	}{
		{-1, 0},
		{-0.25, 0},
		{0.125, 0.5},
		{0.5, 1},
		{2, 1},
	}
	for _, tt := range tests {
		if got := Smoothstep(-0.25, 0.5, tt.x); math.Abs(float64(got-tt.want)) > 1e-6 {
			t.Errorf("Smoothstep(-0.25, 0.5, %v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestClampAndMix(t *testing.T) {
	if got := Clamp(1.5, 0, 1); got != 1 {
		t.Errorf("Clamp above = %v", got)
	}
	if got := Clamp(-1, 0, 1); got != 0 {
		t.Errorf("Clamp below = %v", got)
	}
	if got := Mix3([3]float32{0, 0, 0}, [3]float32{2, 4, 6}, 0.5); got != [3]float32{1, 2, 3} {
		t.Errorf("Mix3 = %v", got)
	}
}

func TestVectorHelpers(t *testing.T) {
	if got := Normalize3([3]float32{3, 0, 4}); math.Abs(float64(Length3(got)-1)) > 1e-6 {
		t.Errorf("Normalize3 length = %v", Length3(got))
	}
	if got := Normalize3([3]float32{}); got != [3]float32{} {
		t.Errorf("Normalize3(zero) = %v, want zero", got)
	}
	if got := Add3([3]float32{1, 2, 3}, Scale3([3]float32{1, 1, 1}, 2)); got != [3]float32{3, 4, 5} {
		t.Errorf("Add3/Scale3 = %v", got)
	}
	if got := Cross3([3]float32{1, 0, 0}, [3]float32{0, 1, 0}); got != [3]float32{0, 0, 1} {
		t.Errorf("Cross3 = %v", got)
	}
	if got := Radians(180); math.Abs(float64(got)-math.Pi) > 1e-6 {
		t.Errorf("Radians(180) = %v", got)
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce(0, 0, 3, 4); got != 3 {
		t.Errorf("Coalesce = %v, want 3", got)
	}
	if got := Coalesce("", ""); got != "" {
		t.Errorf("Coalesce of zeros = %q", got)
	}
}

func TestSliceToBytes(t *testing.T) {
	if SliceToBytes([]float32{}) != nil {
		t.Error("empty slice should give nil")
	}
	if got := len(SliceToBytes([]float32{1, 2, 3})); got != 12 {
		t.Errorf("len = %d, want 12", got)
	}
}

func TestSolidTexture(t *testing.T) {
	tex := SolidTexture("white", 255, 255, 255, 255)
	staging := tex.Staging()
	if staging.Width != 1 || staging.Height != 1 || len(staging.Pixels) != 4 {
		t.Errorf("staging = %dx%d with %d bytes, want a single RGBA texel", staging.Width, staging.Height, len(staging.Pixels))
	}
}

func TestLoggerDefaultsSilent(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	Logger().Info("scene initialized", "name", "planet")
	if !strings.Contains(buf.String(), "scene initialized") {
		t.Errorf("log output = %q", buf.String())
	}

	SetLogger(nil)
	Logger().Error("dropped")
	if strings.Contains(buf.String(), "dropped") {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}
