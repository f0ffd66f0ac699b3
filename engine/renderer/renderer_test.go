package renderer

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestPickSurfaceFormat(t *testing.T) {
	tests := []struct {
		name    string
		formats []wgpu.TextureFormat
		want    wgpu.TextureFormat
		wantErr bool
	}{
		{"prefers linear", []wgpu.TextureFormat{wgpu.TextureFormatBGRA8UnormSrgb, wgpu.TextureFormatBGRA8Unorm}, wgpu.TextureFormatBGRA8Unorm, false},
		{"first linear wins", []wgpu.TextureFormat{wgpu.TextureFormatRGBA8Unorm, wgpu.TextureFormatBGRA8Unorm}, wgpu.TextureFormatRGBA8Unorm, false},
		{"only srgb", []wgpu.TextureFormat{wgpu.TextureFormatRGBA8UnormSrgb}, wgpu.TextureFormatRGBA8UnormSrgb, false},
		{"none", nil, wgpu.TextureFormatUndefined, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pickSurfaceFormat(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("format = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPresentModeString(t *testing.T) {
	if PresentModeVSync.String() != "vsync" || PresentModeUncapped.String() != "uncapped" {
		t.Errorf("names = %q, %q", PresentModeVSync, PresentModeUncapped)
	}
}

func TestBuilderOptions(t *testing.T) {
	r := &renderer{}
	for _, opt := range []RendererBuilderOption{
		WithPresentMode(PresentModeUncapped),
		WithMSAA(MSAAOff),
		WithClearColor([4]float64{0.1, 0.2, 0.3, 1}),
		WithForceSoftwareRenderer(true),
	} {
		opt(r)
	}
	if r.presentMode != PresentModeUncapped || r.msaa != MSAAOff || !r.forceFallbackAdapter {
		t.Errorf("options not applied: %+v", r)
	}
	if r.clearColor != [4]float64{0.1, 0.2, 0.3, 1} {
		t.Errorf("clear color = %v", r.clearColor)
	}
}
