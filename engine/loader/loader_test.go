package loader

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-planet/common"
)

func writePNG(t *testing.T, dir, name string, w, h int, c color.NRGBA) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSyncDecodesRGBA(t *testing.T) {
	path := writePNG(t, t.TempDir(), "earth-day.png", 4, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	l := NewLoader(BackendTypeImage)
	defer l.Close()

	tex, err := l.LoadSync(path)
	if err != nil {
		t.Fatalf("LoadSync: %v", err)
	}
	if tex.Width != 4 || tex.Height != 2 || len(tex.Pixels) != 4*2*4 {
		t.Fatalf("got %dx%d with %d bytes", tex.Width, tex.Height, len(tex.Pixels))
	}
	if !bytes.Equal(tex.Pixels[:4], []byte{10, 20, 30, 255}) {
		t.Errorf("first texel = %v", tex.Pixels[:4])
	}
	if tex.Name != "earth-day" || tex.Path != path {
		t.Errorf("name/path = %q %q", tex.Name, tex.Path)
	}
	if l.Get(path) != tex {
		t.Errorf("texture was not cached")
	}
}

func TestLoadSyncMissingFile(t *testing.T) {
	l := NewLoader(BackendTypeImage)
	defer l.Close()

	_, err := l.LoadSync(filepath.Join(t.TempDir(), "nope.png"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestLoadReaderRejectsGarbage(t *testing.T) {
	l := NewLoader(BackendTypeImage)
	defer l.Close()

	if _, err := l.LoadReader("junk", bytes.NewReader([]byte("not an image"))); err == nil {
		t.Fatal("expected a decode error")
	}
	if l.Get("junk") != nil {
		t.Errorf("failed decode was cached")
	}
}

func TestMaxDimensionDownscales(t *testing.T) {
	path := writePNG(t, t.TempDir(), "clouds.png", 64, 16, color.NRGBA{G: 200, A: 255})
	l := NewLoader(BackendTypeImage, WithMaxDimension(16))
	defer l.Close()

	tex, err := l.LoadSync(path)
	if err != nil {
		t.Fatal(err)
	}
	if tex.Width != 16 || tex.Height != 4 {
		t.Fatalf("got %dx%d, want 16x4", tex.Width, tex.Height)
	}
	if len(tex.Pixels) != 16*4*4 {
		t.Errorf("pixel bytes = %d", len(tex.Pixels))
	}
}

func TestScaledSize(t *testing.T) {
	tests := []struct {
		w, h, limit  int
		wantW, wantH int
	}{
		{100, 50, 0, 100, 50},
		{100, 50, 200, 100, 50},
		{100, 50, 10, 10, 5},
		{50, 100, 10, 5, 10},
		{1000, 1, 10, 10, 1},
	}
	for _, tt := range tests {
		w, h := scaledSize(tt.w, tt.h, tt.limit)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("scaledSize(%d, %d, %d) = %d, %d; want %d, %d", tt.w, tt.h, tt.limit, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestLoadAsync(t *testing.T) {
	dir := t.TempDir()
	good := writePNG(t, dir, "night.png", 2, 2, color.NRGBA{R: 255, A: 255})
	l := NewLoader(BackendTypeImage, WithWorkers(2))

	type result struct {
		tex *common.ImportedTexture
		err error
	}
	results := make(chan result, 2)
	l.Load(good, func(tex *common.ImportedTexture, err error) { results <- result{tex, err} })
	l.Load(filepath.Join(dir, "missing.png"), func(tex *common.ImportedTexture, err error) { results <- result{tex, err} })

	var ok, failed int
	for range 2 {
		select {
		case r := <-results:
			if r.err != nil {
				if !errors.Is(r.err, fs.ErrNotExist) {
					t.Errorf("unexpected error %v", r.err)
				}
				failed++
			} else if r.tex != nil && r.tex.Width == 2 {
				ok++
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for async load")
		}
	}
	if ok != 1 || failed != 1 {
		t.Errorf("ok=%d failed=%d", ok, failed)
	}

	l.Close()
	l.Close()
	var closedErr error
	l.Load(filepath.Join(dir, "late.png"), func(_ *common.ImportedTexture, err error) { closedErr = err })
	if !errors.Is(closedErr, ErrClosed) {
		t.Errorf("load after close err = %v, want ErrClosed", closedErr)
	}
}

// stopCounter forwards to a real pool and counts Stop calls.
type stopCounter struct {
	worker.DynamicWorkerPool
	stops int
}

func (s *stopCounter) Stop() {
	s.stops++
	s.DynamicWorkerPool.Stop()
}

func TestCloseStopsWorkerPool(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "clouds.png", 1, 1, color.NRGBA{G: 255, A: 255})
	l := NewLoader(BackendTypeImage, WithWorkers(1)).(*loader)
	pool := &stopCounter{DynamicWorkerPool: l.pool}
	l.pool = pool

	done := make(chan error, 1)
	l.Load(path, func(_ *common.ImportedTexture, err error) { done <- err })
	l.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("load before close: %v", err)
		}
	default:
		t.Fatal("Close returned before the pending load finished")
	}
	if pool.stops != 1 {
		t.Errorf("pool stopped %d times, want 1", pool.stops)
	}

	l.Close()
	if pool.stops != 1 {
		t.Errorf("second Close stopped the pool again (%d)", pool.stops)
	}
}

func TestWithTextureSeedsCache(t *testing.T) {
	fallback := common.SolidTexture("day", 0, 0, 0, 0)
	l := NewLoader(BackendTypeImage, WithTexture("day", fallback))
	defer l.Close()

	var got *common.ImportedTexture
	l.Load("day", func(tex *common.ImportedTexture, _ error) { got = tex })
	if got != fallback {
		t.Errorf("cached texture not returned synchronously")
	}
}

func TestUnknownBackendPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewLoader(LoaderBackendType(99))
}
