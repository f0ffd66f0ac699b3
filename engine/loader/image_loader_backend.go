package loader

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrEmptyImage is returned when a decoded image has no pixels.
var ErrEmptyImage = errors.New("loader: empty image")

// imageLoaderBackend decodes PNG, JPEG, WebP and BMP files through the image package registry.
type imageLoaderBackend struct {
	maxDimension int
}

var _ loaderBackend = &imageLoaderBackend{}

func newImageLoaderBackend(maxDimension int) *imageLoaderBackend {
	return &imageLoaderBackend{maxDimension: maxDimension}
}

func (b *imageLoaderBackend) Load(path string) (decodedImage, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return decodedImage{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	img, err := b.LoadReader(f)
	if err != nil {
		return decodedImage{}, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

func (b *imageLoaderBackend) LoadReader(r io.Reader) (decodedImage, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return decodedImage{}, fmt.Errorf("decode: %w", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return decodedImage{}, ErrEmptyImage
	}

	rgba := toRGBA(img, b.maxDimension)
	return decodedImage{
		pixels: rgba.Pix,
		width:  rgba.Rect.Dx(),
		height: rgba.Rect.Dy(),
		format: format,
	}, nil
}

// toRGBA converts img to a tightly packed RGBA image whose origin is (0, 0).
// When maxDimension is positive and the longer side exceeds it, the image is
// downscaled with Catmull-Rom filtering, preserving aspect ratio.
func toRGBA(img image.Image, maxDimension int) *image.RGBA {
	bounds := img.Bounds()
	w, h := scaledSize(bounds.Dx(), bounds.Dy(), maxDimension)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	if w == bounds.Dx() && h == bounds.Dy() {
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
		return dst
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}

// scaledSize fits (w, h) inside a maxDimension square. Non-positive limits disable scaling.
func scaledSize(w, h, maxDimension int) (int, int) {
	if maxDimension <= 0 || (w <= maxDimension && h <= maxDimension) {
		return w, h
	}
	if w >= h {
		return maxDimension, max(1, h*maxDimension/w)
	}
	return max(1, w*maxDimension/h), maxDimension
}
