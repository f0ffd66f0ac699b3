package loader

import (
	"github.com/Carmen-Shannon/oxy-planet/common"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithMaxDimension is an option builder that caps the longer side of decoded textures.
// Larger images are downscaled with Catmull-Rom filtering. Zero disables the cap.
//
// Parameters:
//   - n: the maximum width or height in pixels
//
// Returns:
//   - LoaderBuilderOption: a function that applies the limit to a loader
func WithMaxDimension(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.maxDimension = max(0, n)
	}
}

// WithWorkers is an option builder that sets how many decodes may run at once.
//
// Parameters:
//   - n: the worker count, at least 1
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = max(1, n)
	}
}

// WithTexture is an option builder that pre-populates the texture cache.
//
// Parameters:
//   - key: the cache key for the texture
//   - tex: the texture to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the texture option to a loader
func WithTexture(key string, tex *common.ImportedTexture) LoaderBuilderOption {
	return func(l *loader) {
		l.textureCache[key] = tex
	}
}
