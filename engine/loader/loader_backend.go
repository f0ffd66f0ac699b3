package loader

import (
	"io"
)

// loaderBackend defines the generic interface for decoding textures from files or streams.
// Concrete implementations (e.g., imageLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load decodes the image file at the given path into RGBA8 pixels.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - decodedImage: the decoded pixels and dimensions
	//   - error: error if the file is missing or cannot be decoded
	Load(path string) (decodedImage, error)

	// LoadReader decodes an image from a reader stream.
	//
	// Parameters:
	//   - r: the reader providing encoded image data
	//
	// Returns:
	//   - decodedImage: the decoded pixels and dimensions
	//   - error: error if decoding fails
	LoadReader(r io.Reader) (decodedImage, error)
}

// decodedImage is the backend-neutral result of a decode.
type decodedImage struct {
	pixels []byte
	width  int
	height int
	format string
}
