package loader

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-planet/common"
)

// LoaderBackendType identifies the image decoding backend to use.
type LoaderBackendType int

const (
	// BackendTypeImage selects the image package backend (PNG, JPEG, WebP, BMP).
	BackendTypeImage LoaderBackendType = iota
)

// ErrClosed is returned for loads requested after Close.
var ErrClosed = errors.New("loader: closed")

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	textureCache map[string]*common.ImportedTexture

	backend      loaderBackend
	maxDimension int

	workers int
	pool    worker.DynamicWorkerPool
	pending sync.WaitGroup
	taskID  int
	closed  bool
}

// Loader defines the public-facing interface for decoding and caching textures.
// It abstracts the image format behind a generic backend and decodes files on a
// bounded worker pool so the frame thread never blocks on disk or decode work.
type Loader interface {
	// Load decodes a texture file asynchronously. The done callback runs on a worker
	// goroutine; callers hand the result to their own thread. Cached paths complete
	// immediately on the calling goroutine.
	//
	// Parameters:
	//   - path: the file path to the image
	//   - done: receives the decoded texture or the error
	Load(path string, done func(*common.ImportedTexture, error))

	// LoadSync decodes a texture file on the calling goroutine and caches the result.
	//
	// Parameters:
	//   - path: the file path to the image
	//
	// Returns:
	//   - *common.ImportedTexture: the decoded texture
	//   - error: error if the file is missing (wraps fs.ErrNotExist) or cannot be decoded
	LoadSync(path string) (*common.ImportedTexture, error)

	// LoadReader decodes a texture from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key for the texture
	//   - r: the reader providing encoded image data
	//
	// Returns:
	//   - *common.ImportedTexture: the decoded texture
	//   - error: error if decoding fails
	LoadReader(name string, r io.Reader) (*common.ImportedTexture, error)

	// Get retrieves a cached texture by path or name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - *common.ImportedTexture: the cached texture or nil
	Get(name string) *common.ImportedTexture

	// Close rejects new loads and waits for in-flight decodes to deliver their callbacks.
	// Safe to call more than once.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeImage)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:           sync.RWMutex{},
		textureCache: make(map[string]*common.ImportedTexture),
		workers:      2,
	}

	for _, option := range options {
		option(l)
	}

	switch backendType {
	case BackendTypeImage:
		l.backend = newImageLoaderBackend(l.maxDimension)
	default:
		panic(fmt.Sprintf("loader: unknown backend type %d", backendType))
	}

	// Initialize the pool after options so WithWorkers can override the default.
	l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	return l
}

func (l *loader) Load(path string, done func(*common.ImportedTexture, error)) {
	if cached := l.Get(path); cached != nil {
		done(cached, nil)
		return
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		done(nil, fmt.Errorf("load %s: %w", path, ErrClosed))
		return
	}
	l.pending.Add(1)
	id := l.taskID
	l.taskID++
	l.mu.Unlock()

	l.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer l.pending.Done()
			tex, err := l.LoadSync(path)
			if err != nil {
				common.Logger().Warn("texture load failed", "path", path, "error", err)
			}
			done(tex, err)
			return nil, nil
		},
	})
}

func (l *loader) LoadSync(path string) (*common.ImportedTexture, error) {
	if cached := l.Get(path); cached != nil {
		return cached, nil
	}

	img, err := l.backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load texture: %w", err)
	}

	tex := l.store(path, textureName(path), path, img)
	common.Logger().Debug("texture decoded", "path", path, "format", img.format, "width", img.width, "height", img.height)
	return tex, nil
}

func (l *loader) LoadReader(name string, r io.Reader) (*common.ImportedTexture, error) {
	img, err := l.backend.LoadReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load texture %s: %w", name, err)
	}
	return l.store(name, name, "", img), nil
}

func (l *loader) Get(name string) *common.ImportedTexture {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.textureCache[name]
}

func (l *loader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()
	l.pending.Wait()
	l.pool.Stop()
}

func (l *loader) store(key, name, path string, img decodedImage) *common.ImportedTexture {
	tex := &common.ImportedTexture{
		Name:   name,
		Path:   path,
		Pixels: img.pixels,
		Width:  img.width,
		Height: img.height,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	// A concurrent decode of the same path may have won; keep the first.
	if existing, ok := l.textureCache[key]; ok {
		return existing
	}
	l.textureCache[key] = tex
	return tex
}

func textureName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
