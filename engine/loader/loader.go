package loader

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
)

// LoaderBackendType identifies the model decoder backend to use.
type LoaderBackendType int

const (
	// BackendTypeFauxGL decodes STL, OBJ, PLY and 3DS files.
	BackendTypeFauxGL LoaderBackendType = iota
)

// ImportOptions describes one batch of model imports.
type ImportOptions struct {
	// URLs are local paths or http(s) URLs, optionally gzip-compressed with a .gz suffix.
	URLs []string

	// OnProgress receives each imported node after it has been added to the scene.
	OnProgress func(node scene.Node)

	// OnLoad runs exactly once after every URL has completed, successfully or not.
	OnLoad func()

	// OnError receives the URL and cause of each failed import.
	OnError func(url string, err error)
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc

	scene    *scene.Scene
	dispatch func(func())
	material func(name string) *scene.Material

	client  *http.Client
	tempDir string
	workers int
	pool    worker.DynamicWorkerPool
	taskID  int

	geometryCache map[string]*scene.Geometry

	backend loaderBackend
}

// Loader imports 3D models into a scene on a worker pool. Decoding runs on pool workers; scene
// insertion and callbacks run through the dispatch function so they happen on the frame goroutine.
type Loader interface {
	// ImportModel decodes every URL concurrently and adds one mesh per URL to the scene root.
	// OnProgress runs per asset, in completion order. OnLoad runs once, after all URLs have
	// completed, whatever order they complete in.
	//
	// Parameters:
	//   - opts: the URLs and callbacks
	//
	// Returns:
	//   - error: common.ErrInputShape if there are no URLs; the batch is not started
	ImportModel(opts ImportOptions) error

	// Load decodes one URL synchronously without touching the scene. Geometry is cached by URL
	// and every call returns a mesh with its own copy.
	//
	// Parameters:
	//   - ctx: cancels a remote download
	//   - url: the model location
	//
	// Returns:
	//   - *scene.Mesh: the decoded mesh, named after the file
	//   - error: error if loading fails
	Load(ctx context.Context, url string) (*scene.Mesh, error)

	// Cached reports whether the geometry of url is already cached.
	//
	// Parameters:
	//   - url: the model location
	//
	// Returns:
	//   - bool: true if cached
	Cached(url string) bool

	// Close cancels pending downloads and stops the worker pool.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a Loader with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of decoder backend to use (e.g., BackendTypeFauxGL)
//   - s: the scene receiving imported meshes
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, s *scene.Scene, options ...LoaderBuilderOption) Loader {
	l := &loader{
		scene:         s,
		dispatch:      func(f func()) { f() },
		material:      func(name string) *scene.Material { return scene.NewMaterial(scene.WithMaterialName(name)) },
		client:        &http.Client{Timeout: 2 * time.Minute},
		workers:       4,
		geometryCache: make(map[string]*scene.Geometry),
	}

	switch backendType {
	case BackendTypeFauxGL:
		l.backend = newFauxGLLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	if l.ctx == nil {
		l.ctx = context.Background()
	}
	l.ctx, l.cancel = context.WithCancel(l.ctx)
	l.pool = worker.NewDynamicWorkerPool(l.workers, 64, time.Second)
	return l
}

func (l *loader) ImportModel(opts ImportOptions) error {
	if len(opts.URLs) == 0 {
		common.Logger().Error("import model", "error", common.ErrInputShape, "reason", "urls must be a non-empty list")
		return fmt.Errorf("import model: urls: %w", common.ErrInputShape)
	}
	if l.scene == nil {
		return fmt.Errorf("import model: loader has no scene")
	}

	var mu sync.Mutex
	remaining := len(opts.URLs)
	complete := func() {
		mu.Lock()
		remaining--
		done := remaining == 0
		mu.Unlock()
		if done {
			common.Logger().Info("import complete", "models", len(opts.URLs))
			if opts.OnLoad != nil {
				opts.OnLoad()
			}
		}
	}

	for _, u := range opts.URLs {
		l.mu.Lock()
		id := l.taskID
		l.taskID++
		l.mu.Unlock()

		l.pool.SubmitTask(worker.Task{
			ID:      id,
			Payload: u,
			Do: func() (any, error) {
				mesh, err := l.Load(l.ctx, u)
				l.dispatch(func() {
					defer complete()
					if err != nil {
						common.Logger().Error("import model failed", "url", u, "error", err)
						if opts.OnError != nil {
							opts.OnError(u, err)
						}
						return
					}
					l.scene.Add(mesh)
					common.Logger().Debug("model imported", "url", u, "triangles", len(mesh.Geometry().Triangles()))
					if opts.OnProgress != nil {
						opts.OnProgress(mesh)
					}
				})
				return mesh, err
			},
		})
	}
	return nil
}

func (l *loader) Load(ctx context.Context, u string) (*scene.Mesh, error) {
	name := ModelName(u)

	l.mu.RLock()
	cached, ok := l.geometryCache[u]
	l.mu.RUnlock()
	if ok {
		return scene.NewMesh(name, cached.Clone(), l.material(name)), nil
	}

	ext := modelExt(u)
	if !l.backend.Supports(ext) {
		return nil, fmt.Errorf("load %s: unsupported model format %q", u, ext)
	}

	local, cleanup, err := l.localize(ctx, u)
	defer cleanup()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", u, err)
	}

	geometry, err := l.backend.Decode(local)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", u, err)
	}

	l.mu.Lock()
	l.geometryCache[u] = geometry
	l.mu.Unlock()

	return scene.NewMesh(name, geometry.Clone(), l.material(name)), nil
}

func (l *loader) Cached(u string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.geometryCache[u]
	return ok
}

func (l *loader) Close() {
	l.cancel()
	l.pool.Stop()
}

// ModelName derives a node name from the file name without extensions.
func ModelName(u string) string {
	base := path.Base(strings.ReplaceAll(u, "\\", "/"))
	if i := strings.IndexByte(base, '?'); i >= 0 {
		base = base[:i]
	}
	base = strings.TrimSuffix(base, ".gz")
	return strings.TrimSuffix(base, path.Ext(base))
}
