package loader

import (
	"context"
	"net/http"

	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithDispatch sets how completed imports are handed to the frame goroutine. The default runs
// them on the worker that decoded the model.
//
// Parameters:
//   - dispatch: queues a function for the frame goroutine
//
// Returns:
//   - LoaderBuilderOption: a function that applies the dispatch option to a loader
func WithDispatch(dispatch func(func())) LoaderBuilderOption {
	return func(l *loader) {
		if dispatch != nil {
			l.dispatch = dispatch
		}
	}
}

// WithWorkers sets the number of concurrent decode workers.
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithHTTPClient sets the client used for http(s) URLs.
func WithHTTPClient(c *http.Client) LoaderBuilderOption {
	return func(l *loader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithTempDir sets where downloaded and decompressed files are staged. Empty uses os.TempDir.
func WithTempDir(dir string) LoaderBuilderOption {
	return func(l *loader) {
		l.tempDir = dir
	}
}

// WithContext sets the parent context of all downloads.
func WithContext(ctx context.Context) LoaderBuilderOption {
	return func(l *loader) {
		l.ctx = ctx
	}
}

// WithMaterialFactory sets the function creating the material of each imported mesh.
func WithMaterialFactory(fn func(name string) *scene.Material) LoaderBuilderOption {
	return func(l *loader) {
		if fn != nil {
			l.material = fn
		}
	}
}
