package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
	"github.com/fogleman/fauxgl"
)

// loaderBackend decodes a model file on disk into geometry.
// Concrete implementations (e.g., fauxglLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Supports reports whether the backend can decode files with the given extension.
	//
	// Parameters:
	//   - ext: the lower-case extension including the dot
	//
	// Returns:
	//   - bool: true if Decode accepts the extension
	Supports(ext string) bool

	// Decode reads the file at path.
	//
	// Parameters:
	//   - path: a local file path whose extension selects the format
	//
	// Returns:
	//   - *scene.Geometry: the decoded geometry
	//   - error: error if the file cannot be read or parsed
	Decode(path string) (*scene.Geometry, error)
}

// fauxglLoaderBackend decodes STL, OBJ, PLY and 3DS files with fauxgl.
type fauxglLoaderBackend struct{}

var _ loaderBackend = fauxglLoaderBackend{}

func newFauxGLLoaderBackend() loaderBackend {
	return fauxglLoaderBackend{}
}

func (fauxglLoaderBackend) Supports(ext string) bool {
	switch ext {
	case ".stl", ".obj", ".ply", ".3ds":
		return true
	}
	return false
}

func (fauxglLoaderBackend) Decode(path string) (*scene.Geometry, error) {
	var (
		mesh *fauxgl.Mesh
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		mesh, err = fauxgl.LoadSTL(path)
	case ".obj":
		mesh, err = fauxgl.LoadOBJ(path)
	case ".ply":
		mesh, err = fauxgl.LoadPLY(path)
	case ".3ds":
		mesh, err = fauxgl.Load3DS(path)
	default:
		return nil, fmt.Errorf("unsupported model format: %s", ext)
	}
	if err != nil {
		return nil, err
	}
	if len(mesh.Triangles) == 0 {
		return nil, fmt.Errorf("%s: no triangles", filepath.Base(path))
	}
	return scene.GeometryFromMesh(mesh), nil
}
