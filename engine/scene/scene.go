package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
)

// Scene is the root of a scene graph together with its background and name registry.
type Scene struct {
	Object
	bgMu       sync.RWMutex
	background common.Color
	cube       *CubeTexture
	registry   *Registry
}

// NewScene creates an empty scene with a black background.
//
// Parameters:
//   - options: variadic list of SceneBuilderOption functions to configure the scene
//
// Returns:
//   - *Scene: the scene
func NewScene(options ...SceneBuilderOption) *Scene {
	s := &Scene{registry: NewRegistry()}
	s.name = "scene"
	s.init(s)
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Registry returns the scene's name registry.
func (s *Scene) Registry() *Registry {
	return s.registry
}

// Background returns the clear color and, if set, the cube texture drawn behind all geometry.
func (s *Scene) Background() (common.Color, *CubeTexture) {
	s.bgMu.RLock()
	defer s.bgMu.RUnlock()
	return s.background, s.cube
}

// SetBackgroundColor sets a flat background and clears any cube texture.
func (s *Scene) SetBackgroundColor(c common.Color) {
	s.bgMu.Lock()
	defer s.bgMu.Unlock()
	s.background = c
	s.cube = nil
}

// SetBackgroundCube sets an environment cube as background.
func (s *Scene) SetBackgroundCube(c *CubeTexture) {
	s.bgMu.Lock()
	defer s.bgMu.Unlock()
	s.cube = c
}

// FindByName returns the first node in the graph with the given name.
func (s *Scene) FindByName(name string) (Node, bool) {
	var found Node
	Traverse(s, func(n Node) {
		if found == nil && n.AsObject().Name() == name {
			found = n
		}
	})
	return found, found != nil
}

// Meshes returns every mesh in the graph whose whole ancestor chain is visible.
func (s *Scene) Meshes() []Drawable {
	var out []Drawable
	var walk func(n Node)
	walk = func(n Node) {
		if !n.AsObject().Visible() {
			return
		}
		if d, ok := n.(Drawable); ok {
			out = append(out, d)
		}
		for _, c := range n.AsObject().Children() {
			walk(c)
		}
	}
	walk(s)
	return out
}
