package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
)

// Vertex is a single corner of a triangle in local space.
type Vertex struct {
	Position common.Vec3
	Normal   common.Vec3
	UV       common.Vec2
}

// Triangle is three vertices wound counter-clockwise when viewed from the front.
type Triangle [3]Vertex

// Geometry is an immutable triangle list shared between meshes. Dispose releases the
// triangle storage; a disposed geometry renders nothing.
type Geometry struct {
	mu        sync.RWMutex
	triangles []Triangle
	bounds    common.Box
	disposed  bool
}

// NewGeometry takes ownership of triangles and computes the local bounds.
//
// Parameters:
//   - triangles: the triangle list
//
// Returns:
//   - *Geometry: the geometry
func NewGeometry(triangles []Triangle) *Geometry {
	b := common.EmptyBox()
	for _, t := range triangles {
		for _, v := range t {
			b = b.ExpandByPoint(v.Position)
		}
	}
	return &Geometry{triangles: triangles, bounds: b}
}

// Triangles returns the triangle list. The slice must not be modified.
func (g *Geometry) Triangles() []Triangle {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.triangles
}

// Bounds returns the local-space bounding box.
func (g *Geometry) Bounds() common.Box {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.bounds
}

// Clone returns an independent copy of the geometry.
func (g *Geometry) Clone() *Geometry {
	g.mu.RLock()
	defer g.mu.RUnlock()
	tris := make([]Triangle, len(g.triangles))
	copy(tris, g.triangles)
	return &Geometry{triangles: tris, bounds: g.bounds, disposed: g.disposed}
}

// Dispose releases the triangle storage. It is safe to call more than once.
func (g *Geometry) Dispose() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.triangles = nil
	g.bounds = common.EmptyBox()
	g.disposed = true
}

func (g *Geometry) Disposed() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.disposed
}
