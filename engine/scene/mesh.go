package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
)

// Mesh draws a geometry with a material at the object's transform.
type Mesh struct {
	Object
	meshMu   sync.RWMutex
	geometry *Geometry
	material *Material
}

// NewMesh creates a mesh node.
//
// Parameters:
//   - name: the node name
//   - geometry: the shape to draw
//   - material: the surface appearance
//
// Returns:
//   - *Mesh: the mesh
func NewMesh(name string, geometry *Geometry, material *Material) *Mesh {
	if geometry == nil {
		panic("scene: mesh requires a geometry")
	}
	if material == nil {
		panic("scene: mesh requires a material")
	}
	m := &Mesh{geometry: geometry, material: material}
	m.name = name
	m.init(m)
	return m
}

// AsMesh returns the mesh itself. InstancedMesh promotes it to reach the shared mesh state.
func (m *Mesh) AsMesh() *Mesh {
	return m
}

func (m *Mesh) Geometry() *Geometry {
	m.meshMu.RLock()
	defer m.meshMu.RUnlock()
	return m.geometry
}

func (m *Mesh) Material() *Material {
	m.meshMu.RLock()
	defer m.meshMu.RUnlock()
	return m.material
}

// SetMaterial replaces the material and returns the previous one.
//
// Parameters:
//   - mat: the new material, must not be nil
//
// Returns:
//   - *Material: the replaced material
func (m *Mesh) SetMaterial(mat *Material) *Material {
	if mat == nil {
		panic("scene: mesh requires a material")
	}
	m.meshMu.Lock()
	defer m.meshMu.Unlock()
	prev := m.material
	m.material = mat
	return prev
}

// WorldBounds returns the geometry bounds in world space.
func (m *Mesh) WorldBounds() common.Box {
	w := m.WorldMatrix()
	return m.Geometry().Bounds().Transform(w[:])
}

// InstancedMesh draws one geometry and material many times with per-instance matrices
// applied on top of the object's own transform.
type InstancedMesh struct {
	Mesh
	matrices [][16]float32
}

// NewInstancedMesh creates an instanced mesh with count identity instances.
//
// Parameters:
//   - name: the node name
//   - geometry: the shared shape
//   - material: the shared appearance
//   - count: number of instances
//
// Returns:
//   - *InstancedMesh: the instanced mesh
func NewInstancedMesh(name string, geometry *Geometry, material *Material, count int) *InstancedMesh {
	if geometry == nil || material == nil {
		panic("scene: instanced mesh requires a geometry and a material")
	}
	im := &InstancedMesh{matrices: make([][16]float32, count)}
	im.geometry = geometry
	im.material = material
	im.name = name
	for i := range im.matrices {
		common.Identity(im.matrices[i][:])
	}
	im.init(im)
	return im
}

// Count returns the number of instances.
func (im *InstancedMesh) Count() int {
	im.meshMu.RLock()
	defer im.meshMu.RUnlock()
	return len(im.matrices)
}

// MatrixAt returns the local matrix of instance i.
func (im *InstancedMesh) MatrixAt(i int) [16]float32 {
	im.meshMu.RLock()
	defer im.meshMu.RUnlock()
	return im.matrices[i]
}

// SetMatrixAt sets the local matrix of instance i.
func (im *InstancedMesh) SetMatrixAt(i int, m [16]float32) {
	im.meshMu.Lock()
	defer im.meshMu.Unlock()
	im.matrices[i] = m
}

// InstanceWorldMatrix returns world * instance for instance i.
func (im *InstancedMesh) InstanceWorldMatrix(i int) [16]float32 {
	w := im.WorldMatrix()
	local := im.MatrixAt(i)
	var out [16]float32
	common.Mul4(out[:], w[:], local[:])
	return out
}

// InstanceWorldBounds returns the world bounds of instance i.
func (im *InstancedMesh) InstanceWorldBounds(i int) common.Box {
	m := im.InstanceWorldMatrix(i)
	return im.Geometry().Bounds().Transform(m[:])
}

// Drawable is implemented by Mesh and InstancedMesh.
type Drawable interface {
	Node
	AsMesh() *Mesh
}

var (
	_ Drawable = &Mesh{}
	_ Drawable = &InstancedMesh{}
)
