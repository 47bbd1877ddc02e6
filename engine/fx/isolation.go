package fx

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
)

// isolationMaterial replaces the material of every mesh that must not glow.
var isolationMaterial = scene.NewMaterial(
	scene.WithMaterialName("isolation_black"),
	scene.WithColor(common.ColorBlack),
	scene.WithUnlit(true),
)

type swapped struct {
	mesh     *scene.Mesh
	original *scene.Material
}

// Isolation records the materials swapped out by Isolate. Restore puts them back.
type Isolation struct {
	mu        sync.Mutex
	originals map[uint64]swapped
	order     []uint64
}

// Isolate replaces the material of every mesh under root that is not a member of keep with a flat
// black unlit material, so a render afterwards only shows the kept meshes. The returned token must
// be restored before the next frame; callers should defer Restore right after Isolate.
//
// Parameters:
//   - root: the subtree to isolate, usually the scene
//   - keep: meshes that keep their own material
//
// Returns:
//   - *Isolation: the token holding the original materials
func Isolate(root scene.Node, keep *scene.Set) *Isolation {
	iso := &Isolation{originals: make(map[uint64]swapped)}
	scene.Traverse(root, func(n scene.Node) {
		d, ok := n.(scene.Drawable)
		if !ok || (keep != nil && keep.Has(n)) {
			return
		}
		m := d.AsMesh()
		id := m.ID()
		if _, done := iso.originals[id]; done {
			return
		}
		iso.originals[id] = swapped{mesh: m, original: m.SetMaterial(isolationMaterial)}
		iso.order = append(iso.order, id)
	})
	return iso
}

// Len returns the number of meshes still holding the isolation material.
func (i *Isolation) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.originals)
}

// Restore gives every isolated mesh its original material back. It is safe to call more than once.
func (i *Isolation) Restore() {
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, id := range i.order {
		s, ok := i.originals[id]
		if !ok {
			continue
		}
		s.mesh.SetMaterial(s.original)
		delete(i.originals, id)
	}
	i.order = nil
}
