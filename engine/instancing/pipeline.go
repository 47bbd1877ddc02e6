package instancing

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
)

// Scheduler runs tasks on a later tick of the frame loop, never inside the call that scheduled them.
type Scheduler interface {
	// Defer queues task for the next idle tick.
	//
	// Parameters:
	//   - task: the function to run
	Defer(task func())
}

// transform is one captured world transform.
type transform struct {
	position common.Vec3
	rotation common.Quat
	scale    common.Vec3
}

// source is the geometry and material a captured mesh renders with.
type source struct {
	mesh     *scene.Mesh
	geometry *scene.Geometry
	material *scene.Material
}

func (src source) dispose() {
	src.geometry.Dispose()
	if tex := src.material.Texture(); tex != nil {
		tex.Dispose()
	}
	src.material.Dispose()
}

// group is the cache entry of one consolidation key.
type group struct {
	geometry   *scene.Geometry
	material   *scene.Material
	transforms []transform
}

type pipeline struct {
	mu        sync.Mutex
	scene     *scene.Scene
	scheduler Scheduler

	groups map[string]*group
	order  []string

	removals     map[uint64]*scene.Mesh
	removalOrder []uint64

	// parked holds sources whose disposal tick found them still attached to a scene graph.
	parked map[uint64]source

	overrides     map[string]MaterialOverride
	castShadow    bool
	receiveShadow bool
}

// Pipeline merges meshes that share a geometry and material into one instanced mesh per group key.
// Meshes are captured during a loading phase and consolidated by a single Build call.
type Pipeline interface {
	// Capture records the world transform of every mesh under groupKey. The first mesh seen for a
	// key provides the shared geometry and material; later meshes only contribute transforms.
	// Each mesh is marked for removal and its geometry, material and texture are disposed on the
	// next idle tick. A mesh still attached to a parent when that tick runs keeps its resources
	// until a later Build detaches it. An empty slice is a no-op.
	//
	// Parameters:
	//   - meshes: the source meshes, in instance order
	//   - groupKey: the consolidation group name
	//
	// Returns:
	//   - error: common.ErrDuplicateGroup if groupKey is already registered; nothing is captured
	Capture(meshes []*scene.Mesh, groupKey string) error

	// Build detaches every captured mesh from its parent, then adds one instanced mesh per key to
	// the scene and its registry in first-capture order. A successful Build drains the cache; a
	// rejected one leaves the cache and every source mesh untouched.
	//
	// Returns:
	//   - error: common.ErrDuplicateGroup if a key is already registered; nothing is inserted
	Build() error

	// Groups returns the keys currently cached, in first-capture order.
	//
	// Returns:
	//   - []string: the pending group keys
	Groups() []string

	// Len returns the number of transforms cached under groupKey.
	//
	// Parameters:
	//   - groupKey: the consolidation group name
	//
	// Returns:
	//   - int: the pending instance count
	Len(groupKey string) int

	// Removals returns the number of source meshes awaiting detachment.
	//
	// Returns:
	//   - int: the number of meshes in the removal set
	Removals() int
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a consolidation pipeline inserting into s.
//
// Parameters:
//   - s: the scene receiving the instanced meshes
//   - scheduler: runs the deferred disposal tasks
//   - options: variadic list of PipelineBuilderOption functions
//
// Returns:
//   - Pipeline: the pipeline
func NewPipeline(s *scene.Scene, scheduler Scheduler, options ...PipelineBuilderOption) Pipeline {
	if s == nil || scheduler == nil {
		panic("instancing: pipeline requires a scene and a scheduler")
	}
	p := &pipeline{
		scene:         s,
		scheduler:     scheduler,
		groups:        make(map[string]*group),
		removals:      make(map[uint64]*scene.Mesh),
		parked:        make(map[uint64]source),
		overrides:     DefaultOverrides(),
		castShadow:    true,
		receiveShadow: true,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *pipeline) Capture(meshes []*scene.Mesh, groupKey string) error {
	if len(meshes) == 0 {
		return nil
	}
	if p.scene.Registry().Has(groupKey) {
		common.Logger().Error("capture rejected", "key", groupKey, "error", common.ErrDuplicateGroup)
		return fmt.Errorf("capture group %q: %w", groupKey, common.ErrDuplicateGroup)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, m := range meshes {
		if m == nil {
			continue
		}
		g, ok := p.groups[groupKey]
		if !ok {
			g = &group{geometry: m.Geometry().Clone(), material: m.Material().Clone()}
			if tex := g.material.Texture(); tex != nil {
				g.material.SetTexture(tex.Clone())
			}
			p.groups[groupKey] = g
			p.order = append(p.order, groupKey)
		}

		pos, rot, scale := m.WorldTransform()
		g.transforms = append(g.transforms, transform{position: pos, rotation: rot, scale: scale})

		if _, seen := p.removals[m.ID()]; !seen {
			p.removals[m.ID()] = m
			p.removalOrder = append(p.removalOrder, m.ID())
		}

		src := source{mesh: m, geometry: m.Geometry(), material: m.Material()}
		p.scheduler.Defer(func() { p.disposeSource(src) })
	}
	return nil
}

// disposeSource releases src unless its mesh is still part of a scene graph, in which case it
// waits for the Build that detaches it.
func (p *pipeline) disposeSource(src source) {
	if src.mesh.Parent() != nil {
		p.mu.Lock()
		p.parked[src.mesh.ID()] = src
		p.mu.Unlock()
		return
	}
	src.dispose()
}

func (p *pipeline) Build() error {
	registry := p.scene.Registry()

	p.mu.Lock()
	for _, key := range p.order {
		if registry.Has(key) {
			p.mu.Unlock()
			common.Logger().Error("instanced group rejected", "key", key, "error", common.ErrDuplicateGroup)
			return fmt.Errorf("build group %q: %w", key, common.ErrDuplicateGroup)
		}
	}
	groups, order := p.groups, p.order
	removals, removalOrder := p.removals, p.removalOrder
	p.groups = make(map[string]*group)
	p.order = nil
	p.removals = make(map[uint64]*scene.Mesh)
	p.removalOrder = nil
	overrides := p.overrides
	cast, receive := p.castShadow, p.receiveShadow
	p.mu.Unlock()

	detached := 0
	for _, id := range removalOrder {
		if removals[id].RemoveFromParent() {
			detached++
		}
	}
	p.releaseParked()

	for _, key := range order {
		g := groups[key]
		if len(g.transforms) == 0 {
			continue
		}
		im := scene.NewInstancedMesh(key, g.geometry, g.material, len(g.transforms))
		for i, t := range g.transforms {
			var m [16]float32
			common.Compose(m[:], t.position, t.rotation, t.scale)
			im.SetMatrixAt(i, m)
		}
		im.SetShadows(cast, receive)
		if override, ok := overrides[key]; ok {
			override(g.material)
		}
		p.scene.Add(im)
		registry.Register(key, im)
		common.Logger().Debug("instanced group built", "key", key, "instances", len(g.transforms))
	}
	common.Logger().Info("consolidation complete", "groups", len(order), "detached", detached)
	return nil
}

// releaseParked schedules disposal of parked sources whose meshes are now detached.
func (p *pipeline) releaseParked() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, src := range p.parked {
		if src.mesh.Parent() != nil {
			continue
		}
		delete(p.parked, id)
		p.scheduler.Defer(src.dispose)
	}
}

func (p *pipeline) Groups() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

func (p *pipeline) Len(groupKey string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if g, ok := p.groups[groupKey]; ok {
		return len(g.transforms)
	}
	return 0
}

func (p *pipeline) Removals() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.removals)
}
