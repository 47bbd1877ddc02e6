package scene

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-fx/common"
)

var nextID atomic.Uint64

// Node is anything that can be placed in the scene graph.
// Every node embeds an Object which carries identity, hierarchy and the local transform.
type Node interface {
	// AsObject returns the embedded Object.
	//
	// Returns:
	//   - *Object: the node's object base
	AsObject() *Object
}

// Object is the base of every scene node. The zero value is not usable; construct nodes
// through NewGroup, NewMesh or NewInstancedMesh.
type Object struct {
	mu       sync.RWMutex
	id       uint64
	name     string
	self     Node
	parent   Node
	children []Node

	position common.Vec3
	rotation common.Quat
	scale    common.Vec3

	visible       atomic.Bool
	castShadow    bool
	receiveShadow bool
}

var _ Node = &Object{}

// Init prepares an Object embedded in a node type defined outside this package.
// It must be called once, before the node is used.
//
// Parameters:
//   - self: the node embedding o
//   - name: the node name
func (o *Object) Init(self Node, name string) {
	o.name = name
	o.init(self)
}

func (o *Object) init(self Node) {
	o.id = nextID.Add(1)
	o.self = self
	o.rotation = common.QuatIdentity()
	o.scale = common.Vec3{X: 1, Y: 1, Z: 1}
	o.visible.Store(true)
}

// NewGroup returns an empty node used to group children under a shared transform.
//
// Parameters:
//   - name: the node name
//
// Returns:
//   - *Object: the group
func NewGroup(name string) *Object {
	o := &Object{name: name}
	o.init(o)
	return o
}

func (o *Object) AsObject() *Object {
	return o
}

// ID returns the process-unique identifier assigned at construction.
func (o *Object) ID() uint64 {
	return o.id
}

// Node returns the concrete node that embeds this object.
func (o *Object) Node() Node {
	return o.self
}

func (o *Object) Name() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.name
}

func (o *Object) SetName(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.name = name
}

func (o *Object) Position() common.Vec3 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.position
}

func (o *Object) SetPosition(p common.Vec3) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.position = p
}

func (o *Object) Rotation() common.Quat {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.rotation
}

func (o *Object) SetRotation(q common.Quat) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rotation = q.Normalize()
}

func (o *Object) Scale() common.Vec3 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.scale
}

func (o *Object) SetScale(s common.Vec3) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.scale = s
}

// Visible reports whether the node and its subtree are drawn.
func (o *Object) Visible() bool {
	return o.visible.Load()
}

func (o *Object) SetVisible(v bool) {
	o.visible.Store(v)
}

func (o *Object) CastShadow() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.castShadow
}

func (o *Object) ReceiveShadow() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.receiveShadow
}

// SetShadows sets whether the node casts and receives shadows.
func (o *Object) SetShadows(cast, receive bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.castShadow = cast
	o.receiveShadow = receive
}

// Parent returns the node this object is attached to, or nil when detached.
func (o *Object) Parent() Node {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.parent
}

// Children returns a snapshot of the direct children.
func (o *Object) Children() []Node {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]Node, len(o.children))
	copy(out, o.children)
	return out
}

// Add attaches child to this object, detaching it from any previous parent first.
//
// Parameters:
//   - child: the node to attach
func (o *Object) Add(child Node) {
	if child == nil {
		return
	}
	c := child.AsObject()
	if c == o {
		return
	}
	c.RemoveFromParent()

	o.mu.Lock()
	o.children = append(o.children, child)
	o.mu.Unlock()

	c.mu.Lock()
	c.parent = o.self
	c.mu.Unlock()
}

// Remove detaches child if it is a direct child of this object.
//
// Parameters:
//   - child: the node to detach
//
// Returns:
//   - bool: true if the child was attached and has been removed
func (o *Object) Remove(child Node) bool {
	if child == nil {
		return false
	}
	c := child.AsObject()

	o.mu.Lock()
	idx := -1
	for i, n := range o.children {
		if n.AsObject() == c {
			idx = i
			break
		}
	}
	if idx < 0 {
		o.mu.Unlock()
		return false
	}
	o.children = append(o.children[:idx], o.children[idx+1:]...)
	o.mu.Unlock()

	c.mu.Lock()
	c.parent = nil
	c.mu.Unlock()
	return true
}

// RemoveFromParent detaches the object from its parent. It is a no-op for detached objects.
//
// Returns:
//   - bool: true if the object was attached
func (o *Object) RemoveFromParent() bool {
	p := o.Parent()
	if p == nil {
		return false
	}
	return p.AsObject().Remove(o.self)
}

// LocalMatrix returns the column-major transform relative to the parent.
func (o *Object) LocalMatrix() [16]float32 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	var m [16]float32
	common.Compose(m[:], o.position, o.rotation, o.scale)
	return m
}

// WorldMatrix returns the column-major transform from local to world space.
func (o *Object) WorldMatrix() [16]float32 {
	local := o.LocalMatrix()
	p := o.Parent()
	if p == nil {
		return local
	}
	parent := p.AsObject().WorldMatrix()
	var out [16]float32
	common.Mul4(out[:], parent[:], local[:])
	return out
}

// WorldTransform returns the world-space position, rotation and scale of the object.
func (o *Object) WorldTransform() (common.Vec3, common.Quat, common.Vec3) {
	m := o.WorldMatrix()
	return common.Decompose(m[:])
}

// WorldPosition returns the world-space origin of the object.
func (o *Object) WorldPosition() common.Vec3 {
	m := o.WorldMatrix()
	return common.Vec3{X: m[12], Y: m[13], Z: m[14]}
}

// Traverse calls fn for root and every descendant in depth-first pre-order.
//
// Parameters:
//   - root: the subtree root
//   - fn: the visitor
func Traverse(root Node, fn func(Node)) {
	if root == nil {
		return
	}
	fn(root)
	for _, c := range root.AsObject().Children() {
		Traverse(c, fn)
	}
}

// WorldBounds returns the world-space bounding box of every mesh in the subtree.
//
// Parameters:
//   - root: the subtree root
//
// Returns:
//   - common.Box: the union of mesh bounds, empty if the subtree has no geometry
func WorldBounds(root Node) common.Box {
	out := common.EmptyBox()
	Traverse(root, func(n Node) {
		switch v := n.(type) {
		case *InstancedMesh:
			for i := 0; i < v.Count(); i++ {
				out = out.Union(v.InstanceWorldBounds(i))
			}
		case *Mesh:
			out = out.Union(v.WorldBounds())
		}
	})
	return out
}
