package scene

import "sync"

// Registry maps names to nodes so that application code can look up objects it did not create,
// such as the instanced meshes produced by consolidation.
type Registry struct {
	mu    sync.RWMutex
	nodes map[string]Node
}

func NewRegistry() *Registry {
	return &Registry{nodes: make(map[string]Node)}
}

// Register stores n under name, replacing any previous entry.
func (r *Registry) Register(name string, n Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes[name] = n
}

// Lookup returns the node registered under name.
func (r *Registry) Lookup(name string) (Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.nodes[name]
	return n, ok
}

func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Unregister removes name, reporting whether it was present.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.nodes[name]
	delete(r.nodes, name)
	return ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes)
}
