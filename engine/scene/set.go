package scene

import "sync"

// Set is an identity set of nodes, keyed by object ID. Insertion order is preserved.
type Set struct {
	mu    sync.RWMutex
	index map[uint64]int
	nodes []Node
}

func NewSet(nodes ...Node) *Set {
	s := &Set{index: make(map[uint64]int)}
	for _, n := range nodes {
		s.Add(n)
	}
	return s
}

// Add inserts n. Adding a node twice has no effect.
func (s *Set) Add(n Node) {
	if n == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := n.AsObject().ID()
	if _, ok := s.index[id]; ok {
		return
	}
	s.index[id] = len(s.nodes)
	s.nodes = append(s.nodes, n)
}

// Remove deletes n, reporting whether it was present.
func (s *Set) Remove(n Node) bool {
	if n == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := n.AsObject().ID()
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.nodes); j++ {
		s.index[s.nodes[j].AsObject().ID()] = j
	}
	return true
}

func (s *Set) Has(n Node) bool {
	if n == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[n.AsObject().ID()]
	return ok
}

// HasID reports whether a node with the given object ID is a member.
func (s *Set) HasID(id uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[id]
	return ok
}

func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

// Nodes returns a snapshot of the members in insertion order.
func (s *Set) Nodes() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = nil
	s.index = make(map[uint64]int)
}

// Covers reports whether n or any of its ancestors is a member.
func (s *Set) Covers(n Node) bool {
	for n != nil {
		if s.Has(n) {
			return true
		}
		n = n.AsObject().Parent()
	}
	return false
}
