package window

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
)

// Document resolves surface ids to surfaces, so a stage can be bound by id.
type Document struct {
	mu       sync.RWMutex
	surfaces map[string]Surface
}

func NewDocument(surfaces ...Surface) *Document {
	d := &Document{surfaces: make(map[string]Surface)}
	for _, s := range surfaces {
		d.Register(s)
	}
	return d
}

// Register makes s resolvable under s.ID(), replacing any surface with the same id.
func (d *Document) Register(s Surface) {
	if s == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.surfaces[s.ID()] = s
}

// Unregister removes the surface registered under id.
func (d *Document) Unregister(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.surfaces, id)
}

// Resolve returns the surface registered under id.
//
// Parameters:
//   - id: the surface id
//
// Returns:
//   - Surface: the surface
//   - error: common.ErrSurfaceNotFound if no surface has that id
func (d *Document) Resolve(id string) (Surface, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.surfaces[id]
	if !ok {
		return nil, fmt.Errorf("surface %q: %w", id, common.ErrSurfaceNotFound)
	}
	return s, nil
}
