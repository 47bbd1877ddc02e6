package input

import (
	"sync"
)

// CallbackHandle unregisters a gesture callback.
type CallbackHandle struct {
	once   sync.Once
	remove func()
}

// Remove unregisters the callback. It is safe to call more than once.
func (h *CallbackHandle) Remove() {
	if h == nil || h.remove == nil {
		return
	}
	h.once.Do(h.remove)
}

// callbacks is an ordered, removable list of gesture handlers.
type callbacks struct {
	mu     sync.Mutex
	nextID uint64
	ids    []uint64
	fns    map[uint64]func([]Hit)
}

func (c *callbacks) add(fn func([]Hit)) *CallbackHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fns == nil {
		c.fns = make(map[uint64]func([]Hit))
	}
	c.nextID++
	id := c.nextID
	c.ids = append(c.ids, id)
	c.fns[id] = fn
	return &CallbackHandle{remove: func() { c.remove(id) }}
}

func (c *callbacks) remove(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.fns, id)
	for i, v := range c.ids {
		if v == id {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			break
		}
	}
}

func (c *callbacks) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ids)
}

// emit calls every handler in registration order outside the lock.
func (c *callbacks) emit(hits []Hit) {
	c.mu.Lock()
	fns := make([]func([]Hit), 0, len(c.ids))
	for _, id := range c.ids {
		fns = append(fns, c.fns[id])
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(hits)
	}
}
