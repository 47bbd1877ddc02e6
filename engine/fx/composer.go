package fx

import (
	"fmt"
	"image"
	"slices"
	"sync"
)

// composer is the implementation of the Composer interface.
type composer struct {
	mu *sync.Mutex

	name           string
	renderToScreen bool

	passesMu *sync.RWMutex
	passes   []Pass

	width  int
	height int
	read   *image.RGBA
	write  *image.RGBA
}

// Composer runs an ordered chain of passes over a pair of ping-pong buffers.
//
// After Render the finished frame is in Output. A composer that does not render to screen is used
// as an intermediate producer whose Output another pass samples.
type Composer interface {
	// Name returns the composer name.
	Name() string

	// RenderToScreen reports whether Output is meant to be presented.
	RenderToScreen() bool

	// AddPass appends p to the chain and sizes it.
	//
	// Parameters:
	//   - p: the pass to append
	AddPass(p Pass)

	// InsertPass inserts p at index, clamped to the chain bounds.
	//
	// Parameters:
	//   - p: the pass to insert
	//   - index: the position in the chain
	InsertPass(p Pass, index int)

	// RemovePass removes p from the chain.
	//
	// Returns:
	//   - bool: true if p was in the chain
	RemovePass(p Pass) bool

	// Pass looks up a pass by name.
	//
	// Parameters:
	//   - name: the pass name
	//
	// Returns:
	//   - Pass: the first pass with that name
	//   - bool: true if found
	Pass(name string) (Pass, bool)

	// Passes returns a snapshot of the chain in order.
	Passes() []Pass

	// SetSize reallocates the buffers and resizes every pass.
	//
	// Parameters:
	//   - width: buffer width in pixels
	//   - height: buffer height in pixels
	SetSize(width, height int)

	// Size returns the buffer size.
	Size() (int, int)

	// Render runs every enabled pass in order.
	//
	// Parameters:
	//   - ctx: the frame being drawn
	//
	// Returns:
	//   - error: the first pass error, wrapped with the pass name
	Render(ctx *FrameContext) error

	// Output returns the buffer holding the most recent result.
	Output() *image.RGBA
}

var _ Composer = &composer{}

// NewComposer creates an empty composer with 1x1 buffers.
//
// Parameters:
//   - options: variadic list of ComposerBuilderOption functions
//
// Returns:
//   - Composer: the composer
func NewComposer(options ...ComposerBuilderOption) Composer {
	c := &composer{
		mu:             &sync.Mutex{},
		passesMu:       &sync.RWMutex{},
		name:           "composer",
		renderToScreen: true,
	}
	for _, option := range options {
		option(c)
	}
	if c.read == nil {
		c.SetSize(1, 1)
	}
	return c
}

func (c *composer) Name() string {
	return c.name
}

func (c *composer) RenderToScreen() bool {
	return c.renderToScreen
}

func (c *composer) AddPass(p Pass) {
	c.InsertPass(p, len(c.Passes()))
}

func (c *composer) InsertPass(p Pass, index int) {
	w, h := c.Size()
	p.SetSize(w, h)

	c.passesMu.Lock()
	defer c.passesMu.Unlock()
	index = max(0, min(index, len(c.passes)))
	c.passes = slices.Insert(c.passes, index, p)
}

func (c *composer) RemovePass(p Pass) bool {
	c.passesMu.Lock()
	defer c.passesMu.Unlock()
	i := slices.Index(c.passes, p)
	if i < 0 {
		return false
	}
	c.passes = slices.Delete(c.passes, i, i+1)
	return true
}

func (c *composer) Pass(name string) (Pass, bool) {
	c.passesMu.RLock()
	defer c.passesMu.RUnlock()
	for _, p := range c.passes {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

func (c *composer) Passes() []Pass {
	c.passesMu.RLock()
	defer c.passesMu.RUnlock()
	return slices.Clone(c.passes)
}

func (c *composer) SetSize(width, height int) {
	width, height = max(width, 1), max(height, 1)

	c.mu.Lock()
	if c.read == nil || c.width != width || c.height != height {
		c.width, c.height = width, height
		c.read = image.NewRGBA(image.Rect(0, 0, width, height))
		c.write = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	c.mu.Unlock()

	for _, p := range c.Passes() {
		p.SetSize(width, height)
	}
}

func (c *composer) Size() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

func (c *composer) Render(ctx *FrameContext) error {
	if ctx == nil {
		return fmt.Errorf("%s: nil frame context", c.name)
	}
	passes := c.Passes()

	c.mu.Lock()
	defer c.mu.Unlock()

	frame := *ctx
	frame.Composer = c
	frame.Target = nil
	for _, p := range passes {
		if !p.Enabled() {
			continue
		}
		swap, err := p.Render(&frame, c.read, c.write)
		if err != nil {
			return fmt.Errorf("%s: pass %s: %w", c.name, p.Name(), err)
		}
		if swap {
			c.read, c.write = c.write, c.read
		}
	}
	return nil
}

func (c *composer) Output() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read
}
