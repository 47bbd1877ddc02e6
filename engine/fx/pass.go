package fx

import (
	"image"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
	"github.com/chewxy/math32"
)

// FrameContext carries what passes need to draw one frame.
type FrameContext struct {
	Scene    *scene.Scene
	Camera   camera.Camera
	Renderer renderer.Renderer

	// Elapsed is the time since the stage started, used by animated effects.
	Elapsed time.Duration

	// Target is the render target filled by the most recent RenderPass of the running composer.
	Target *renderer.Target

	// Composer is the composer currently running the pass.
	Composer Composer
}

// Pass is one stage of a Composer chain.
//
// A pass reads the current frame from read. It either modifies read in place and returns false,
// or writes its result into write and returns true so the composer swaps the two buffers.
// Every pass owns exactly one enabled flag; disabled passes are skipped by the composer.
type Pass interface {
	// Name returns the name used for composer lookups.
	Name() string

	// Enabled reports whether the pass runs.
	Enabled() bool

	// SetEnabled turns the pass on or off.
	SetEnabled(enabled bool)

	// SetSize is called by the composer whenever the buffer size changes.
	//
	// Parameters:
	//   - width: buffer width in pixels
	//   - height: buffer height in pixels
	SetSize(width, height int)

	// Render applies the pass.
	//
	// Parameters:
	//   - ctx: the frame being drawn
	//   - read: the current frame
	//   - write: scratch buffer of the same size
	//
	// Returns:
	//   - bool: true if the result is in write and the buffers must be swapped
	//   - error: an error if the pass cannot run
	Render(ctx *FrameContext, read, write *image.RGBA) (bool, error)
}

// basePass carries the name and enabled flag shared by every pass.
type basePass struct {
	mu      sync.RWMutex
	name    string
	enabled bool
	width   int
	height  int
}

func (p *basePass) init(name string, enabled bool) {
	p.name = name
	p.enabled = enabled
}

func (p *basePass) Name() string {
	return p.name
}

func (p *basePass) Enabled() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.enabled
}

func (p *basePass) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
}

func (p *basePass) SetSize(width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.width, p.height = width, height
}

func (p *basePass) size() (int, int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.width, p.height
}

func clampf(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}

func to8(v float32) uint8 {
	return uint8(clampf(v, 0, 1)*255 + 0.5)
}

func luma(r, g, b uint8) float32 {
	return (0.299*float32(r) + 0.587*float32(g) + 0.114*float32(b)) / 255
}
