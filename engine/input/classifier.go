package input

import (
	"image"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
)

// DefaultDoubleClickWindow is the time a second pointer-down has to arrive to form a double click.
const DefaultDoubleClickWindow = 300 * time.Millisecond

// GestureState is the classifier's position in the click state machine.
type GestureState int

const (
	// StateIdle means no click is pending.
	StateIdle GestureState = iota
	// StateAwaitingSecondClick means one click arrived and the debounce timer is running.
	StateAwaitingSecondClick
)

func (s GestureState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingSecondClick:
		return "awaiting_second_click"
	}
	return "unknown"
}

// Timer is a pending debounce timer.
type Timer interface {
	// Stop cancels the timer, reporting whether it was still pending.
	Stop() bool
}

// Clock schedules debounce timers. The default uses time.AfterFunc.
type Clock interface {
	// AfterFunc calls f once d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Classifier turns pointer events on one surface into hover, click and double-click gestures
// against a set of clickable scene nodes.
//
// A pointer-down arms a debounce timer. A second pointer-down before it fires cancels it and emits a
// double click at the second position; otherwise the timer emits a single click at the first
// position. Every pointer-down cancels a pending timer first, so clicks never accumulate beyond two.
// Pointer moves emit hover on every call, including when nothing is hit.
type Classifier struct {
	mu       sync.Mutex
	camera   camera.Camera
	bounds   func() image.Rectangle
	targets  []scene.Node
	clock    Clock
	dispatch func(func())
	window   time.Duration

	count   int
	pending Timer
	gen     uint64
	firstX  float32
	firstY  float32

	hover       callbacks
	click       callbacks
	doubleClick callbacks
}

// NewClassifier creates a classifier casting rays through cam. Pointer positions are converted
// to normalized device coordinates against the rectangle returned by bounds.
//
// Parameters:
//   - cam: the camera casting pick rays
//   - bounds: returns the surface rectangle in pointer coordinates
//   - options: variadic list of ClassifierBuilderOption functions
//
// Returns:
//   - *Classifier: the classifier
func NewClassifier(cam camera.Camera, bounds func() image.Rectangle, options ...ClassifierBuilderOption) *Classifier {
	if cam == nil || bounds == nil {
		panic("input: classifier requires a camera and a bounds function")
	}
	c := &Classifier{
		camera:   cam,
		bounds:   bounds,
		clock:    realClock{},
		dispatch: func(f func()) { f() },
		window:   DefaultDoubleClickWindow,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// SetTargets replaces the clickable nodes. Children of each target are tested too.
func (c *Classifier) SetTargets(nodes ...scene.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.targets = append([]scene.Node(nil), nodes...)
}

// AddTarget appends one clickable node.
func (c *Classifier) AddTarget(n scene.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.targets = append(c.targets, n)
}

func (c *Classifier) Targets() []scene.Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]scene.Node(nil), c.targets...)
}

// OnHover registers fn to receive the hits under the pointer on every move.
//
// Parameters:
//   - fn: receives the hits nearest first, possibly empty
//
// Returns:
//   - *CallbackHandle: removes the registration
func (c *Classifier) OnHover(fn func([]Hit)) *CallbackHandle {
	return c.hover.add(fn)
}

// OnClick registers fn to receive the hits of resolved single clicks.
func (c *Classifier) OnClick(fn func([]Hit)) *CallbackHandle {
	return c.click.add(fn)
}

// OnDoubleClick registers fn to receive the hits of double clicks.
func (c *Classifier) OnDoubleClick(fn func([]Hit)) *CallbackHandle {
	return c.doubleClick.add(fn)
}

// State returns the current gesture state.
func (c *Classifier) State() GestureState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.count == 1 {
		return StateAwaitingSecondClick
	}
	return StateIdle
}

// Pick returns the hits under the pointer position (x, y).
//
// Parameters:
//   - x, y: the pointer position in the coordinate space of the bounds
//
// Returns:
//   - []Hit: the hits, nearest first
func (c *Classifier) Pick(x, y float32) []Hit {
	return Raycast(c.camera, NDC(c.bounds(), x, y), c.Targets())
}

// PointerMove emits hover with the hits at (x, y).
func (c *Classifier) PointerMove(x, y float32) {
	c.hover.emit(c.Pick(x, y))
}

// PointerDown advances the click state machine.
func (c *Classifier) PointerDown(x, y float32) {
	c.mu.Lock()
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	c.gen++
	c.count++

	if c.count >= 2 {
		c.count = 0
		c.mu.Unlock()
		common.Logger().Debug("gesture resolved", "kind", "double_click")
		c.doubleClick.emit(c.Pick(x, y))
		return
	}

	c.firstX, c.firstY = x, y
	gen := c.gen
	c.pending = c.clock.AfterFunc(c.window, func() {
		c.dispatch(func() { c.expire(gen) })
	})
	c.mu.Unlock()
}

// expire resolves a single click unless the timer generation was superseded.
func (c *Classifier) expire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.count != 1 {
		c.mu.Unlock()
		return
	}
	c.count = 0
	c.pending = nil
	x, y := c.firstX, c.firstY
	c.mu.Unlock()

	common.Logger().Debug("gesture resolved", "kind", "click")
	c.click.emit(c.Pick(x, y))
}

// Reset cancels any pending click without emitting it.
func (c *Classifier) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	c.gen++
	c.count = 0
}
