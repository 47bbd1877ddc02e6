package window

import (
	"fmt"
	"image"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// PointerButton identifies a pointer button.
type PointerButton int

const (
	PointerPrimary PointerButton = iota
	PointerSecondary
	PointerMiddle
)

// Surface is a host element the stage renders into and receives input from.
// Sizes and pointer coordinates are in logical (device independent) pixels; the
// backing store is ContentSize scaled by DevicePixelRatio.
type Surface interface {
	// ID returns the identifier the surface is registered under in a Document.
	//
	// Returns:
	//   - string: the surface id
	ID() string

	// ContentSize returns the logical size of the drawable area.
	//
	// Returns:
	//   - width, height: size in logical pixels
	ContentSize() (width, height int)

	// DevicePixelRatio returns physical pixels per logical pixel.
	//
	// Returns:
	//   - float32: the ratio, at least 1
	DevicePixelRatio() float32

	// Bounds returns the surface rectangle in the coordinate space of pointer events.
	//
	// Returns:
	//   - image.Rectangle: the bounding box
	Bounds() image.Rectangle

	// SetResizeCallback sets the function called after the content size or pixel ratio changes.
	//
	// Parameters:
	//   - callback: receives the new logical size
	SetResizeCallback(callback func(width, height int))

	// SetPointerDownCallback sets the function called when a pointer button is pressed.
	//
	// Parameters:
	//   - callback: receives the button and pointer position
	SetPointerDownCallback(callback func(button PointerButton, x, y float32))

	// SetPointerUpCallback sets the function called when a pointer button is released.
	//
	// Parameters:
	//   - callback: receives the button and pointer position
	SetPointerUpCallback(callback func(button PointerButton, x, y float32))

	// SetPointerMoveCallback sets the function called when the pointer moves over the surface.
	//
	// Parameters:
	//   - callback: receives the pointer position
	SetPointerMoveCallback(callback func(x, y float32))

	// SetScrollCallback sets the function called on wheel input.
	//
	// Parameters:
	//   - callback: receives the vertical scroll delta
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the function called when a key is pressed or repeats.
	//
	// Parameters:
	//   - callback: receives the key code (see common key codes)
	SetKeyDownCallback(callback func(keyCode uint32))
}

// Window is a native desktop window that acts as a Surface and owns the event loop.
type Window interface {
	Surface

	// SetUpdateCallback sets the function called once per event loop iteration.
	//
	// Parameters:
	//   - callback: the frame function
	SetUpdateCallback(callback func())

	// SurfaceDescriptor returns the descriptor used to create a WebGPU surface for the window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the descriptor, or nil if the window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// FramebufferSize returns the size of the backing store in physical pixels.
	//
	// Returns:
	//   - width, height: size in physical pixels
	FramebufferSize() (width, height int)

	// IsRunning reports whether the window is open.
	//
	// Returns:
	//   - bool: true until the window is closed
	IsRunning() bool

	// Close destroys the window.
	//
	// Returns:
	//   - error: error if the window was never initialized
	Close() error

	// ProcessMessages runs the event loop until the window closes, calling the update
	// callback once per iteration. It must be called from the main goroutine.
	ProcessMessages()
}

type engineWindow struct {
	mu sync.Mutex

	id    string
	title string

	minWidth  int
	minHeight int

	width    int
	height   int
	fbWidth  int
	fbHeight int

	internalWindow any

	onUpdate      func()
	onResize      func(width, height int)
	onScroll      func(delta float32)
	onKeyDown     func(keyCode uint32)
	onPointerDown func(button PointerButton, x, y float32)
	onPointerUp   func(button PointerButton, x, y float32)
	onPointerMove func(x, y float32)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a native window.
//
// Parameters:
//   - options: variadic list of WindowBuilderOption functions to configure the window
//
// Returns:
//   - Window: the window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		id:        "viewport",
		title:     "oxy-fx",
		minWidth:  320,
		minHeight: 200,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) ID() string {
	return w.id
}

func (w *engineWindow) ContentSize() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

func (w *engineWindow) FramebufferSize() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fbWidth, w.fbHeight
}

func (w *engineWindow) DevicePixelRatio() float32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.width <= 0 || w.fbWidth <= 0 {
		return 1
	}
	return max(float32(w.fbWidth)/float32(w.width), 1)
}

func (w *engineWindow) Bounds() image.Rectangle {
	width, height := w.ContentSize()
	return image.Rect(0, 0, width, height)
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetPointerDownCallback(callback func(button PointerButton, x, y float32)) {
	w.onPointerDown = callback
}

func (w *engineWindow) SetPointerUpCallback(callback func(button PointerButton, x, y float32)) {
	w.onPointerUp = callback
}

func (w *engineWindow) SetPointerMoveCallback(callback func(x, y float32)) {
	w.onPointerMove = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

// setSizes records new logical and framebuffer sizes and notifies the resize callback.
func (w *engineWindow) setSizes(width, height, fbWidth, fbHeight int) {
	w.mu.Lock()
	changed := w.width != width || w.height != height || w.fbWidth != fbWidth || w.fbHeight != fbHeight
	w.width, w.height = width, height
	w.fbWidth, w.fbHeight = fbWidth, fbHeight
	w.mu.Unlock()
	if changed && w.onResize != nil {
		w.onResize(width, height)
	}
}
