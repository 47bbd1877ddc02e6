package window

import (
	"image"
	"sync"
)

// VirtualSurface is an in-memory Surface with no native window. Input and resizes are
// injected through its Emit methods. It backs offscreen rendering and tests.
type VirtualSurface struct {
	mu     sync.Mutex
	id     string
	width  int
	height int
	dpr    float32
	origin image.Point

	onResize      func(width, height int)
	onScroll      func(delta float32)
	onKeyDown     func(keyCode uint32)
	onPointerDown func(button PointerButton, x, y float32)
	onPointerUp   func(button PointerButton, x, y float32)
	onPointerMove func(x, y float32)
}

var _ Surface = &VirtualSurface{}

// NewVirtualSurface creates a surface of the given logical size and pixel ratio.
//
// Parameters:
//   - id: the surface id
//   - width, height: logical size
//   - dpr: device pixel ratio; values below 1 are treated as 1
//
// Returns:
//   - *VirtualSurface: the surface
func NewVirtualSurface(id string, width, height int, dpr float32) *VirtualSurface {
	return &VirtualSurface{id: id, width: width, height: height, dpr: max(dpr, 1)}
}

func (v *VirtualSurface) ID() string {
	return v.id
}

func (v *VirtualSurface) ContentSize() (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width, v.height
}

func (v *VirtualSurface) DevicePixelRatio() float32 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.dpr
}

func (v *VirtualSurface) Bounds() image.Rectangle {
	v.mu.Lock()
	defer v.mu.Unlock()
	return image.Rectangle{Min: v.origin, Max: v.origin.Add(image.Pt(v.width, v.height))}
}

// SetOrigin moves the surface within pointer coordinate space.
func (v *VirtualSurface) SetOrigin(p image.Point) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.origin = p
}

func (v *VirtualSurface) SetResizeCallback(callback func(width, height int)) {
	v.onResize = callback
}

func (v *VirtualSurface) SetScrollCallback(callback func(delta float32)) {
	v.onScroll = callback
}

func (v *VirtualSurface) SetKeyDownCallback(callback func(keyCode uint32)) {
	v.onKeyDown = callback
}

func (v *VirtualSurface) SetPointerDownCallback(callback func(button PointerButton, x, y float32)) {
	v.onPointerDown = callback
}

func (v *VirtualSurface) SetPointerUpCallback(callback func(button PointerButton, x, y float32)) {
	v.onPointerUp = callback
}

func (v *VirtualSurface) SetPointerMoveCallback(callback func(x, y float32)) {
	v.onPointerMove = callback
}

// EmitResize changes the size and pixel ratio and notifies the resize callback.
func (v *VirtualSurface) EmitResize(width, height int, dpr float32) {
	v.mu.Lock()
	v.width, v.height, v.dpr = width, height, max(dpr, 1)
	v.mu.Unlock()
	if v.onResize != nil {
		v.onResize(width, height)
	}
}

// EmitPointerDown simulates a button press at (x, y).
func (v *VirtualSurface) EmitPointerDown(button PointerButton, x, y float32) {
	if v.onPointerDown != nil {
		v.onPointerDown(button, x, y)
	}
}

// EmitPointerUp simulates a button release at (x, y).
func (v *VirtualSurface) EmitPointerUp(button PointerButton, x, y float32) {
	if v.onPointerUp != nil {
		v.onPointerUp(button, x, y)
	}
}

// EmitPointerMove simulates pointer movement to (x, y).
func (v *VirtualSurface) EmitPointerMove(x, y float32) {
	if v.onPointerMove != nil {
		v.onPointerMove(x, y)
	}
}

// EmitScroll simulates wheel input.
func (v *VirtualSurface) EmitScroll(delta float32) {
	if v.onScroll != nil {
		v.onScroll(delta)
	}
}

// EmitKeyDown simulates a key press.
func (v *VirtualSurface) EmitKeyDown(keyCode uint32) {
	if v.onKeyDown != nil {
		v.onKeyDown(keyCode)
	}
}
