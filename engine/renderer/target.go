package renderer

import (
	"image"
	"math"

	"github.com/fogleman/fauxgl"
)

// Target is an offscreen color and depth buffer pair that the renderer draws into.
type Target struct {
	width  int
	height int
	ctx    *fauxgl.Context
	color  *image.RGBA
}

// NewTarget allocates a target of the given size in physical pixels.
//
// Parameters:
//   - width: buffer width, clamped to at least 1
//   - height: buffer height, clamped to at least 1
//
// Returns:
//   - *Target: the target
func NewTarget(width, height int) *Target {
	t := &Target{}
	t.Resize(width, height)
	return t
}

// Resize reallocates the buffers when the size changes. The contents are undefined afterwards.
func (t *Target) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if t.ctx != nil && t.width == width && t.height == height {
		return
	}
	t.width, t.height = width, height
	t.ctx = fauxgl.NewContext(width, height)
	t.color = image.NewRGBA(image.Rect(0, 0, width, height))
}

func (t *Target) Size() (int, int) {
	return t.width, t.height
}

// Color returns the resolved color image. Passes may read and overwrite it in place.
func (t *Target) Color() *image.RGBA {
	return t.color
}

// DepthAt returns the stored depth at pixel (x, y). Smaller is nearer; pixels no surface
// covered report math.MaxFloat64.
func (t *Target) DepthAt(x, y int) float64 {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return math.MaxFloat64
	}
	return t.ctx.DepthBuffer[y*t.width+x]
}

// Covered reports whether any surface was drawn at pixel (x, y).
func (t *Target) Covered(x, y int) bool {
	return t.DepthAt(x, y) < math.MaxFloat64
}
