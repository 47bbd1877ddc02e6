package fx

import (
	"image"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/chewxy/math32"
)

const (
	// FXAAPassName is the name of every FXAAPass.
	FXAAPassName = "fxaa"

	fxaaEdgeThreshold    float32 = 0.125
	fxaaEdgeThresholdMin float32 = 0.0312
)

// FXAAPass smooths aliased edges by blending pixels that sit on a strong luma gradient with their
// neighbours across the edge. Its sampling step is the reciprocal of the buffer size and is
// re-derived on every resize.
type FXAAPass struct {
	basePass
	resolution common.Vec2
}

var _ Pass = &FXAAPass{}

// NewFXAAPass creates an enabled FXAAPass.
func NewFXAAPass() *FXAAPass {
	p := &FXAAPass{resolution: common.Vec2{X: 1, Y: 1}}
	p.init(FXAAPassName, true)
	return p
}

// Resolution returns (1/width, 1/height) of the current buffer.
func (p *FXAAPass) Resolution() common.Vec2 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.resolution
}

func (p *FXAAPass) SetSize(width, height int) {
	p.basePass.SetSize(width, height)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resolution = common.Vec2{X: 1 / float32(max(width, 1)), Y: 1 / float32(max(height, 1))}
}

func (p *FXAAPass) Render(_ *FrameContext, read, write *image.RGBA) (bool, error) {
	res := p.Resolution()
	w, h := read.Rect.Dx(), read.Rect.Dy()
	stepX := max(int(math32.Round(res.X*float32(w))), 1)
	stepY := max(int(math32.Round(res.Y*float32(h))), 1)

	lumaAt := func(x, y int) float32 {
		x = max(0, min(x, w-1))
		y = max(0, min(y, h-1))
		i := read.PixOffset(read.Rect.Min.X+x, read.Rect.Min.Y+y)
		return luma(read.Pix[i], read.Pix[i+1], read.Pix[i+2])
	}

	for y := range h {
		for x := range w {
			di := write.PixOffset(write.Rect.Min.X+x, write.Rect.Min.Y+y)
			si := read.PixOffset(read.Rect.Min.X+x, read.Rect.Min.Y+y)

			m := lumaAt(x, y)
			n, s := lumaAt(x, y-stepY), lumaAt(x, y+stepY)
			e, wl := lumaAt(x+stepX, y), lumaAt(x-stepX, y)
			hi := math32.Max(m, math32.Max(math32.Max(n, s), math32.Max(e, wl)))
			lo := math32.Min(m, math32.Min(math32.Min(n, s), math32.Min(e, wl)))

			if hi-lo < math32.Max(fxaaEdgeThresholdMin, hi*fxaaEdgeThreshold) {
				copy(write.Pix[di:di+4], read.Pix[si:si+4])
				continue
			}

			// Blend across the edge: vertical neighbours for a horizontal edge, otherwise horizontal.
			var ax, ay, bx, by int
			if math32.Abs(n+s-2*m) >= math32.Abs(e+wl-2*m) {
				ax, ay, bx, by = x, y-stepY, x, y+stepY
			} else {
				ax, ay, bx, by = x-stepX, y, x+stepX, y
			}
			ai := read.PixOffset(read.Rect.Min.X+max(0, min(ax, w-1)), read.Rect.Min.Y+max(0, min(ay, h-1)))
			bi := read.PixOffset(read.Rect.Min.X+max(0, min(bx, w-1)), read.Rect.Min.Y+max(0, min(by, h-1)))
			for c := range 3 {
				v := 0.5*float32(read.Pix[si+c]) + 0.25*float32(read.Pix[ai+c]) + 0.25*float32(read.Pix[bi+c])
				write.Pix[di+c] = uint8(v + 0.5)
			}
			write.Pix[di+3] = read.Pix[si+3]
		}
	}
	return true, nil
}
