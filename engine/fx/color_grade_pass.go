package fx

import (
	"image"
	"image/color"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/anthonynsimon/bild/adjust"
)

const (
	// ColorGradePassName is the name of every ColorGradePass.
	ColorGradePassName = "color_grade"

	// MaxColorGain bounds each channel gain.
	MaxColorGain float32 = 2
)

// ColorGradePass multiplies every pixel by a per-channel gain. A gain of (1, 1, 1) leaves the
// frame unchanged.
type ColorGradePass struct {
	basePass
	gain common.Color
}

var _ Pass = &ColorGradePass{}

// NewColorGradePass creates an enabled pass with identity gain.
func NewColorGradePass() *ColorGradePass {
	p := &ColorGradePass{gain: common.ColorWhite}
	p.init(ColorGradePassName, true)
	return p
}

func (p *ColorGradePass) Gain() common.Color {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.gain
}

// SetGain sets the channel gains, each clamped to [0, 2].
func (p *ColorGradePass) SetGain(c common.Color) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gain = common.Color{
		R: clampf(c.R, 0, MaxColorGain),
		G: clampf(c.G, 0, MaxColorGain),
		B: clampf(c.B, 0, MaxColorGain),
	}
}

func (p *ColorGradePass) Render(_ *FrameContext, read, write *image.RGBA) (bool, error) {
	gain := p.Gain()
	if gain == common.ColorWhite {
		return false, nil
	}
	graded := adjust.Apply(read, func(c color.RGBA) color.RGBA {
		return color.RGBA{
			R: to8(float32(c.R) / 255 * gain.R),
			G: to8(float32(c.G) / 255 * gain.G),
			B: to8(float32(c.B) / 255 * gain.B),
			A: c.A,
		}
	})
	copyInto(write, graded)
	return true, nil
}
