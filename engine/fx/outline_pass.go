package fx

import (
	"image"
	"image/color"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/chewxy/math32"
)

const (
	// OutlinePassName is the name of every OutlinePass.
	OutlinePassName = "outline"

	MaxEdgeStrength  float32 = 10
	MaxEdgeGlow      float32 = 1
	MinEdgeThickness float32 = 0.1
	MaxEdgeThickness float32 = 5
	MaxPulsePeriod   float32 = 5

	DefaultEdgeStrength  float32 = 3
	DefaultEdgeThickness float32 = 1
)

var (
	DefaultVisibleEdgeColor = common.ColorWhite
	DefaultHiddenEdgeColor  = common.RGB(0.1, 0.04, 0.02)
)

// OutlineSettings holds the six live parameters of an OutlinePass.
type OutlineSettings struct {
	VisibleEdgeColor common.Color
	HiddenEdgeColor  common.Color
	EdgeStrength     float32
	EdgeGlow         float32
	EdgeThickness    float32
	PulsePeriod      float32
}

// clamped returns s with every numeric parameter inside its range.
func (s OutlineSettings) clamped() OutlineSettings {
	s.EdgeStrength = clampf(s.EdgeStrength, 0, MaxEdgeStrength)
	s.EdgeGlow = clampf(s.EdgeGlow, 0, MaxEdgeGlow)
	s.EdgeThickness = clampf(s.EdgeThickness, MinEdgeThickness, MaxEdgeThickness)
	s.PulsePeriod = clampf(s.PulsePeriod, 0, MaxPulsePeriod)
	return s
}

// OutlinePass draws a silhouette around the selected meshes. Edge pixels where the selection is
// the nearest surface get the visible color; edges of occluded parts get the hidden color.
type OutlinePass struct {
	basePass
	selected *scene.Set
	settings OutlineSettings
}

var _ Pass = &OutlinePass{}

// NewOutlinePass creates a disabled outline pass over selected.
//
// Parameters:
//   - selected: the nodes to outline; the set is read every frame
//   - options: variadic list of OutlinePassOption functions
//
// Returns:
//   - *OutlinePass: the pass
func NewOutlinePass(selected *scene.Set, options ...OutlinePassOption) *OutlinePass {
	if selected == nil {
		selected = scene.NewSet()
	}
	p := &OutlinePass{
		selected: selected,
		settings: OutlineSettings{
			VisibleEdgeColor: DefaultVisibleEdgeColor,
			HiddenEdgeColor:  DefaultHiddenEdgeColor,
			EdgeStrength:     DefaultEdgeStrength,
			EdgeThickness:    DefaultEdgeThickness,
		},
	}
	p.init(OutlinePassName, false)
	for _, option := range options {
		option(p)
	}
	p.settings = p.settings.clamped()
	return p
}

// Selected returns the outlined set.
func (p *OutlinePass) Selected() *scene.Set {
	return p.selected
}

func (p *OutlinePass) Settings() OutlineSettings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.settings
}

// SetSettings replaces every parameter, clamping each to its range.
func (p *OutlinePass) SetSettings(s OutlineSettings) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settings = s.clamped()
}

func (p *OutlinePass) update(fn func(*OutlineSettings)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.settings)
	p.settings = p.settings.clamped()
}

func (p *OutlinePass) SetVisibleEdgeColor(c common.Color) {
	p.update(func(s *OutlineSettings) { s.VisibleEdgeColor = c })
}

func (p *OutlinePass) SetHiddenEdgeColor(c common.Color) {
	p.update(func(s *OutlineSettings) { s.HiddenEdgeColor = c })
}

// SetEdgeStrength sets the edge brightness multiplier in [0, 10].
func (p *OutlinePass) SetEdgeStrength(v float32) {
	p.update(func(s *OutlineSettings) { s.EdgeStrength = v })
}

// SetEdgeGlow sets how much the edge is blurred outward, in [0, 1].
func (p *OutlinePass) SetEdgeGlow(v float32) {
	p.update(func(s *OutlineSettings) { s.EdgeGlow = v })
}

// SetEdgeThickness sets the edge width in pixels, in [0.1, 5].
func (p *OutlinePass) SetEdgeThickness(v float32) {
	p.update(func(s *OutlineSettings) { s.EdgeThickness = v })
}

// SetPulsePeriod sets the breathing period in seconds, in [0, 5]. Zero keeps the edge steady.
func (p *OutlinePass) SetPulsePeriod(v float32) {
	p.update(func(s *OutlineSettings) { s.PulsePeriod = v })
}

func (p *OutlinePass) Render(ctx *FrameContext, read, _ *image.RGBA) (bool, error) {
	if p.selected.Len() == 0 || ctx.Target == nil {
		return false, nil
	}
	sel, err := ctx.Renderer.RenderSelection(ctx.Scene, ctx.Camera, p.selected, ctx.Target)
	if err != nil {
		return false, err
	}
	s := p.Settings()

	visible, hidden := extractEdges(sel)
	visibleLevel := spreadEdges(visible, s)
	hiddenLevel := spreadEdges(hidden, s)

	scale := s.EdgeStrength * pulse(s.PulsePeriod, float32(ctx.Elapsed.Seconds()))
	w, h := read.Rect.Dx(), read.Rect.Dy()
	sw, sh := sel.Width, sel.Height
	for y := range h {
		sy := y * sh / max(h, 1)
		for x := range w {
			sx := x * sw / max(w, 1)
			vi := visibleLevel[sy*sw+sx] * scale
			hi := hiddenLevel[sy*sw+sx] * scale
			if vi == 0 && hi == 0 {
				continue
			}
			di := read.PixOffset(read.Rect.Min.X+x, read.Rect.Min.Y+y)
			add := s.VisibleEdgeColor.Scale(vi).Add(s.HiddenEdgeColor.Scale(hi))
			read.Pix[di] = to8(float32(read.Pix[di])/255 + add.R)
			read.Pix[di+1] = to8(float32(read.Pix[di+1])/255 + add.G)
			read.Pix[di+2] = to8(float32(read.Pix[di+2])/255 + add.B)
		}
	}
	return false, nil
}

// extractEdges marks covered selection pixels that touch an uncovered pixel. Each edge pixel is
// classified by its own mask value.
func extractEdges(sel *renderer.Selection) (visible, hidden *image.Gray) {
	rect := image.Rect(0, 0, sel.Width, sel.Height)
	visible, hidden = image.NewGray(rect), image.NewGray(rect)
	for y := range sel.Height {
		for x := range sel.Width {
			v := sel.At(x, y)
			if v == renderer.MaskNone {
				continue
			}
			if sel.At(x-1, y) != renderer.MaskNone && sel.At(x+1, y) != renderer.MaskNone &&
				sel.At(x, y-1) != renderer.MaskNone && sel.At(x, y+1) != renderer.MaskNone {
				continue
			}
			i := y*sel.Width + x
			if v == renderer.MaskVisible {
				visible.Pix[i] = 255
			} else {
				hidden.Pix[i] = 255
			}
		}
	}
	return visible, hidden
}

// spreadEdges widens an edge mask by the thickness, adds the blurred glow, and returns the
// per-pixel intensity in [0, 1+glow]. A thickness below one pixel thins the line by dimming it
// in proportion.
func spreadEdges(edges *image.Gray, s OutlineSettings) []float32 {
	var img image.Image = edges
	if s.EdgeThickness > 1 {
		img = effect.Dilate(img, float64(s.EdgeThickness-1))
	}
	core := grayLevels(img)
	if coverage := s.EdgeThickness; coverage < 1 {
		for i := range core {
			core[i] *= max(coverage, 0)
		}
	}
	if s.EdgeGlow > 0 {
		glow := grayLevels(blur.Gaussian(img, float64(1+s.EdgeGlow*8)))
		for i := range core {
			core[i] += s.EdgeGlow * glow[i]
		}
	}
	return core
}

func grayLevels(img image.Image) []float32 {
	b := img.Bounds()
	out := make([]float32, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			out[(y-b.Min.Y)*b.Dx()+(x-b.Min.X)] = float32(g.Y) / 255
		}
	}
	return out
}

// pulse returns the breathing multiplier at t seconds, oscillating between 0.25 and 1.
func pulse(period, t float32) float32 {
	if period <= 0 {
		return 1
	}
	return 0.625 + 0.375*math32.Cos(2*math32.Pi*t/period)
}
