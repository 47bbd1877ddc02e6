package fx

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/blur"
)

const (
	// BloomPassName is the name of every BloomPass.
	BloomPassName = "bloom"

	// BloomCompositePassName is the name the composite pass is looked up by.
	BloomCompositePassName = "bloom_composite"

	DefaultBloomStrength  float32 = 0.8
	DefaultBloomRadius    float32 = 0.8
	DefaultBloomThreshold float32 = 0.1

	// MaxBloomParameter bounds strength, radius and threshold.
	MaxBloomParameter float32 = 2

	bloomSmoothWidth float32 = 0.01
)

var (
	bloomFactors = [...]float32{1.0, 0.8, 0.6, 0.4, 0.2}
	bloomKernels = [...]float64{1.5, 2.5, 3.5, 4.5, 5.5}
)

// BloomPass adds a soft glow around bright pixels of the read buffer. Pixels whose luminance is
// below the threshold are dropped, the rest are blurred at five decreasing resolutions and added
// back, weighted by strength and spread by radius.
type BloomPass struct {
	basePass
	strength  float32
	radius    float32
	threshold float32
}

var _ Pass = &BloomPass{}

// NewBloomPass creates an enabled BloomPass.
//
// Parameters:
//   - options: variadic list of BloomPassOption functions
//
// Returns:
//   - *BloomPass: the pass
func NewBloomPass(options ...BloomPassOption) *BloomPass {
	p := &BloomPass{
		strength:  DefaultBloomStrength,
		radius:    DefaultBloomRadius,
		threshold: DefaultBloomThreshold,
	}
	p.init(BloomPassName, true)
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *BloomPass) Strength() float32 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.strength
}

// SetStrength sets the glow multiplier, clamped to [0, 2].
func (p *BloomPass) SetStrength(v float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.strength = clampf(v, 0, MaxBloomParameter)
}

func (p *BloomPass) Radius() float32 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.radius
}

// SetRadius sets how far the glow spreads, clamped to [0, 2].
func (p *BloomPass) SetRadius(v float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.radius = clampf(v, 0, MaxBloomParameter)
}

func (p *BloomPass) Threshold() float32 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.threshold
}

// SetThreshold sets the luminance a pixel needs to glow, clamped to [0, 2].
func (p *BloomPass) SetThreshold(v float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.threshold = clampf(v, 0, MaxBloomParameter)
}

func (p *BloomPass) Render(_ *FrameContext, read, _ *image.RGBA) (bool, error) {
	p.mu.RLock()
	strength, radius, threshold := p.strength, p.radius, p.threshold
	p.mu.RUnlock()

	if strength == 0 {
		return false, nil
	}

	bright := highPass(read, threshold)
	w, h := read.Rect.Dx(), read.Rect.Dy()

	acc := make([]float32, w*h*3)
	level := bright
	for i, factor := range bloomFactors {
		lw, lh := max(w>>(i+1), 1), max(h>>(i+1), 1)
		level = blur.Gaussian(resized(level, lw, lh), bloomKernels[i])
		up := resized(level, w, h)
		weight := strength * lerp(factor, 1.2-factor, radius)
		for y := range h {
			for x := range w {
				si := up.PixOffset(x, y)
				ai := (y*w + x) * 3
				acc[ai] += weight * float32(up.Pix[si]) / 255
				acc[ai+1] += weight * float32(up.Pix[si+1]) / 255
				acc[ai+2] += weight * float32(up.Pix[si+2]) / 255
			}
		}
	}

	for y := range h {
		for x := range w {
			di := read.PixOffset(read.Rect.Min.X+x, read.Rect.Min.Y+y)
			ai := (y*w + x) * 3
			read.Pix[di] = to8(float32(read.Pix[di])/255 + acc[ai])
			read.Pix[di+1] = to8(float32(read.Pix[di+1])/255 + acc[ai+1])
			read.Pix[di+2] = to8(float32(read.Pix[di+2])/255 + acc[ai+2])
		}
	}
	return false, nil
}

// highPass keeps pixels brighter than threshold, fading them in over a narrow luminance band.
func highPass(img *image.RGBA, threshold float32) *image.RGBA {
	return adjust.Apply(img, func(c color.RGBA) color.RGBA {
		alpha := smoothstep(threshold, threshold+bloomSmoothWidth, luma(c.R, c.G, c.B))
		return color.RGBA{
			R: uint8(float32(c.R) * alpha),
			G: uint8(float32(c.G) * alpha),
			B: uint8(float32(c.B) * alpha),
			A: c.A,
		}
	})
}

func smoothstep(edge0, edge1, x float32) float32 {
	t := clampf((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// BloomCompositePass adds the output of a bloom composer onto the read buffer.
//
// It applies only when its own flag is set and the running composer resolves BloomCompositePassName
// to an enabled pass, so disabling either side leaves the base image untouched.
type BloomCompositePass struct {
	basePass
	source Composer
}

var _ Pass = &BloomCompositePass{}

// NewBloomCompositePass creates a composite pass reading from source. It starts disabled.
//
// Parameters:
//   - source: the composer producing the glow image
//
// Returns:
//   - *BloomCompositePass: the pass
func NewBloomCompositePass(source Composer) *BloomCompositePass {
	p := &BloomCompositePass{source: source}
	p.init(BloomCompositePassName, false)
	return p
}

// Source returns the composer whose output is added.
func (p *BloomCompositePass) Source() Composer {
	return p.source
}

// Active reports whether the pass would apply when run by c.
func (p *BloomCompositePass) Active(c Composer) bool {
	if !p.Enabled() || c == nil {
		return false
	}
	named, ok := c.Pass(BloomCompositePassName)
	return ok && named.Enabled()
}

func (p *BloomCompositePass) Render(ctx *FrameContext, read, _ *image.RGBA) (bool, error) {
	if p.source == nil || !p.Active(ctx.Composer) {
		return false, nil
	}
	glow := p.source.Output()
	if !glow.Rect.Size().Eq(read.Rect.Size()) {
		glow = resized(glow, read.Rect.Dx(), read.Rect.Dy())
	}
	copyInto(read, blend.Add(read, glow))
	return false, nil
}
