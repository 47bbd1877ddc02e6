package fx

import (
	"image"
	"image/color"
	"testing"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillPass paints every pixel of the read buffer with one color.
type fillPass struct {
	basePass
	color color.RGBA
	calls int
}

func newFillPass(name string, c color.RGBA) *fillPass {
	p := &fillPass{color: c}
	p.init(name, true)
	return p
}

func (p *fillPass) Render(_ *FrameContext, read, _ *image.RGBA) (bool, error) {
	p.calls++
	for i := 0; i < len(read.Pix); i += 4 {
		read.Pix[i], read.Pix[i+1], read.Pix[i+2], read.Pix[i+3] = p.color.R, p.color.G, p.color.B, p.color.A
	}
	return false, nil
}

// invertPass writes the inverted read buffer into write.
type invertPass struct {
	basePass
}

func (p *invertPass) Render(_ *FrameContext, read, write *image.RGBA) (bool, error) {
	for i := 0; i < len(read.Pix); i += 4 {
		write.Pix[i], write.Pix[i+1], write.Pix[i+2], write.Pix[i+3] = 255-read.Pix[i], 255-read.Pix[i+1], 255-read.Pix[i+2], 255
	}
	return true, nil
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func frontCamera() camera.Camera {
	cc := camera.NewCameraController(camera.WithTarget(common.V3(0, 0, 0)), camera.WithRadius(10), camera.WithElevation(0))
	return camera.NewCamera(camera.WithController(cc), camera.WithNear(0.1), camera.WithFar(1000))
}

func TestComposerSkipsDisabledPassesAndSwaps(t *testing.T) {
	fill := newFillPass("fill", color.RGBA{R: 200, G: 100, A: 255})
	inv := &invertPass{}
	inv.init("invert", true)
	skipped := newFillPass("skipped", color.RGBA{B: 255, A: 255})
	skipped.SetEnabled(false)

	c := NewComposer(WithComposerSize(4, 4), WithPasses(fill, inv, skipped))
	require.NoError(t, c.Render(&FrameContext{}))

	assert.Equal(t, 0, skipped.calls)
	assert.Equal(t, color.RGBA{R: 55, G: 155, B: 255, A: 255}, c.Output().RGBAAt(1, 1))

	found, ok := c.Pass("invert")
	require.True(t, ok)
	assert.Same(t, inv, found)
	_, ok = c.Pass("missing")
	assert.False(t, ok)
}

func TestComposerSetSizeResizesPasses(t *testing.T) {
	fxaa := NewFXAAPass()
	c := NewComposer(WithPasses(fxaa))
	c.SetSize(200, 100)

	w, h := c.Size()
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, h)
	assert.Equal(t, common.Vec2{X: 1.0 / 200, Y: 1.0 / 100}, fxaa.Resolution())
	assert.Equal(t, 200, c.Output().Rect.Dx())
}

func TestComposerInsertAndRemove(t *testing.T) {
	a := newFillPass("a", color.RGBA{})
	b := newFillPass("b", color.RGBA{})
	c := NewComposer(WithPasses(a))
	c.InsertPass(b, 0)
	require.Len(t, c.Passes(), 2)
	assert.Same(t, b, c.Passes()[0])
	assert.True(t, c.RemovePass(b))
	assert.False(t, c.RemovePass(b))
}

func TestIsolateSwapsAndRestoresMaterials(t *testing.T) {
	glowMat := scene.NewMaterial(scene.WithColor(common.RGB(1, 1, 0)))
	plainMat := scene.NewMaterial(scene.WithColor(common.RGB(0, 0, 1)))
	glow := scene.NewMesh("glow", scene.BoxGeometry(1, 1, 1), glowMat)
	plain := scene.NewMesh("plain", scene.BoxGeometry(1, 1, 1), plainMat)
	group := scene.NewGroup("group")
	group.Add(plain)
	s := scene.NewScene(scene.WithNodes(glow, group))

	iso := Isolate(s, scene.NewSet(glow))
	assert.Equal(t, 1, iso.Len())
	assert.Same(t, glowMat, glow.Material())
	assert.Equal(t, common.ColorBlack, plain.Material().Color())
	assert.True(t, plain.Material().Unlit())

	iso.Restore()
	assert.Same(t, plainMat, plain.Material())
	assert.Equal(t, 0, iso.Len())
	iso.Restore()
	assert.Same(t, plainMat, plain.Material())
}

func TestBloomCompositeIsDoubleGated(t *testing.T) {
	source := NewComposer(WithComposerSize(4, 4), WithRenderToScreen(false), WithPasses(newFillPass("glow", color.RGBA{R: 50, G: 20, A: 255})))
	require.NoError(t, source.Render(&FrameContext{}))

	composite := NewBloomCompositePass(source)
	main := NewComposer(WithComposerSize(4, 4), WithPasses(newFillPass("base", color.RGBA{R: 100, A: 255}), composite))

	// Disabled by default.
	require.NoError(t, main.Render(&FrameContext{}))
	assert.Equal(t, uint8(100), main.Output().RGBAAt(0, 0).R)

	composite.SetEnabled(true)
	require.NoError(t, main.Render(&FrameContext{}))
	px := main.Output().RGBAAt(0, 0)
	assert.InDelta(t, 150, int(px.R), 2)
	assert.InDelta(t, 20, int(px.G), 2)

	// A composer that does not resolve the name never applies the pass.
	other := NewComposer()
	assert.False(t, composite.Active(other))
	assert.True(t, composite.Active(main))
}

func TestColorGradeIdentityAndGain(t *testing.T) {
	p := NewColorGradePass()
	read := solid(2, 2, color.RGBA{R: 100, G: 100, B: 100, A: 255})
	write := image.NewRGBA(read.Rect)

	swap, err := p.Render(&FrameContext{}, read, write)
	require.NoError(t, err)
	assert.False(t, swap)
	assert.Equal(t, uint8(100), read.Pix[0])

	p.SetGain(common.RGB(0.5, 1, 3))
	assert.Equal(t, common.RGB(0.5, 1, 2), p.Gain())
	swap, err = p.Render(&FrameContext{}, read, write)
	require.NoError(t, err)
	assert.True(t, swap)
	px := write.RGBAAt(0, 0)
	assert.InDelta(t, 50, int(px.R), 1)
	assert.InDelta(t, 100, int(px.G), 1)
	assert.InDelta(t, 200, int(px.B), 1)
}

func TestFXAALeavesFlatImageUnchanged(t *testing.T) {
	p := NewFXAAPass()
	p.SetSize(8, 8)
	read := solid(8, 8, color.RGBA{R: 40, G: 80, B: 120, A: 255})
	write := image.NewRGBA(read.Rect)

	swap, err := p.Render(&FrameContext{}, read, write)
	require.NoError(t, err)
	assert.True(t, swap)
	assert.Equal(t, read.Pix, write.Pix)
}

func TestFXAASoftensHardEdge(t *testing.T) {
	p := NewFXAAPass()
	p.SetSize(8, 8)
	read := solid(8, 8, color.RGBA{A: 255})
	for y := range 8 {
		for x := 4; x < 8; x++ {
			read.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	write := image.NewRGBA(read.Rect)
	_, err := p.Render(&FrameContext{}, read, write)
	require.NoError(t, err)

	edge := write.RGBAAt(4, 4).R
	assert.Less(t, edge, uint8(255))
	assert.Greater(t, edge, uint8(0))
	assert.Equal(t, uint8(0), write.RGBAAt(0, 4).R)
}

func TestBloomBelowThresholdIsNoop(t *testing.T) {
	p := NewBloomPass(WithBloomThreshold(0.5))
	read := solid(16, 16, color.RGBA{R: 10, G: 10, B: 10, A: 255})
	_, err := p.Render(&FrameContext{}, read, nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(10), read.RGBAAt(3, 3).R)
}

func TestBloomSpreadsBrightPixels(t *testing.T) {
	p := NewBloomPass()
	read := solid(32, 32, color.RGBA{A: 255})
	for y := 15; y < 18; y++ {
		for x := 15; x < 18; x++ {
			read.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	_, err := p.Render(&FrameContext{}, read, nil)
	require.NoError(t, err)
	assert.Greater(t, read.RGBAAt(20, 16).R, uint8(0))
	assert.Equal(t, uint8(255), read.RGBAAt(16, 16).R)
}

func TestBloomParametersClamp(t *testing.T) {
	p := NewBloomPass()
	assert.Equal(t, DefaultBloomStrength, p.Strength())
	assert.Equal(t, DefaultBloomRadius, p.Radius())
	assert.Equal(t, DefaultBloomThreshold, p.Threshold())
	p.SetStrength(5)
	p.SetRadius(-1)
	assert.Equal(t, float32(2), p.Strength())
	assert.Equal(t, float32(0), p.Radius())
}

func TestOutlineSettingsClamp(t *testing.T) {
	p := NewOutlinePass(nil, WithEdgeStrength(20), WithEdgeThickness(0))
	s := p.Settings()
	assert.False(t, p.Enabled())
	assert.Equal(t, MaxEdgeStrength, s.EdgeStrength)
	assert.Equal(t, MinEdgeThickness, s.EdgeThickness)

	p.SetEdgeGlow(3)
	p.SetPulsePeriod(-2)
	p.SetHiddenEdgeColor(common.RGB(1, 0, 0))
	s = p.Settings()
	assert.Equal(t, MaxEdgeGlow, s.EdgeGlow)
	assert.Equal(t, float32(0), s.PulsePeriod)
	assert.Equal(t, common.RGB(1, 0, 0), s.HiddenEdgeColor)
}

func TestPulse(t *testing.T) {
	assert.Equal(t, float32(1), pulse(0, 3))
	assert.InDelta(t, 1, pulse(2, 0), 1e-6)
	assert.InDelta(t, 0.25, pulse(2, 1), 1e-6)
}

func TestExtractEdgesClassifiesByMask(t *testing.T) {
	sel := renderer.NewSelection(5, 5)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			sel.Mask[y*5+x] = renderer.MaskVisible
		}
	}
	sel.Mask[1*5+2] = renderer.MaskHidden

	visible, hidden := extractEdges(sel)
	assert.Equal(t, uint8(0), visible.GrayAt(2, 2).Y)
	assert.Equal(t, uint8(255), visible.GrayAt(1, 1).Y)
	assert.Equal(t, uint8(255), hidden.GrayAt(2, 1).Y)
	assert.Equal(t, uint8(0), visible.GrayAt(2, 1).Y)
	assert.Equal(t, uint8(0), visible.GrayAt(0, 0).Y)
}

func TestThinEdgesAreDimmed(t *testing.T) {
	edges := image.NewGray(image.Rect(0, 0, 5, 5))
	edges.SetGray(2, 2, color.Gray{Y: 255})

	level := func(thickness float32) []float32 {
		return spreadEdges(edges, OutlineSettings{EdgeThickness: thickness})
	}
	full := level(1)
	thin := level(0.2)
	half := level(0.5)
	assert.InDelta(t, 1, full[2*5+2], 1e-6)
	assert.InDelta(t, 0.2, thin[2*5+2], 1e-6)
	assert.InDelta(t, 0.5, half[2*5+2], 1e-6)
	assert.Less(t, thin[2*5+2], half[2*5+2])
	assert.Equal(t, float32(0), thin[0])
}

func TestRenderOutlineChain(t *testing.T) {
	r := renderer.NewRenderer(renderer.WithSize(48, 48))
	box := scene.NewMesh("box", scene.BoxGeometry(3, 3, 3), scene.NewMaterial(scene.WithColor(common.ColorBlack), scene.WithUnlit(true)))
	s := scene.NewScene(scene.WithNodes(box))

	outline := NewOutlinePass(scene.NewSet(box))
	outline.SetEnabled(true)
	c := NewComposer(WithComposerSize(48, 48), WithPasses(NewRenderPass(), outline))

	require.NoError(t, c.Render(&FrameContext{Scene: s, Camera: frontCamera(), Renderer: r}))

	lit := 0
	out := c.Output()
	for y := range 48 {
		for x := range 48 {
			if out.RGBAAt(x, y).R > 0 {
				lit++
			}
		}
	}
	assert.Positive(t, lit)
	assert.Equal(t, uint8(0), out.RGBAAt(24, 24).R)
}

func TestRenderPassRequiresScene(t *testing.T) {
	c := NewComposer(WithPasses(NewRenderPass()))
	assert.Error(t, c.Render(&FrameContext{}))
}
