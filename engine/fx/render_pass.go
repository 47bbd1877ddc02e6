package fx

import (
	"fmt"
	"image"

	"github.com/Carmen-Shannon/oxy-fx/engine/renderer"
)

// RenderPassName is the name of every RenderPass.
const RenderPassName = "render"

// RenderPass draws the scene into the read buffer. It is the first pass of every chain.
type RenderPass struct {
	basePass
	target *renderer.Target
}

var _ Pass = &RenderPass{}

// NewRenderPass creates an enabled RenderPass.
func NewRenderPass() *RenderPass {
	p := &RenderPass{}
	p.init(RenderPassName, true)
	return p
}

// Target returns the render target of the last frame, or nil before the first render.
func (p *RenderPass) Target() *renderer.Target {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.target
}

func (p *RenderPass) Render(ctx *FrameContext, read, _ *image.RGBA) (bool, error) {
	if ctx.Scene == nil || ctx.Camera == nil || ctx.Renderer == nil {
		return false, fmt.Errorf("render pass: scene, camera and renderer are required")
	}

	p.mu.Lock()
	if p.target == nil {
		p.target = ctx.Renderer.NewTarget()
	}
	target := p.target
	p.mu.Unlock()

	if err := ctx.Renderer.Render(ctx.Scene, ctx.Camera, target); err != nil {
		return false, err
	}
	ctx.Target = target

	copyInto(read, target.Color())
	return false, nil
}
