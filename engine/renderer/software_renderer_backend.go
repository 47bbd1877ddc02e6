package renderer

import (
	"image"
	"image/draw"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/light"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
	"github.com/fogleman/fauxgl"
)

// selectionDepthTolerance absorbs rounding between two rasterizations of the same surface.
const selectionDepthTolerance = 1e-9

type softwareRendererBackendImpl struct {
	mu *sync.Mutex

	// scratch is the context selection masks are drawn into, reallocated when the size changes.
	scratch       *fauxgl.Context
	scratchWidth  int
	scratchHeight int
}

var _ RendererBackend = &softwareRendererBackendImpl{}

func newSoftwareRendererBackend() softwareRendererBackend {
	return &softwareRendererBackendImpl{mu: &sync.Mutex{}}
}

func (b *softwareRendererBackendImpl) Clear(target *Target, background common.Color) {
	target.ctx.ClearColorBufferWith(toFaux(background))
	target.ctx.ClearDepthBuffer()
}

func (b *softwareRendererBackendImpl) BuildShadowMap(l light.Light, meshes []scene.Drawable) *shadowMap {
	return buildShadowMap(l, meshes)
}

func (b *softwareRendererBackendImpl) DrawJob(target *Target, view viewState, job drawJob, env lightEnvironment) int {
	tris := worldTriangles(job.mesh.Geometry(), job.world)
	if len(tris) == 0 {
		return 0
	}
	ctx := target.ctx
	ctx.Cull = fauxgl.CullNone
	ctx.Shader = newMaterialShader(view, job, env)
	ctx.DrawTriangles(tris)
	return len(tris)
}

func (b *softwareRendererBackendImpl) Resolve(target *Target, view viewState, cube *scene.CubeTexture) {
	dst := target.color
	draw.Draw(dst, dst.Bounds(), target.ctx.Image(), image.Point{}, draw.Src)
	if cube == nil {
		return
	}

	w, h := target.Size()
	depth := target.ctx.DepthBuffer
	for y := range h {
		ndcY := 1 - 2*(float32(y)+0.5)/float32(h)
		for x := range w {
			if depth[y*w+x] < math.MaxFloat64 {
				continue
			}
			ndcX := 2*(float32(x)+0.5)/float32(w) - 1
			far := common.TransformPoint(view.invViewProj[:], common.Vec3{X: ndcX, Y: ndcY, Z: 1})
			dst.SetRGBA(x, y, cube.Sample(far.Sub(view.eye)).RGBA())
		}
	}
}

func (b *softwareRendererBackendImpl) DrawSelection(reference *Target, view viewState, jobs []drawJob) *Selection {
	b.mu.Lock()
	defer b.mu.Unlock()

	w, h := reference.Size()
	if b.scratch == nil || b.scratchWidth != w || b.scratchHeight != h {
		b.scratch = fauxgl.NewContext(w, h)
		b.scratchWidth, b.scratchHeight = w, h
	}
	ctx := b.scratch
	ctx.ClearColorBufferWith(fauxgl.Color{A: 1})
	ctx.ClearDepthBuffer()
	ctx.Cull = fauxgl.CullNone
	ctx.Shader = &solidShader{clipShader: clipShader{viewProj: view.viewProj}, color: fauxgl.Color{R: 1, G: 1, B: 1, A: 1}}
	for _, job := range jobs {
		if tris := worldTriangles(job.mesh.Geometry(), job.world); len(tris) > 0 {
			ctx.DrawTriangles(tris)
		}
	}

	sel := NewSelection(w, h)
	ref := reference.ctx.DepthBuffer
	for i, d := range ctx.DepthBuffer {
		if d == math.MaxFloat64 {
			continue
		}
		if d <= ref[i]+selectionDepthTolerance {
			sel.Mask[i] = MaskVisible
		} else {
			sel.Mask[i] = MaskHidden
		}
	}
	return sel
}
