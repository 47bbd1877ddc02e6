package renderer

import (
	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/light"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
	"github.com/chewxy/math32"
)

// shadowMap is the nearest caster depth seen from a directional light, one texel per grid cell.
type shadowMap struct {
	size       int
	depth      []float32
	viewProj   [16]float32
	bias       float32
	normalBias float32
}

func newShadowMap(l light.Light) *shadowMap {
	settings := l.Shadow()
	size := max(settings.Resolution, 1)
	m := &shadowMap{
		size:       size,
		depth:      make([]float32, size*size),
		bias:       settings.Bias,
		normalBias: settings.NormalBias(),
	}
	for i := range m.depth {
		m.depth[i] = 1
	}
	settings.LightViewProjection(m.viewProj[:], l.Direction(), l.Target())
	return m
}

// toTexel maps a world point to texel coordinates and light clip depth.
func (m *shadowMap) toTexel(p common.Vec3) (float32, float32, float32) {
	c := common.TransformPoint(m.viewProj[:], p)
	s := float32(m.size)
	return (c.X*0.5 + 0.5) * s, (0.5 - c.Y*0.5) * s, c.Z
}

// rasterize writes the nearest depth of triangle (a, b, c).
func (m *shadowMap) rasterize(a, b, c common.Vec3) {
	ax, ay, az := m.toTexel(a)
	bx, by, bz := m.toTexel(b)
	cx, cy, cz := m.toTexel(c)

	area := (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
	if area == 0 {
		return
	}
	limit := float32(m.size - 1)
	x0 := int(math32.Max(0, math32.Floor(math32.Min(ax, math32.Min(bx, cx)))))
	x1 := int(math32.Min(limit, math32.Ceil(math32.Max(ax, math32.Max(bx, cx)))))
	y0 := int(math32.Max(0, math32.Floor(math32.Min(ay, math32.Min(by, cy)))))
	y1 := int(math32.Min(limit, math32.Ceil(math32.Max(ay, math32.Max(by, cy)))))

	for y := y0; y <= y1; y++ {
		py := float32(y) + 0.5
		for x := x0; x <= x1; x++ {
			px := float32(x) + 0.5
			w0 := ((bx-px)*(cy-py) - (by-py)*(cx-px)) / area
			w1 := ((cx-px)*(ay-py) - (cy-py)*(ax-px)) / area
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*az + w1*bz + w2*cz
			if z < 0 || z > 1 {
				continue
			}
			i := y*m.size + x
			if z < m.depth[i] {
				m.depth[i] = z
			}
		}
	}
}

// visibility returns the lit fraction of a fragment at pos with surface normal n,
// filtered over a 3x3 texel neighbourhood.
func (m *shadowMap) visibility(pos, n common.Vec3) float32 {
	x, y, z := m.toTexel(pos.Add(n.Scale(m.normalBias)))
	if z > 1 || x < 0 || y < 0 || x >= float32(m.size) || y >= float32(m.size) {
		return 1
	}
	cx, cy := int(x), int(y)
	lit, samples := 0, 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			sx, sy := cx+dx, cy+dy
			if sx < 0 || sy < 0 || sx >= m.size || sy >= m.size {
				continue
			}
			samples++
			if z-m.bias <= m.depth[sy*m.size+sx] {
				lit++
			}
		}
	}
	if samples == 0 {
		return 1
	}
	return float32(lit) / float32(samples)
}

// buildShadowMap draws every visible shadow caster into a fresh map for l.
func buildShadowMap(l light.Light, meshes []scene.Drawable) *shadowMap {
	m := newShadowMap(l)
	for _, d := range meshes {
		mesh := d.AsMesh()
		if !mesh.CastShadow() || mesh.Geometry().Disposed() {
			continue
		}
		tris := mesh.Geometry().Triangles()
		draw := func(world [16]float32) {
			for _, t := range tris {
				m.rasterize(
					common.TransformPoint(world[:], t[0].Position),
					common.TransformPoint(world[:], t[1].Position),
					common.TransformPoint(world[:], t[2].Position),
				)
			}
		}
		if im, ok := d.(*scene.InstancedMesh); ok {
			for i := range im.Count() {
				draw(im.InstanceWorldMatrix(i))
			}
			continue
		}
		draw(mesh.WorldMatrix())
	}
	return m
}
