package renderer

import (
	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
	"github.com/chewxy/math32"
	"github.com/fogleman/fauxgl"
)

// clipShader projects world-space vertices with a column-major view-projection whose clip depth
// is in [0, 1], remapping depth to the [-w, w] range fauxgl clips against.
type clipShader struct {
	viewProj [16]float32
}

func (s clipShader) project(p fauxgl.Vector) fauxgl.VectorW {
	m := &s.viewProj
	x, y, z := float32(p.X), float32(p.Y), float32(p.Z)
	cx := m[0]*x + m[4]*y + m[8]*z + m[12]
	cy := m[1]*x + m[5]*y + m[9]*z + m[13]
	cz := m[2]*x + m[6]*y + m[10]*z + m[14]
	cw := m[3]*x + m[7]*y + m[11]*z + m[15]
	return fauxgl.VectorW{X: float64(cx), Y: float64(cy), Z: float64(2*cz - cw), W: float64(cw)}
}

// materialShader shades one draw job: base color times texture, lit by ambient and directional
// lights with optional shadow lookups, plus emissive.
type materialShader struct {
	clipShader
	eye         common.Vec3
	color       common.Color
	emissive    common.Color
	texture     *scene.Texture
	unlit       bool
	aoIntensity float32
	receive     bool
	env         lightEnvironment
}

var _ fauxgl.Shader = &materialShader{}

func newMaterialShader(view viewState, job drawJob, env lightEnvironment) *materialShader {
	mat := job.material
	return &materialShader{
		clipShader:  clipShader{viewProj: view.viewProj},
		eye:         view.eye,
		color:       mat.Color(),
		emissive:    mat.Emissive(),
		texture:     mat.Texture(),
		unlit:       mat.Unlit(),
		aoIntensity: mat.AOMapIntensity(),
		receive:     job.receive,
		env:         env,
	}
}

func (s *materialShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	v.Output = s.project(v.Position)
	return v
}

func (s *materialShader) Fragment(v fauxgl.Vertex) fauxgl.Color {
	base := s.color
	if s.texture != nil {
		base = base.Mul(s.texture.Sample(common.Vec2{X: float32(v.Texture.X), Y: float32(v.Texture.Y)}))
	}
	if s.unlit {
		return toFaux(base.Add(s.emissive))
	}

	pos := fromFaux(v.Position)
	n := fromFaux(v.Normal).Normalize()
	// Light whichever side of the surface faces the viewer.
	if n.Dot(s.eye.Sub(pos)) < 0 {
		n = n.Scale(-1)
	}

	// Ambient occlusion strength scales the ambient term only.
	lit := s.env.ambient.Scale(s.aoIntensity)
	for _, dl := range s.env.directional {
		ndl := n.Dot(dl.direction.Scale(-1))
		if ndl <= 0 {
			continue
		}
		visibility := float32(1)
		if s.receive && dl.shadow != nil {
			visibility = dl.shadow.visibility(pos, n)
		}
		lit = lit.Add(dl.radiance.Scale(ndl * visibility))
	}
	return toFaux(base.Mul(lit).Add(s.emissive))
}

// solidShader writes one flat color, used for selection masks.
type solidShader struct {
	clipShader
	color fauxgl.Color
}

var _ fauxgl.Shader = &solidShader{}

func (s *solidShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	v.Output = s.project(v.Position)
	return v
}

func (s *solidShader) Fragment(fauxgl.Vertex) fauxgl.Color {
	return s.color
}

// worldTriangles transforms g into world space by the column-major matrix world.
func worldTriangles(g *scene.Geometry, world [16]float32) []*fauxgl.Triangle {
	src := g.Triangles()
	out := make([]*fauxgl.Triangle, len(src))
	for i, t := range src {
		out[i] = &fauxgl.Triangle{
			V1: worldVertex(t[0], world),
			V2: worldVertex(t[1], world),
			V3: worldVertex(t[2], world),
		}
	}
	return out
}

func worldVertex(v scene.Vertex, world [16]float32) fauxgl.Vertex {
	p := common.TransformPoint(world[:], v.Position)
	n := common.TransformDirection(world[:], v.Normal).Normalize()
	return fauxgl.Vertex{
		Position: toFauxVector(p),
		Normal:   toFauxVector(n),
		Texture:  fauxgl.Vector{X: float64(v.UV.X), Y: float64(v.UV.Y)},
		Color:    fauxgl.Color{R: 1, G: 1, B: 1, A: 1},
	}
}

func toFauxVector(v common.Vec3) fauxgl.Vector {
	return fauxgl.Vector{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

func fromFaux(v fauxgl.Vector) common.Vec3 {
	return common.Vec3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func toFaux(c common.Color) fauxgl.Color {
	return fauxgl.Color{
		R: float64(math32.Max(0, c.R)),
		G: float64(math32.Max(0, c.G)),
		B: float64(math32.Max(0, c.B)),
		A: 1,
	}
}
