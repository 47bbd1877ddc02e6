package scene

import (
	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/chewxy/math32"
	"github.com/fogleman/fauxgl"
)

// GeometryFromMesh converts a fauxgl mesh to a Geometry. Missing vertex normals are
// replaced by the face normal.
//
// Parameters:
//   - mesh: the source mesh
//
// Returns:
//   - *Geometry: the converted geometry
func GeometryFromMesh(mesh *fauxgl.Mesh) *Geometry {
	tris := make([]Triangle, 0, len(mesh.Triangles))
	for _, t := range mesh.Triangles {
		if t == nil {
			continue
		}
		tri := Triangle{convertVertex(t.V1), convertVertex(t.V2), convertVertex(t.V3)}
		face := tri[1].Position.Sub(tri[0].Position).Cross(tri[2].Position.Sub(tri[0].Position)).Normalize()
		for i := range tri {
			if tri[i].Normal.Len() == 0 {
				tri[i].Normal = face
			}
		}
		tris = append(tris, tri)
	}
	return NewGeometry(tris)
}

func convertVertex(v fauxgl.Vertex) Vertex {
	return Vertex{
		Position: common.Vec3{X: float32(v.Position.X), Y: float32(v.Position.Y), Z: float32(v.Position.Z)},
		Normal:   common.Vec3{X: float32(v.Normal.X), Y: float32(v.Normal.Y), Z: float32(v.Normal.Z)},
		UV:       common.Vec2{X: float32(v.Texture.X), Y: float32(v.Texture.Y)},
	}
}

// BoxGeometry returns an axis-aligned box centered on the origin.
//
// Parameters:
//   - width, height, depth: box extents along X, Y and Z
//
// Returns:
//   - *Geometry: the box
func BoxGeometry(width, height, depth float32) *Geometry {
	g := GeometryFromMesh(fauxgl.NewCube())
	size := g.Bounds().Size()
	center := g.Bounds().Center()
	k := common.Vec3{X: width / size.X, Y: height / size.Y, Z: depth / size.Z}
	tris := g.Triangles()
	for i := range tris {
		for j := range tris[i] {
			tris[i][j].Position = tris[i][j].Position.Sub(center).Mul(k)
		}
	}
	return NewGeometry(tris)
}

// SphereGeometry returns a UV sphere centered on the origin with equirectangular texture coordinates.
//
// Parameters:
//   - radius: sphere radius
//   - widthSegments: subdivisions around the equator (minimum 3)
//   - heightSegments: subdivisions from pole to pole (minimum 2)
//
// Returns:
//   - *Geometry: the sphere
func SphereGeometry(radius float32, widthSegments, heightSegments int) *Geometry {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	vertex := func(ix, iy int) Vertex {
		u := float32(ix) / float32(widthSegments)
		v := float32(iy) / float32(heightSegments)
		phi := u * 2 * math32.Pi
		theta := v * math32.Pi
		n := common.Vec3{
			X: -math32.Cos(phi) * math32.Sin(theta),
			Y: math32.Cos(theta),
			Z: math32.Sin(phi) * math32.Sin(theta),
		}
		return Vertex{Position: n.Scale(radius), Normal: n, UV: common.Vec2{X: u, Y: 1 - v}}
	}

	tris := make([]Triangle, 0, widthSegments*heightSegments*2)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := vertex(ix+1, iy)
			b := vertex(ix, iy)
			c := vertex(ix, iy+1)
			d := vertex(ix+1, iy+1)
			if iy != 0 {
				tris = append(tris, Triangle{a, b, d})
			}
			if iy != heightSegments-1 {
				tris = append(tris, Triangle{b, c, d})
			}
		}
	}
	return NewGeometry(tris)
}

// PlaneGeometry returns a width x depth rectangle in the XZ plane facing +Y.
func PlaneGeometry(width, depth float32) *Geometry {
	hw, hd := width/2, depth/2
	up := common.Vec3{Y: 1}
	v := func(x, z, u, w float32) Vertex {
		return Vertex{Position: common.Vec3{X: x, Z: z}, Normal: up, UV: common.Vec2{X: u, Y: w}}
	}
	return NewGeometry([]Triangle{
		{v(-hw, hd, 0, 1), v(hw, hd, 1, 1), v(hw, -hd, 1, 0)},
		{v(-hw, hd, 0, 1), v(hw, -hd, 1, 0), v(-hw, -hd, 0, 0)},
	})
}
