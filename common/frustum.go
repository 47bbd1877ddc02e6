package common

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   Vec3
	Distance float32
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// ExtractFrustumFromMatrix extracts frustum planes from a projection * view matrix
// using the Gribb/Hartmann method. The near plane assumes clip-space depth in [0, 1].
//
// Parameters:
//   - viewProj: 16 float32 values representing the view-projection matrix (column-major)
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustumFromMatrix(viewProj []float32) Frustum {
	// Row i of a column-major matrix is (m[i], m[4+i], m[8+i], m[12+i]).
	row := func(i int) (Vec3, float32) {
		return Vec3{viewProj[i], viewProj[4+i], viewProj[8+i]}, viewProj[12+i]
	}
	r0, d0 := row(0)
	r1, d1 := row(1)
	r2, d2 := row(2)
	r3, d3 := row(3)

	f := Frustum{Planes: [6]Plane{
		{r3.Add(r0), d3 + d0},
		{r3.Sub(r0), d3 - d0},
		{r3.Add(r1), d3 + d1},
		{r3.Sub(r1), d3 - d1},
		{r2, d2},
		{r3.Sub(r2), d3 - d2},
	}}
	for i := range f.Planes {
		p := &f.Planes[i]
		if l := p.Normal.Len(); l > 0 {
			p.Normal = p.Normal.Scale(1 / l)
			p.Distance /= l
		}
	}
	return f
}

// IntersectsBox reports whether any part of the box lies inside the frustum.
// Empty boxes never intersect.
func (f Frustum) IntersectsBox(b Box) bool {
	if b.IsEmpty() {
		return false
	}
	for _, p := range f.Planes {
		// The box corner furthest along the plane normal.
		c := Vec3{
			X: pick(p.Normal.X >= 0, b.Max.X, b.Min.X),
			Y: pick(p.Normal.Y >= 0, b.Max.Y, b.Min.Y),
			Z: pick(p.Normal.Z >= 0, b.Max.Z, b.Min.Z),
		}
		if p.Normal.Dot(c)+p.Distance < 0 {
			return false
		}
	}
	return true
}

func pick(cond bool, a, b float32) float32 {
	if cond {
		return a
	}
	return b
}
