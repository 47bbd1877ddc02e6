package input

import (
	"image"
	"slices"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
	"github.com/chewxy/math32"
)

// Hit is one intersection of a pointer ray with a mesh.
type Hit struct {
	// Mesh is the intersected mesh.
	Mesh scene.Drawable
	// Instance is the instance index for instanced meshes, otherwise -1.
	Instance int
	// Distance is measured from the ray origin on the near plane.
	Distance float32
	// Point is the world-space entry point.
	Point common.Vec3
}

// NDC converts a pointer position to normalized device coordinates relative to bounds, with
// (-1, -1) at the bottom-left and (1, 1) at the top-right.
//
// Parameters:
//   - bounds: the surface rectangle in pointer coordinates
//   - x, y: the pointer position
//
// Returns:
//   - common.Vec2: the position in normalized device coordinates
func NDC(bounds image.Rectangle, x, y float32) common.Vec2 {
	w, h := float32(max(bounds.Dx(), 1)), float32(max(bounds.Dy(), 1))
	return common.Vec2{
		X: (x-float32(bounds.Min.X))/w*2 - 1,
		Y: -(y-float32(bounds.Min.Y))/h*2 + 1,
	}
}

// Raycast intersects the camera ray through ndc with every visible mesh under targets. Hits are
// tested against world-space bounding boxes, per instance for instanced meshes, and returned
// nearest first.
//
// Parameters:
//   - cam: the camera casting the ray
//   - ndc: the ray position in normalized device coordinates
//   - targets: the roots to test, searched recursively
//
// Returns:
//   - []Hit: the intersections, possibly empty
func Raycast(cam camera.Camera, ndc common.Vec2, targets []scene.Node) []Hit {
	origin, dir := cam.Ray(ndc)
	var hits []Hit
	seen := make(map[uint64]bool)

	var walk func(n scene.Node)
	walk = func(n scene.Node) {
		obj := n.AsObject()
		if !obj.Visible() || seen[obj.ID()] {
			return
		}
		seen[obj.ID()] = true

		switch d := n.(type) {
		case *scene.InstancedMesh:
			for i := range d.Count() {
				if t, ok := intersectBox(origin, dir, d.InstanceWorldBounds(i)); ok {
					hits = append(hits, Hit{Mesh: d, Instance: i, Distance: t, Point: origin.Add(dir.Scale(t))})
				}
			}
		case scene.Drawable:
			if t, ok := intersectBox(origin, dir, d.AsMesh().WorldBounds()); ok {
				hits = append(hits, Hit{Mesh: d, Instance: -1, Distance: t, Point: origin.Add(dir.Scale(t))})
			}
		}
		for _, c := range obj.Children() {
			walk(c)
		}
	}
	for _, n := range targets {
		if n != nil {
			walk(n)
		}
	}

	slices.SortStableFunc(hits, func(a, b Hit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
	return hits
}

// intersectBox is the slab test. It returns the entry distance, or zero when the origin is inside.
func intersectBox(origin, dir common.Vec3, b common.Box) (float32, bool) {
	if b.IsEmpty() {
		return 0, false
	}
	tmin, tmax := math32.Inf(-1), math32.Inf(1)
	o := [3]float32{origin.X, origin.Y, origin.Z}
	d := [3]float32{dir.X, dir.Y, dir.Z}
	lo := [3]float32{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float32{b.Max.X, b.Max.Y, b.Max.Z}
	for i := range 3 {
		if math32.Abs(d[i]) < 1e-9 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / d[i]
		t2 := (hi[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	return math32.Max(tmin, 0), true
}
