package scene

import (
	"image"
	"testing"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBox(name string) *Mesh {
	return NewMesh(name, BoxGeometry(2, 2, 2), NewMaterial())
}

func TestAddRemoveReparent(t *testing.T) {
	s := NewScene()
	a := NewGroup("a")
	b := NewGroup("b")
	m := newBox("m")

	s.Add(a)
	s.Add(b)
	a.Add(m)
	assert.Equal(t, a, m.Parent())

	b.Add(m)
	assert.Empty(t, a.Children())
	assert.Len(t, b.Children(), 1)
	assert.Equal(t, b, m.Parent())

	assert.True(t, m.RemoveFromParent())
	assert.Nil(t, m.Parent())
	assert.False(t, m.RemoveFromParent())
}

func TestWorldMatrixComposesParents(t *testing.T) {
	parent := NewGroup("parent")
	parent.SetPosition(common.V3(10, 0, 0))
	parent.SetRotation(common.QuatFromAxisAngle(common.V3(0, 1, 0), math32.Pi/2))

	child := newBox("child")
	child.SetPosition(common.V3(1, 0, 0))
	parent.Add(child)

	p := child.WorldPosition()
	assert.InDelta(t, 10, p.X, 1e-4)
	assert.InDelta(t, -1, p.Z, 1e-4)

	pos, _, scale := child.WorldTransform()
	assert.InDelta(t, 10, pos.X, 1e-4)
	assert.InDelta(t, 1, scale.Y, 1e-4)
}

func TestBoxGeometryBounds(t *testing.T) {
	g := BoxGeometry(4, 2, 6)
	b := g.Bounds()
	assert.InDelta(t, -2, b.Min.X, 1e-5)
	assert.InDelta(t, 1, b.Max.Y, 1e-5)
	assert.InDelta(t, 3, b.Max.Z, 1e-5)
	assert.NotEmpty(t, g.Triangles())
}

func TestSphereGeometry(t *testing.T) {
	g := SphereGeometry(5, 8, 4)
	assert.InDelta(t, 5, g.Bounds().Max.Y, 1e-4)
	for _, tri := range g.Triangles() {
		for _, v := range tri {
			assert.InDelta(t, 5, v.Position.Len(), 1e-3)
		}
	}
}

func TestGeometryCloneAndDispose(t *testing.T) {
	g := BoxGeometry(1, 1, 1)
	c := g.Clone()
	g.Dispose()
	assert.True(t, g.Disposed())
	assert.Empty(t, g.Triangles())
	assert.False(t, c.Disposed())
	assert.NotEmpty(t, c.Triangles())
}

func TestMaterialCloneSharesTexture(t *testing.T) {
	tex := NewTexture(nil)
	m := NewMaterial(WithColor(common.RGB(1, 0, 0)), WithTexture(tex))
	c := m.Clone()
	c.SetColor(common.RGB(0, 1, 0))
	assert.Equal(t, common.RGB(1, 0, 0), m.Color())
	assert.Same(t, tex, c.Texture())
	assert.Equal(t, float32(1), c.AOMapIntensity())
}

func TestInstancedMeshBounds(t *testing.T) {
	im := NewInstancedMesh("trees", BoxGeometry(2, 2, 2), NewMaterial(), 2)
	var m [16]float32
	common.Compose(m[:], common.V3(10, 0, 0), common.QuatIdentity(), common.V3(1, 1, 1))
	im.SetMatrixAt(1, m)

	b := WorldBounds(im)
	assert.InDelta(t, -1, b.Min.X, 1e-5)
	assert.InDelta(t, 11, b.Max.X, 1e-5)
}

func TestSetIdentity(t *testing.T) {
	a, b := newBox("same"), newBox("same")
	s := NewSet(a, a)
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Has(a))
	assert.False(t, s.Has(b))

	s.Add(b)
	assert.True(t, s.Remove(a))
	assert.False(t, s.Remove(a))
	require.Len(t, s.Nodes(), 1)
	assert.Same(t, b, s.Nodes()[0])
	assert.True(t, s.HasID(b.ID()))
}

func TestMeshesSkipsHiddenSubtrees(t *testing.T) {
	s := NewScene()
	g := NewGroup("hidden")
	g.Add(newBox("inner"))
	s.Add(g)
	s.Add(newBox("outer"))

	assert.Len(t, s.Meshes(), 2)
	g.SetVisible(false)
	require.Len(t, s.Meshes(), 1)
	assert.Equal(t, "outer", s.Meshes()[0].AsObject().Name())

	n, ok := s.FindByName("inner")
	require.True(t, ok)
	assert.Equal(t, "inner", n.AsObject().Name())
}

func TestCubeTextureSample(t *testing.T) {
	var faces [6]*image.RGBA
	for i := range faces {
		faces[i] = image.NewRGBA(image.Rect(0, 0, 2, 2))
	}
	faces[CubePosY].Pix[0] = 255
	faces[CubePosY].Pix[4] = 255
	faces[CubePosY].Pix[8] = 255
	faces[CubePosY].Pix[12] = 255
	c := NewCubeTexture(faces)
	assert.Equal(t, float32(1), c.Sample(common.V3(0, 1, 0)).R)
	assert.Equal(t, float32(0), c.Sample(common.V3(0, -1, 0)).R)
}
