package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func assertVec3(t *testing.T, want, got Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-4)
	assert.InDelta(t, want.Y, got.Y, 1e-4)
	assert.InDelta(t, want.Z, got.Z, 1e-4)
}

func TestComposeTranslatesRotatesScales(t *testing.T) {
	m := make([]float32, 16)
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, math32.Pi/2)
	Compose(m, Vec3{10, 0, 0}, q, Vec3{2, 2, 2})

	// +X scaled by 2 and rotated 90 degrees about Y lands on -Z.
	assertVec3(t, Vec3{10, 0, -2}, TransformPoint(m, Vec3{1, 0, 0}))
}

func TestDecomposeInvertsCompose(t *testing.T) {
	m := make([]float32, 16)
	q := QuatFromEuler(0.3, -0.7, 1.1)
	Compose(m, Vec3{1, 2, 3}, q, Vec3{1, 2, 0.5})

	pos, rot, scale := Decompose(m)
	assertVec3(t, Vec3{1, 2, 3}, pos)
	assertVec3(t, Vec3{1, 2, 0.5}, scale)

	pt := Vec3{0.2, -1, 4}
	assertVec3(t, q.Rotate(pt), rot.Rotate(pt))
}

func TestInvert4(t *testing.T) {
	m := make([]float32, 16)
	Compose(m, Vec3{4, -2, 7}, QuatFromEuler(0.1, 0.2, 0.3), Vec3{3, 3, 3})

	inv := make([]float32, 16)
	assert.True(t, Invert4(inv, m))

	out := make([]float32, 16)
	Mul4(out, m, inv)
	for i, v := range out {
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		assert.InDelta(t, want, v, 1e-4, "element %d", i)
	}

	assert.False(t, Invert4(inv, make([]float32, 16)))
}

func TestLookAtMapsTargetOntoNegativeZ(t *testing.T) {
	view := make([]float32, 16)
	LookAt(view, Vec3{0, 0, 10}, Vec3{}, Vec3{0, 1, 0})
	assertVec3(t, Vec3{0, 0, -10}, TransformPoint(view, Vec3{}))
}

func TestFrustumIntersectsBox(t *testing.T) {
	view := make([]float32, 16)
	proj := make([]float32, 16)
	vp := make([]float32, 16)
	LookAt(view, Vec3{0, 0, 10}, Vec3{}, Vec3{0, 1, 0})
	Perspective(proj, math32.Pi/4, 1, 0.1, 100)
	Mul4(vp, proj, view)
	f := ExtractFrustumFromMatrix(vp)

	assert.True(t, f.IntersectsBox(Box{Min: Vec3{-1, -1, -1}, Max: Vec3{1, 1, 1}}))
	assert.False(t, f.IntersectsBox(Box{Min: Vec3{-1, -1, 20}, Max: Vec3{1, 1, 21}}))
	assert.False(t, f.IntersectsBox(EmptyBox()))
}

func TestBoxTransform(t *testing.T) {
	m := make([]float32, 16)
	Compose(m, Vec3{5, 0, 0}, QuatIdentity(), Vec3{2, 1, 1})
	b := Box{Min: Vec3{-1, -1, -1}, Max: Vec3{1, 1, 1}}.Transform(m)
	assertVec3(t, Vec3{3, -1, -1}, b.Min)
	assertVec3(t, Vec3{7, 1, 1}, b.Max)
	assert.True(t, EmptyBox().IsEmpty())
}

func TestHexColor(t *testing.T) {
	c, err := HexColor("#ff0000")
	assert.NoError(t, err)
	assert.Equal(t, Color{1, 0, 0}, c)
	assert.Equal(t, "#ff0000", c.Hex())

	_, err = HexColor("red")
	assert.Error(t, err)

	assert.Equal(t, uint8(255), Color{1.5, 0, 0}.RGBA().R)
}
