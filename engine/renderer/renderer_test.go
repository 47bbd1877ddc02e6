package renderer

import (
	"image/color"
	"testing"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
	"github.com/Carmen-Shannon/oxy-fx/engine/light"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frontCamera() camera.Camera {
	cc := camera.NewCameraController(camera.WithTarget(common.V3(0, 0, 0)), camera.WithRadius(10), camera.WithElevation(0))
	return camera.NewCamera(camera.WithController(cc), camera.WithNear(0.1), camera.WithFar(1000))
}

func unlitBox(name string, size float32, c common.Color) *scene.Mesh {
	return scene.NewMesh(name, scene.BoxGeometry(size, size, size), scene.NewMaterial(scene.WithColor(c), scene.WithUnlit(true)))
}

func TestDrawingBufferSizeFollowsPixelRatio(t *testing.T) {
	r := NewRenderer(WithSize(100, 50))
	r.SetPixelRatio(2)
	w, h := r.DrawingBufferSize()
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, h)

	r.SetPixelRatio(0)
	assert.Equal(t, float32(2), r.PixelRatio())

	r.SetSize(0, -3)
	lw, lh := r.Size()
	assert.Equal(t, 1, lw)
	assert.Equal(t, 1, lh)
}

func TestRenderEmptySceneFillsBackground(t *testing.T) {
	r := NewRenderer(WithSize(32, 16))
	s := scene.NewScene(scene.WithBackgroundColor(common.RGB(1, 0, 0)))
	target := r.NewTarget()

	require.NoError(t, r.Render(s, frontCamera(), target))

	assert.Equal(t, color.RGBA{R: 255, A: 255}, target.Color().RGBAAt(16, 8))
	assert.False(t, target.Covered(16, 8))
	assert.Equal(t, 0, r.Stats().Meshes)
}

func TestRenderDrawsMeshInFrontOfCamera(t *testing.T) {
	r := NewRenderer(WithSize(64, 64))
	s := scene.NewScene(scene.WithNodes(unlitBox("box", 2, common.RGB(0, 1, 0))))
	target := r.NewTarget()

	require.NoError(t, r.Render(s, frontCamera(), target))

	assert.True(t, target.Covered(32, 32))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, target.Color().RGBAAt(32, 32))
	assert.False(t, target.Covered(0, 0))
	assert.Equal(t, 1, r.Stats().Instances)
	assert.NotZero(t, r.Stats().Triangles)
}

func TestRenderCullsMeshBehindCamera(t *testing.T) {
	r := NewRenderer(WithSize(16, 16))
	box := unlitBox("behind", 1, common.ColorWhite)
	box.SetPosition(common.V3(0, 0, 50))
	s := scene.NewScene(scene.WithNodes(box))

	require.NoError(t, r.Render(s, frontCamera(), r.NewTarget()))
	assert.Equal(t, 1, r.Stats().Culled)
	assert.Equal(t, 0, r.Stats().Instances)
}

func TestRenderRejectsMissingArguments(t *testing.T) {
	r := NewRenderer()
	assert.Error(t, r.Render(nil, frontCamera(), r.NewTarget()))
	_, err := r.RenderSelection(scene.NewScene(), frontCamera(), nil, r.NewTarget())
	assert.Error(t, err)
}

func TestRenderSelectionSeparatesVisibleAndHidden(t *testing.T) {
	r := NewRenderer(WithSize(64, 64))
	selected := unlitBox("selected", 4, common.ColorWhite)
	occluder := unlitBox("occluder", 1, common.ColorWhite)
	occluder.SetPosition(common.V3(0, 0, 5))
	s := scene.NewScene(scene.WithNodes(selected, occluder))
	cam := frontCamera()

	target := r.NewTarget()
	require.NoError(t, r.Render(s, cam, target))
	sel, err := r.RenderSelection(s, cam, scene.NewSet(selected), target)
	require.NoError(t, err)

	assert.Equal(t, MaskHidden, sel.At(32, 32))
	assert.Equal(t, MaskNone, sel.At(0, 0))
	assert.Positive(t, sel.Count(MaskVisible))
}

func TestShadowMapOccludesPointsBelowCaster(t *testing.T) {
	l := light.NewLight(light.LightTypeDirectional,
		light.WithPosition(common.V3(0, 10, 0)),
		light.WithCastsShadows(true),
	)
	roof := scene.NewMesh("roof", scene.PlaneGeometry(20, 20), scene.NewMaterial())
	roof.SetPosition(common.V3(0, 5, 0))
	roof.SetShadows(true, false)

	m := buildShadowMap(l, []scene.Drawable{roof})
	up := common.Vec3{Y: 1}
	assert.Equal(t, float32(0), m.visibility(common.V3(0, 0, 0), up))
	assert.Equal(t, float32(1), m.visibility(common.V3(0, 6, 0), up))
	assert.Equal(t, float32(1), m.visibility(common.V3(60, 0, 0), up))
}
