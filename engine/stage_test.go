package engine

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/input"
	"github.com/Carmen-Shannon/oxy-fx/engine/loader"
	"github.com/Carmen-Shannon/oxy-fx/engine/present"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
	"github.com/Carmen-Shannon/oxy-fx/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	stage     Stage
	surface   *window.VirtualSurface
	presenter present.Presenter
	box       *scene.Mesh
}

func newFixture(t *testing.T, options ...StageBuilderOption) *fixture {
	t.Helper()
	p, err := present.NewPresenter(present.WithBackendType(present.BackendTypeHeadless))
	require.NoError(t, err)

	box := scene.NewMesh("box", scene.BoxGeometry(4, 4, 4),
		scene.NewMaterial(scene.WithColor(common.RGB(1, 0, 0))))
	sc := scene.NewScene(scene.WithBackgroundColor(common.RGB(0, 0, 0.2)), scene.WithNodes(box))

	surface := window.NewVirtualSurface("view", 32, 24, 1)
	doc := window.NewDocument(surface)

	st := NewStage(append([]StageBuilderOption{WithScene(sc), WithPresenter(p)}, options...)...)
	require.NoError(t, st.Bind(doc, "view"))
	t.Cleanup(st.Close)
	return &fixture{stage: st, surface: surface, presenter: p, box: box}
}

func TestPixelRatioFor(t *testing.T) {
	tests := []struct {
		width int
		dpr   float32
		want  float32
	}{
		{1920, 2, 2},
		{3999, 1, 1},
		{4000, 2, 1},
		{7999, 3, 1.5},
		{8000, 3, 1},
		{12000, 3, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, PixelRatioFor(tt.width, tt.dpr), 1e-6, "width %d", tt.width)
	}
}

func TestBindUnknownSurface(t *testing.T) {
	st := NewStage()
	doc := window.NewDocument(window.NewVirtualSurface("other", 10, 10, 1))

	err := st.Bind(doc, "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrSurfaceNotFound))
	assert.False(t, st.Bound())

	err = st.Bind(doc, 42)
	assert.True(t, errors.Is(err, common.ErrSurfaceNotFound))

	err = st.Bind(nil, "other")
	assert.True(t, errors.Is(err, common.ErrSurfaceNotFound))

	assert.True(t, errors.Is(st.Frame(0.016), common.ErrNotBound))
	assert.True(t, errors.Is(st.ImportModel(loader.ImportOptions{URLs: []string{"a.stl"}}), common.ErrNotBound))
}

func TestBindSurfaceDirectly(t *testing.T) {
	st := NewStage(WithPresenter(nil))
	surface := window.NewVirtualSurface("direct", 20, 10, 1)
	require.NoError(t, st.Bind(nil, surface))
	defer st.Close()

	assert.True(t, st.Bound())
	assert.Error(t, st.Bind(nil, surface))
}

func TestResizeUpdatesRenderContext(t *testing.T) {
	f := newFixture(t)
	st := f.stage

	assert.InDelta(t, 32.0/24.0, st.Camera().Aspect(), 1e-5)
	w, h := st.Renderer().Size()
	assert.Equal(t, []int{32, 24}, []int{w, h})

	f.surface.EmitResize(128, 32, 2)

	assert.InDelta(t, 4, st.Camera().Aspect(), 1e-5)
	w, h = st.Renderer().Size()
	assert.Equal(t, []int{128, 32}, []int{w, h})
	assert.Equal(t, float32(2), st.PixelRatio())

	cw, ch := st.Composer().Size()
	assert.Equal(t, []int{256, 64}, []int{cw, ch})
	bw, bh := st.BloomComposer().Size()
	assert.Equal(t, []int{256, 64}, []int{bw, bh})
	pw, ph := f.presenter.Size()
	assert.Equal(t, []int{256, 64}, []int{pw, ph})

	// A second resize to the same size changes nothing.
	st.OnResize()
	cw, ch = st.Composer().Size()
	assert.Equal(t, []int{256, 64}, []int{cw, ch})
}

func TestFrameRendersScene(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.stage.Frame(0.016))

	out := f.stage.Output()
	require.NotNil(t, out)
	assert.Equal(t, image.Rect(0, 0, 32, 24), out.Bounds())
	assert.NotEqual(t, out.RGBAAt(16, 12), out.RGBAAt(0, 0))
}

func TestDefaultToggles(t *testing.T) {
	f := newFixture(t)
	st := f.stage
	assert.False(t, st.BloomEnabled())
	assert.False(t, st.OutlineEnabled())
	assert.True(t, st.ColorGradeEnabled())

	helper, ok := st.Scene().Registry().Lookup(LightHelperName)
	require.True(t, ok)
	assert.False(t, helper.AsObject().Visible())
	st.SetLightHelperVisible(true)
	assert.True(t, helper.AsObject().Visible())
}

func TestKeysAreQueuedUntilFrame(t *testing.T) {
	f := newFixture(t)
	st := f.stage

	f.surface.EmitKeyDown(common.KeyB)
	f.surface.EmitKeyDown(common.KeyO)
	f.surface.EmitKeyDown(common.KeyG)
	assert.False(t, st.BloomEnabled())

	require.NoError(t, st.Frame(0.016))
	assert.True(t, st.BloomEnabled())
	assert.True(t, st.OutlineEnabled())
	assert.False(t, st.ColorGradeEnabled())
}

func TestBloomFrameRestoresMaterials(t *testing.T) {
	f := newFixture(t)
	st := f.stage

	glow := scene.NewMesh("glow", scene.SphereGeometry(1, 8, 6),
		scene.NewMaterial(scene.WithColor(common.ColorWhite), scene.WithEmissive(common.ColorWhite)))
	glow.SetPosition(common.Vec3{Y: 4})
	st.Scene().Add(glow)
	st.BloomSet().Add(glow)

	boxMat := f.box.Material()
	glowMat := glow.Material()

	st.SetBloomEnabled(true)
	require.NoError(t, st.Frame(0.016))

	assert.Same(t, boxMat, f.box.Material())
	assert.Same(t, glowMat, glow.Material())
}

func TestDeferredTasksRunNextFrame(t *testing.T) {
	f := newFixture(t)
	st := f.stage

	var order []string
	st.Defer(func() { order = append(order, "deferred") })
	st.Post(func() {
		order = append(order, "event")
		st.Defer(func() { order = append(order, "late") })
	})

	require.NoError(t, st.Frame(0.016))
	assert.Equal(t, []string{"deferred", "event"}, order)

	require.NoError(t, st.Frame(0.016))
	assert.Equal(t, []string{"deferred", "event", "late"}, order)
}

func TestInstancingDisposesSourcesOnNextFrame(t *testing.T) {
	f := newFixture(t)
	st := f.stage

	mat := scene.NewMaterial(scene.WithColor(common.RGB(0, 1, 0)))
	a := scene.NewMesh("tree", scene.BoxGeometry(1, 2, 1), mat)
	b := scene.NewMesh("tree", scene.BoxGeometry(1, 2, 1), mat)
	b.SetPosition(common.Vec3{X: 3})
	st.Scene().Add(a)
	st.Scene().Add(b)

	require.NoError(t, st.Instancing().Capture([]*scene.Mesh{a, b}, "tree2"))
	require.NoError(t, st.Instancing().Build())
	assert.False(t, a.Geometry().Disposed())
	assert.Nil(t, a.Parent())

	require.NoError(t, st.Frame(0.016))
	assert.True(t, a.Geometry().Disposed())
	assert.True(t, b.Geometry().Disposed())

	n, ok := st.Scene().Registry().Lookup("tree2")
	require.True(t, ok)
	im, ok := n.(*scene.InstancedMesh)
	require.True(t, ok)
	assert.Equal(t, 2, im.Count())
	assert.False(t, im.Geometry().Disposed())
}

func TestMoveCameraCompletesThroughFrames(t *testing.T) {
	f := newFixture(t)
	st := f.stage

	done := 0
	st.MoveCamera(common.Vec3{X: 20, Y: 5}, common.Vec3{Y: 1}, 100*time.Millisecond, func() { done++ })
	assert.False(t, st.Controller().Enabled())

	for range 4 {
		require.NoError(t, st.Frame(0.05))
	}
	assert.Equal(t, 1, done)
	assert.True(t, st.Controller().Enabled())
	assert.InDelta(t, 20, st.Controller().Position().X, 0.1)
}

func TestClickSelectsAndFocusKeyMovesCamera(t *testing.T) {
	f := newFixture(t, WithClassifierOptions(input.WithDoubleClickWindow(time.Millisecond)))
	st := f.stage
	st.Classifier().SetTargets(f.box)

	f.surface.EmitPointerDown(window.PointerPrimary, 16, 12)
	f.surface.EmitPointerUp(window.PointerPrimary, 16, 12)
	require.Eventually(t, func() bool {
		_ = st.Frame(0.001)
		return st.Selected() != nil
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, f.box.ID(), st.Selected().AsObject().ID())

	f.surface.EmitKeyDown(common.KeyF)
	require.NoError(t, st.Frame(0.001))
	assert.False(t, st.Controller().Enabled())
}

func TestPanelDrivesPasses(t *testing.T) {
	f := newFixture(t)
	st := f.stage
	p := st.Panel()

	require.NoError(t, p.Set("Bloom/enabled", true))
	assert.True(t, st.BloomEnabled())

	require.NoError(t, p.Set("ColorGrade/r", 1.5))
	c, ok := p.Find("ColorGrade/r")
	require.True(t, ok)
	assert.InDelta(t, 1.5, c.Value(), 1e-5)

	require.NoError(t, p.Set("Outline/edgeStrength", 42.0))
	c, ok = p.Find("Outline/edgeStrength")
	require.True(t, ok)
	assert.InDelta(t, 10, c.Value(), 1e-5)

	sun := st.(*stage).sun
	helper := st.(*stage).lightHelper
	require.NoError(t, p.Set("Lights/sunX", -12.0))
	require.NoError(t, p.Set("Lights/sunY", 30.0))
	require.NoError(t, p.Set("Lights/sunZ", 4.0))
	assert.Equal(t, common.Vec3{X: -12, Y: 30, Z: 4}, sun.Position())
	assert.Equal(t, sun.Position(), helper.Position())

	require.NoError(t, p.Set("Lights/targetY", 2.0))
	assert.Equal(t, common.Vec3{Y: 2}, sun.Target())

	require.NoError(t, p.Set("Lights/shadowNear", 1.0))
	require.NoError(t, p.Set("Lights/shadowFar", 250.0))
	require.NoError(t, p.Set("Lights/shadowHalfExtent", 40.0))
	require.NoError(t, p.Set("Lights/shadowBias", 0.004))
	require.NoError(t, p.Set("Lights/shadowMapSize", "2048"))
	shadow := sun.Shadow()
	assert.InDelta(t, 1, shadow.Near, 1e-5)
	assert.InDelta(t, 250, shadow.Far, 1e-5)
	assert.InDelta(t, 40, shadow.HalfExtent, 1e-5)
	assert.InDelta(t, 0.004, shadow.Bias, 1e-6)
	assert.Equal(t, 2048, shadow.Resolution)

	err := p.Set("Lights/shadowMapSize", "300")
	assert.True(t, errors.Is(err, common.ErrInputShape))
	assert.Equal(t, 2048, sun.Shadow().Resolution)
	require.NoError(t, st.Frame(0.016))
}

func TestPresetKeySavesPanel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.toml")
	f := newFixture(t, WithPresetPath(path))

	f.surface.EmitKeyDown(common.KeyP)
	require.NoError(t, f.stage.Frame(0.016))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[Bloom]")
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	out, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(out, img))
	require.NoError(t, out.Close())
}

func TestSetSkyBox(t *testing.T) {
	f := newFixture(t)
	st := f.stage
	dir := t.TempDir()

	for _, bad := range []any{42, []string{"a", "b"}, nil} {
		err := st.SetSkyBox(bad)
		assert.True(t, errors.Is(err, common.ErrInputShape), "%v", bad)
	}
	assert.False(t, st.Scene().Registry().Has(SkyBoxName))

	panorama := filepath.Join(dir, "sky.png")
	writePNG(t, panorama)
	require.NoError(t, st.SetSkyBox(panorama))
	assert.True(t, st.Scene().Registry().Has(SkyBoxName))

	faces := make([]string, 6)
	for i := range faces {
		faces[i] = filepath.Join(dir, "face"+string(rune('0'+i))+".png")
		writePNG(t, faces[i])
	}
	require.NoError(t, st.SetSkyBox(faces))
	_, cube := st.Scene().Background()
	assert.NotNil(t, cube)
	assert.False(t, st.Scene().Registry().Has(SkyBoxName))

	assert.Error(t, st.SetSkyBox(filepath.Join(dir, "missing.png")))
}
