package input

import (
	"image"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	wasPending := !t.stopped && !t.fired
	t.stopped = true
	return wasPending
}

type fakeClock struct {
	timers []*fakeTimer
	last   time.Duration
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.last = d
	t := &fakeTimer{fn: f}
	c.timers = append(c.timers, t)
	return t
}

// fireAll runs every timer that has not been stopped.
func (c *fakeClock) fireAll() {
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			t.fn()
		}
	}
}

// fireStopped runs timers even if stopped, modelling a timer that raced its cancellation.
func (c *fakeClock) fireStopped() {
	for _, t := range c.timers {
		t.fn()
	}
}

func (c *fakeClock) pending() int {
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func testCamera() camera.Camera {
	cc := camera.NewCameraController(camera.WithTarget(common.V3(0, 0, 0)), camera.WithRadius(10), camera.WithElevation(0))
	return camera.NewCamera(camera.WithController(cc), camera.WithNear(0.1), camera.WithFar(1000), camera.WithAspect(1))
}

func fixedBounds(r image.Rectangle) func() image.Rectangle {
	return func() image.Rectangle { return r }
}

type recorder struct {
	hover, click, double [][]Hit
}

func newClassifier(t *testing.T, clock Clock, targets ...scene.Node) (*Classifier, *recorder) {
	t.Helper()
	c := NewClassifier(testCamera(), fixedBounds(image.Rect(0, 0, 100, 100)), WithClock(clock))
	c.SetTargets(targets...)
	rec := &recorder{}
	c.OnHover(func(h []Hit) { rec.hover = append(rec.hover, h) })
	c.OnClick(func(h []Hit) { rec.click = append(rec.click, h) })
	c.OnDoubleClick(func(h []Hit) { rec.double = append(rec.double, h) })
	return c, rec
}

func box(name string, size float32) *scene.Mesh {
	return scene.NewMesh(name, scene.BoxGeometry(size, size, size), scene.NewMaterial())
}

func TestSingleClickAfterWindow(t *testing.T) {
	clock := &fakeClock{}
	target := box("target", 2)
	c, rec := newClassifier(t, clock, target)

	c.PointerDown(50, 50)
	assert.Equal(t, StateAwaitingSecondClick, c.State())
	assert.Equal(t, DefaultDoubleClickWindow, clock.last)
	assert.Empty(t, rec.click)

	clock.fireAll()
	require.Len(t, rec.click, 1)
	assert.Empty(t, rec.double)
	require.Len(t, rec.click[0], 1)
	assert.Same(t, target, rec.click[0][0].Mesh)
	assert.Equal(t, StateIdle, c.State())
}

func TestDoubleClickCancelsTimer(t *testing.T) {
	clock := &fakeClock{}
	c, rec := newClassifier(t, clock, box("target", 2))

	c.PointerDown(50, 50)
	c.PointerDown(50, 50)
	require.Len(t, rec.double, 1)
	assert.Len(t, rec.double[0], 1)
	assert.Equal(t, 0, clock.pending())
	assert.Equal(t, StateIdle, c.State())

	clock.fireStopped()
	assert.Empty(t, rec.click)
	assert.Len(t, rec.double, 1)
}

func TestDoubleClickUsesSecondPosition(t *testing.T) {
	clock := &fakeClock{}
	c, rec := newClassifier(t, clock, box("target", 2))

	c.PointerDown(50, 50)
	c.PointerDown(2, 2)
	require.Len(t, rec.double, 1)
	assert.Empty(t, rec.double[0])
}

func TestThirdClickRestartsWindow(t *testing.T) {
	clock := &fakeClock{}
	c, rec := newClassifier(t, clock)

	c.PointerDown(10, 10)
	c.PointerDown(10, 10)
	c.PointerDown(10, 10)
	assert.Len(t, rec.double, 1)
	assert.Equal(t, StateAwaitingSecondClick, c.State())
	assert.Equal(t, 1, clock.pending())

	clock.fireAll()
	assert.Len(t, rec.click, 1)
	assert.Len(t, rec.double, 1)
}

func TestHoverFiresOnEveryMove(t *testing.T) {
	clock := &fakeClock{}
	c, rec := newClassifier(t, clock, box("target", 2))

	c.PointerMove(50, 50)
	c.PointerMove(3, 3)
	c.PointerMove(3, 4)
	require.Len(t, rec.hover, 3)
	assert.Len(t, rec.hover[0], 1)
	assert.Empty(t, rec.hover[1])
	assert.Empty(t, rec.hover[2])
}

func TestCallbackHandleRemove(t *testing.T) {
	c := NewClassifier(testCamera(), fixedBounds(image.Rect(0, 0, 100, 100)), WithClock(&fakeClock{}))
	calls := 0
	h := c.OnHover(func([]Hit) { calls++ })
	c.PointerMove(1, 1)
	h.Remove()
	h.Remove()
	c.PointerMove(1, 1)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, c.hover.len())
}

func TestDispatchDefersExpiry(t *testing.T) {
	clock := &fakeClock{}
	var queued []func()
	c := NewClassifier(testCamera(), fixedBounds(image.Rect(0, 0, 100, 100)),
		WithClock(clock), WithDispatch(func(f func()) { queued = append(queued, f) }))
	clicks := 0
	c.OnClick(func([]Hit) { clicks++ })

	c.PointerDown(1, 1)
	clock.fireAll()
	assert.Equal(t, 0, clicks)
	require.Len(t, queued, 1)
	queued[0]()
	assert.Equal(t, 1, clicks)
}

func TestRaycastSortsNearestFirst(t *testing.T) {
	cam := testCamera()
	eye := cam.Position()
	far := box("far", 1)
	near := box("near", 1)
	near.SetPosition(eye.Scale(0.5))

	hits := Raycast(cam, common.Vec2{}, []scene.Node{far, near})
	require.Len(t, hits, 2)
	assert.Same(t, near, hits[0].Mesh)
	assert.Same(t, far, hits[1].Mesh)
	assert.Less(t, hits[0].Distance, hits[1].Distance)
}

func TestRaycastInstancesAndChildren(t *testing.T) {
	cam := testCamera()
	im := scene.NewInstancedMesh("rocks", scene.BoxGeometry(1, 1, 1), scene.NewMaterial(), 2)
	var m [16]float32
	common.Compose(m[:], common.V3(50, 0, 0), common.QuatIdentity(), common.V3(1, 1, 1))
	im.SetMatrixAt(0, m)

	group := scene.NewGroup("group")
	group.Add(im)

	hits := Raycast(cam, common.Vec2{}, []scene.Node{group})
	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].Instance)

	im.SetVisible(false)
	assert.Empty(t, Raycast(cam, common.Vec2{}, []scene.Node{group}))
}

func TestNDCUsesSurfaceBounds(t *testing.T) {
	b := image.Rect(100, 50, 300, 150)
	assert.Equal(t, common.Vec2{X: 0, Y: 0}, NDC(b, 200, 100))
	assert.Equal(t, common.Vec2{X: -1, Y: 1}, NDC(b, 100, 50))
	assert.Equal(t, common.Vec2{X: 1, Y: -1}, NDC(b, 300, 150))
}
