package camera

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/animator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMoverFixture() (CameraController, animator.Animator, *Mover) {
	cc := NewCameraController(WithTarget(common.Vec3{}), WithRadius(100), WithElevation(0))
	anim := animator.NewAnimator()
	return cc, anim, NewMover(cc, anim)
}

func TestMoveCameraAlreadyInPlaceRunsSynchronously(t *testing.T) {
	cc, anim, m := newMoverFixture()
	calls := 0
	m.MoveCamera(cc.Position().Add(common.V3(0.05, 0, 0)), cc.Target(), 0, func() { calls++ })

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, anim.Len())
	assert.True(t, cc.Enabled())
	assert.False(t, m.Moving())
}

func TestMoveCameraBarrierWaitsForBothTweens(t *testing.T) {
	cc, anim, m := newMoverFixture()
	calls := 0
	enabledAtCallback := false
	dest := common.V3(50, 20, 50)
	look := common.V3(5, 0, 5)

	m.MoveCamera(dest, look, 800*time.Millisecond, func() {
		calls++
		enabledAtCallback = cc.Enabled()
	})
	require.Equal(t, 2, anim.Len())
	assert.False(t, cc.Enabled())

	anim.Update(0.4)
	assert.Equal(t, 0, calls)
	assert.False(t, cc.Enabled())

	anim.Update(0.5)
	assert.Equal(t, 1, calls)
	assert.True(t, enabledAtCallback)
	assert.True(t, cc.Enabled())
	assert.InDelta(t, 0, cc.Position().DistanceTo(dest), 1e-3)
	assert.InDelta(t, 0, cc.Target().DistanceTo(look), 1e-3)
	assert.False(t, m.Moving())

	anim.Update(1)
	assert.Equal(t, 1, calls)
}

func TestMoveCameraDefaultDuration(t *testing.T) {
	cc, anim, m := newMoverFixture()
	done := false
	m.MoveCamera(common.V3(0, 50, 0), common.V3(1, 0, 0), 0, func() { done = true })

	anim.Update(0.79)
	assert.False(t, done)
	anim.Update(0.02)
	assert.True(t, done)
	assert.True(t, cc.Enabled())
}

func TestOverlappingMoveReplacesEarlier(t *testing.T) {
	cc, anim, m := newMoverFixture()
	first, second := 0, 0

	m.MoveCamera(common.V3(50, 0, 0), common.Vec3{}, 800*time.Millisecond, func() { first++ })
	anim.Update(0.2)
	m.MoveCamera(common.V3(0, 0, -50), common.V3(0, 1, 0), 300*time.Millisecond, func() { second++ })

	anim.Update(0.2)
	assert.False(t, cc.Enabled())
	anim.Update(0.2)
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
	assert.True(t, cc.Enabled())
	assert.InDelta(t, 0, cc.Position().DistanceTo(common.V3(0, 0, -50)), 1e-3)

	anim.Update(2)
	assert.Equal(t, 0, first)
}

func TestInPlaceMoveCancelsMoveInFlight(t *testing.T) {
	cc, anim, m := newMoverFixture()
	first, second := 0, 0

	m.MoveCamera(common.V3(50, 0, 0), common.Vec3{}, 800*time.Millisecond, func() { first++ })
	anim.Update(0.2)
	require.True(t, m.Moving())
	require.False(t, cc.Enabled())

	here, look := cc.Position(), cc.Target()
	m.MoveCamera(here, look, 0, func() { second++ })
	assert.Equal(t, 1, second)
	assert.True(t, cc.Enabled())
	assert.False(t, m.Moving())

	anim.Update(2)
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
	assert.True(t, cc.Enabled())
	assert.InDelta(t, 0, cc.Position().DistanceTo(here), 1e-3)
	assert.Equal(t, 0, anim.Len())
}

func TestFocusOnFramesBox(t *testing.T) {
	cc, anim, m := newMoverFixture()
	box := common.Box{Min: common.V3(-1, 0, -1), Max: common.V3(1, 4, 1)}
	m.FocusOn(box, 10, nil)
	anim.Update(float32(FocusMoveDuration.Seconds()))

	assert.InDelta(t, 0, cc.Target().DistanceTo(common.V3(0, 2, 0)), 1e-3)
	assert.InDelta(t, 14, cc.Position().DistanceTo(common.V3(0, 2, 0)), 1e-2)
}
