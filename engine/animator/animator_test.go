package animator

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/stretchr/testify/assert"
)

func TestQuadraticInOut(t *testing.T) {
	assert.Equal(t, float32(0), QuadraticInOut(0))
	assert.Equal(t, float32(0.5), QuadraticInOut(0.5))
	assert.Equal(t, float32(1), QuadraticInOut(1))
	assert.Less(t, QuadraticInOut(0.25), float32(0.25))
	assert.Greater(t, QuadraticInOut(0.75), float32(0.75))
}

func TestTweenReachesEndAndCompletesOnce(t *testing.T) {
	a := NewAnimator()
	var last common.Vec3
	completions := 0
	a.Tween(common.V3(0, 0, 0), common.V3(10, 0, 0), 100*time.Millisecond,
		WithEasing(QuadraticInOut),
		OnUpdate(func(v common.Vec3) { last = v }),
		OnComplete(func() { completions++ }),
	)

	a.Update(0.05)
	assert.InDelta(t, 5, last.X, 1e-4)
	assert.Equal(t, 0, completions)

	a.Update(0.06)
	assert.Equal(t, common.V3(10, 0, 0), last)
	assert.Equal(t, 1, completions)
	assert.Equal(t, 0, a.Len())

	a.Update(0.1)
	assert.Equal(t, 1, completions)
}

func TestStoppedTweenNeverCompletes(t *testing.T) {
	a := NewAnimator()
	completed := false
	tw := a.Tween(common.Vec3{}, common.V3(1, 1, 1), time.Second, OnComplete(func() { completed = true }))
	a.Update(0.1)
	tw.Stop()
	a.Update(2)
	assert.False(t, completed)
	assert.Equal(t, TweenStopped, tw.State())
	assert.Equal(t, 0, a.Len())
}

func TestTweenStartedFromCallbackSurvives(t *testing.T) {
	a := NewAnimator()
	a.Tween(common.Vec3{}, common.V3(1, 0, 0), 0, OnComplete(func() {
		a.Tween(common.Vec3{}, common.V3(2, 0, 0), time.Second)
	}))
	a.Update(0.016)
	assert.Equal(t, 1, a.Len())
}
