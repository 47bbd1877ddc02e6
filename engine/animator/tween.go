package animator

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-fx/common"
)

// TweenState is the lifecycle of a tween.
type TweenState int

const (
	TweenRunning TweenState = iota
	TweenCompleted
	TweenStopped
)

// Tween interpolates a Vec3 from a start to an end value over a duration.
// Tweens are created by Animator.Tween and advanced by Animator.Update.
type Tween struct {
	mu         sync.Mutex
	from, to   common.Vec3
	duration   float32
	elapsed    float32
	easing     Easing
	onUpdate   func(common.Vec3)
	onComplete func()
	state      TweenState
}

// TweenOption configures a tween at creation.
type TweenOption func(*Tween)

// WithEasing sets the easing curve. The default is Linear.
func WithEasing(e Easing) TweenOption {
	return func(t *Tween) {
		if e != nil {
			t.easing = e
		}
	}
}

// OnUpdate sets a callback receiving the interpolated value after every step, including the last.
func OnUpdate(fn func(common.Vec3)) TweenOption {
	return func(t *Tween) {
		t.onUpdate = fn
	}
}

// OnComplete sets a callback invoked once when the tween reaches its end value.
// It is not invoked for stopped tweens.
func OnComplete(fn func()) TweenOption {
	return func(t *Tween) {
		t.onComplete = fn
	}
}

func newTween(from, to common.Vec3, duration time.Duration, opts ...TweenOption) *Tween {
	t := &Tween{
		from:     from,
		to:       to,
		duration: float32(duration.Seconds()),
		easing:   Linear,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// State returns the tween's lifecycle state.
func (t *Tween) State() TweenState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Stop halts the tween where it is. The completion callback will not run.
func (t *Tween) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == TweenRunning {
		t.state = TweenStopped
	}
}

// step advances the tween by dt seconds and returns the callbacks to invoke outside the lock.
func (t *Tween) step(dt float32) (value common.Vec3, update func(common.Vec3), complete func(), done bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != TweenRunning {
		return common.Vec3{}, nil, nil, true
	}
	t.elapsed += dt
	progress := float32(1)
	if t.duration > 0 && t.elapsed < t.duration {
		progress = t.elapsed / t.duration
	}
	value = t.from.Lerp(t.to, t.easing(progress))
	if progress >= 1 {
		value = t.to
		t.state = TweenCompleted
		return value, t.onUpdate, t.onComplete, true
	}
	return value, t.onUpdate, nil, false
}
