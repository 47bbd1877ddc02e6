package animator

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-fx/common"
)

// animator is the implementation of the Animator interface.
type animator struct {
	mu     sync.Mutex
	tweens []*Tween
}

// Animator drives tweens from the frame loop. Callbacks run synchronously inside Update,
// on the goroutine that calls it.
type Animator interface {
	// Tween starts interpolating from one value to another.
	//
	// Parameters:
	//   - from: the start value
	//   - to: the end value
	//   - duration: how long the tween runs; zero completes on the next Update
	//   - opts: easing and callbacks
	//
	// Returns:
	//   - *Tween: the running tween
	Tween(from, to common.Vec3, duration time.Duration, opts ...TweenOption) *Tween

	// Update advances every running tween by deltaTime seconds and drops finished ones.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame
	Update(deltaTime float32)

	// Len returns the number of tweens still tracked.
	//
	// Returns:
	//   - int: the count
	Len() int

	// StopAll stops every tracked tween without running completion callbacks.
	StopAll()
}

var _ Animator = &animator{}

// NewAnimator creates an empty Animator.
//
// Returns:
//   - Animator: the animator
func NewAnimator() Animator {
	return &animator{}
}

func (a *animator) Tween(from, to common.Vec3, duration time.Duration, opts ...TweenOption) *Tween {
	t := newTween(from, to, duration, opts...)
	a.mu.Lock()
	a.tweens = append(a.tweens, t)
	a.mu.Unlock()
	return t
}

func (a *animator) Update(deltaTime float32) {
	a.mu.Lock()
	batch := make([]*Tween, len(a.tweens))
	copy(batch, a.tweens)
	a.mu.Unlock()

	finished := make(map[*Tween]bool)
	for _, t := range batch {
		value, update, complete, done := t.step(deltaTime)
		if update != nil {
			update(value)
		}
		if complete != nil {
			complete()
		}
		if done {
			finished[t] = true
		}
	}
	if len(finished) == 0 {
		return
	}

	// Callbacks may have added tweens; keep those.
	a.mu.Lock()
	kept := a.tweens[:0]
	for _, t := range a.tweens {
		if !finished[t] {
			kept = append(kept, t)
		}
	}
	a.tweens = kept
	a.mu.Unlock()
}

func (a *animator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.tweens)
}

func (a *animator) StopAll() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, t := range a.tweens {
		t.Stop()
	}
}
