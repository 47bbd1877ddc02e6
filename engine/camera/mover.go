package camera

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/animator"
)

const (
	// DefaultMoveDuration is the duration of MoveCamera when none is given.
	DefaultMoveDuration = 800 * time.Millisecond
	// FocusMoveDuration is the duration of FocusOn.
	FocusMoveDuration = 300 * time.Millisecond
	// ArrivalTolerance is the distance below which the camera is considered already in place.
	ArrivalTolerance float32 = 0.1
)

// move tracks one in-flight camera animation: two tweens completing into a shared counter.
type move struct {
	position, target *animator.Tween
	completed        int
	onComplete       func()
	superseded       bool
}

// Mover animates the orbit controller's position and target together. While a move is in
// flight the controller is disabled; it is re-enabled and the continuation runs only after
// both tweens have completed.
//
// Starting a move while another is in flight stops the earlier tweens and drops the earlier
// continuation. The controller stays disabled until the latest move completes.
type Mover struct {
	mu     sync.Mutex
	ctrl   CameraController
	anim   animator.Animator
	active *move
}

// NewMover creates a Mover driving ctrl with tweens from anim.
//
// Parameters:
//   - ctrl: the orbit controller to animate
//   - anim: the animator advancing the tweens
//
// Returns:
//   - *Mover: the mover
func NewMover(ctrl CameraController, anim animator.Animator) *Mover {
	if ctrl == nil || anim == nil {
		panic("camera: mover requires a controller and an animator")
	}
	return &Mover{ctrl: ctrl, anim: anim}
}

// MoveCamera animates the camera to position while moving the look-at point to lookAt.
// When both are already within ArrivalTolerance any in-flight move is cancelled, the
// controller is re-enabled and the continuation runs synchronously.
//
// Parameters:
//   - position: destination eye position
//   - lookAt: destination target
//   - duration: animation length; zero or negative selects DefaultMoveDuration
//   - onComplete: continuation, may be nil
func (m *Mover) MoveCamera(position, lookAt common.Vec3, duration time.Duration, onComplete func()) {
	if duration <= 0 {
		duration = DefaultMoveDuration
	}

	startPos := m.ctrl.Position()
	startTarget := m.ctrl.Target()
	if startPos.DistanceTo(position) < ArrivalTolerance && startTarget.DistanceTo(lookAt) < ArrivalTolerance {
		if m.replace(nil) {
			m.ctrl.SetEnabled(true)
		}
		if onComplete != nil {
			onComplete()
		}
		return
	}

	mv := &move{onComplete: onComplete}
	m.replace(mv)

	m.ctrl.SetEnabled(false)

	done := func() {
		m.mu.Lock()
		mv.completed++
		finished := mv.completed == 2 && !mv.superseded
		if finished && m.active == mv {
			m.active = nil
		}
		m.mu.Unlock()
		if !finished {
			return
		}
		m.ctrl.SetEnabled(true)
		if mv.onComplete != nil {
			mv.onComplete()
		}
	}

	mv.position = m.anim.Tween(startPos, position, duration,
		animator.WithEasing(animator.QuadraticInOut),
		animator.OnUpdate(m.ctrl.SetPosition),
		animator.OnComplete(done),
	)
	mv.target = m.anim.Tween(startTarget, lookAt, duration,
		animator.WithEasing(animator.QuadraticInOut),
		animator.OnUpdate(m.ctrl.SetTarget),
		animator.OnComplete(done),
	)
}

// replace makes next the active move, stopping the tweens of the move it supersedes and
// dropping that move's continuation. It reports whether a move was in flight.
func (m *Mover) replace(next *move) bool {
	m.mu.Lock()
	prev := m.active
	m.active = next
	if prev != nil {
		prev.superseded = true
	}
	m.mu.Unlock()
	if prev == nil {
		return false
	}
	for _, tw := range []*animator.Tween{prev.position, prev.target} {
		if tw != nil {
			tw.Stop()
		}
	}
	if prev.onComplete != nil {
		common.Logger().Debug("camera move superseded; dropping its continuation")
	}
	return true
}

// Moving reports whether a move is in flight.
func (m *Mover) Moving() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active != nil
}

// PositionToward returns the point at distance from target along the line from target
// toward the current camera position.
//
// Parameters:
//   - target: the point to approach
//   - distance: how far from target the camera should stop
//
// Returns:
//   - common.Vec3: the camera position
func (m *Mover) PositionToward(target common.Vec3, distance float32) common.Vec3 {
	dir := m.ctrl.Position().Sub(target).Normalize()
	if dir.Len() == 0 {
		dir = common.Vec3{Z: 1}
	}
	return target.Add(dir.Scale(distance))
}

// FocusOn frames a world-space box: the camera looks at the box center from
// its height plus margin away, over FocusMoveDuration.
//
// Parameters:
//   - bounds: world bounds of the object to focus
//   - margin: extra distance added to the box height
//   - onComplete: continuation, may be nil
func (m *Mover) FocusOn(bounds common.Box, margin float32, onComplete func()) {
	if bounds.IsEmpty() {
		return
	}
	center := bounds.Center()
	distance := bounds.Size().Y + margin
	m.MoveCamera(m.PositionToward(center, distance), center, FocusMoveDuration, onComplete)
}
