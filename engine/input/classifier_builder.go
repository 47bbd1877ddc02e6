package input

import "time"

// ClassifierBuilderOption is a functional option for configuring a Classifier.
// Use the With* functions to create options.
type ClassifierBuilderOption func(c *Classifier)

// WithClock replaces the timer source.
//
// Parameters:
//   - clock: schedules debounce timers
//
// Returns:
//   - ClassifierBuilderOption: option function to apply
func WithClock(clock Clock) ClassifierBuilderOption {
	return func(c *Classifier) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithDispatch sets how timer expiry is delivered. The stage passes its event queue so a single
// click resolves on the frame goroutine. The default runs the expiry on the timer goroutine.
func WithDispatch(dispatch func(func())) ClassifierBuilderOption {
	return func(c *Classifier) {
		if dispatch != nil {
			c.dispatch = dispatch
		}
	}
}

// WithDoubleClickWindow sets the debounce window.
func WithDoubleClickWindow(d time.Duration) ClassifierBuilderOption {
	return func(c *Classifier) {
		if d > 0 {
			c.window = d
		}
	}
}
