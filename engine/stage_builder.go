package engine

import (
	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
	"github.com/Carmen-Shannon/oxy-fx/engine/input"
	"github.com/Carmen-Shannon/oxy-fx/engine/instancing"
	"github.com/Carmen-Shannon/oxy-fx/engine/loader"
	"github.com/Carmen-Shannon/oxy-fx/engine/present"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
	"github.com/Carmen-Shannon/oxy-fx/engine/window"
)

// StageBuilderOption is a functional option for configuring a Stage.
// Use the With* functions to create options that are applied directly to the stage instance.
type StageBuilderOption func(*stage)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - StageBuilderOption: option function to apply
func WithProfiling(enabled bool) StageBuilderOption {
	return func(s *stage) {
		s.profilingEnabled = enabled
	}
}

// WithWindow sets the native window that owns the event loop. When the stage is bound to this
// window, Bind creates a WebGPU presenter for it and Run drives frames from its event loop.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - StageBuilderOption: option function to apply
func WithWindow(w window.Window) StageBuilderOption {
	return func(s *stage) {
		s.window = w
	}
}

// WithScene sets the scene to render instead of an empty one.
//
// Parameters:
//   - sc: the scene
//
// Returns:
//   - StageBuilderOption: option function to apply
func WithScene(sc *scene.Scene) StageBuilderOption {
	return func(s *stage) {
		s.scene = sc
	}
}

// WithController sets the orbit controller driving the camera.
func WithController(ctrl camera.CameraController) StageBuilderOption {
	return func(s *stage) {
		s.controller = ctrl
	}
}

// WithPresenter sets the presenter frames are delivered to, overriding the one Bind would create
// for the window.
//
// Parameters:
//   - p: the presenter
//
// Returns:
//   - StageBuilderOption: option function to apply
func WithPresenter(p present.Presenter) StageBuilderOption {
	return func(s *stage) {
		s.presenter = p
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - StageBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) StageBuilderOption {
	return func(s *stage) {
		s.renderFrameLimit = frameLimit(fps)
	}
}

// WithShadows enables or disables directional shadows. Shadows are on by default.
func WithShadows(enabled bool) StageBuilderOption {
	return func(s *stage) {
		s.shadows = enabled
	}
}

// WithFocusMargin sets the distance added to an object's height when the camera frames it.
func WithFocusMargin(margin float32) StageBuilderOption {
	return func(s *stage) {
		if margin > 0 {
			s.focusMargin = margin
		}
	}
}

// WithPresetPath sets the TOML file the panel preset is saved to and loaded from.
//
// Parameters:
//   - path: the preset file
//
// Returns:
//   - StageBuilderOption: option function to apply
func WithPresetPath(path string) StageBuilderOption {
	return func(s *stage) {
		s.presetPath = path
	}
}

// WithLoaderOptions passes options through to the model loader created by Bind.
func WithLoaderOptions(options ...loader.LoaderBuilderOption) StageBuilderOption {
	return func(s *stage) {
		s.loaderOptions = append(s.loaderOptions, options...)
	}
}

// WithClassifierOptions passes options through to the gesture classifier created by Bind.
func WithClassifierOptions(options ...input.ClassifierBuilderOption) StageBuilderOption {
	return func(s *stage) {
		s.classifierOptions = append(s.classifierOptions, options...)
	}
}

// WithInstancingOptions passes options through to the mesh consolidation pipeline.
func WithInstancingOptions(options ...instancing.PipelineBuilderOption) StageBuilderOption {
	return func(s *stage) {
		s.instancingOptions = append(s.instancingOptions, options...)
	}
}
