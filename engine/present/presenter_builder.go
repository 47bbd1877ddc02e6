package present

import "github.com/cogentcore/webgpu/wgpu"

// PresenterBuilderOption is a functional option applied to a presenter during construction via NewPresenter.
type PresenterBuilderOption func(*presenter)

// WithBackendType selects the surface API frames are uploaded through.
//
// Parameters:
//   - t: the backend type, BackendTypeWGPU by default
//
// Returns:
//   - PresenterBuilderOption: a function that applies the backend option to a presenter
func WithBackendType(t PresenterBackendType) PresenterBuilderOption {
	return func(p *presenter) {
		p.backendType = t
	}
}

// WithSurfaceDescriptor sets the descriptor of the window surface to present into.
//
// Parameters:
//   - desc: the descriptor, typically window.Window.SurfaceDescriptor()
//
// Returns:
//   - PresenterBuilderOption: a function that applies the surface option to a presenter
func WithSurfaceDescriptor(desc *wgpu.SurfaceDescriptor) PresenterBuilderOption {
	return func(p *presenter) {
		p.surfaceDescriptor = desc
	}
}

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - PresenterBuilderOption: a function that applies the present mode option to a presenter
func WithPresentMode(mode PresentMode) PresenterBuilderOption {
	return func(p *presenter) {
		p.pendingPresentMode = &mode
	}
}

// WithForceSoftwareAdapter forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - PresenterBuilderOption: a function that applies the option to a presenter
func WithForceSoftwareAdapter(force bool) PresenterBuilderOption {
	return func(p *presenter) {
		p.forceFallbackAdapter = force
	}
}
