package renderer

import "github.com/Carmen-Shannon/oxy-fx/engine/light"

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithBackendType selects the rasterizer implementation.
//
// Parameters:
//   - t: the backend type
//
// Returns:
//   - RendererBuilderOption: a function that applies the backend option to a renderer
func WithBackendType(t RendererBackendType) RendererBuilderOption {
	return func(r *renderer) {
		r.backendType = t
	}
}

// WithSize sets the initial logical viewport size.
//
// Parameters:
//   - width: the viewport width
//   - height: the viewport height
//
// Returns:
//   - RendererBuilderOption: a function that applies the size option to a renderer
func WithSize(width, height int) RendererBuilderOption {
	return func(r *renderer) {
		r.width = max(width, 1)
		r.height = max(height, 1)
	}
}

// WithPixelRatio sets the initial pixel ratio. Values <= 0 are ignored.
func WithPixelRatio(ratio float32) RendererBuilderOption {
	return func(r *renderer) {
		if ratio > 0 {
			r.pixelRatio = ratio
		}
	}
}

// WithLights sets the initial lights.
func WithLights(lights ...light.Light) RendererBuilderOption {
	return func(r *renderer) {
		r.lights = append([]light.Light(nil), lights...)
	}
}

// WithShadows enables or disables the shadow map pass. Shadows are enabled by default.
func WithShadows(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		r.shadowsEnabled = enabled
	}
}

// WithFrustumCulling enables or disables frustum culling. Culling is enabled by default.
func WithFrustumCulling(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		r.cullingEnabled = enabled
	}
}
