package renderer

import (
	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/light"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
)

// RendererBackendType identifies the rasterizer implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeSoftware selects the CPU rasterizer built on fauxgl.
	BackendTypeSoftware RendererBackendType = iota
)

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected rasterizer.
type RendererBackend interface {
	softwareRendererBackend
}

// lightEnvironment is the resolved lighting for one frame.
type lightEnvironment struct {
	ambient     common.Color
	directional []directional
}

type directional struct {
	direction common.Vec3
	radiance  common.Color
	shadow    *shadowMap
}

type softwareRendererBackend interface {
	// Clear fills the color buffer with background and resets depth.
	Clear(target *Target, background common.Color)

	// BuildShadowMap rasterizes every shadow casting mesh from the light's point of view.
	//
	// Parameters:
	//   - l: a directional light
	//   - meshes: candidate casters, only those with CastShadow set are drawn
	//
	// Returns:
	//   - *shadowMap: the depth map used by lit materials
	BuildShadowMap(l light.Light, meshes []scene.Drawable) *shadowMap

	// DrawJob rasterizes one mesh instance into target.
	//
	// Returns:
	//   - int: the number of triangles submitted
	DrawJob(target *Target, view viewState, job drawJob, env lightEnvironment) int

	// Resolve copies the rasterized colors into the target image, filling untouched pixels from
	// cube when it is not nil.
	Resolve(target *Target, view viewState, cube *scene.CubeTexture)

	// DrawSelection rasterizes jobs into a scratch buffer and classifies covered pixels against
	// the depth stored in reference.
	DrawSelection(reference *Target, view viewState, jobs []drawJob) *Selection
}
