package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
	"github.com/Carmen-Shannon/oxy-fx/engine/light"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
	"github.com/chewxy/math32"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	width      int
	height     int
	pixelRatio float32

	lights         []light.Light
	shadowsEnabled bool
	cullingEnabled bool

	stats FrameStats
}

// FrameStats counts the work done by the most recent Render call.
type FrameStats struct {
	Meshes    int
	Instances int
	Culled    int
	Triangles int
}

// Renderer defines the interface for the base scene renderer.
//
// The Renderer rasterizes a scene graph from a camera into a Target. It owns the logical viewport
// size and the pixel ratio; the drawing buffer every Target should be allocated at is the logical
// size scaled by the pixel ratio. Lights are handed to the renderer once and used for every frame.
type Renderer interface {
	// SetSize sets the logical viewport size in CSS-style pixels.
	//
	// Parameters:
	//   - width: the viewport width, clamped to at least 1
	//   - height: the viewport height, clamped to at least 1
	SetSize(width, height int)

	// Size returns the logical viewport size.
	//
	// Returns:
	//   - int: width
	//   - int: height
	Size() (int, int)

	// SetPixelRatio sets the device pixel multiplier applied to the logical size.
	//
	// Parameters:
	//   - ratio: the pixel ratio, values <= 0 are ignored
	SetPixelRatio(ratio float32)

	// PixelRatio returns the current pixel ratio.
	PixelRatio() float32

	// DrawingBufferSize returns the logical size scaled by the pixel ratio.
	//
	// Returns:
	//   - int: width in physical pixels
	//   - int: height in physical pixels
	DrawingBufferSize() (int, int)

	// NewTarget allocates a Target at the current drawing buffer size.
	//
	// Returns:
	//   - *Target: the new render target
	NewTarget() *Target

	// SetLights replaces the lights used by every subsequent Render call.
	//
	// Parameters:
	//   - lights: the lights to use
	SetLights(lights ...light.Light)

	// Lights returns the lights currently in use.
	Lights() []light.Light

	// SetShadowsEnabled toggles the shadow map pass.
	SetShadowsEnabled(enabled bool)

	// ShadowsEnabled reports whether the shadow map pass runs.
	ShadowsEnabled() bool

	// SetFrustumCulling toggles skipping meshes whose world bounds fall outside the camera frustum.
	SetFrustumCulling(enabled bool)

	// Render draws the background and every visible mesh of s as seen by cam into target.
	// The target is resized to the drawing buffer size first if it differs.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - cam: the camera to draw from
	//   - target: the destination color and depth buffers
	//
	// Returns:
	//   - error: an error if any argument is nil
	Render(s *scene.Scene, cam camera.Camera, target *Target) error

	// RenderSelection draws only the meshes covered by set and classifies each covered pixel as
	// visible or hidden by comparing its depth against the depth already stored in reference.
	//
	// Parameters:
	//   - s: the scene containing the selection
	//   - cam: the camera to draw from
	//   - set: the selected nodes; a mesh is covered if it or an ancestor is in the set
	//   - reference: a target previously filled by Render with the same camera
	//
	// Returns:
	//   - *Selection: the per-pixel selection mask
	//   - error: an error if any argument is nil
	RenderSelection(s *scene.Scene, cam camera.Camera, set *scene.Set, reference *Target) (*Selection, error)

	// Stats returns the counters of the most recent Render call.
	Stats() FrameStats
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the provided options.
//
// Parameters:
//   - options: variadic list of RendererBuilderOption functions to configure the renderer
//
// Returns:
//   - Renderer: the renderer
func NewRenderer(options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:             &sync.Mutex{},
		backendType:    BackendTypeSoftware,
		width:          1,
		height:         1,
		pixelRatio:     1,
		shadowsEnabled: true,
		cullingEnabled: true,
	}
	for _, option := range options {
		option(r)
	}

	switch r.backendType {
	case BackendTypeSoftware:
		r.backend = newSoftwareRendererBackend()
	default:
		panic(fmt.Sprintf("renderer: unsupported backend type %d", r.backendType))
	}
	return r
}

func (r *renderer) SetSize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width = max(width, 1)
	r.height = max(height, 1)
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetPixelRatio(ratio float32) {
	if ratio <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pixelRatio = ratio
}

func (r *renderer) PixelRatio() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pixelRatio
}

func (r *renderer) DrawingBufferSize() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.drawingBufferSize()
}

// drawingBufferSize must be called with r.mu held.
func (r *renderer) drawingBufferSize() (int, int) {
	w := int(math32.Round(float32(r.width) * r.pixelRatio))
	h := int(math32.Round(float32(r.height) * r.pixelRatio))
	return max(w, 1), max(h, 1)
}

func (r *renderer) NewTarget() *Target {
	w, h := r.DrawingBufferSize()
	return NewTarget(w, h)
}

func (r *renderer) SetLights(lights ...light.Light) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lights = append([]light.Light(nil), lights...)
}

func (r *renderer) Lights() []light.Light {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]light.Light(nil), r.lights...)
}

func (r *renderer) SetShadowsEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shadowsEnabled = enabled
}

func (r *renderer) ShadowsEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shadowsEnabled
}

func (r *renderer) SetFrustumCulling(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cullingEnabled = enabled
}

func (r *renderer) Stats() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *renderer) Render(s *scene.Scene, cam camera.Camera, target *Target) error {
	if s == nil || cam == nil || target == nil {
		return fmt.Errorf("render: scene, camera and target are required")
	}

	r.mu.Lock()
	w, h := r.drawingBufferSize()
	lights := r.lights
	shadows := r.shadowsEnabled
	culling := r.cullingEnabled
	r.mu.Unlock()

	target.Resize(w, h)
	view := newViewState(cam)
	jobs, stats := collectDrawJobs(s.Meshes(), view, culling, nil)

	env := lightEnvironment{}
	for _, l := range lights {
		if !l.Enabled() {
			continue
		}
		switch l.Type() {
		case light.LightTypeAmbient:
			env.ambient = env.ambient.Add(l.Radiance())
		case light.LightTypeDirectional:
			dl := directional{direction: l.Direction(), radiance: l.Radiance()}
			if shadows && l.CastsShadows() {
				dl.shadow = r.backend.BuildShadowMap(l, s.Meshes())
			}
			env.directional = append(env.directional, dl)
		}
	}

	background, cube := s.Background()
	r.backend.Clear(target, background)
	for _, job := range jobs {
		stats.Triangles += r.backend.DrawJob(target, view, job, env)
	}
	r.backend.Resolve(target, view, cube)

	r.mu.Lock()
	r.stats = stats
	r.mu.Unlock()
	return nil
}

func (r *renderer) RenderSelection(s *scene.Scene, cam camera.Camera, set *scene.Set, reference *Target) (*Selection, error) {
	if s == nil || cam == nil || set == nil || reference == nil {
		return nil, fmt.Errorf("render selection: scene, camera, set and reference are required")
	}

	r.mu.Lock()
	culling := r.cullingEnabled
	r.mu.Unlock()

	view := newViewState(cam)
	jobs, _ := collectDrawJobs(s.Meshes(), view, culling, set)
	return r.backend.DrawSelection(reference, view, jobs), nil
}

// viewState freezes the camera matrices and position for one draw.
type viewState struct {
	viewProj    [16]float32
	invViewProj [16]float32
	eye         common.Vec3
	frustum     common.Frustum
}

func newViewState(cam camera.Camera) viewState {
	v := viewState{viewProj: cam.ViewProjectionMatrix(), eye: cam.Position()}
	common.Invert4(v.invViewProj[:], v.viewProj[:])
	v.frustum = common.ExtractFrustumFromMatrix(v.viewProj[:])
	return v
}

// drawJob is one mesh, or one instance of an instanced mesh, ready to draw.
type drawJob struct {
	mesh     *scene.Mesh
	material *scene.Material
	world    [16]float32
	receive  bool
}

// collectDrawJobs expands meshes into draw jobs, skipping disposed resources and, when culling is
// on, anything outside the frustum. A non-nil filter keeps only meshes it covers.
func collectDrawJobs(meshes []scene.Drawable, view viewState, culling bool, filter *scene.Set) ([]drawJob, FrameStats) {
	var stats FrameStats
	jobs := make([]drawJob, 0, len(meshes))
	for _, d := range meshes {
		if filter != nil && !filter.Covers(d) {
			continue
		}
		m := d.AsMesh()
		g := m.Geometry()
		mat := m.Material()
		if g.Disposed() || mat.Disposed() {
			continue
		}
		stats.Meshes++
		receive := m.ReceiveShadow()

		if im, ok := d.(*scene.InstancedMesh); ok {
			for i := range im.Count() {
				if culling && !view.frustum.IntersectsBox(im.InstanceWorldBounds(i)) {
					stats.Culled++
					continue
				}
				stats.Instances++
				jobs = append(jobs, drawJob{mesh: m, material: mat, world: im.InstanceWorldMatrix(i), receive: receive})
			}
			continue
		}

		if culling && !view.frustum.IntersectsBox(m.WorldBounds()) {
			stats.Culled++
			continue
		}
		stats.Instances++
		jobs = append(jobs, drawJob{mesh: m, material: mat, world: m.WorldMatrix(), receive: receive})
	}
	return jobs, stats
}
