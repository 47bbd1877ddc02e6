package engine

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/animator"
	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
	"github.com/Carmen-Shannon/oxy-fx/engine/fx"
	"github.com/Carmen-Shannon/oxy-fx/engine/input"
	"github.com/Carmen-Shannon/oxy-fx/engine/instancing"
	"github.com/Carmen-Shannon/oxy-fx/engine/light"
	"github.com/Carmen-Shannon/oxy-fx/engine/loader"
	"github.com/Carmen-Shannon/oxy-fx/engine/panel"
	"github.com/Carmen-Shannon/oxy-fx/engine/present"
	"github.com/Carmen-Shannon/oxy-fx/engine/profiler"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
	"github.com/Carmen-Shannon/oxy-fx/engine/window"
)

const (
	// SkyBoxName is the registry name of the panorama sphere created by SetSkyBox.
	SkyBoxName = "skyBox"

	// SkyBoxRadius is the radius of the panorama sphere.
	SkyBoxRadius float32 = 32000

	// LightHelperName is the registry name of the marker drawn at the sun position.
	LightHelperName = "lightHelper"

	defaultFocusMargin float32 = 10
)

var (
	defaultSunPosition = common.Vec3{X: 7, Y: 5, Z: 3}
)

// stage implements the Stage interface.
// Owns the render context of one bound surface and runs its frame lifecycle.
type stage struct {
	// mu guards the render context against a resize landing in the middle of a frame.
	mu sync.Mutex

	window  window.Window
	surface window.Surface
	bound   bool

	scene      *scene.Scene
	camera     camera.Camera
	controller camera.CameraController
	animator   animator.Animator
	mover      *camera.Mover
	renderer   renderer.Renderer
	presenter  present.Presenter
	classifier *input.Classifier
	loader     loader.Loader
	pipeline   instancing.Pipeline
	panel      *panel.Panel

	composer       fx.Composer
	bloomComposer  fx.Composer
	bloomPass      *fx.BloomPass
	bloomComposite *fx.BloomCompositePass
	outline        *fx.OutlinePass
	colorGrade     *fx.ColorGradePass
	fxaa           *fx.FXAAPass

	bloomSet   *scene.Set
	outlineSet *scene.Set
	selected   scene.Node

	sun         light.Light
	ambient     light.Light
	lightHelper *scene.Mesh
	skyBox      *scene.Mesh

	events   eventQueue
	deferred eventQueue

	pixelRatio float32
	width      int
	height     int

	start       time.Time
	lastFrame   time.Time
	focusMargin float32
	presetPath  string
	shadows     bool

	loaderOptions     []loader.LoaderBuilderOption
	classifierOptions []input.ClassifierBuilderOption
	instancingOptions []instancing.PipelineBuilderOption

	profiler         *profiler.Profiler
	profilingEnabled bool
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	quitChannel chan struct{}
	quitOnce    sync.Once
}

// Stage renders one scene into a host surface through a chain of selective effects: a base render,
// bloom restricted to a set of glowing objects, outlines around a set of selected objects, color
// grading and anti-aliasing. It also owns the camera animation, gesture classification, model
// import and mesh consolidation of that scene.
//
// All mutation happens on the frame goroutine: input, timer and loader callbacks are queued with
// Post and drained at the start of the next Frame.
type Stage interface {
	// Bind attaches the stage to a host surface and builds the render context: renderer, lights,
	// compositor chains, gesture classifier, loader and input handlers.
	//
	// Parameters:
	//   - doc: the document string ids are resolved in, may be nil when handle is a Surface
	//   - handle: a window.Surface or the string id of one registered in doc
	//
	// Returns:
	//   - error: common.ErrSurfaceNotFound wrapped if the handle does not resolve to a surface
	Bind(doc *window.Document, handle any) error

	// Bound reports whether Bind succeeded.
	Bound() bool

	// OnResize re-reads the surface size and pixel ratio and updates the camera aspect, the
	// renderer viewport, every pass size and the presenter. It is idempotent.
	OnResize()

	// Size returns the logical size of the bound surface.
	Size() (int, int)

	// PixelRatio returns the pixel ratio currently applied to the renderer.
	PixelRatio() float32

	Scene() *scene.Scene
	Camera() camera.Camera
	Controller() camera.CameraController
	Renderer() renderer.Renderer
	Composer() fx.Composer
	BloomComposer() fx.Composer
	Classifier() *input.Classifier
	Panel() *panel.Panel
	Instancing() instancing.Pipeline

	// BloomSet returns the objects that glow when bloom is enabled.
	BloomSet() *scene.Set

	// OutlineSet returns the objects outlined when the outline pass is enabled.
	OutlineSet() *scene.Set

	// SetBloomEnabled toggles the bloom composite. Bloom starts disabled.
	SetBloomEnabled(enabled bool)
	BloomEnabled() bool

	// SetOutlineEnabled toggles the outline pass. Outlines start disabled.
	SetOutlineEnabled(enabled bool)
	OutlineEnabled() bool

	// SetColorGradeEnabled toggles the color grade pass. Grading starts enabled.
	SetColorGradeEnabled(enabled bool)
	ColorGradeEnabled() bool

	// SetLightHelperVisible shows or hides the marker at the sun position.
	SetLightHelperVisible(visible bool)

	// SetSkyBox sets the scene background.
	//
	// Parameters:
	//   - sky: six face image paths ([]string or [6]string) for a cube background, or a single
	//     panorama image path mapped onto the inside of a large sphere
	//
	// Returns:
	//   - error: common.ErrInputShape wrapped for any other value, or the image load error
	SetSkyBox(sky any) error

	// ImportModel loads models into the scene on the loader worker pool.
	//
	// Parameters:
	//   - opts: the model URLs and the progress, load and error callbacks
	//
	// Returns:
	//   - error: common.ErrNotBound or common.ErrInputShape wrapped
	ImportModel(opts loader.ImportOptions) error

	// MoveCamera animates the camera to position looking at lookAt.
	// A move started while another is running replaces it; the replaced continuation is dropped.
	//
	// Parameters:
	//   - position: destination eye position
	//   - lookAt: destination target
	//   - duration: animation length; zero selects camera.DefaultMoveDuration
	//   - onComplete: continuation, may be nil
	MoveCamera(position, lookAt common.Vec3, duration time.Duration, onComplete func())

	// Select marks n as the object the focus key frames.
	Select(n scene.Node)
	Selected() scene.Node

	// Focus frames the selected object.
	Focus()

	// Post queues fn to run on the frame goroutine at the start of the next Frame.
	// Safe to call from any goroutine.
	Post(fn func())

	// Defer queues task to run at the start of the next Frame, before queued events.
	// Tasks deferred while a frame runs wait for the following frame.
	Defer(task func())

	// Frame runs one frame: queued events and deferred tasks, controller and tween updates,
	// the isolated bloom render, the main chain and presentation.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	//
	// Returns:
	//   - error: common.ErrNotBound, or the joined render and present errors
	Frame(dt float32) error

	// Output returns the most recently composited frame.
	Output() *image.RGBA

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	SetRenderFrameLimit(fps float64)

	// Run drives frames until Quit is called or the window closes. With a window the loop runs
	// inside the window event loop and must be called from the main goroutine.
	Run()

	// Quit stops Run. Safe to call multiple times.
	Quit()

	// Close stops the loader workers and releases the presenter.
	Close()
}

var _ Stage = &stage{}
var _ instancing.Scheduler = &stage{}

// NewStage creates an unbound Stage with the provided options.
//
// Parameters:
//   - options: functional options for stage configuration
//
// Returns:
//   - Stage: the newly created stage
func NewStage(options ...StageBuilderOption) Stage {
	s := &stage{
		bloomSet:    scene.NewSet(),
		outlineSet:  scene.NewSet(),
		panel:       panel.New(),
		profiler:    profiler.NewProfiler(),
		pixelRatio:  1,
		focusMargin: defaultFocusMargin,
		shadows:     true,
		quitChannel: make(chan struct{}),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.scene == nil {
		s.scene = scene.NewScene()
	}
	if s.controller == nil {
		s.controller = camera.NewCameraController(camera.WithRadius(15), camera.WithElevation(0.4))
	}
	s.camera = camera.NewCamera(
		camera.WithFov(45),
		camera.WithNear(0.1),
		camera.WithFar(100000),
		camera.WithController(s.controller),
	)
	s.animator = animator.NewAnimator()
	s.mover = camera.NewMover(s.controller, s.animator)
	s.pipeline = instancing.NewPipeline(s.scene, s, s.instancingOptions...)
	return s
}

// PixelRatioFor returns the renderer pixel ratio for a surface of the given logical width.
// Very wide surfaces render at a reduced density to bound the drawing buffer.
//
// Parameters:
//   - width: surface width in logical pixels
//   - dpr: the device pixel ratio
//
// Returns:
//   - float32: the pixel ratio to apply
func PixelRatioFor(width int, dpr float32) float32 {
	switch {
	case width < 4000:
		return dpr
	case width < 8000:
		return dpr / 2
	default:
		return dpr / 3
	}
}

func (s *stage) Bind(doc *window.Document, handle any) error {
	surface, err := resolveSurface(doc, handle)
	if err != nil {
		common.Logger().Error("stage bind failed", "handle", fmt.Sprint(handle), "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bound {
		return fmt.Errorf("stage already bound to %q", s.surface.ID())
	}
	s.surface = surface

	width, height := surface.ContentSize()
	s.width, s.height = max(width, 1), max(height, 1)
	s.pixelRatio = PixelRatioFor(s.width, surface.DevicePixelRatio())

	s.initLights()
	s.renderer = renderer.NewRenderer(
		renderer.WithSize(s.width, s.height),
		renderer.WithPixelRatio(s.pixelRatio),
		renderer.WithLights(s.sun, s.ambient),
		renderer.WithShadows(s.shadows),
	)
	s.initComposers()

	if s.presenter == nil && s.window != nil && surface.ID() == s.window.ID() {
		p, err := present.NewPresenter(
			present.WithBackendType(present.BackendTypeWGPU),
			present.WithSurfaceDescriptor(s.window.SurfaceDescriptor()),
		)
		if err != nil {
			return fmt.Errorf("stage bind %q: %w", surface.ID(), err)
		}
		s.presenter = p
	}

	s.classifier = input.NewClassifier(s.camera, surface.Bounds,
		append([]input.ClassifierBuilderOption{input.WithDispatch(s.Post)}, s.classifierOptions...)...)
	s.classifier.OnClick(func(hits []input.Hit) {
		if len(hits) > 0 {
			s.selected = hits[0].Mesh
		}
	})

	s.loader = loader.NewLoader(loader.BackendTypeFauxGL, s.scene,
		append([]loader.LoaderBuilderOption{loader.WithDispatch(s.Post)}, s.loaderOptions...)...)

	s.initPanel()
	s.installHandlers()
	s.resize()

	s.bound = true
	s.start = time.Now()
	s.lastFrame = s.start
	common.Logger().Info("stage bound", "surface", surface.ID(), "width", s.width, "height", s.height, "pixelRatio", s.pixelRatio)
	return nil
}

// resolveSurface turns a Bind handle into a surface.
func resolveSurface(doc *window.Document, handle any) (window.Surface, error) {
	switch h := handle.(type) {
	case window.Surface:
		return h, nil
	case string:
		if doc == nil {
			return nil, fmt.Errorf("resolve %q without a document: %w", h, common.ErrSurfaceNotFound)
		}
		return doc.Resolve(h)
	}
	return nil, fmt.Errorf("handle of type %T: %w", handle, common.ErrSurfaceNotFound)
}

// initLights creates the sun, the ambient fill and the sun marker.
func (s *stage) initLights() {
	s.sun = light.NewLight(light.LightTypeDirectional,
		light.WithPosition(defaultSunPosition),
		light.WithTarget(common.Vec3{}),
		light.WithIntensity(1),
		light.WithCastsShadows(true),
	)
	s.ambient = light.NewLight(light.LightTypeAmbient, light.WithIntensity(1.5))

	helper := scene.NewMesh(LightHelperName, scene.SphereGeometry(0.25, 8, 6),
		scene.NewMaterial(scene.WithMaterialName(LightHelperName), scene.WithColor(common.RGB(1, 1, 0)), scene.WithUnlit(true)))
	helper.SetPosition(defaultSunPosition)
	helper.SetShadows(false, false)
	helper.SetVisible(false)
	s.scene.Add(helper)
	s.scene.Registry().Register(LightHelperName, helper)
	s.lightHelper = helper
}

// initComposers builds the bloom producer chain and the main chain that samples it.
func (s *stage) initComposers() {
	s.bloomPass = fx.NewBloomPass()
	s.bloomComposer = fx.NewComposer(
		fx.WithComposerName("bloom"),
		fx.WithRenderToScreen(false),
		fx.WithPasses(fx.NewRenderPass(), s.bloomPass),
	)

	s.bloomComposite = fx.NewBloomCompositePass(s.bloomComposer)
	s.outline = fx.NewOutlinePass(s.outlineSet)
	s.colorGrade = fx.NewColorGradePass()
	s.fxaa = fx.NewFXAAPass()
	s.composer = fx.NewComposer(
		fx.WithComposerName("main"),
		fx.WithPasses(fx.NewRenderPass(), s.bloomComposite, s.outline, s.colorGrade, s.fxaa),
	)
}

// installHandlers routes surface input through the event queue.
func (s *stage) installHandlers() {
	var (
		dragging bool
		button   window.PointerButton
		lastX    float32
		lastY    float32
	)

	s.surface.SetResizeCallback(func(int, int) {
		s.OnResize()
	})
	s.surface.SetPointerDownCallback(func(b window.PointerButton, x, y float32) {
		s.Post(func() {
			dragging, button, lastX, lastY = true, b, x, y
			if b == window.PointerPrimary {
				s.classifier.PointerDown(x, y)
			}
		})
	})
	s.surface.SetPointerUpCallback(func(window.PointerButton, float32, float32) {
		s.Post(func() { dragging = false })
	})
	s.surface.SetPointerMoveCallback(func(x, y float32) {
		s.Post(func() {
			if dragging && s.controller.Enabled() {
				dx, dy := x-lastX, y-lastY
				switch button {
				case window.PointerPrimary:
					s.controller.Rotate(dx, dy)
				case window.PointerSecondary, window.PointerMiddle:
					s.controller.Pan(dx, dy)
				}
			}
			lastX, lastY = x, y
			s.classifier.PointerMove(x, y)
		})
	})
	s.surface.SetScrollCallback(func(delta float32) {
		s.Post(func() {
			if s.controller.Enabled() {
				s.controller.Zoom(delta)
			}
		})
	})
	s.surface.SetKeyDownCallback(func(keyCode uint32) {
		s.Post(func() { s.handleKey(keyCode) })
	})
}

func (s *stage) handleKey(keyCode uint32) {
	switch keyCode {
	case common.KeyF:
		s.Focus()
	case common.KeyB:
		s.SetBloomEnabled(!s.BloomEnabled())
	case common.KeyO:
		s.SetOutlineEnabled(!s.OutlineEnabled())
	case common.KeyG:
		s.SetColorGradeEnabled(!s.ColorGradeEnabled())
	case common.KeyP:
		if s.presetPath == "" {
			return
		}
		if err := s.panel.SaveFile(s.presetPath); err != nil {
			common.Logger().Warn("preset save failed", "path", s.presetPath, "error", err)
			return
		}
		common.Logger().Info("preset saved", "path", s.presetPath)
	}
}

func (s *stage) Bound() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bound
}

func (s *stage) OnResize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.surface == nil {
		return
	}
	s.resize()
}

// resize must be called with s.mu held.
func (s *stage) resize() {
	width, height := s.surface.ContentSize()
	width, height = max(width, 1), max(height, 1)
	ratio := PixelRatioFor(width, s.surface.DevicePixelRatio())

	s.camera.SetAspect(float32(width) / float32(height))
	s.renderer.SetSize(width, height)
	s.renderer.SetPixelRatio(ratio)

	bw, bh := s.renderer.DrawingBufferSize()
	s.composer.SetSize(bw, bh)
	s.bloomComposer.SetSize(bw, bh)

	if s.presenter != nil {
		pw, ph := bw, bh
		if s.window != nil && s.surface.ID() == s.window.ID() {
			if fw, fh := s.window.FramebufferSize(); fw > 0 && fh > 0 {
				pw, ph = fw, fh
			}
		}
		if err := s.presenter.Resize(pw, ph); err != nil {
			common.Logger().Warn("presenter resize failed", "width", pw, "height", ph, "error", err)
		}
	}

	scale := float32(1)
	if s.window != nil {
		if ww, _ := s.window.ContentSize(); ww > 0 {
			scale = float32(width) / float32(ww)
		}
	}
	s.controller.SetSpeedScale(scale)

	s.width, s.height, s.pixelRatio = width, height, ratio
}

func (s *stage) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *stage) PixelRatio() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pixelRatio
}

func (s *stage) Scene() *scene.Scene                 { return s.scene }
func (s *stage) Camera() camera.Camera               { return s.camera }
func (s *stage) Controller() camera.CameraController { return s.controller }
func (s *stage) Renderer() renderer.Renderer         { return s.renderer }
func (s *stage) Composer() fx.Composer               { return s.composer }
func (s *stage) BloomComposer() fx.Composer          { return s.bloomComposer }
func (s *stage) Classifier() *input.Classifier       { return s.classifier }
func (s *stage) Panel() *panel.Panel                 { return s.panel }
func (s *stage) Instancing() instancing.Pipeline     { return s.pipeline }
func (s *stage) BloomSet() *scene.Set                { return s.bloomSet }
func (s *stage) OutlineSet() *scene.Set              { return s.outlineSet }

func (s *stage) SetBloomEnabled(enabled bool) {
	if s.bloomComposite != nil {
		s.bloomComposite.SetEnabled(enabled)
	}
}

func (s *stage) BloomEnabled() bool {
	return s.bloomComposite != nil && s.bloomComposite.Enabled()
}

func (s *stage) SetOutlineEnabled(enabled bool) {
	if s.outline != nil {
		s.outline.SetEnabled(enabled)
	}
}

func (s *stage) OutlineEnabled() bool {
	return s.outline != nil && s.outline.Enabled()
}

func (s *stage) SetColorGradeEnabled(enabled bool) {
	if s.colorGrade != nil {
		s.colorGrade.SetEnabled(enabled)
	}
}

func (s *stage) ColorGradeEnabled() bool {
	return s.colorGrade != nil && s.colorGrade.Enabled()
}

func (s *stage) SetLightHelperVisible(visible bool) {
	if s.lightHelper != nil {
		s.lightHelper.SetVisible(visible)
	}
}

func (s *stage) SetSkyBox(sky any) error {
	switch v := sky.(type) {
	case []string:
		if len(v) != 6 {
			break
		}
		return s.setSkyCube([6]string(v))
	case [6]string:
		return s.setSkyCube(v)
	case string:
		return s.setSkyPanorama(v)
	}
	err := fmt.Errorf("sky box of type %T: %w", sky, common.ErrInputShape)
	common.Logger().Error("set sky box failed", "error", err)
	return err
}

func (s *stage) setSkyCube(paths [6]string) error {
	var faces [6]*image.RGBA
	for i, p := range paths {
		img, err := common.LoadImage(p)
		if err != nil {
			return fmt.Errorf("sky box face %d: %w", i, err)
		}
		faces[i] = img
	}
	s.scene.SetBackgroundCube(scene.NewCubeTexture(faces))
	if s.skyBox != nil {
		s.skyBox.RemoveFromParent()
		s.scene.Registry().Unregister(SkyBoxName)
		s.skyBox = nil
	}
	return nil
}

func (s *stage) setSkyPanorama(path string) error {
	img, err := common.LoadImage(path)
	if err != nil {
		return fmt.Errorf("sky box panorama: %w", err)
	}
	tex := scene.NewTexture(img)
	if s.skyBox != nil {
		if old := s.skyBox.Material().Texture(); old != nil {
			old.Dispose()
		}
		s.skyBox.Material().SetTexture(tex)
		return nil
	}

	sky := scene.NewMesh(SkyBoxName, scene.SphereGeometry(SkyBoxRadius, 32, 16), scene.NewMaterial(
		scene.WithMaterialName(SkyBoxName),
		scene.WithTexture(tex),
		scene.WithUnlit(true),
		scene.WithSide(scene.BackSide),
	))
	sky.SetShadows(false, false)
	s.scene.Add(sky)
	s.scene.Registry().Register(SkyBoxName, sky)
	s.scene.SetBackgroundCube(nil)
	s.skyBox = sky
	return nil
}

func (s *stage) ImportModel(opts loader.ImportOptions) error {
	if s.loader == nil {
		return fmt.Errorf("import model: %w", common.ErrNotBound)
	}
	return s.loader.ImportModel(opts)
}

func (s *stage) MoveCamera(position, lookAt common.Vec3, duration time.Duration, onComplete func()) {
	s.mover.MoveCamera(position, lookAt, duration, onComplete)
}

func (s *stage) Select(n scene.Node) {
	s.selected = n
}

func (s *stage) Selected() scene.Node {
	return s.selected
}

func (s *stage) Focus() {
	if s.selected == nil {
		return
	}
	s.mover.FocusOn(scene.WorldBounds(s.selected), s.focusMargin, nil)
}

func (s *stage) Post(fn func()) {
	s.events.push(fn)
}

func (s *stage) Defer(task func()) {
	s.deferred.push(task)
}

func (s *stage) Frame(dt float32) (err error) {
	if !s.Bound() {
		return fmt.Errorf("frame: %w", common.ErrNotBound)
	}
	defer func() {
		if r := recover(); r != nil {
			common.Logger().Error("frame recovered from panic", "panic", r)
			err = fmt.Errorf("frame panic: %v", r)
		}
	}()

	// Tasks deferred by this frame's events wait for the next frame.
	for _, task := range s.deferred.take() {
		task()
	}
	s.events.drain()

	s.controller.Update(dt)
	s.camera.Update()
	s.animator.Update(dt)

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := &fx.FrameContext{
		Scene:    s.scene,
		Camera:   s.camera,
		Renderer: s.renderer,
		Elapsed:  time.Since(s.start),
	}

	var errs []error
	if s.bloomComposite.Active(s.composer) {
		errs = append(errs, s.renderBloom(ctx))
	}
	if err := s.composer.Render(ctx); err != nil {
		errs = append(errs, err)
	}
	if s.presenter != nil {
		if err := s.presenter.Present(s.composer.Output()); err != nil {
			errs = append(errs, fmt.Errorf("present: %w", err))
		}
	}
	if s.profilingEnabled && s.profiler != nil {
		s.profiler.Tick()
	}
	return errors.Join(errs...)
}

// renderBloom renders the bloom chain with every mesh outside the bloom set blacked out.
func (s *stage) renderBloom(ctx *fx.FrameContext) error {
	iso := fx.Isolate(s.scene, s.bloomSet)
	defer iso.Restore()
	return s.bloomComposer.Render(ctx)
}

func (s *stage) Output() *image.RGBA {
	if s.composer == nil {
		return nil
	}
	return s.composer.Output()
}

// EnableProfiler enables performance profiling output to the log.
func (s *stage) EnableProfiler() {
	s.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (s *stage) DisableProfiler() {
	s.profilingEnabled = false
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the loop.
func (s *stage) SetRenderFrameLimit(fps float64) {
	s.renderFrameLimit = frameLimit(fps)
}

func (s *stage) Run() {
	if s.window != nil {
		s.window.SetUpdateCallback(func() {
			select {
			case <-s.quitChannel:
				s.window.Close()
				return
			default:
			}
			s.tick()
		})
		s.window.ProcessMessages()
		s.Quit()
		return
	}

	for {
		select {
		case <-s.quitChannel:
			return
		default:
			s.tick()
		}
	}
}

// tick runs one frame with the measured delta time and applies the frame rate cap.
func (s *stage) tick() {
	now := time.Now()
	dt := float32(now.Sub(s.lastFrame).Seconds())
	s.lastFrame = now

	if err := s.Frame(dt); err != nil {
		common.Logger().Warn("frame failed", "error", err)
	}

	if s.renderFrameLimit > 0 {
		if remaining := s.renderFrameLimit - time.Since(now); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// Quit signals Run to return.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (s *stage) Quit() {
	s.quitOnce.Do(func() {
		close(s.quitChannel)
	})
}

func (s *stage) Close() {
	s.Quit()
	if s.loader != nil {
		s.loader.Close()
	}
	if s.presenter != nil {
		s.presenter.Release()
	}
}

func frameLimit(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}

// eventQueue is a goroutine safe FIFO of closures run on the frame goroutine.
type eventQueue struct {
	mu    sync.Mutex
	tasks []func()
}

func (q *eventQueue) push(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()
}

// take removes and returns every queued task.
func (q *eventQueue) take() []func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	tasks := q.tasks
	q.tasks = nil
	return tasks
}

// drain runs queued tasks until the queue is empty, including tasks queued while draining.
func (q *eventQueue) drain() {
	for {
		tasks := q.take()
		if len(tasks) == 0 {
			return
		}
		for _, task := range tasks {
			task()
		}
	}
}
