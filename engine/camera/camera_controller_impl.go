package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/chewxy/math32"
)

type cameraControllerImpl struct {
	mu *sync.Mutex

	position common.Vec3
	target   common.Vec3

	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed       float32
	mouseSensitivity float32
	zoomSpeed        float32
	panSpeed         float32
	speedScale       float32

	enabled       bool
	dampingFactor float32

	pendingAzimuth   float32
	pendingElevation float32
	pendingPan       common.Vec3
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates an orbit controller looking at the origin from 250 units away.
//
// Parameters:
//   - options: variadic list of CameraControllerOption functions to configure the controller
//
// Returns:
//   - CameraController: the controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},

		radius:    250.0,
		azimuth:   0.0,
		elevation: math32.Pi / 6,

		minRadius:    1.0,
		maxRadius:    50000.0,
		minElevation: -math32.Pi/2 + 0.01,
		maxElevation: math32.Pi/2 - 0.01,

		orbitSpeed:       0.03,
		mouseSensitivity: 0.005,
		zoomSpeed:        15.0,
		panSpeed:         1.0,
		speedScale:       1.0,

		enabled:       true,
		dampingFactor: 0.1,
	}

	for _, option := range options {
		option(cc)
	}

	cc.updatePosition()
	return cc
}

// updatePosition recomputes position from target and spherical coordinates. Caller holds mu.
func (cc *cameraControllerImpl) updatePosition() {
	cosElev := math32.Cos(cc.elevation)
	sinElev := math32.Sin(cc.elevation)
	cosAzim := math32.Cos(cc.azimuth)
	sinAzim := math32.Sin(cc.azimuth)

	cc.position = common.Vec3{
		X: cc.target.X + cc.radius*cosElev*sinAzim,
		Y: cc.target.Y + cc.radius*sinElev,
		Z: cc.target.Z + cc.radius*cosElev*cosAzim,
	}
}

// deriveSpherical recomputes spherical coordinates from position and target. Caller holds mu.
func (cc *cameraControllerImpl) deriveSpherical() {
	offset := cc.position.Sub(cc.target)
	r := offset.Len()
	if r < 1e-8 {
		cc.radius = 0
		return
	}
	cc.radius = r
	cc.elevation = math32.Asin(math32.Max(-1, math32.Min(1, offset.Y/r)))
	cc.azimuth = math32.Atan2(offset.X, offset.Z)
}

// localAxes returns the camera right, up and forward axes. Caller holds mu.
func (cc *cameraControllerImpl) localAxes() (right, up, forward common.Vec3) {
	back := cc.position.Sub(cc.target)
	if back.Len() < 1e-8 {
		return
	}
	back = back.Normalize()

	right = common.Vec3{X: back.Z, Z: -back.X}
	if right.Len() < 1e-8 {
		return common.Vec3{}, common.Vec3{}, back.Scale(-1)
	}
	right = right.Normalize()
	up = back.Cross(right)
	forward = back.Scale(-1)
	return
}

func (cc *cameraControllerImpl) clamp() {
	cc.radius = math32.Max(cc.minRadius, math32.Min(cc.maxRadius, cc.radius))
	cc.elevation = math32.Max(cc.minElevation, math32.Min(cc.maxElevation, cc.elevation))
}

func (cc *cameraControllerImpl) Position() common.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) SetPosition(p common.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = p
	cc.deriveSpherical()
}

func (cc *cameraControllerImpl) Target() common.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(t common.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = t
	cc.deriveSpherical()
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.enabled {
		return
	}
	cc.radius -= delta * cc.zoomSpeed
	cc.clamp()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Enabled() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.enabled
}

func (cc *cameraControllerImpl) SetEnabled(enabled bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.enabled = enabled
	if !enabled {
		cc.pendingAzimuth, cc.pendingElevation = 0, 0
		cc.pendingPan = common.Vec3{}
	}
}

func (cc *cameraControllerImpl) SpeedScale() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.speedScale
}

func (cc *cameraControllerImpl) SetSpeedScale(scale float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.speedScale = scale
}

func (cc *cameraControllerImpl) Update(dt float32) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.enabled {
		return false
	}
	if cc.pendingAzimuth == 0 && cc.pendingElevation == 0 && cc.pendingPan == (common.Vec3{}) {
		return false
	}

	// Frame-rate independent fraction of the pending input to apply this frame.
	frac := 1 - math32.Pow(1-cc.dampingFactor, math32.Max(dt, 0)*60)

	da, de := cc.pendingAzimuth*frac, cc.pendingElevation*frac
	dp := cc.pendingPan.Scale(frac)
	cc.pendingAzimuth -= da
	cc.pendingElevation -= de
	cc.pendingPan = cc.pendingPan.Sub(dp)
	if math32.Abs(cc.pendingAzimuth) < 1e-5 && math32.Abs(cc.pendingElevation) < 1e-5 && cc.pendingPan.Len() < 1e-4 {
		cc.pendingAzimuth, cc.pendingElevation = 0, 0
		cc.pendingPan = common.Vec3{}
	}

	cc.azimuth += da
	cc.elevation += de
	cc.target = cc.target.Add(dp)
	cc.clamp()
	cc.updatePosition()
	return true
}

func (cc *cameraControllerImpl) OrbitLeft() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.enabled {
		return
	}
	cc.azimuth -= cc.orbitSpeed
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitRight() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.enabled {
		return
	}
	cc.azimuth += cc.orbitSpeed
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitUp() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.enabled {
		return
	}
	cc.elevation += cc.orbitSpeed
	cc.clamp()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitDown() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.enabled {
		return
	}
	cc.elevation -= cc.orbitSpeed
	cc.clamp()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Rotate(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.enabled {
		return
	}
	k := cc.mouseSensitivity * cc.speedScale
	cc.pendingAzimuth -= dx * k
	cc.pendingElevation += dy * k
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = radius
	cc.clamp()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) SetAzimuth(azimuth float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = azimuth
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) SetElevation(elevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = elevation
	cc.clamp()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Pan(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.enabled {
		return
	}
	right, up, _ := cc.localAxes()
	// Scale by distance so a drag moves the scene roughly with the pointer.
	k := cc.panSpeed * cc.speedScale * cc.radius * 0.002
	cc.pendingPan = cc.pendingPan.Add(right.Scale(-dx * k)).Add(up.Scale(dy * k))
}

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	right, _, _ := cc.localAxes()
	cc.translate(right.Scale(delta * cc.panSpeed))
}

func (cc *cameraControllerImpl) PanUp(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, up, _ := cc.localAxes()
	cc.translate(up.Scale(delta * cc.panSpeed))
}

func (cc *cameraControllerImpl) PanForward(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, _, forward := cc.localAxes()
	cc.translate(forward.Scale(delta * cc.panSpeed))
}

func (cc *cameraControllerImpl) translate(offset common.Vec3) {
	cc.target = cc.target.Add(offset)
	cc.position = cc.position.Add(offset)
}
