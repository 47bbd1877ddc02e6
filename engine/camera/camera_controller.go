package camera

import "github.com/Carmen-Shannon/oxy-fx/common"

// CameraController defines the interface for the orbit controller that owns the camera
// position and look-at target. User input (drag, wheel, keys) accumulates into pending
// deltas that Update applies with damping once per frame. A disabled controller ignores
// input and leaves the pose untouched, so animations can drive it through SetPosition and
// SetTarget without interference.
type CameraController interface {
	orbitCameraController
	planarCameraController

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - common.Vec3: world-space camera position
	Position() common.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - common.Vec3: world-space target position
	Target() common.Vec3

	// SetPosition moves the camera without moving the target. The orbit radius,
	// azimuth and elevation are re-derived from the new offset and are not clamped.
	//
	// Parameters:
	//   - p: world-space coordinates
	SetPosition(p common.Vec3)

	// SetTarget moves the look-at point without moving the camera. The orbit
	// coordinates are re-derived and are not clamped.
	//
	// Parameters:
	//   - t: world-space coordinates
	SetTarget(t common.Vec3)

	// Zoom adjusts the camera's distance by modifying orbit radius.
	// Positive delta zooms in (closer to target). Ignored while disabled.
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)

	// Enabled reports whether the controller responds to input and Update.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled enables or disables the controller. Disabling discards pending input.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SpeedScale returns the multiplier applied to pointer-driven rotate and pan.
	//
	// Returns:
	//   - float32: the speed scale
	SpeedScale() float32

	// SetSpeedScale sets the multiplier applied to pointer-driven rotate and pan.
	//
	// Parameters:
	//   - scale: the speed scale
	SetSpeedScale(scale float32)

	// Update applies damped pending input. It must be called once per frame.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	//
	// Returns:
	//   - bool: true if the pose changed
	Update(dt float32) bool
}

// orbitCameraController defines orbit-specific control methods.
// Provides third-person orbit controls using spherical coordinates (radius, azimuth, elevation)
// relative to the target/pivot point.
type orbitCameraController interface {
	// OrbitLeft rotates the camera left around the target by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the camera right around the target by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the camera upward by one orbit speed step, clamped to max elevation.
	OrbitUp()

	// OrbitDown tilts the camera downward by one orbit speed step, clamped to min elevation.
	OrbitDown()

	// Rotate queues a pointer-drag rotation in pixels. It is applied by Update.
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels
	Rotate(dx, dy float32)

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float32: the radius
	Radius() float32

	// SetRadius sets the orbit radius, clamped to the radius bounds.
	//
	// Parameters:
	//   - radius: the radius
	SetRadius(radius float32)

	// Azimuth returns the horizontal orbit angle in radians.
	//
	// Returns:
	//   - float32: the azimuth
	Azimuth() float32

	// SetAzimuth sets the horizontal orbit angle in radians.
	//
	// Parameters:
	//   - azimuth: the azimuth
	SetAzimuth(azimuth float32)

	// Elevation returns the vertical orbit angle in radians.
	//
	// Returns:
	//   - float32: the elevation
	Elevation() float32

	// SetElevation sets the vertical orbit angle, clamped to the elevation bounds.
	//
	// Parameters:
	//   - elevation: the elevation
	SetElevation(elevation float32)
}

// planarCameraController defines methods that translate the camera and target together.
type planarCameraController interface {
	// Pan queues a pointer-drag pan in pixels. It is applied by Update.
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels
	Pan(dx, dy float32)

	// PanRight moves camera and target along the camera's horizontal right axis.
	//
	// Parameters:
	//   - delta: distance in world units, scaled by the pan speed
	PanRight(delta float32)

	// PanUp moves camera and target along the camera's up axis.
	//
	// Parameters:
	//   - delta: distance in world units, scaled by the pan speed
	PanUp(delta float32)

	// PanForward moves camera and target along the view direction.
	//
	// Parameters:
	//   - delta: distance in world units, scaled by the pan speed
	PanForward(delta float32)
}
