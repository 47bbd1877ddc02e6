package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/stretchr/testify/assert"
)

func TestControllerSetPositionKeepsTarget(t *testing.T) {
	cc := NewCameraController(WithTarget(common.V3(1, 2, 3)))
	cc.SetPosition(common.V3(1, 2, 13))

	assert.Equal(t, common.V3(1, 2, 3), cc.Target())
	assert.Equal(t, common.V3(1, 2, 13), cc.Position())
	assert.InDelta(t, 10, cc.Radius(), 1e-4)
	assert.InDelta(t, 0, cc.Azimuth(), 1e-4)
	assert.InDelta(t, 0, cc.Elevation(), 1e-4)
}

func TestDisabledControllerIgnoresInput(t *testing.T) {
	cc := NewCameraController()
	before := cc.Position()

	cc.SetEnabled(false)
	cc.Rotate(100, 0)
	cc.Zoom(3)
	cc.OrbitLeft()
	assert.False(t, cc.Update(1.0/60))
	assert.Equal(t, before, cc.Position())

	cc.SetEnabled(true)
	cc.Rotate(100, 0)
	assert.True(t, cc.Update(1.0/60))
	assert.NotEqual(t, before, cc.Position())
}

func TestDampedRotateConverges(t *testing.T) {
	cc := NewCameraController(WithMouseSensitivity(0.01))
	start := cc.Azimuth()
	cc.Rotate(-100, 0)
	for i := 0; i < 600; i++ {
		cc.Update(1.0 / 60)
	}
	assert.InDelta(t, start+1, cc.Azimuth(), 1e-3)
}

func TestCameraRayThroughCenterHitsTarget(t *testing.T) {
	cc := NewCameraController(WithTarget(common.V3(0, 0, 0)), WithRadius(10), WithElevation(0))
	c := NewCamera(WithController(cc), WithAspect(16.0/9.0), WithFar(1000))

	origin, dir := c.Ray(common.Vec2{})
	assert.InDelta(t, 10, origin.Z, 0.2)
	assert.InDelta(t, -1, dir.Z, 1e-3)
	assert.InDelta(t, 0, dir.X, 1e-3)

	_, right := c.Ray(common.Vec2{X: 1})
	assert.Greater(t, right.X, float32(0))
}

func TestSetAspectRebuildsProjection(t *testing.T) {
	c := NewCamera()
	before := c.ProjectionMatrix()
	c.SetAspect(2)
	after := c.ProjectionMatrix()
	assert.InDelta(t, before[0]/2, after[0], 1e-6)
	assert.Equal(t, float32(2), c.Aspect())

	c.SetAspect(0)
	assert.Equal(t, float32(2), c.Aspect())
}
