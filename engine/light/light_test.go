package light

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/stretchr/testify/assert"
)

func TestDirectionalLightDirection(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithPosition(common.V3(0, 10, 0)), WithCastsShadows(true))
	d := l.Direction()
	assert.InDelta(t, -1, d.Y, 1e-6)
	assert.True(t, l.CastsShadows())

	l.SetTarget(l.Position())
	assert.Equal(t, common.Vec3{Y: -1}, l.Direction())
}

func TestAmbientNeverCastsShadows(t *testing.T) {
	l := NewLight(LightTypeAmbient, WithCastsShadows(true), WithIntensity(1.5))
	assert.False(t, l.CastsShadows())
	assert.Equal(t, common.RGB(1.5, 1.5, 1.5), l.Radiance())

	l.SetEnabled(false)
	assert.Equal(t, common.ColorBlack, l.Radiance())
}

func TestLightViewProjectionMapsCenterToMidDepth(t *testing.T) {
	s := DefaultShadowSettings()
	var vp [16]float32
	s.LightViewProjection(vp[:], common.V3(0, -1, 0), common.V3(5, 0, 5))

	p := common.TransformPoint(vp[:], common.V3(5, 0, 5))
	assert.InDelta(t, 0, p.X, 1e-4)
	assert.InDelta(t, 0, p.Y, 1e-4)
	want := (s.Far*0.5 - s.Near) / (s.Far - s.Near)
	assert.InDelta(t, want, p.Z, 1e-4)

	assert.InDelta(t, 2*s.HalfExtent/float32(s.Resolution)*s.NormalBiasScale, s.NormalBias(), 1e-6)
}
