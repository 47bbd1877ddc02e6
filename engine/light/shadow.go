package light

import (
	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/chewxy/math32"
)

// ShadowMapResolution is the default width and height in texels of the shadow depth map.
const ShadowMapResolution = 512

// DefaultShadowHalfExtent is the default orthographic half-extent (in world units)
// of the directional light shadow frustum.
const DefaultShadowHalfExtent float32 = 100.0

// DefaultShadowNear is the default near plane of the shadow projection.
const DefaultShadowNear float32 = 0.5

// DefaultShadowFar is the default far plane of the shadow projection.
const DefaultShadowFar float32 = 500.0

// DefaultShadowBias is the constant depth bias applied to shadow comparisons
// to reduce shadow acne artifacts.
const DefaultShadowBias float32 = 0.002

// DefaultShadowNormalBiasScale is the multiplier applied to the shadow map
// texel world-size to compute the normal-offset bias. Typical values are 2.0 to 4.0.
const DefaultShadowNormalBiasScale float32 = 3.0

// ShadowSettings describes the orthographic shadow frustum of a directional light.
type ShadowSettings struct {
	Resolution      int     `toml:"resolution"`
	HalfExtent      float32 `toml:"half_extent"`
	Near            float32 `toml:"near"`
	Far             float32 `toml:"far"`
	Bias            float32 `toml:"bias"`
	NormalBiasScale float32 `toml:"normal_bias_scale"`
}

// DefaultShadowSettings returns the default shadow configuration.
func DefaultShadowSettings() ShadowSettings {
	return ShadowSettings{
		Resolution:      ShadowMapResolution,
		HalfExtent:      DefaultShadowHalfExtent,
		Near:            DefaultShadowNear,
		Far:             DefaultShadowFar,
		Bias:            DefaultShadowBias,
		NormalBiasScale: DefaultShadowNormalBiasScale,
	}
}

// NormalBias returns the world-space distance fragments are pushed along their normal
// before the shadow lookup. It equals one shadow texel's world size times NormalBiasScale.
func (s ShadowSettings) NormalBias() float32 {
	if s.Resolution <= 0 {
		return 0
	}
	return 2.0 * s.HalfExtent / float32(s.Resolution) * s.NormalBiasScale
}

// LightViewProjection builds the orthographic view-projection of a directional light
// looking along dir at center. Clip-space depth is in [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - dir: normalized light direction
//   - center: world point at the middle of the shadow frustum
func (s ShadowSettings) LightViewProjection(out []float32, dir, center common.Vec3) {
	// Place the eye behind the center, opposite the light direction.
	eye := center.Sub(dir.Scale(s.Far * 0.5))

	// Choose a stable up vector that isn't parallel to the light direction.
	up := common.Vec3{Y: 1}
	if math32.Abs(dir.Y) > 0.99 {
		up = common.Vec3{X: 1}
	}

	var view [16]float32
	common.LookAt(view[:], eye, center, up)

	var proj [16]float32
	ortho(proj[:], -s.HalfExtent, s.HalfExtent, -s.HalfExtent, s.HalfExtent, s.Near, s.Far)

	common.Mul4(out, proj[:], view[:])
}

// ortho builds an orthographic projection matrix with X/Y in [-1, 1] and Z in [0, 1].
// Output is column-major.
func ortho(out []float32, left, right, bottom, top, near, far float32) {
	common.Identity(out)
	rl := right - left
	tb := top - bottom
	fn := far - near

	out[0] = 2.0 / rl
	out[5] = 2.0 / tb
	out[10] = -1.0 / fn
	out[12] = -(right + left) / rl
	out[13] = -(top + bottom) / tb
	out[14] = -near / fn
}
