package light

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun. The position only anchors the
	// direction (position toward target) and the shadow frustum.
	LightTypeDirectional LightType = iota

	// LightTypeAmbient represents uniform light reaching every surface from every direction.
	LightTypeAmbient
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu           sync.RWMutex
	lightType    LightType
	position     common.Vec3
	target       common.Vec3
	color        common.Color
	intensity    float32
	enabled      bool
	castsShadows bool
	shadow       ShadowSettings
}

// Light defines the interface for a light source in the scene.
//
// Lights are owned by the stage and handed to the renderer every frame. A directional
// light shines from its position toward its target; an ambient light only carries a
// color and intensity.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space anchor of the light.
	//
	// Returns:
	//   - common.Vec3: the position
	Position() common.Vec3

	// Target returns the point a directional light shines toward.
	//
	// Returns:
	//   - common.Vec3: the target
	Target() common.Vec3

	// Direction returns the normalized direction the light travels, from position toward target.
	//
	// Returns:
	//   - common.Vec3: the direction, or (0, -1, 0) if position equals target
	Direction() common.Vec3

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - common.Color: the color
	Color() common.Color

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Radiance returns Color scaled by Intensity, or black when the light is disabled.
	//
	// Returns:
	//   - common.Color: the effective light contribution
	Radiance() common.Color

	// Enabled returns whether this light contributes to rendering.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// CastsShadows returns whether the renderer builds a shadow map for this light.
	// Only directional lights cast shadows.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// Shadow returns the shadow map settings.
	//
	// Returns:
	//   - ShadowSettings: the settings
	Shadow() ShadowSettings

	// SetPosition sets the world-space anchor of the light.
	//
	// Parameters:
	//   - p: the position
	SetPosition(p common.Vec3)

	// SetTarget sets the point a directional light shines toward.
	//
	// Parameters:
	//   - t: the target
	SetTarget(t common.Vec3)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - c: the color
	SetColor(c common.Color)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetCastsShadows sets whether the light casts shadows.
	//
	// Parameters:
	//   - castsShadows: true to enable shadow casting
	SetCastsShadows(castsShadows bool)

	// SetShadow replaces the shadow map settings.
	//
	// Parameters:
	//   - s: the settings
	SetShadow(s ShadowSettings)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		position:  common.Vec3{X: 0, Y: 1, Z: 0},
		color:     common.ColorWhite,
		intensity: 1.0,
		enabled:   true,
		shadow:    DefaultShadowSettings(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() common.Vec3 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.position
}

func (l *lightImpl) Target() common.Vec3 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.target
}

func (l *lightImpl) Direction() common.Vec3 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	d := l.target.Sub(l.position)
	if d.Len() == 0 {
		return common.Vec3{Y: -1}
	}
	return d.Normalize()
}

func (l *lightImpl) Color() common.Color {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.intensity
}

func (l *lightImpl) Radiance() common.Color {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.enabled {
		return common.ColorBlack
	}
	return l.color.Scale(l.intensity)
}

func (l *lightImpl) Enabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.enabled
}

func (l *lightImpl) CastsShadows() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.castsShadows && l.lightType == LightTypeDirectional
}

func (l *lightImpl) Shadow() ShadowSettings {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.shadow
}

func (l *lightImpl) SetPosition(p common.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = p
}

func (l *lightImpl) SetTarget(t common.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.target = t
}

func (l *lightImpl) SetColor(c common.Color) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = c
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

func (l *lightImpl) SetCastsShadows(castsShadows bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.castsShadows = castsShadows
}

func (l *lightImpl) SetShadow(s ShadowSettings) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shadow = s
}
