package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
)

// Side selects which triangle faces a material draws.
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

type Material struct {
	mu             sync.RWMutex
	name           string
	color          common.Color
	emissive       common.Color
	texture        *Texture
	aoMapIntensity float32
	unlit          bool
	side           Side
	disposed       bool
}

// NewMaterial creates a white, lit, front-sided material and applies the given options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - *Material: the configured material
func NewMaterial(options ...MaterialBuilderOption) *Material {
	m := &Material{
		color:          common.ColorWhite,
		aoMapIntensity: 1,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *Material) Name() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.name
}

// Color returns the base color, which tints the texture when one is set.
func (m *Material) Color() common.Color {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.color
}

func (m *Material) SetColor(c common.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.color = c
}

// Emissive returns the self-illumination added after lighting.
func (m *Material) Emissive() common.Color {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.emissive
}

func (m *Material) SetEmissive(c common.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emissive = c
}

func (m *Material) Texture() *Texture {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.texture
}

func (m *Material) SetTexture(t *Texture) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texture = t
}

// AOMapIntensity scales how strongly ambient light is attenuated (1 is unattenuated).
func (m *Material) AOMapIntensity() float32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.aoMapIntensity
}

func (m *Material) SetAOMapIntensity(v float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aoMapIntensity = v
}

// Unlit reports whether the material ignores scene lights.
func (m *Material) Unlit() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.unlit
}

func (m *Material) Side() Side {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.side
}

// Clone returns a copy sharing the same texture.
func (m *Material) Clone() *Material {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return &Material{
		name:           m.name,
		color:          m.color,
		emissive:       m.emissive,
		texture:        m.texture,
		aoMapIntensity: m.aoMapIntensity,
		unlit:          m.unlit,
		side:           m.side,
	}
}

// Dispose marks the material released. The texture is disposed separately.
func (m *Material) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disposed = true
}

func (m *Material) Disposed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.disposed
}
