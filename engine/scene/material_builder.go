package scene

import "github.com/Carmen-Shannon/oxy-fx/common"

// MaterialBuilderOption is a functional option for configuring a Material.
// Use the With* functions to create options.
type MaterialBuilderOption func(m *Material)

// WithMaterialName sets the material name.
func WithMaterialName(name string) MaterialBuilderOption {
	return func(m *Material) {
		m.name = name
	}
}

// WithColor sets the base color.
//
// Parameters:
//   - c: the color
//
// Returns:
//   - MaterialBuilderOption: option function to apply
func WithColor(c common.Color) MaterialBuilderOption {
	return func(m *Material) {
		m.color = c
	}
}

// WithEmissive sets the self-illumination color.
func WithEmissive(c common.Color) MaterialBuilderOption {
	return func(m *Material) {
		m.emissive = c
	}
}

// WithTexture sets the color texture.
func WithTexture(t *Texture) MaterialBuilderOption {
	return func(m *Material) {
		m.texture = t
	}
}

// WithUnlit makes the material ignore scene lights.
func WithUnlit(unlit bool) MaterialBuilderOption {
	return func(m *Material) {
		m.unlit = unlit
	}
}

// WithSide selects which faces are drawn.
func WithSide(s Side) MaterialBuilderOption {
	return func(m *Material) {
		m.side = s
	}
}
