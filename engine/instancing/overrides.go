package instancing

import (
	"maps"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
)

// MaterialOverride adjusts the shared material of one instanced group after it is built.
type MaterialOverride func(m *scene.Material)

var defaultOverrides = map[string]MaterialOverride{
	"tree1": func(m *scene.Material) {
		m.SetAOMapIntensity(0.5)
		m.SetColor(common.RGB(0.9, 1.5, 1.05))
	},
	"tree2": func(m *scene.Material) {
		m.SetColor(common.RGB(0.8, 0.8, 1))
	},
}

// DefaultOverrides returns a copy of the built-in tint table for the known foliage groups.
func DefaultOverrides() map[string]MaterialOverride {
	return maps.Clone(defaultOverrides)
}
