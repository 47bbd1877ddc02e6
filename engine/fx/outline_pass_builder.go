package fx

import "github.com/Carmen-Shannon/oxy-fx/common"

// OutlinePassOption is a functional option applied to an OutlinePass during construction via NewOutlinePass.
type OutlinePassOption func(*OutlinePass)

// WithVisibleEdgeColor sets the color of unoccluded edges.
//
// Parameters:
//   - c: the edge color
//
// Returns:
//   - OutlinePassOption: option function to apply
func WithVisibleEdgeColor(c common.Color) OutlinePassOption {
	return func(p *OutlinePass) {
		p.settings.VisibleEdgeColor = c
	}
}

// WithHiddenEdgeColor sets the color of occluded edges.
func WithHiddenEdgeColor(c common.Color) OutlinePassOption {
	return func(p *OutlinePass) {
		p.settings.HiddenEdgeColor = c
	}
}

func WithEdgeStrength(v float32) OutlinePassOption {
	return func(p *OutlinePass) {
		p.settings.EdgeStrength = v
	}
}

func WithEdgeGlow(v float32) OutlinePassOption {
	return func(p *OutlinePass) {
		p.settings.EdgeGlow = v
	}
}

func WithEdgeThickness(v float32) OutlinePassOption {
	return func(p *OutlinePass) {
		p.settings.EdgeThickness = v
	}
}

func WithPulsePeriod(v float32) OutlinePassOption {
	return func(p *OutlinePass) {
		p.settings.PulsePeriod = v
	}
}
