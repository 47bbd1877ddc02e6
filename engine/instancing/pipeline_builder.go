package instancing

import "maps"

// PipelineBuilderOption is a functional option for configuring a Pipeline.
// Use the With* functions to create options.
type PipelineBuilderOption func(p *pipeline)

// WithOverrides replaces the per-group material override table.
//
// Parameters:
//   - overrides: group key to override; nil disables all overrides
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithOverrides(overrides map[string]MaterialOverride) PipelineBuilderOption {
	return func(p *pipeline) {
		p.overrides = maps.Clone(overrides)
	}
}

// WithOverride adds or replaces the override of a single group.
func WithOverride(groupKey string, override MaterialOverride) PipelineBuilderOption {
	return func(p *pipeline) {
		if p.overrides == nil {
			p.overrides = make(map[string]MaterialOverride)
		}
		p.overrides[groupKey] = override
	}
}

// WithShadows sets the shadow flags of every built instanced mesh. Both default to true.
func WithShadows(cast, receive bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.castShadow = cast
		p.receiveShadow = receive
	}
}
