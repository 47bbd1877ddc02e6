package fx

// BloomPassOption is a functional option applied to a BloomPass during construction via NewBloomPass.
type BloomPassOption func(*BloomPass)

// WithBloomStrength sets the initial glow multiplier, clamped to [0, 2].
//
// Parameters:
//   - v: the strength
//
// Returns:
//   - BloomPassOption: option function to apply
func WithBloomStrength(v float32) BloomPassOption {
	return func(p *BloomPass) {
		p.strength = clampf(v, 0, MaxBloomParameter)
	}
}

// WithBloomRadius sets the initial glow spread, clamped to [0, 2].
func WithBloomRadius(v float32) BloomPassOption {
	return func(p *BloomPass) {
		p.radius = clampf(v, 0, MaxBloomParameter)
	}
}

// WithBloomThreshold sets the initial luminance threshold, clamped to [0, 2].
func WithBloomThreshold(v float32) BloomPassOption {
	return func(p *BloomPass) {
		p.threshold = clampf(v, 0, MaxBloomParameter)
	}
}
