package fx

// ComposerBuilderOption is a functional option applied to a composer during construction via NewComposer.
type ComposerBuilderOption func(*composer)

// WithComposerName names the composer in errors and logs.
//
// Parameters:
//   - name: the composer name
//
// Returns:
//   - ComposerBuilderOption: a function that applies the name option to a composer
func WithComposerName(name string) ComposerBuilderOption {
	return func(c *composer) {
		c.name = name
	}
}

// WithRenderToScreen marks whether the composer output is presented. Defaults to true.
func WithRenderToScreen(renderToScreen bool) ComposerBuilderOption {
	return func(c *composer) {
		c.renderToScreen = renderToScreen
	}
}

// WithComposerSize sets the initial buffer size.
func WithComposerSize(width, height int) ComposerBuilderOption {
	return func(c *composer) {
		c.SetSize(width, height)
	}
}

// WithPasses appends passes in order.
func WithPasses(passes ...Pass) ComposerBuilderOption {
	return func(c *composer) {
		for _, p := range passes {
			c.AddPass(p)
		}
	}
}
