package scene

import "github.com/Carmen-Shannon/oxy-fx/common"

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *Scene)

// WithBackgroundColor sets the initial clear color.
//
// Parameters:
//   - c: the background color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackgroundColor(c common.Color) SceneBuilderOption {
	return func(s *Scene) {
		s.background = c
	}
}

// WithNodes attaches initial children to the scene root.
//
// Parameters:
//   - nodes: the nodes to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithNodes(nodes ...Node) SceneBuilderOption {
	return func(s *Scene) {
		for _, n := range nodes {
			s.Add(n)
		}
	}
}
