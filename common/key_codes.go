package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyB   = 66  // B key (ASCII): toggle glow
	KeyF   = 70  // F key (ASCII): focus the selected object
	KeyG   = 71  // G key (ASCII): toggle color grading
	KeyO   = 79  // O key (ASCII): toggle outline
	KeyP   = 80  // P key (ASCII): save panel preset
	KeyEsc = 256 // Escape key (GLFW)
)
