package animator

// Easing maps linear progress in [0, 1] to eased progress.
type Easing func(t float32) float32

// Linear applies no easing.
func Linear(t float32) float32 {
	return t
}

// QuadraticIn accelerates from zero velocity.
func QuadraticIn(t float32) float32 {
	return t * t
}

// QuadraticOut decelerates to zero velocity.
func QuadraticOut(t float32) float32 {
	return t * (2 - t)
}

// QuadraticInOut accelerates until halfway, then decelerates.
func QuadraticInOut(t float32) float32 {
	t *= 2
	if t < 1 {
		return 0.5 * t * t
	}
	t--
	return -0.5 * (t*(t-2) - 1)
}
