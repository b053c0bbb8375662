// Package transition drives timed, eased camera moves between two poses.
package transition

// EaseInOutCubic remaps linear progress t in [0, 1] to a curve that starts
// and ends slowly. e(0)=0, e(0.5)=0.5, e(1)=1, monotonic in between.
func EaseInOutCubic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
