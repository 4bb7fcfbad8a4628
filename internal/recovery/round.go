package recovery

import "math"

// roundHalfUp rounds to the nearest integer with ties toward +Inf.
// math.Round sends ties away from zero, which differs for negative input.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// toScore rounds x half-up into an int. NaN maps to 0 and magnitudes beyond
// the int range saturate instead of wrapping.
func toScore(x float64) int {
	r := roundHalfUp(x)
	switch {
	case math.IsNaN(r):
		return 0
	case r >= math.MaxInt:
		return math.MaxInt
	case r <= math.MinInt:
		return math.MinInt
	}
	return int(r)
}
