package common

import "math"

func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// Sign returns -1 for negative values and 1 otherwise, including zero.
func Sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
