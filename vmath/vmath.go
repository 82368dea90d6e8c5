package vmath

import (
	"math"
)

const (
	// PerpendicularEpsilon is the horizontal extent below which a direction counts as vertical
	PerpendicularEpsilon = 0.01
)

// --- Scalar helpers ---

// IsFinite reports whether f is neither NaN nor ±Inf
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// ClampInt limits v to [lo, hi]
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates from a (t=0) to b (t=1)
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
