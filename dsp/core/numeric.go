package core

import (
	"math"
)

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// NearestIndex returns the index of the element of values closest to target.
// Ties resolve to the lowest index. It returns -1 for an empty slice.
func NearestIndex(values []float64, target float64) int {
	best := -1
	bestDist := math.Inf(1)
	for i, v := range values {
		d := math.Abs(v - target)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// Arange returns start, start+step, ... for every value strictly below stop.
//
// The element count is ceil((stop-start)/step), so the last element may land
// within one step of stop. A non-positive step or an empty range yields nil.
func Arange(start, stop, step float64) []float64 {
	if step <= 0 || !(stop > start) {
		return nil
	}
	n := int(math.Ceil((stop - start) / step))
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
