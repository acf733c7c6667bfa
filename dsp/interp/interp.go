package interp

// Linear returns x0 + frac*(x1-x0).
func Linear(x0, x1, frac float64) float64 {
	return x0 + frac*(x1-x0)
}

// Root returns the fraction of the way from y0 to y1 at which the segment
// between them crosses zero. ok is false for a flat segment.
func Root(y0, y1 float64) (frac float64, ok bool) {
	if y0 == y1 {
		return 0, false
	}
	return y0 / (y0 - y1), true
}
