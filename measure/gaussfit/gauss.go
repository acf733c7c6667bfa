package gaussfit

import "math"

// Params holds the three bell-curve parameters.
type Params struct {
	Amplitude float64
	Mean      float64
	Sigma     float64
}

// At evaluates the bell curve at x.
func (p Params) At(x float64) float64 {
	d := x - p.Mean
	return p.Amplitude * math.Exp(-d*d/(2*p.Sigma*p.Sigma))
}

// Eval evaluates the bell curve at every x.
func (p Params) Eval(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = p.At(v)
	}
	return out
}

// Mask selects which parameters a fit optimises.
type Mask uint8

// Mask bits, in the order free parameters appear in [Result.Values].
const (
	FitAmplitude Mask = 1 << iota
	FitMean
	FitSigma

	FitAll = FitAmplitude | FitMean | FitSigma
)

// Count returns the number of free parameters.
func (m Mask) Count() int {
	n := 0
	for _, bit := range []Mask{FitAmplitude, FitMean, FitSigma} {
		if m&bit != 0 {
			n++
		}
	}
	return n
}

// pack extracts the free parameters of p in mask order.
func (m Mask) pack(p Params) []float64 {
	out := make([]float64, 0, 3)
	if m&FitAmplitude != 0 {
		out = append(out, p.Amplitude)
	}
	if m&FitMean != 0 {
		out = append(out, p.Mean)
	}
	if m&FitSigma != 0 {
		out = append(out, p.Sigma)
	}
	return out
}

// unpack overlays the free values onto base.
func (m Mask) unpack(base Params, values []float64) Params {
	i := 0
	if m&FitAmplitude != 0 {
		base.Amplitude = values[i]
		i++
	}
	if m&FitMean != 0 {
		base.Mean = values[i]
		i++
	}
	if m&FitSigma != 0 {
		base.Sigma = values[i]
	}
	return base
}

// partials writes dg/dtheta at x for each free parameter into row.
func (m Mask) partials(row []float64, p Params, x float64) {
	d := x - p.Mean
	s2 := p.Sigma * p.Sigma
	e := math.Exp(-d * d / (2 * s2))
	i := 0
	if m&FitAmplitude != 0 {
		row[i] = e
		i++
	}
	if m&FitMean != 0 {
		row[i] = p.Amplitude * e * d / s2
		i++
	}
	if m&FitSigma != 0 {
		row[i] = p.Amplitude * e * d * d / (s2 * p.Sigma)
	}
}
