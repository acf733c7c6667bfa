package signal

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by signal validation and transforms.
var (
	ErrShape    = errors.New("signal: input shape mismatch")
	ErrTooShort = errors.New("signal: at least two samples are required")
	ErrTimeAxis = errors.New("signal: time axis must be strictly increasing")
	ErrSpacing  = errors.New("signal: time axis is not uniformly spaced")
)

// spacingTolerance is the relative deviation from the first step tolerated
// by [CheckUniform].
const spacingTolerance = 1e-3

// Signal is a digitized quadrature acquisition: one (time, real, imaginary)
// triple per sample.
type Signal struct {
	Time []float64
	Re   []float64
	Im   []float64
}

// Len returns the number of samples.
func (s Signal) Len() int { return len(s.Time) }

// Validate checks that all three channels have the same length, that there are
// at least two samples and that time is strictly increasing.
func (s Signal) Validate() error {
	if len(s.Re) != len(s.Time) || len(s.Im) != len(s.Time) {
		return fmt.Errorf("%w: time=%d re=%d im=%d", ErrShape, len(s.Time), len(s.Re), len(s.Im))
	}
	if len(s.Time) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooShort, len(s.Time))
	}
	for i := 1; i < len(s.Time); i++ {
		if !(s.Time[i] > s.Time[i-1]) {
			return fmt.Errorf("%w at index %d", ErrTimeAxis, i)
		}
	}
	return nil
}

// Step returns the sample spacing time[1]-time[0], or 0 for fewer than two samples.
func (s Signal) Step() float64 {
	if len(s.Time) < 2 {
		return 0
	}
	return s.Time[1] - s.Time[0]
}

// Amplitude returns sqrt(re^2 + im^2) per sample.
func (s Signal) Amplitude() ([]float64, error) {
	return Amplitude(s.Re, s.Im)
}

// WithParts returns a copy of s sharing the time axis with re/im replaced.
func (s Signal) WithParts(re, im []float64) Signal {
	return Signal{Time: s.Time, Re: re, Im: im}
}

// Amplitude computes the magnitude sqrt(re[i]^2 + im[i]^2) of each sample.
func Amplitude(re, im []float64) ([]float64, error) {
	if len(re) != len(im) {
		return nil, fmt.Errorf("%w: re=%d im=%d", ErrShape, len(re), len(im))
	}
	if len(re) == 0 {
		return nil, nil
	}
	out := make([]float64, len(re))
	vecmath.Magnitude(out, re, im)
	return out, nil
}

// Rotate applies a phase rotation of deg degrees to each (re, im) pair:
//
//	re' = re*cos(phi) - im*sin(phi)
//	im' = re*sin(phi) + im*cos(phi)
func Rotate(re, im []float64, deg float64) ([]float64, []float64, error) {
	if len(re) != len(im) {
		return nil, nil, fmt.Errorf("%w: re=%d im=%d", ErrShape, len(re), len(im))
	}
	sin, cos := math.Sincos(deg * math.Pi / 180)
	outRe := make([]float64, len(re))
	outIm := make([]float64, len(re))
	for i := range re {
		outRe[i] = re[i]*cos - im[i]*sin
		outIm[i] = re[i]*sin + im[i]*cos
	}
	return outRe, outIm, nil
}

// CheckUniform reports [ErrSpacing] when any step of time deviates from the
// first step by more than a small relative tolerance.
func CheckUniform(time []float64) error {
	if len(time) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooShort, len(time))
	}
	dt := time[1] - time[0]
	if !(dt > 0) {
		return fmt.Errorf("%w at index 1", ErrTimeAxis)
	}
	for i := 2; i < len(time); i++ {
		step := time[i] - time[i-1]
		if math.Abs(step-dt) > spacingTolerance*dt {
			return fmt.Errorf("%w: step %d is %g, first step %g", ErrSpacing, i, step, dt)
		}
	}
	return nil
}
