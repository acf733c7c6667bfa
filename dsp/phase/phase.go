// Package phase implements zero-order phase correction of quadrature NMR
// signals in the time domain.
//
// A correctly phased FID is almost purely real near its origin, so the real
// channel tracks the magnitude there. [Correct] searches every integer angle
// for the rotation that makes this hold best.
package phase

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-nmr/dsp/signal"
)

const (
	// Steps is the number of candidate angles, one per degree.
	Steps = 360
	// Window is the number of leading samples scored per candidate.
	Window = 5
)

// Result holds the outcome of a phase search.
type Result struct {
	// Angle is the winning rotation in degrees, 0 <= Angle < 360.
	Angle int
	// Score is mean(magnitude - real) over the scored window at Angle.
	Score float64
	// Re and Im are the full signal rotated by Angle.
	Re []float64
	Im []float64
}

// Correct rotates re+i*im by the integer angle that minimises the mean gap
// between magnitude and real part over the first [Window] samples. Ties go to
// the lowest angle.
func Correct(re, im []float64) (Result, error) {
	if len(re) != len(im) {
		return Result{}, fmt.Errorf("phase: %w: re=%d im=%d", signal.ErrShape, len(re), len(im))
	}
	if len(re) == 0 {
		return Result{}, fmt.Errorf("phase: %w: got 0", signal.ErrTooShort)
	}

	scores := Scores(re, im)
	angle := floats.MinIdx(scores)

	outRe, outIm, err := signal.Rotate(re, im, float64(angle))
	if err != nil {
		return Result{}, err
	}
	return Result{
		Angle: angle,
		Score: scores[angle],
		Re:    outRe,
		Im:    outIm,
	}, nil
}

// Scores returns the phase score for every integer angle in [0, 360).
// Only the first [Window] samples (or fewer for short inputs) contribute.
func Scores(re, im []float64) []float64 {
	k := min(Window, len(re), len(im))
	headRe, headIm := re[:k], im[:k]
	gap := make([]float64, k)
	scores := make([]float64, Steps)
	for phi := range scores {
		r, i, _ := signal.Rotate(headRe, headIm, float64(phi))
		mag, _ := signal.Amplitude(r, i)
		floats.SubTo(gap, mag, r)
		scores[phi] = stat.Mean(gap, nil)
	}
	return scores
}
