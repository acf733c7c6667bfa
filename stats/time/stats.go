// Package time provides statistics over amplitude curves sampled on a time
// axis: whole-curve summaries, peak lookup and time-window slicing.
package time

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-nmr/dsp/core"
	"github.com/cwbudde/algo-nmr/dsp/signal"
)

// ErrEmptyWindow is returned when a time window selects no samples.
var ErrEmptyWindow = errors.New("time: window selects no samples")

// Stats holds summary statistics of an amplitude curve.
type Stats struct {
	Length int
	Mean   float64
	RMS    float64
	StdDev float64
	Max    float64
	MaxPos int
	Min    float64
	MinPos int
}

// Calculate computes the summary statistics of values. An empty input yields
// a zero Stats with NaN moments and -1 positions.
func Calculate(values []float64) Stats {
	n := len(values)
	if n == 0 {
		return Stats{
			Mean:   math.NaN(),
			RMS:    math.NaN(),
			StdDev: math.NaN(),
			MaxPos: -1,
			MinPos: -1,
		}
	}

	s := Stats{Length: n}
	s.Mean, s.StdDev = stat.PopMeanStdDev(values, nil)
	s.RMS = math.Sqrt(floats.Dot(values, values) / float64(n))
	s.MaxPos = floats.MaxIdx(values)
	s.Max = values[s.MaxPos]
	s.MinPos = floats.MinIdx(values)
	s.Min = values[s.MinPos]
	return s
}

// Mean returns the arithmetic mean of values, or NaN when empty.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}

// Peak returns the maximum of values and its first index, or (NaN, -1) when empty.
func Peak(values []float64) (float64, int) {
	if len(values) == 0 {
		return math.NaN(), -1
	}
	idx := floats.MaxIdx(values)
	return values[idx], idx
}

// Window returns the samples from the one nearest to time from up to, but
// excluding, the one nearest to time to.
func Window(time, values []float64, from, to float64) ([]float64, []float64, error) {
	if len(time) != len(values) {
		return nil, nil, fmt.Errorf("time: window: %w: time=%d values=%d", signal.ErrShape, len(time), len(values))
	}
	lo := core.NearestIndex(time, from)
	hi := core.NearestIndex(time, to)
	if lo < 0 || hi <= lo {
		return nil, nil, fmt.Errorf("%w: [%g, %g)", ErrEmptyWindow, from, to)
	}
	return time[lo:hi], values[lo:hi], nil
}
