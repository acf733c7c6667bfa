// Package buildup reconstructs a free induction decay from t=0 by splicing an
// early-time model onto the measured curve.
//
// The receiver dead time hides the first microseconds of an FID. A Gaussian
// anchored at the extrapolated t=0 amplitude describes that region; the
// measured curve takes over where the two cross.
package buildup

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-nmr/dsp/core"
	"github.com/cwbudde/algo-nmr/dsp/interp"
	"github.com/cwbudde/algo-nmr/dsp/signal"
	"github.com/cwbudde/algo-nmr/measure/gaussfit"
)

// Errors returned by the build-up functions.
var (
	ErrNoIntersection = errors.New("buildup: model and measured curves do not intersect")
	ErrInvalidStep    = errors.New("buildup: head step must be positive")
)

// Intersection is a zero crossing of model - measured between samples Index
// and Index+1, located by linear interpolation.
type Intersection struct {
	Index int
	Time  float64
	Amp   float64 // model amplitude at Time
}

// Intersections returns every crossing of model and measured in time order.
//
// A crossing is reported wherever the sign of model-measured differs between
// consecutive samples; a sample where the difference is exactly zero counts
// as a sign change on both sides.
func Intersections(time, model, measured []float64) ([]Intersection, error) {
	if len(model) != len(time) || len(measured) != len(time) {
		return nil, fmt.Errorf("buildup: %w: time=%d model=%d measured=%d", signal.ErrShape, len(time), len(model), len(measured))
	}

	var out []Intersection
	for i := 0; i+1 < len(time); i++ {
		y1 := model[i] - measured[i]
		y2 := model[i+1] - measured[i+1]
		if sign(y1) == sign(y2) {
			continue
		}
		frac, ok := interp.Root(y1, y2)
		if !ok {
			continue
		}
		out = append(out, Intersection{
			Index: i,
			Time:  interp.Linear(time[i], time[i+1], frac),
			Amp:   interp.Linear(model[i], model[i+1], frac),
		})
	}
	return out, nil
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Curve is a built-up decay: a synthesized head on [0, Stitch.Time] followed
// by the measured samples after the stitch.
type Curve struct {
	Time []float64
	Amp  []float64
	// Head is the number of synthesized samples at the start of the curve.
	Head int
	// Stitch is the crossing where the measured curve takes over.
	Stitch Intersection
	// Intersections lists every crossing found, including Stitch.
	Intersections []Intersection
}

// Build evaluates model on the measured time grid, finds the earliest
// crossing at or after t=0 and splices the model head onto the measured tail.
//
// The head is sampled every step from 0 and closed by the crossing point
// itself; the tail keeps the measured samples strictly after the crossing, so
// the result is time ordered and continuous at the stitch.
func Build(time, measured []float64, model gaussfit.Params, step float64) (Curve, error) {
	if !(step > 0) {
		return Curve{}, fmt.Errorf("%w: %g", ErrInvalidStep, step)
	}
	modelOnGrid := model.Eval(time)
	all, err := Intersections(time, modelOnGrid, measured)
	if err != nil {
		return Curve{}, err
	}

	stitch, ok := firstNonNegative(all)
	if !ok {
		return Curve{}, fmt.Errorf("%w: %d crossings, none at t >= 0", ErrNoIntersection, len(all))
	}

	headTime := core.Arange(0, stitch.Time, step)
	for len(headTime) > 0 && headTime[len(headTime)-1] >= stitch.Time {
		headTime = headTime[:len(headTime)-1]
	}
	headTime = append(headTime, stitch.Time)
	headAmp := model.Eval(headTime)
	headAmp[len(headAmp)-1] = stitch.Amp

	tailStart := stitch.Index + 1
	for tailStart < len(time) && !(time[tailStart] > stitch.Time) {
		tailStart++
	}

	c := Curve{
		Time:          make([]float64, 0, len(headTime)+len(time)-tailStart),
		Amp:           make([]float64, 0, len(headTime)+len(time)-tailStart),
		Head:          len(headTime),
		Stitch:        stitch,
		Intersections: all,
	}
	c.Time = append(append(c.Time, headTime...), time[tailStart:]...)
	c.Amp = append(append(c.Amp, headAmp...), measured[tailStart:]...)
	return c, nil
}

func firstNonNegative(in []Intersection) (Intersection, bool) {
	for _, x := range in {
		if x.Time >= 0 && !math.IsNaN(x.Time) {
			return x, true
		}
	}
	return Intersection{}, false
}
