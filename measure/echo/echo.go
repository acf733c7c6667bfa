package echo

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/algo-vecmath"
	"go.uber.org/multierr"

	"github.com/cwbudde/algo-nmr/dsp/signal"
	stattime "github.com/cwbudde/algo-nmr/stats/time"
)

// Errors returned by the echo series builders.
var (
	ErrUnpaired = errors.New("echo: measurement and baseline curves do not pair")
	ErrEmpty    = errors.New("echo: no solid echo curves")
	ErrRole     = errors.New("echo: unexpected curve role")
)

// Subtract returns measurement - baseline over the common prefix of both
// curves. The longer input is truncated to the shorter length.
func Subtract(measurement, baseline []float64) []float64 {
	n := min(len(measurement), len(baseline))
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	vecmath.ScaleBlock(out, baseline[:n], -1)
	vecmath.AddBlockInPlace(out, measurement[:n])
	return out
}

// Pair is one measurement curve with the baseline of the same echo time.
type Pair struct {
	EchoTime    int
	Measurement signal.Curve
	Baseline    signal.Curve
}

// Join pairs measurement and baseline curves by echo time.
//
// Every echo time must occur exactly once on each side; all violations are
// reported together, wrapped in [ErrUnpaired]. Pairs are returned in
// ascending echo-time order.
func Join(measurements, baselines []signal.Curve) ([]Pair, error) {
	if len(measurements) == 0 {
		return nil, ErrEmpty
	}

	meas, errM := index(measurements, signal.RoleSE)
	base, errB := index(baselines, signal.RoleSEEmpty)
	err := multierr.Append(errM, errB)

	for et := range meas {
		if _, ok := base[et]; !ok {
			err = multierr.Append(err, fmt.Errorf("echo time %d has no baseline", et))
		}
	}
	for et := range base {
		if _, ok := meas[et]; !ok {
			err = multierr.Append(err, fmt.Errorf("echo time %d has no measurement", et))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnpaired, err)
	}

	pairs := make([]Pair, 0, len(meas))
	for et, m := range meas {
		pairs = append(pairs, Pair{EchoTime: et, Measurement: m, Baseline: base[et]})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].EchoTime < pairs[j].EchoTime })
	return pairs, nil
}

func index(curves []signal.Curve, role signal.Role) (map[int]signal.Curve, error) {
	out := make(map[int]signal.Curve, len(curves))
	var err error
	for _, c := range curves {
		if c.Role != role {
			err = multierr.Append(err, fmt.Errorf("%w: %s in %s set", ErrRole, c.Label(), role))
			continue
		}
		if _, dup := out[c.EchoTime]; dup {
			err = multierr.Append(err, fmt.Errorf("duplicate %s curve for echo time %d", role, c.EchoTime))
			continue
		}
		out[c.EchoTime] = c
	}
	return out, err
}

// Difference is one baseline-subtracted solid echo curve.
type Difference struct {
	EchoTime int
	Time     []float64
	Amp      []float64
	Max      float64
	MaxIndex int
}

// Tail returns the part of the curve from its maximum onwards, shifted so the
// maximum sits at the first time sample.
func (d Difference) Tail() signal.Curve {
	if d.MaxIndex < 0 || d.MaxIndex >= len(d.Amp) {
		return signal.Curve{Role: signal.RoleSE, EchoTime: d.EchoTime}
	}
	n := len(d.Amp) - d.MaxIndex
	tail := signal.Curve{
		Role:     signal.RoleSE,
		EchoTime: d.EchoTime,
		Time:     make([]float64, n),
		Amp:      append([]float64(nil), d.Amp[d.MaxIndex:]...),
	}
	start := d.Time[0]
	for i := range tail.Time {
		tail.Time[i] = d.Time[d.MaxIndex+i] - d.Time[d.MaxIndex] + start
	}
	return tail
}

// Series is the echo-time versus maximum-amplitude series with the
// difference curves it was taken from.
type Series struct {
	EchoTimes []float64
	Maxima    []float64
	Curves    []Difference
}

// Aggregate subtracts each pair's baseline and records the maximum of the
// difference curve under its echo time.
func Aggregate(pairs []Pair) (Series, error) {
	if len(pairs) == 0 {
		return Series{}, ErrEmpty
	}
	s := Series{
		EchoTimes: make([]float64, 0, len(pairs)),
		Maxima:    make([]float64, 0, len(pairs)),
		Curves:    make([]Difference, 0, len(pairs)),
	}
	for _, p := range pairs {
		m := p.Measurement
		if len(m.Time) != len(m.Amp) {
			return Series{}, fmt.Errorf("echo: %s: %w: time=%d amp=%d", m.Label(), signal.ErrShape, len(m.Time), len(m.Amp))
		}
		diff := Subtract(m.Amp, p.Baseline.Amp)
		if len(diff) == 0 {
			return Series{}, fmt.Errorf("echo: %s: %w: empty difference curve", m.Label(), signal.ErrTooShort)
		}
		peak, idx := stattime.Peak(diff)
		s.EchoTimes = append(s.EchoTimes, float64(p.EchoTime))
		s.Maxima = append(s.Maxima, peak)
		s.Curves = append(s.Curves, Difference{
			EchoTime: p.EchoTime,
			Time:     m.Time[:len(diff)],
			Amp:      diff,
			Max:      peak,
			MaxIndex: idx,
		})
	}
	return s, nil
}
