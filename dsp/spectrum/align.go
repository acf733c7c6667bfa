package spectrum

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-nmr/dsp/core"
	"github.com/cwbudde/algo-nmr/dsp/signal"
)

// ErrEmptyAxis is returned when alignment is requested without a frequency axis.
var ErrEmptyAxis = errors.New("spectrum: frequency axis is empty")

// AlignResult holds a recentred signal and the bin bookkeeping of the shift.
type AlignResult struct {
	Re []float64
	Im []float64

	// PeakIndex is the centred-spectrum bin of maximum magnitude before the shift.
	PeakIndex int
	// ZeroIndex is the bin of the frequency value nearest to zero.
	ZeroIndex int
	// Shift is PeakIndex-ZeroIndex; the spectrum was rotated left by this many bins.
	Shift int
	// Resampled reports that the frequency axis length differed from the
	// spectrum length and a linearly spaced axis was substituted.
	Resampled bool
}

// Align moves the dominant spectral peak of re+i*im to the zero frequency bin.
//
// The complex signal is transformed, put in centred order, circularly rotated
// so the maximum-magnitude bin lands on the bin nearest zero in freq, and
// transformed back. The envelope |re+i*im| is preserved up to FFT rounding.
func Align(freq, re, im []float64) (AlignResult, error) {
	if len(re) != len(im) {
		return AlignResult{}, fmt.Errorf("spectrum: align: %w: re=%d im=%d", signal.ErrShape, len(re), len(im))
	}
	if len(freq) == 0 {
		return AlignResult{}, ErrEmptyAxis
	}
	n := len(re)
	if n < 2 {
		return AlignResult{}, fmt.Errorf("spectrum: align: %w: got %d", signal.ErrTooShort, n)
	}

	seq := make([]complex128, n)
	for i := range seq {
		seq[i] = complex(re[i], im[i])
	}

	fft := fourier.NewCmplxFFT(n)
	centred := Shift(fft.Coefficients(nil, seq))

	var res AlignResult
	if len(freq) != len(centred) {
		freq = floats.Span(make([]float64, len(centred)), freq[0], freq[len(freq)-1])
		res.Resampled = true
	}

	res.PeakIndex = floats.MaxIdx(Magnitude(centred))
	res.ZeroIndex = nearestZero(freq)
	res.Shift = res.PeakIndex - res.ZeroIndex

	rotated := Roll(centred, res.Shift)
	out := fft.Sequence(nil, InverseShift(rotated))

	scale := 1 / float64(n)
	res.Re = make([]float64, n)
	res.Im = make([]float64, n)
	for i, c := range out {
		res.Re[i] = real(c) * scale
		res.Im[i] = imag(c) * scale
	}
	return res, nil
}

// Shift reorders FFT output so the zero frequency bin moves to index len/2.
func Shift(in []complex128) []complex128 {
	return Roll(in, -(len(in) / 2))
}

// InverseShift undoes [Shift], moving the bin at len/2 back to index 0.
func InverseShift(in []complex128) []complex128 {
	return Roll(in, len(in)/2)
}

// Roll returns a copy of in rotated left by k positions: out[i] = in[(i+k) mod n].
// Negative k rotates right.
func Roll(in []complex128, k int) []complex128 {
	n := len(in)
	if n == 0 {
		return nil
	}
	k %= n
	if k < 0 {
		k += n
	}
	out := make([]complex128, n)
	copy(out, in[k:])
	copy(out[n-k:], in[:k])
	return out
}

// nearestZero returns the index of the frequency closest to zero. Values whose
// distance ties the minimum within rounding resolve to the lowest index, so an
// odd-length axis straddling zero maps to the same bin as [Shift]'s DC position.
func nearestZero(freq []float64) int {
	idx := core.NearestIndex(freq, 0)
	if idx < 0 {
		return idx
	}
	best := math.Abs(freq[idx])
	tol := 0.0
	if len(freq) > 1 {
		tol = 1e-9 * math.Abs(freq[1]-freq[0])
	}
	for i, f := range freq[:idx] {
		if math.Abs(f)-best <= tol {
			return i
		}
	}
	return idx
}
