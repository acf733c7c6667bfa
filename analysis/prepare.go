package analysis

import (
	"github.com/cwbudde/algo-nmr/dsp/phase"
	"github.com/cwbudde/algo-nmr/dsp/signal"
	"github.com/cwbudde/algo-nmr/dsp/spectrum"
)

// Prepared is a phase-corrected, frequency-recentred signal and its amplitude.
type Prepared struct {
	signal.Signal
	Amp       []float64
	Phase     phase.Result
	Frequency []float64
	Align     spectrum.AlignResult
}

// Prepare phase corrects s, recentres its dominant spectral peak at zero
// frequency and computes the amplitude of the result.
func Prepare(s signal.Signal) (Prepared, error) {
	if err := s.Validate(); err != nil {
		return Prepared{}, err
	}
	ph, err := phase.Correct(s.Re, s.Im)
	if err != nil {
		return Prepared{}, err
	}
	freq, err := spectrum.FrequencyScale(s.Time)
	if err != nil {
		return Prepared{}, err
	}
	al, err := spectrum.Align(freq, ph.Re, ph.Im)
	if err != nil {
		return Prepared{}, err
	}
	amp, err := signal.Amplitude(al.Re, al.Im)
	if err != nil {
		return Prepared{}, err
	}
	return Prepared{
		Signal:    s.WithParts(al.Re, al.Im),
		Amp:       amp,
		Phase:     ph,
		Frequency: freq,
		Align:     al,
	}, nil
}

