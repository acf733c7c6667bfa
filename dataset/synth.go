package dataset

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-nmr/dsp/signal"
	"github.com/cwbudde/algo-nmr/measure/gaussfit"
)

// Synthetic describes a reference acquisition built from known components.
// Every signal is an envelope plus the probe background, carried on a phasor
// with a common phase error and a frequency offset of a whole number of bins.
type Synthetic struct {
	Step       float64 // sample spacing in μs
	Phase      float64 // phase error in degrees
	OffsetBins int     // frequency offset in DFT bins
	Background float64 // empty-probe magnitude
	Noise      float64 // white noise amplitude per channel
	Seed       int64

	FIDStart   float64 // first FID sample (dead time)
	FIDSamples int
	Rigid      gaussfit.Params // rigid fraction of the FID
	MobileAmp  float64         // mobile fraction amplitude
	MobileT2   float64         // mobile fraction decay constant
	WaterAmp   float64
	WaterT2    float64

	EchoTimes   []int
	EchoSamples int
	EchoWidth   float64         // width of each refocused echo
	Echo        gaussfit.Params // echo maximum versus echo time
}

// DefaultSynthetic returns a noiseless set with echoes at 9..25 μs whose
// maxima follow 100*exp(-τ²/(2*14²)).
func DefaultSynthetic() Synthetic {
	echoes := make([]int, 0, 17)
	for et := 9; et <= 25; et++ {
		echoes = append(echoes, et)
	}
	return Synthetic{
		Step:        0.5,
		Phase:       37,
		OffsetBins:  3,
		Background:  2,
		Seed:        1,
		FIDStart:    4,
		FIDSamples:  512,
		Rigid:       gaussfit.Params{Amplitude: 80, Sigma: 9},
		MobileAmp:   20,
		MobileT2:    60,
		WaterAmp:    60,
		WaterT2:     2000,
		EchoTimes:   echoes,
		EchoSamples: 200,
		EchoWidth:   3,
		Echo:        gaussfit.Params{Amplitude: 100, Sigma: 14},
	}
}

// FID returns the noiseless baseline-free FID magnitude at time t.
func (p Synthetic) FID(t float64) float64 {
	return p.Rigid.At(t) + p.MobileAmp*math.Exp(-t/p.MobileT2)
}

// Synthesize generates the labeled signals of p in acquisition order: FID,
// empty FID, water FID, then each solid echo followed by its empty baseline.
func Synthesize(p Synthetic) ([]signal.Labeled, error) {
	if !(p.Step > 0) || p.FIDSamples < 2 || p.EchoSamples < 2 {
		return nil, fmt.Errorf("dataset: synthetic: %w: step=%f fid=%d echo=%d",
			signal.ErrTooShort, p.Step, p.FIDSamples, p.EchoSamples)
	}

	g := signal.NewGenerator(signal.WithStart(p.FIDStart), signal.WithStep(p.Step), signal.WithSeed(p.Seed))
	fidOffset := float64(p.OffsetBins) / (float64(p.FIDSamples) * p.Step)
	bg := p.Background

	var out []signal.Labeled
	add := func(role signal.Role, echoTime int, env func(float64) float64, samples int, offset float64) error {
		s, err := g.Modulate(env, p.Phase, offset, samples)
		if err != nil {
			return err
		}
		if p.Noise > 0 {
			if s, err = g.AddNoise(s, p.Noise); err != nil {
				return err
			}
		}
		name, err := FileName(role, echoTime)
		if err != nil {
			return err
		}
		out = append(out, signal.Labeled{Role: role, EchoTime: echoTime, Source: name, Signal: s})
		return nil
	}

	fid := func(t float64) float64 { return p.FID(t) + bg }
	empty := func(float64) float64 { return bg }
	water := func(t float64) float64 { return p.WaterAmp*math.Exp(-t/p.WaterT2) + bg }
	if err := add(signal.RoleFID, 0, fid, p.FIDSamples, fidOffset); err != nil {
		return nil, err
	}
	if err := add(signal.RoleFIDEmpty, 0, empty, p.FIDSamples, fidOffset); err != nil {
		return nil, err
	}
	if err := add(signal.RoleFIDWater, 0, water, p.FIDSamples, fidOffset); err != nil {
		return nil, err
	}

	g = signal.NewGenerator(signal.WithStep(p.Step), signal.WithSeed(g.Seed()))
	echoOffset := float64(p.OffsetBins) / (float64(p.EchoSamples) * p.Step)
	for _, et := range p.EchoTimes {
		tau := float64(et)
		peak := gaussfit.Params{Amplitude: p.Echo.At(tau), Mean: tau, Sigma: p.EchoWidth}
		echo := func(t float64) float64 { return peak.At(t) + bg }
		if err := add(signal.RoleSE, et, echo, p.EchoSamples, echoOffset); err != nil {
			return nil, err
		}
		if err := add(signal.RoleSEEmpty, et, empty, p.EchoSamples, echoOffset); err != nil {
			return nil, err
		}
	}
	return out, nil
}
