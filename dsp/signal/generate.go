package signal

import (
	"fmt"
	"math"
	"math/rand"
)

// Generator creates deterministic synthetic acquisitions on a uniform time axis.
type Generator struct {
	start float64
	step  float64
	seed  int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithStart sets the time of the first sample.
func WithStart(start float64) Option {
	return func(g *Generator) {
		g.start = start
	}
}

// WithStep sets the sample spacing. Non-positive values are ignored.
func WithStep(step float64) Option {
	return func(g *Generator) {
		if step > 0 {
			g.step = step
		}
	}
}

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator starting at t=0 with a 0.5 step.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		start: 0,
		step:  0.5,
		seed:  1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Seed returns the current noise seed.
func (g *Generator) Seed() int64 { return g.seed }

// SetSeed updates the noise seed.
func (g *Generator) SetSeed(seed int64) { g.seed = seed }

// TimeAxis returns samples uniformly spaced time values.
func (g *Generator) TimeAxis(samples int) ([]float64, error) {
	if samples < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooShort, samples)
	}
	out := make([]float64, samples)
	for i := range out {
		out[i] = g.start + float64(i)*g.step
	}
	return out, nil
}

// Gaussian generates a Gaussian envelope A*exp(-(t-center)^2/(2*sigma^2))
// carried by a complex phasor with constant phase phaseDeg (degrees) and
// frequency offset (cycles per time unit).
func (g *Generator) Gaussian(amplitude, center, sigma, phaseDeg, offset float64, samples int) (Signal, error) {
	if !(sigma > 0) {
		return Signal{}, fmt.Errorf("gaussian sigma must be > 0: %f", sigma)
	}
	return g.Modulate(func(t float64) float64 {
		d := t - center
		return amplitude * math.Exp(-d*d/(2*sigma*sigma))
	}, phaseDeg, offset, samples)
}

// Constant generates a flat signal of magnitude level at phase phaseDeg,
// modelling the residual background of an empty probe.
func (g *Generator) Constant(level, phaseDeg float64, samples int) (Signal, error) {
	return g.Modulate(func(float64) float64 { return level }, phaseDeg, 0, samples)
}

// Modulate carries the real envelope env(t) on a phasor
// exp(i*(phaseDeg*pi/180 + 2*pi*offset*t)). The magnitude of sample i is
// |env(t_i)|.
func (g *Generator) Modulate(env func(t float64) float64, phaseDeg, offset float64, samples int) (Signal, error) {
	time, err := g.TimeAxis(samples)
	if err != nil {
		return Signal{}, err
	}
	re := make([]float64, samples)
	im := make([]float64, samples)
	phi0 := phaseDeg * math.Pi / 180
	for i, t := range time {
		a := env(t)
		sin, cos := math.Sincos(phi0 + 2*math.Pi*offset*t)
		re[i] = a * cos
		im[i] = a * sin
	}
	return Signal{Time: time, Re: re, Im: im}, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// AddNoise returns a copy of s with independent white noise added to both
// channels. The generator seed advances so repeated calls differ.
func (g *Generator) AddNoise(s Signal, amplitude float64) (Signal, error) {
	if err := s.Validate(); err != nil {
		return Signal{}, err
	}
	nRe, err := g.WhiteNoise(amplitude, s.Len())
	if err != nil {
		return Signal{}, err
	}
	g.seed++
	nIm, err := g.WhiteNoise(amplitude, s.Len())
	if err != nil {
		return Signal{}, err
	}
	g.seed++
	re := make([]float64, s.Len())
	im := make([]float64, s.Len())
	for i := range re {
		re[i] = s.Re[i] + nRe[i]
		im[i] = s.Im[i] + nIm[i]
	}
	return s.WithParts(re, im), nil
}

// Add returns the samplewise sum of a and b, which must share a time axis length.
func Add(a, b Signal) (Signal, error) {
	if a.Len() != b.Len() || len(a.Re) != len(b.Re) || len(a.Im) != len(b.Im) {
		return Signal{}, fmt.Errorf("%w: %d != %d", ErrShape, a.Len(), b.Len())
	}
	re := make([]float64, len(a.Re))
	im := make([]float64, len(a.Im))
	for i := range re {
		re[i] = a.Re[i] + b.Re[i]
	}
	for i := range im {
		im[i] = a.Im[i] + b.Im[i]
	}
	return a.WithParts(re, im), nil
}
