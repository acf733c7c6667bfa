package analysis

import (
	"go.uber.org/zap"

	"github.com/cwbudde/algo-nmr/measure/density"
	"github.com/cwbudde/algo-nmr/measure/gaussfit"
)

// Config holds the fixed constants of an evaluation.
type Config struct {
	Logger *zap.Logger

	// FIDFrom and FIDTo bound the FID window (μs) the early-time
	// Gaussian is fitted to.
	FIDFrom, FIDTo float64
	// SEGuess is the initial amplitude and sigma of the echo maxima fit.
	SEGuess gaussfit.Params
	// FIDSigmaGuess is the initial sigma of the free-amplitude FID fit.
	FIDSigmaGuess float64
	// BuildSigmaGuess is the initial sigma of the fixed-amplitude FID fit.
	BuildSigmaGuess float64
	// HeadStep is the sample spacing of the synthesized build-up head.
	HeadStep float64

	// WaterFrom and WaterTo bound the water slice shown next to the
	// built curve. The density uses the mean of the full water curve.
	WaterFrom, WaterTo float64

	SEGridEnd, SEGridStep       float64
	ModelGridEnd, ModelGridStep float64

	Water, Material density.Sample
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the constants of the cellulose reference evaluation.
func DefaultConfig() Config {
	return Config{
		Logger:          zap.NewNop(),
		FIDFrom:         10,
		FIDTo:           18,
		SEGuess:         gaussfit.Params{Amplitude: 10, Sigma: 6},
		FIDSigmaGuess:   18,
		BuildSigmaGuess: 8,
		HeadStep:        0.1,
		WaterFrom:       30,
		WaterTo:         40,
		SEGridEnd:       25,
		SEGridStep:      0.001,
		ModelGridEnd:    100,
		ModelGridStep:   0.1,
		Water:           density.Water,
		Material:        density.Cellulose,
	}
}

// WithLogger sets the logger stage results are reported to.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *Config) {
		if logger != nil {
			cfg.Logger = logger
		}
	}
}

// WithFIDWindow sets the FID fit window. Empty or inverted windows are ignored.
func WithFIDWindow(from, to float64) Option {
	return func(cfg *Config) {
		if to > from {
			cfg.FIDFrom, cfg.FIDTo = from, to
		}
	}
}

// WithHeadStep sets the build-up head spacing. Non-positive values are ignored.
func WithHeadStep(step float64) Option {
	return func(cfg *Config) {
		if step > 0 {
			cfg.HeadStep = step
		}
	}
}

// WithSamples sets the water reference and the material sample.
func WithSamples(water, material density.Sample) Option {
	return func(cfg *Config) {
		cfg.Water, cfg.Material = water, material
	}
}

// WithWaterWindow sets the displayed water slice. Empty or inverted windows
// are ignored.
func WithWaterWindow(from, to float64) Option {
	return func(cfg *Config) {
		if to > from {
			cfg.WaterFrom, cfg.WaterTo = from, to
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
