package testutil

import (
	"math"
	"math/rand"
)

// Gaussian evaluates a*exp(-(x-mu)^2/(2*sigma^2)) at every x.
func Gaussian(x []float64, a, mu, sigma float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		d := v - mu
		out[i] = a * math.Exp(-d*d/(2*sigma*sigma))
	}
	return out
}

// Axis returns n values start, start+step, ...
func Axis(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
