// Package spectrum provides the frequency-domain side of FID preprocessing.
//
// [FrequencyScale] derives the symmetric frequency axis of a sampled signal,
// and [Align] moves the dominant resonance of a complex FID onto the zero
// frequency bin without altering its decay envelope:
//
//	freq, err := spectrum.FrequencyScale(sig.Time)
//	res, err := spectrum.Align(freq, re, im)
//
// Transforms use the arbitrary-length complex FFT of gonum's dsp/fourier, so
// the spectrum has exactly as many bins as the signal has samples.
package spectrum
