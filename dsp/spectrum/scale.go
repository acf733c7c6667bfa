package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-nmr/dsp/signal"
)

// FrequencyScale returns the frequency axis of a signal sampled at time.
//
// With dt = time[1]-time[0] and N = len(time) the axis starts at the negative
// Nyquist frequency -1/(2*dt) and advances by 1/(N*dt), giving exactly N
// values. Time must be uniformly spaced; otherwise the bins would not line up
// with the transformed signal and [signal.ErrSpacing] is returned.
func FrequencyScale(time []float64) ([]float64, error) {
	if err := signal.CheckUniform(time); err != nil {
		return nil, fmt.Errorf("spectrum: frequency scale: %w", err)
	}
	n := len(time)
	dt := time[1] - time[0]
	nyquist := 1 / dt / 2
	df := 2 * nyquist / float64(n)

	out := make([]float64, n)
	for i := range out {
		out[i] = -nyquist + float64(i)*df
	}
	return out, nil
}
