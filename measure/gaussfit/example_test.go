package gaussfit_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-nmr/measure/gaussfit"
)

func ExampleFit() {
	echo := make([]float64, 17)
	maxima := make([]float64, 17)
	for i := range echo {
		echo[i] = float64(9 + i)
		maxima[i] = 50 * math.Exp(-echo[i]*echo[i]/(2*8*8))
	}

	res, err := gaussfit.Fit(echo, maxima, gaussfit.MeanFixed(10, 6))
	if err != nil {
		panic(err)
	}
	fmt.Printf("A=%.3f sigma=%.3f t0=%.3f\n", res.Params.Amplitude, res.Params.Sigma, res.Params.At(0))

	// Output:
	// A=50.000 sigma=8.000 t0=50.000
}
