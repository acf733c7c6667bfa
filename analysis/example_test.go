package analysis_test

import (
	"fmt"

	"github.com/cwbudde/algo-nmr/analysis"
	"github.com/cwbudde/algo-nmr/dataset"
)

func ExampleRun() {
	set, err := dataset.Synthesize(dataset.DefaultSynthetic())
	if err != nil {
		fmt.Println(err)
		return
	}
	in, err := analysis.Collect(set)
	if err != nil {
		fmt.Println(err)
		return
	}
	r, err := analysis.Run(in)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("extrapolation=%.3f\n", r.Extrapolation)
	fmt.Printf("water=%.3e material=%.3e\n", r.Density.Water, r.Density.Material)
	// Output:
	// extrapolation=100.000
	// water=9.090e-21 material=2.018e-20
}
