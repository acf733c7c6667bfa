package density_test

import (
	"fmt"

	"github.com/cwbudde/algo-nmr/measure/density"
)

func ExampleSample_Protons() {
	water := density.Sample{Name: "water", Mass: 18.01528, MolarMass: 18.01528, ProtonsPerMolecule: 2}
	n, err := water.Protons()
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.4e\n", n)

	// Output:
	// 1.2044e+24
}
