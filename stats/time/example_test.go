package time_test

import (
	"fmt"

	stattime "github.com/cwbudde/algo-nmr/stats/time"
)

func ExampleWindow() {
	t := []float64{28, 30, 32, 34, 36, 38, 40, 42}
	amp := []float64{9, 8, 7, 6, 5, 4, 3, 2}

	wt, wa, err := stattime.Window(t, amp, 30, 40)
	if err != nil {
		panic(err)
	}
	fmt.Println(wt, wa, stattime.Mean(wa))

	// Output:
	// [30 32 34 36 38] [8 7 6 5 4] 6
}
