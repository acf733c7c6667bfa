package interp

import "testing"

func TestLinear(t *testing.T) {
	for _, tc := range []struct {
		frac float64
		want float64
	}{
		{frac: 0, want: 2},
		{frac: 0.25, want: 2.5},
		{frac: 0.5, want: 3},
		{frac: 1, want: 4},
	} {
		if got := Linear(2, 4, tc.frac); got != tc.want {
			t.Fatalf("frac=%v: got %v want %v", tc.frac, got, tc.want)
		}
	}
}

func TestRoot(t *testing.T) {
	for _, tc := range []struct {
		y0, y1 float64
		want   float64
	}{
		{y0: 1, y1: -1, want: 0.5},
		{y0: -3, y1: 1, want: 0.75},
		{y0: 0, y1: 2, want: 0},
		{y0: 2, y1: 0, want: 1},
	} {
		got, ok := Root(tc.y0, tc.y1)
		if !ok {
			t.Fatalf("y0=%v y1=%v: unexpected flat segment", tc.y0, tc.y1)
		}
		if diff := got - tc.want; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("y0=%v y1=%v: got %v want %v", tc.y0, tc.y1, got, tc.want)
		}
		if v := Linear(tc.y0, tc.y1, got); v < -1e-12 || v > 1e-12 {
			t.Fatalf("y0=%v y1=%v: segment at root = %v", tc.y0, tc.y1, v)
		}
	}
	if _, ok := Root(1, 1); ok {
		t.Fatal("expected flat segment to report ok=false")
	}
}
