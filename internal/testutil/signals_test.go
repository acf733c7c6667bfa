package testutil

import (
	"math"
	"testing"
)

func TestGaussian(t *testing.T) {
	x := Axis(-2, 1, 5)
	y := Gaussian(x, 4, 0, 1)
	if len(y) != 5 {
		t.Fatalf("len = %d, want 5", len(y))
	}
	if y[2] != 4 {
		t.Fatalf("peak = %v, want 4", y[2])
	}
	if math.Abs(y[1]-y[3]) > 1e-15 {
		t.Fatalf("not symmetric: %v vs %v", y[1], y[3])
	}
	if math.Abs(y[0]-4*math.Exp(-2)) > 1e-15 {
		t.Fatalf("y[0] = %v", y[0])
	}
}

func TestAxis(t *testing.T) {
	x := Axis(9, 1, 17)
	if x[0] != 9 || x[16] != 25 {
		t.Fatalf("unexpected axis %v", x)
	}
}

func TestDeterministicNoiseReproducible(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 100)
	b := DeterministicNoise(42, 1.0, 100)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic at index %d", i)
		}
		if a[i] < -1 || a[i] > 1 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}
}

func TestDC(t *testing.T) {
	d := DC(0.5, 10)
	for i, v := range d {
		if v != 0.5 {
			t.Fatalf("d[%d] = %v, want 0.5", i, v)
		}
	}
}
