package density

import (
	"errors"
	"math"
	"testing"
)

func TestReferenceProtonCounts(t *testing.T) {
	wp, err := Water.Protons()
	if err != nil {
		t.Fatalf("Water.Protons() error = %v", err)
	}
	want := 0.0925 / 18.01528 * 6.022e23 * 2
	if math.Abs(wp-want)/want > 1e-15 {
		t.Fatalf("water protons=%g want=%g", wp, want)
	}

	cp, err := Cellulose.Protons()
	if err != nil {
		t.Fatalf("Cellulose.Protons() error = %v", err)
	}
	want = 0.1334 / 162.1406 * 6.022e23 * 10
	if math.Abs(cp-want)/want > 1e-15 {
		t.Fatalf("cellulose protons=%g want=%g", cp, want)
	}
}

func TestCompute(t *testing.T) {
	res, err := Compute(1000, 500, Water, Cellulose)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if math.Abs(res.Water*res.WaterProtons-1000) > 1e-9 {
		t.Fatalf("water density inconsistent: %g * %g", res.Water, res.WaterProtons)
	}
	if math.Abs(res.Material*res.MaterialProtons-500) > 1e-9 {
		t.Fatalf("material density inconsistent: %g * %g", res.Material, res.MaterialProtons)
	}

	d, err := Of(1000, Water)
	if err != nil || d != res.Water {
		t.Fatalf("Of()=%g, %v want %g", d, err, res.Water)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		sample Sample
	}{
		{name: "zero-mass", sample: Sample{Name: "x", MolarMass: 1, ProtonsPerMolecule: 1}},
		{name: "negative-molar", sample: Sample{Name: "x", Mass: 1, MolarMass: -1, ProtonsPerMolecule: 1}},
		{name: "no-protons", sample: Sample{Name: "x", Mass: 1, MolarMass: 1}},
		{name: "nan-mass", sample: Sample{Name: "x", Mass: math.NaN(), MolarMass: 1, ProtonsPerMolecule: 1}},
		{name: "inf-molar", sample: Sample{Name: "x", Mass: 1, MolarMass: math.Inf(1), ProtonsPerMolecule: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.sample.Validate(); !errors.Is(err, ErrInvalidSample) {
				t.Fatalf("expected ErrInvalidSample, got %v", err)
			}
			if _, err := Compute(1, 1, Water, tt.sample); !errors.Is(err, ErrInvalidSample) {
				t.Fatalf("Compute: expected ErrInvalidSample, got %v", err)
			}
		})
	}
}
