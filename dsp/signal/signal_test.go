package signal

import (
	"errors"
	"math"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		sig  Signal
		want error
	}{
		{name: "ok", sig: Signal{Time: []float64{0, 1, 2}, Re: []float64{1, 2, 3}, Im: []float64{0, 0, 0}}},
		{name: "re-short", sig: Signal{Time: []float64{0, 1, 2}, Re: []float64{1, 2}, Im: []float64{0, 0, 0}}, want: ErrShape},
		{name: "im-long", sig: Signal{Time: []float64{0, 1}, Re: []float64{1, 2}, Im: []float64{0, 0, 0}}, want: ErrShape},
		{name: "single", sig: Signal{Time: []float64{0}, Re: []float64{1}, Im: []float64{0}}, want: ErrTooShort},
		{name: "descending", sig: Signal{Time: []float64{0, 2, 1}, Re: []float64{1, 2, 3}, Im: []float64{0, 0, 0}}, want: ErrTimeAxis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sig.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAmplitude(t *testing.T) {
	re := []float64{3, -1, 0, -6}
	im := []float64{4, -1, 0, 8}

	amp, err := Amplitude(re, im)
	if err != nil {
		t.Fatalf("Amplitude() error = %v", err)
	}
	for i := range re {
		want := math.Sqrt(re[i]*re[i] + im[i]*im[i])
		if amp[i] < 0 {
			t.Fatalf("amp[%d]=%f is negative", i, amp[i])
		}
		if math.Abs(amp[i]-want) > 1e-12 {
			t.Fatalf("amp[%d]=%f want=%f", i, amp[i], want)
		}
	}

	if _, err := Amplitude([]float64{1}, []float64{1, 2}); !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape, got %v", err)
	}
	if out, err := Amplitude(nil, nil); err != nil || out != nil {
		t.Fatalf("Amplitude(nil, nil) = %v, %v", out, err)
	}
}

func TestRotate(t *testing.T) {
	re, im, err := Rotate([]float64{1, 0}, []float64{0, 1}, 90)
	if err != nil {
		t.Fatalf("Rotate() error = %v", err)
	}
	if math.Abs(re[0]) > 1e-12 || math.Abs(im[0]-1) > 1e-12 {
		t.Fatalf("rotated (1,0) = (%f, %f) want (0, 1)", re[0], im[0])
	}
	if math.Abs(re[1]+1) > 1e-12 || math.Abs(im[1]) > 1e-12 {
		t.Fatalf("rotated (0,1) = (%f, %f) want (-1, 0)", re[1], im[1])
	}

	if _, _, err := Rotate([]float64{1}, nil, 10); !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape, got %v", err)
	}
}

func TestCheckUniform(t *testing.T) {
	if err := CheckUniform([]float64{0, 0.5, 1, 1.5}); err != nil {
		t.Fatalf("CheckUniform() error = %v", err)
	}
	if err := CheckUniform([]float64{0, 0.5, 1, 2}); !errors.Is(err, ErrSpacing) {
		t.Fatalf("expected ErrSpacing, got %v", err)
	}
	if err := CheckUniform([]float64{0}); !errors.Is(err, ErrTooShort) {
		t.Fatalf("expected ErrTooShort, got %v", err)
	}
}

func TestCurveLabel(t *testing.T) {
	c := Curve{Role: RoleSE, EchoTime: 12}
	if c.Label() != "SE[12]" {
		t.Fatalf("Label()=%q", c.Label())
	}
	if (Curve{Role: RoleFIDWater}).Label() != "FID-Water" {
		t.Fatal("unexpected water label")
	}
	if Role(42).String() != "Role(42)" {
		t.Fatalf("unexpected unknown role name %q", Role(42).String())
	}
}

func TestLabeledCurve(t *testing.T) {
	l := Labeled{
		Role:     RoleSEEmpty,
		EchoTime: 9,
		Source:   "Empty_SE_9_c.dat",
		Signal:   Signal{Time: []float64{0, 1}, Re: []float64{3, 0}, Im: []float64{4, -2}},
	}
	c, err := l.Curve()
	if err != nil {
		t.Fatalf("Curve() error = %v", err)
	}
	if c.Role != RoleSEEmpty || c.EchoTime != 9 || c.Amp[0] != 5 || c.Amp[1] != 2 {
		t.Fatalf("unexpected curve %+v", c)
	}
	if l.Label() != "SE-Empty[9]" {
		t.Fatalf("Label()=%q", l.Label())
	}

	l.Im = l.Im[:1]
	if _, err := l.Curve(); !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape, got %v", err)
	}
}
