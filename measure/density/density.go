// Package density normalises NMR signal amplitudes by the number of protons
// in the sample, making amplitudes of different samples comparable.
//
//	protons = mass / molarMass * Avogadro * protonsPerMolecule
//	density = amplitude / protons
package density

import (
	"errors"
	"fmt"
	"math"
)

// Avogadro is the Avogadro constant in 1/mol, to the precision used for the
// reference measurements.
const Avogadro = 6.022e23

// ErrInvalidSample is returned for samples with non-positive mass, molar
// mass or proton count.
var ErrInvalidSample = errors.New("density: invalid sample")

// Sample describes a weighed sample of a known compound.
type Sample struct {
	Name string
	// Mass of the sample in grams.
	Mass float64
	// MolarMass in grams per mole.
	MolarMass float64
	// ProtonsPerMolecule counts hydrogen nuclei per molecule (or repeat unit).
	ProtonsPerMolecule int
}

// Reference samples of the cellulose solid echo / FID experiment.
var (
	Water     = Sample{Name: "water", Mass: 0.0925, MolarMass: 18.01528, ProtonsPerMolecule: 2}
	Cellulose = Sample{Name: "cellulose", Mass: 0.1334, MolarMass: 162.1406, ProtonsPerMolecule: 10}
)

// Validate reports whether every sample quantity is positive and finite.
func (s Sample) Validate() error {
	switch {
	case !(s.Mass > 0) || math.IsInf(s.Mass, 0):
		return fmt.Errorf("%w: %s: mass must be > 0: %g", ErrInvalidSample, s.Name, s.Mass)
	case !(s.MolarMass > 0) || math.IsInf(s.MolarMass, 0):
		return fmt.Errorf("%w: %s: molar mass must be > 0: %g", ErrInvalidSample, s.Name, s.MolarMass)
	case s.ProtonsPerMolecule <= 0:
		return fmt.Errorf("%w: %s: protons per molecule must be > 0: %d", ErrInvalidSample, s.Name, s.ProtonsPerMolecule)
	}
	return nil
}

// Protons returns the number of protons in the sample.
func (s Sample) Protons() (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return s.Mass / s.MolarMass * Avogadro * float64(s.ProtonsPerMolecule), nil
}

// Of returns amplitude divided by the proton count of s.
func Of(amplitude float64, s Sample) (float64, error) {
	protons, err := s.Protons()
	if err != nil {
		return 0, err
	}
	return amplitude / protons, nil
}

// Result holds the proton densities of the reference and the material.
type Result struct {
	Water    float64
	Material float64

	WaterProtons    float64
	MaterialProtons float64
}

// Compute returns the proton densities of the water reference and the material.
func Compute(waterAmplitude, materialAmplitude float64, water, material Sample) (Result, error) {
	wp, err := water.Protons()
	if err != nil {
		return Result{}, err
	}
	mp, err := material.Protons()
	if err != nil {
		return Result{}, err
	}
	return Result{
		Water:           waterAmplitude / wp,
		Material:        materialAmplitude / mp,
		WaterProtons:    wp,
		MaterialProtons: mp,
	}, nil
}
