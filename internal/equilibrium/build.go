package equilibrium

import (
	"fmt"

	"github.com/san-kum/dexter/internal/equilibrium/fixture"
	"github.com/san-kum/dexter/internal/spline"
)

// BuildAnalytic assembles the large-aspect-ratio analytic Equilibrium used
// by every preset scenario and by tests that don't need tabulated data.
func BuildAnalytic(harmonics ...*Harmonic) *Equilibrium {
	q := UnityQfactor{}
	b := NewLarBfield(q)
	var pert *Perturbation
	if len(harmonics) > 0 {
		pert = NewPerturbation(harmonics...)
	}
	return New(nil, q, LarCurrent{}, b, pert)
}

// BuildTearingModeDemo assembles a synthetic, resonance-bearing equilibrium
// for scenarios (like the tearing-mode preset) that need a q(ψp) profile
// crossing a rational surface, without a real tabulated data file. q rises
// linearly from 1 at the axis to 4 at the edge, so an (m,n)=(2,1) harmonic
// resonates at ψp=1/3.
func BuildTearingModeDemo(m, n int, method PhaseMethod) (*Equilibrium, error) {
	const gridPoints = 41
	psip := make([]float64, gridPoints)
	qData := make([]float64, gridPoints)
	psiData := make([]float64, gridPoints)
	alphaData := make([]float64, gridPoints)
	phaseData := make([]float64, gridPoints)
	for i := 0; i < gridPoints; i++ {
		p := float64(i) / float64(gridPoints-1)
		psip[i] = p
		qData[i] = 1.0 + 3.0*p
		psiData[i] = p
		alphaData[i] = 1e-3 * p * (1 - p) // amplitude vanishing at axis and edge
		phaseData[i] = 0
	}

	l := fixture.New()
	l.Arrays1D[VarPsipNorm] = psip
	l.Arrays1D[VarQ] = qData
	l.Arrays1D[VarPsiLab] = psiData
	l.Harmonics[[2]int{m, n}] = [2][]float64{alphaData, phaseData}

	q, err := NewNumericQfactor(l, spline.Steffen)
	if err != nil {
		return nil, err
	}
	b := NewLarBfield(q)
	h, err := NewHarmonic(l, spline.Steffen, m, n, method, q)
	if err != nil {
		return nil, err
	}
	return New(nil, q, LarCurrent{}, b, NewPerturbation(h)), nil
}

// BuildTabulated assembles an Equilibrium entirely from Loader data: a
// numeric q-factor, a numeric current with (generally nonzero) g' and I'
// derivatives, a numeric field, and whatever geometry interpolants the
// loader carries. This is the path a real tabulated equilibrium file
// exercises, as opposed to BuildAnalytic's trivial constant-g, zero-I LAR
// family.
func BuildTabulated(l Loader, kind1D spline.Kind1D, kind2D spline.Kind2D) (*Equilibrium, error) {
	geom, err := NewGeometry(l, kind1D, kind2D)
	if err != nil {
		return nil, err
	}
	q, err := NewNumericQfactor(l, kind1D)
	if err != nil {
		return nil, err
	}
	c, err := NewNumericCurrent(l, kind1D)
	if err != nil {
		return nil, err
	}
	b, err := NewNumericBfield(l, kind2D)
	if err != nil {
		return nil, err
	}
	return New(geom, q, c, b, nil), nil
}

// ParsePhaseMethod maps a config string onto a PhaseMethod, defaulting to
// PhaseZero for an empty string.
func ParsePhaseMethod(s string) (PhaseMethod, error) {
	switch s {
	case "", "zero":
		return PhaseZero, nil
	case "average":
		return PhaseAverage, nil
	case "resonance":
		return PhaseResonance, nil
	case "spline":
		return PhaseSpline, nil
	default:
		return 0, fmt.Errorf("equilibrium: unknown phase method %q", s)
	}
}
