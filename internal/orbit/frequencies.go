package orbit

import (
	"math"

	"github.com/san-kum/dexter/internal/dexterr"
	"github.com/san-kum/dexter/internal/gc"
	"github.com/san-kum/dexter/internal/stepper"
)

// Frequencies is the result of single-period analysis: the poloidal
// (bounce, for a trapped orbit, or transit, for a passing orbit) and
// toroidal angular frequencies, and the kinetic safety factor computed as
// their ratio.
type Frequencies struct {
	OmegaTheta float64
	OmegaZeta  float64
	QKinetic   float64
	Period     float64
	OrbitType  Type
}

// psipReturnTol is how close ψp must return to its initial value for a
// θ-return to count as a genuine period closure rather than a coincidental
// crossing of an unrelated orbit branch.
const psipReturnTol = 1e-6

// ExtractFrequencies integrates from (t0, x0) and locates the first
// direction-matched, ψp-tolerance-checked return of θ to θ0 (mod 2π),
// treating both trapped and passing orbits with the same mechanism: a
// Poincaré section at θ=θ0 filtered to crossings moving the same way as the
// initial θ̇. For a passing orbit this closure requires a full 2π winding;
// for a trapped orbit it is the bounce period, since a trapped trajectory
// crosses back through θ0 (staying in the same 2π band it started in)
// without ever completing a winding.
//
// A particle launched with θ0 exactly at a poloidal extremum has θ̇0=0, so
// there is no direction to match against and this returns ErrNoPeriodFound
// immediately — the component does not silently work around a
// badly-chosen θ0, it simply fails to find intersections, as it should.
func ExtractFrequencies(s *stepper.Stepper, mu float64, t0 float64, x0 stepper.Vec4) (Frequencies, stepper.Status, error) {
	theta0, psip0 := x0[0], x0[1]

	rhs0, err := gc.RHS(s.Eq, gc.State{T: t0, Theta: x0[0], Psip: x0[1], Rho: x0[2], Zeta: x0[3], Mu: mu})
	if err != nil {
		return Frequencies{}, stepper.Completed, err
	}
	if rhs0[0] == 0 {
		return Frequencies{}, stepper.Completed, dexterr.ErrNoPeriodFound
	}
	dir := Increasing
	if rhs0[0] < 0 {
		dir = Decreasing
	}

	params := MappingParameters{Section: ConstTheta, Alpha: theta0, Intersections: 8, Direction: dir}
	res := Map(s, t0, x0, params)
	for _, pt := range res.Points {
		if math.Abs(pt.State[1]-psip0) > psipReturnTol {
			continue
		}
		period := pt.T - t0
		if period <= 0 {
			continue
		}
		dzeta := pt.State[3] - x0[3]
		omegaTheta := 2 * math.Pi / period
		omegaZeta := dzeta / period

		orbitType := Passing
		if level := math.Round((pt.Sample - theta0) / (2 * math.Pi)); level == 0 {
			orbitType = Trapped
		}
		return Frequencies{
			OmegaTheta: omegaTheta,
			OmegaZeta:  omegaZeta,
			QKinetic:   omegaZeta / omegaTheta,
			Period:     period,
			OrbitType:  orbitType,
		}, stepper.Completed, nil
	}
	if res.Status != stepper.Completed && res.Status != stepper.StepLimit {
		return Frequencies{}, res.Status, nil
	}
	return Frequencies{}, stepper.Completed, dexterr.ErrNoPeriodFound
}
