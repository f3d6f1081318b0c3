package gc

import "github.com/san-kum/dexter/internal/dexterr"

// RHS evaluates the guiding-center equations of motion at s, returning the
// time derivatives of (θ, ψp, ρ‖, ζ) in that order — the same order as
// State.Vector.
//
// The equations are written as ẋ = J·∇H for the antisymmetric bracket
// obtained from the phase-space Lagrangian L = Pθθ̇ + Pζζ̇ - H, with the
// canonical momenta Pθ = ψp + ρ‖·I(ψp), Pζ = ρ‖·g(ψp) - ψ(ψp) (State.Ptheta,
// State.Pzeta). Writing a = ∂Pθ/∂ψp = 1+ρ‖·I', b = ∂Pζ/∂ψp = ρ‖·g'-q, the
// Euler-Lagrange equations for ψp and ρ‖ (whose velocities L has none of)
// give θ̇, ζ̇ in terms of ∂H/∂ψp, ∂H/∂ρ‖, and the equations for θ and ζ give
// ψṗ, ρ‖̇ in terms of ∂H/∂θ, ∂H/∂ζ — both 2x2 systems share the determinant
//
//	D = a·g - b·I = g + q·I + ρ‖·(g·I' - I·g')
//
// Antisymmetry of the resulting J guarantees dH/dt = Σᵢⱼ (∂H/∂xᵢ) Jᵢⱼ
// (∂H/∂xⱼ) = 0 for any time-independent H, so total energy is conserved
// exactly by construction — the stepper's accumulated energy drift measures
// only integration error, never a modeling error in the RHS itself.
//
// D vanishes only in pathological equilibria; a caller that constructs an
// equilibrium where it does so gets ErrIllConditioned rather than a silent
// Inf/NaN propagating into the stepper.
func RHS(eq *Equilibrium, s State) ([4]float64, error) {
	g, err := gradientsAt(eq, s)
	if err != nil {
		return [4]float64{}, err
	}
	if g.D == 0 {
		return [4]float64{}, &dexterr.EvalError{
			Op:     "gc.RHS",
			Coords: []float64{s.Psip, s.Theta, s.Rho, s.Zeta},
			Err:    dexterr.ErrIllConditioned,
		}
	}

	thetaDot := (g.G*g.dHdPsip + (g.Q-s.Rho*g.Gp)*g.dHdRho) / g.D
	psipDot := (-g.G*g.dHdTheta + g.I*g.dHdZeta) / g.D
	rhoDot := ((s.Rho*g.Gp-g.Q)*g.dHdTheta - (1+s.Rho*g.Ip)*g.dHdZeta) / g.D
	zetaDot := (-g.I*g.dHdPsip + (1+s.Rho*g.Ip)*g.dHdRho) / g.D

	return [4]float64{thetaDot, psipDot, rhoDot, zetaDot}, nil
}

// RHSState is a convenience wrapper over RHS that returns a full derivative
// State (dT/dt is always 1 by definition of t as the independent variable).
func RHSState(eq *Equilibrium, s State) (State, error) {
	v, err := RHS(eq, s)
	if err != nil {
		return State{}, err
	}
	return State{T: 1, Theta: v[0], Psip: v[1], Rho: v[2], Zeta: v[3], Mu: 0}, nil
}
