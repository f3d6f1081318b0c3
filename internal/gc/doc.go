// Package gc implements the guiding-center Hamiltonian and its associated
// right-hand side (RHS) in Boozer coordinates. A particle's state is the
// six-tuple (t, θ, ψp, ρ‖, ζ, μ); μ is a constant of motion carried along
// as a parameter rather than integrated.
//
// The equations of motion are written as ẋ = J(x)·∇H(x) for an
// antisymmetric matrix J built from the equilibrium's current functions,
// which guarantees dH/dt = 0 by construction for any time-independent H —
// exactly the energy-conservation invariant this module is tested against.
package gc
