package gc

// State is a guiding-center phase point: time, poloidal angle θ, normalized
// poloidal flux ψp, normalized parallel gyroradius ρ‖, toroidal angle ζ,
// and the magnetic moment μ. μ is a constant of motion for a given
// particle and is carried on every State rather than evolved by the RHS.
type State struct {
	T    float64
	Theta float64
	Psip  float64
	Rho   float64
	Zeta  float64
	Mu    float64
}

// Vector returns the four integrated coordinates in the fixed order the
// stepper operates on: (θ, ψp, ρ‖, ζ).
func (s State) Vector() [4]float64 {
	return [4]float64{s.Theta, s.Psip, s.Rho, s.Zeta}
}

// WithVector returns a copy of s with its integrated coordinates replaced
// and time advanced to t.
func (s State) WithVector(t float64, v [4]float64) State {
	s.T = t
	s.Theta, s.Psip, s.Rho, s.Zeta = v[0], v[1], v[2], v[3]
	return s
}

// Ptheta returns the canonical poloidal momentum Pθ = ψp + ρ‖·I(ψp).
func (s State) Ptheta(eq *Equilibrium) (float64, error) {
	i, err := eq.Current.I(s.Psip)
	if err != nil {
		return 0, err
	}
	return s.Psip + s.Rho*i, nil
}

// Pzeta returns the canonical toroidal momentum Pζ = ρ‖·g(ψp) − ψ(ψp).
func (s State) Pzeta(eq *Equilibrium) (float64, error) {
	g, err := eq.Current.G(s.Psip)
	if err != nil {
		return 0, err
	}
	psi, err := eq.Qfactor.Psi(s.Psip)
	if err != nil {
		return 0, err
	}
	return s.Rho*g - psi, nil
}
