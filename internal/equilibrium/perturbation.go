package equilibrium

// Perturbation is a sum of Harmonics:
// P(ψp, θ, ζ) = Σ h_i(ψp, θ, ζ).
// The empty Perturbation (no harmonics) is the trivial case: P ≡ 0
// everywhere, used for unperturbed equilibria.
type Perturbation struct {
	Harmonics []*Harmonic
}

// NewPerturbation wraps a (possibly empty) set of harmonics.
func NewPerturbation(harmonics ...*Harmonic) *Perturbation {
	return &Perturbation{Harmonics: harmonics}
}

func (p *Perturbation) Len() int { return len(p.Harmonics) }

func (p *Perturbation) P(psip, theta, zeta float64) (float64, error) {
	sum := 0.0
	for _, h := range p.Harmonics {
		v, err := h.H(psip, theta, zeta)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}

func (p *Perturbation) DPDPsip(psip, theta, zeta float64) (float64, error) {
	sum := 0.0
	for _, h := range p.Harmonics {
		v, err := h.DHDPsip(psip, theta, zeta)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}

func (p *Perturbation) DPDTheta(psip, theta, zeta float64) (float64, error) {
	sum := 0.0
	for _, h := range p.Harmonics {
		v, err := h.DHDTheta(psip, theta, zeta)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}

func (p *Perturbation) DPDZeta(psip, theta, zeta float64) (float64, error) {
	sum := 0.0
	for _, h := range p.Harmonics {
		v, err := h.DHDZeta(psip, theta, zeta)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}

func (p *Perturbation) DPDT(psip, theta, zeta float64) (float64, error) {
	return 0, nil
}
