package equilibrium

import (
	"math"

	"github.com/san-kum/dexter/internal/dexterr"
	"github.com/san-kum/dexter/internal/spline"
)

// PhaseMethod selects how a Harmonic's constant phase φ is derived from
// the tabulated phase array. The set is closed and finite.
type PhaseMethod int

const (
	// PhaseZero fixes φ = 0.
	PhaseZero PhaseMethod = iota
	// PhaseAverage fixes φ to the mean of the tabulated phase array.
	PhaseAverage
	// PhaseResonance fixes φ to the tabulated phase evaluated at the
	// resonant surface ψp where q(ψp) = m/n. Construction fails with
	// dexterr.ErrNoResonance if no such surface exists within the domain —
	// unlike a purely cosmetic fallback, this failure is surfaced to the
	// caller rather than silently substituting PhaseZero.
	PhaseResonance
	// PhaseSpline interpolates φ(ψp) directly from the tabulated array at
	// each evaluation.
	PhaseSpline
)

// Harmonic evaluates a single perturbation harmonic
// h(ψp, θ, ζ) = α(ψp) * cos(nζ − mθ + φ(ψp))
// and its partial derivatives with respect to t, ψp, θ, ζ.
type Harmonic struct {
	M, N    int
	alpha   spline.Interpolator1D
	phase   spline.Interpolator1D // present only when method == PhaseSpline
	method  PhaseMethod
	phiConst float64
}

// NewHarmonic builds a Harmonic from a loader's per-(m,n) alpha/phase
// arrays, resolving the constant phase eagerly according to method.
func NewHarmonic(l Loader, kind spline.Kind1D, m, n int, method PhaseMethod, q Qfactor) (*Harmonic, error) {
	psip, err := l.Array1D(VarPsipNorm)
	if err != nil {
		return nil, err
	}
	alphaData, phaseData, err := l.Harmonic(m, n)
	if err != nil {
		return nil, err
	}
	if len(alphaData) != len(psip) || len(phaseData) != len(psip) {
		return nil, dexterr.ErrShapeMismatch
	}

	alphaInterp, err := build1D(kind, psip, alphaData)
	if err != nil {
		return nil, err
	}

	h := &Harmonic{M: m, N: n, alpha: alphaInterp, method: method}

	switch method {
	case PhaseZero:
		h.phiConst = 0
	case PhaseAverage:
		sum := 0.0
		for _, v := range phaseData {
			sum += v
		}
		h.phiConst = sum / float64(len(phaseData))
	case PhaseSpline:
		phaseInterp, err := build1D(kind, psip, phaseData)
		if err != nil {
			return nil, err
		}
		h.phase = phaseInterp
	case PhaseResonance:
		if n == 0 {
			return nil, &dexterr.EvalError{Op: "equilibrium.Harmonic.Resonance", Coords: []float64{float64(m), float64(n)}, Err: dexterr.ErrNoResonance}
		}
		resq := float64(m) / float64(n)
		// Build q(ψp) -> ψp inverse by swapping axes; requires q monotone.
		qData := make([]float64, len(psip))
		for i, p := range psip {
			qv, err := q.Q(p)
			if err != nil {
				return nil, err
			}
			qData[i] = qv
		}
		invPsip, invQ := monotoneSubset(qData, psip)
		if len(invPsip) < 2 {
			return nil, &dexterr.EvalError{Op: "equilibrium.Harmonic.Resonance", Coords: []float64{resq}, Err: dexterr.ErrNoResonance}
		}
		invInterp, err := build1D(spline.Linear, invPsip, invQ)
		if err != nil {
			return nil, dexterr.ErrNoResonance
		}
		psipRes, err := invInterp.Eval(resq)
		if err != nil {
			return nil, &dexterr.EvalError{Op: "equilibrium.Harmonic.Resonance", Coords: []float64{resq}, Err: dexterr.ErrNoResonance}
		}
		phaseInterp, err := build1D(kind, psip, phaseData)
		if err != nil {
			return nil, err
		}
		phi, err := phaseInterp.Eval(psipRes)
		if err != nil {
			return nil, &dexterr.EvalError{Op: "equilibrium.Harmonic.Resonance", Coords: []float64{psipRes}, Err: dexterr.ErrNoResonance}
		}
		h.phiConst = phi
	}
	return h, nil
}

// monotoneSubset returns the subsequence of (x, y) that keeps each point
// whose x exceeds every x kept before it, so a q(ψp) array (which need not be monotone in general, but is
// on any single flux surface) can be inverted to ψp(q) with a plain
// interpolator.
func monotoneSubset(x, y []float64) (xs, ys []float64) {
	if len(x) == 0 {
		return nil, nil
	}
	xs = append(xs, x[0])
	ys = append(ys, y[0])
	for i := 1; i < len(x); i++ {
		if x[i] > xs[len(xs)-1] {
			xs = append(xs, x[i])
			ys = append(ys, y[i])
		}
	}
	return xs, ys
}

func (h *Harmonic) phi(psip float64) (float64, error) {
	if h.method == PhaseSpline {
		return h.phase.Eval(psip)
	}
	return h.phiConst, nil
}

func (h *Harmonic) dphi(psip float64) (float64, error) {
	if h.method == PhaseSpline {
		return h.phase.EvalDeriv(psip)
	}
	return 0, nil
}

// angle returns the harmonic's argument nζ − mθ + φ(ψp).
func (h *Harmonic) angle(psip, theta, zeta float64) (float64, error) {
	phi, err := h.phi(psip)
	if err != nil {
		return 0, err
	}
	return float64(h.N)*zeta - float64(h.M)*theta + phi, nil
}

// H evaluates the harmonic value at (ψp, θ, ζ).
func (h *Harmonic) H(psip, theta, zeta float64) (float64, error) {
	alpha, err := h.alpha.Eval(psip)
	if err != nil {
		return 0, err
	}
	angle, err := h.angle(psip, theta, zeta)
	if err != nil {
		return 0, err
	}
	return alpha * math.Cos(angle), nil
}

func (h *Harmonic) DHDPsip(psip, theta, zeta float64) (float64, error) {
	alpha, err := h.alpha.Eval(psip)
	if err != nil {
		return 0, err
	}
	dalpha, err := h.alpha.EvalDeriv(psip)
	if err != nil {
		return 0, err
	}
	angle, err := h.angle(psip, theta, zeta)
	if err != nil {
		return 0, err
	}
	dphi, err := h.dphi(psip)
	if err != nil {
		return 0, err
	}
	return dalpha*math.Cos(angle) - alpha*math.Sin(angle)*dphi, nil
}

func (h *Harmonic) DHDTheta(psip, theta, zeta float64) (float64, error) {
	alpha, err := h.alpha.Eval(psip)
	if err != nil {
		return 0, err
	}
	angle, err := h.angle(psip, theta, zeta)
	if err != nil {
		return 0, err
	}
	return alpha * math.Sin(angle) * float64(h.M), nil
}

func (h *Harmonic) DHDZeta(psip, theta, zeta float64) (float64, error) {
	alpha, err := h.alpha.Eval(psip)
	if err != nil {
		return 0, err
	}
	angle, err := h.angle(psip, theta, zeta)
	if err != nil {
		return 0, err
	}
	return -alpha * math.Sin(angle) * float64(h.N), nil
}

// DHDT is zero: harmonics carry no explicit time dependence (time-dependent
// perturbations are a documented non-goal).
func (h *Harmonic) DHDT(psip, theta, zeta float64) (float64, error) { return 0, nil }
