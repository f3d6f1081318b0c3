package equilibrium

import (
	"github.com/san-kum/dexter/internal/dexterr"
	"github.com/san-kum/dexter/internal/spline"
)

// Qfactor reports the safety factor q(ψp), the toroidal flux ψ(ψp), and
// dψ/dψp along the flux surface labeled by the normalized poloidal flux
// ψp. It is a closed, two-variant type: NumericQfactor (built from
// tabulated data) or UnityQfactor (the trivial q≡1 analytic case).
type Qfactor interface {
	Q(psip float64) (float64, error)
	Psi(psip float64) (float64, error)
	DPsiDPsip(psip float64) (float64, error)
}

// NumericQfactor interpolates q and ψ from tabulated arrays over ψp.
type NumericQfactor struct {
	psip    []float64
	q       spline.Interpolator1D
	psi     spline.Interpolator1D
}

// NewNumericQfactor builds a NumericQfactor from a loader using the named
// interpolation kind for both q(ψp) and ψ(ψp).
func NewNumericQfactor(l Loader, kind spline.Kind1D) (*NumericQfactor, error) {
	psip, err := l.Array1D(VarPsipNorm)
	if err != nil {
		return nil, err
	}
	q, err := l.Array1D(VarQ)
	if err != nil {
		return nil, err
	}
	psi, err := l.Array1D(VarPsiLab)
	if err != nil {
		return nil, err
	}
	if len(psip) != len(q) || len(psip) != len(psi) {
		return nil, dexterr.ErrShapeMismatch
	}

	qInterp, err := build1D(kind, psip, q)
	if err != nil {
		return nil, err
	}
	psiInterp, err := build1D(kind, psip, psi)
	if err != nil {
		return nil, err
	}
	return &NumericQfactor{psip: psip, q: qInterp, psi: psiInterp}, nil
}

func (n *NumericQfactor) Q(psip float64) (float64, error)         { return n.q.Eval(psip) }
func (n *NumericQfactor) Psi(psip float64) (float64, error)       { return n.psi.Eval(psip) }
func (n *NumericQfactor) DPsiDPsip(psip float64) (float64, error) { return n.psi.EvalDeriv(psip) }

// UnityQfactor is the trivial analytic q≡1 case: q(ψp)=1, ψ(ψp)=ψp,
// dψ/dψp=1.
type UnityQfactor struct{}

func (UnityQfactor) Q(psip float64) (float64, error)         { return 1.0, nil }
func (UnityQfactor) Psi(psip float64) (float64, error)       { return psip, nil }
func (UnityQfactor) DPsiDPsip(psip float64) (float64, error) { return 1.0, nil }

func build1D(kind spline.Kind1D, x, y []float64) (spline.Interpolator1D, error) {
	switch kind {
	case spline.Linear:
		return spline.NewLinear(x, y)
	case spline.Cubic:
		return spline.NewCubic(x, y)
	case spline.Steffen:
		return spline.NewSteffen(x, y)
	default:
		return spline.NewSteffen(x, y)
	}
}
