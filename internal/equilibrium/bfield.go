package equilibrium

import (
	"math"

	"github.com/san-kum/dexter/internal/dexterr"
	"github.com/san-kum/dexter/internal/spline"
)

// Bfield reports the magnetic field strength B(ψp, θ), its first partials,
// and the three second partials the Hamiltonian's mirror-force terms need.
// Closed, two-variant type: NumericBfield or LarBfield (the
// large-aspect-ratio analytic case).
type Bfield interface {
	B(psip, theta float64) (float64, error)
	DBDPsip(psip, theta float64) (float64, error)
	DBDTheta(psip, theta float64) (float64, error)
	DDBDPsip2(psip, theta float64) (float64, error)
	DDBDTheta2(psip, theta float64) (float64, error)
	DDBDPsipDTheta(psip, theta float64) (float64, error)
}

// NumericBfield interpolates B(ψp, θ) from a tabulated 2D array.
type NumericBfield struct {
	b spline.Interpolator2D
}

// NewNumericBfield builds a NumericBfield from a loader using the named 2D
// interpolation kind.
func NewNumericBfield(l Loader, kind spline.Kind2D) (*NumericBfield, error) {
	psip, err := l.Array1D(VarPsipNorm)
	if err != nil {
		return nil, err
	}
	theta, err := l.Array1D(VarTheta)
	if err != nil {
		return nil, err
	}
	b, err := l.Array2D(VarBNorm)
	if err != nil {
		return nil, err
	}
	if len(b) != len(psip) {
		return nil, &dexterr.ShapeError{Variable: VarBNorm, Expected: [2]int{len(psip), len(theta)}, Actual: [2]int{len(b), 0}}
	}

	var interp spline.Interpolator2D
	switch kind {
	case spline.Bilinear:
		interp, err = spline.NewBilinear(psip, theta, b)
	default:
		interp, err = spline.NewBicubic(psip, theta, b)
	}
	if err != nil {
		return nil, err
	}
	return &NumericBfield{b: interp}, nil
}

func wrapTau(theta float64) float64 {
	const tau = 2 * math.Pi
	v := math.Mod(theta, tau)
	if v < 0 {
		v += tau
	}
	return v
}

func (n *NumericBfield) B(psip, theta float64) (float64, error) {
	return n.b.Eval(psip, wrapTau(theta))
}

func (n *NumericBfield) DBDPsip(psip, theta float64) (float64, error) {
	return n.b.EvalDerivX(psip, wrapTau(theta))
}

func (n *NumericBfield) DBDTheta(psip, theta float64) (float64, error) {
	return n.b.EvalDerivY(psip, wrapTau(theta))
}

func (n *NumericBfield) DDBDPsip2(psip, theta float64) (float64, error) {
	return n.b.EvalDerivXX(psip, wrapTau(theta))
}

func (n *NumericBfield) DDBDTheta2(psip, theta float64) (float64, error) {
	return n.b.EvalDerivYY(psip, wrapTau(theta))
}

func (n *NumericBfield) DDBDPsipDTheta(psip, theta float64) (float64, error) {
	return n.b.EvalDerivXY(psip, wrapTau(theta))
}

// LarBfield is the large-aspect-ratio analytic field
// B(ψp, θ) = 1 - sqrt(2ψ)cos(θ), where ψ is obtained from the supplied
// Qfactor. Supplemented from the original Rust equilibrium crate, which
// carries this analytic model alongside its numeric one.
type LarBfield struct {
	qfactor Qfactor
}

// NewLarBfield builds a LarBfield over the given Qfactor.
func NewLarBfield(q Qfactor) *LarBfield { return &LarBfield{qfactor: q} }

func (l *LarBfield) B(psip, theta float64) (float64, error) {
	psi, err := l.qfactor.Psi(psip)
	if err != nil {
		return 0, err
	}
	return 1.0 - math.Sqrt(2*psi)*math.Cos(theta), nil
}

func (l *LarBfield) DBDPsip(psip, theta float64) (float64, error) {
	psi, err := l.qfactor.Psi(psip)
	if err != nil {
		return 0, err
	}
	dpsi, err := l.qfactor.DPsiDPsip(psip)
	if err != nil {
		return 0, err
	}
	return -dpsi / math.Sqrt(2*psi) * math.Cos(theta), nil
}

func (l *LarBfield) DBDTheta(psip, theta float64) (float64, error) {
	psi, err := l.qfactor.Psi(psip)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(2*psi) * math.Sin(theta), nil
}

// larPsipStep is the central-difference step used by DDBDPsip2 to estimate
// d²ψ/dψp² from the Qfactor's first derivative, since Qfactor's capability
// set (§4.2) exposes only ψ and dψ/dψp, not a second derivative. Exact for
// UnityQfactor (dψ/dψp≡1, so the finite difference sees a flat line) and
// the LAR field only ever pairs with that variant in this codebase.
const larPsipStep = 1e-5

func (l *LarBfield) DDBDPsip2(psip, theta float64) (float64, error) {
	psi, err := l.qfactor.Psi(psip)
	if err != nil {
		return 0, err
	}
	dpsi, err := l.qfactor.DPsiDPsip(psip)
	if err != nil {
		return 0, err
	}
	dpsiPlus, err := l.qfactor.DPsiDPsip(psip + larPsipStep)
	if err != nil {
		dpsiPlus = dpsi
	}
	dpsiMinus, err := l.qfactor.DPsiDPsip(psip - larPsipStep)
	if err != nil {
		dpsiMinus = dpsi
	}
	d2psi := (dpsiPlus - dpsiMinus) / (2 * larPsipStep)

	s := math.Sqrt(2 * psi)
	return -math.Cos(theta) * (d2psi/s - dpsi*dpsi/(s*s*s)), nil
}

func (l *LarBfield) DDBDTheta2(psip, theta float64) (float64, error) {
	psi, err := l.qfactor.Psi(psip)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(2*psi) * math.Cos(theta), nil
}

func (l *LarBfield) DDBDPsipDTheta(psip, theta float64) (float64, error) {
	psi, err := l.qfactor.Psi(psip)
	if err != nil {
		return 0, err
	}
	dpsi, err := l.qfactor.DPsiDPsip(psip)
	if err != nil {
		return 0, err
	}
	return (dpsi / math.Sqrt(2*psi)) * math.Sin(theta), nil
}
