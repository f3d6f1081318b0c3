package equilibrium

import (
	"github.com/san-kum/dexter/internal/dexterr"
	"github.com/san-kum/dexter/internal/spline"
)

// Geometry holds the equilibrium's scalar axis quantities and, when the
// underlying data carries them, the coordinate-conversion interpolants
// between the internal (ψp, θ) representation and lab-frame geometry: r↔ψp
// and ψp→ψ (1D), and (ψp,θ)→R_lab, Z_lab, Jacobian (2D). The array-backed
// fields are optional — nil when the loader has no matching arrays — and
// every accessor reports ErrMissingVariable rather than panicking when the
// underlying interpolant was never built.
type Geometry struct {
	Baxis float64
	Raxis float64
	Zaxis float64
	Rgeo  float64

	rOfPsip   spline.Interpolator1D
	psipOfR   spline.Interpolator1D
	psiOfPsip spline.Interpolator1D
	rlab      spline.Interpolator2D
	zlab      spline.Interpolator2D
	jacobian  spline.Interpolator2D
}

// NewGeometry reads the required axis scalars and builds interpolants over
// whatever optional geometry arrays the loader carries.
func NewGeometry(l Loader, kind1D spline.Kind1D, kind2D spline.Kind2D) (*Geometry, error) {
	baxis, err := l.Scalar(VarBaxis)
	if err != nil {
		return nil, err
	}
	raxis, err := l.Scalar(VarRaxis)
	if err != nil {
		return nil, err
	}
	zaxis, err := l.Scalar(VarZaxis)
	if err != nil {
		return nil, err
	}
	rgeo, err := l.Scalar(VarRgeo)
	if err != nil {
		return nil, err
	}

	g := &Geometry{Baxis: baxis, Raxis: raxis, Zaxis: zaxis, Rgeo: rgeo}

	psip, psipErr := l.Array1D(VarPsipNorm)
	if psipErr == nil {
		if r, err := l.Array1D(VarR); err == nil && len(r) == len(psip) {
			if g.rOfPsip, err = build1D(kind1D, psip, r); err != nil {
				return nil, err
			}
			if g.psipOfR, err = build1D(kind1D, r, psip); err != nil {
				return nil, err
			}
		}
		if psi, err := l.Array1D(VarPsiLab); err == nil && len(psi) == len(psip) {
			if g.psiOfPsip, err = build1D(kind1D, psip, psi); err != nil {
				return nil, err
			}
		}
	}

	theta, thetaErr := l.Array1D(VarTheta)
	if psipErr == nil && thetaErr == nil {
		if rlab, err := l.Array2D(VarRlab); err == nil {
			if g.rlab, err = build2D(kind2D, psip, theta, rlab); err != nil {
				return nil, err
			}
		}
		if zlab, err := l.Array2D(VarZlab); err == nil {
			if g.zlab, err = build2D(kind2D, psip, theta, zlab); err != nil {
				return nil, err
			}
		}
		if jac, err := l.Array2D(VarJacobian); err == nil {
			if g.jacobian, err = build2D(kind2D, psip, theta, jac); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

func build2D(kind spline.Kind2D, x, y []float64, z [][]float64) (spline.Interpolator2D, error) {
	switch kind {
	case spline.Bilinear:
		return spline.NewBilinear(x, y, z)
	default:
		return spline.NewBicubic(x, y, z)
	}
}

// RadiusAt returns r(ψp).
func (g *Geometry) RadiusAt(psip float64) (float64, error) {
	if g.rOfPsip == nil {
		return 0, dexterr.ErrMissingVariable
	}
	return g.rOfPsip.Eval(psip)
}

// PsipAt returns ψp(r), the inverse of RadiusAt.
func (g *Geometry) PsipAt(r float64) (float64, error) {
	if g.psipOfR == nil {
		return 0, dexterr.ErrMissingVariable
	}
	return g.psipOfR.Eval(r)
}

// PsiAt returns the lab-frame poloidal flux ψ(ψp).
func (g *Geometry) PsiAt(psip float64) (float64, error) {
	if g.psiOfPsip == nil {
		return 0, dexterr.ErrMissingVariable
	}
	return g.psiOfPsip.Eval(psip)
}

// RlabAt returns the lab-frame major radius R(ψp, θ).
func (g *Geometry) RlabAt(psip, theta float64) (float64, error) {
	if g.rlab == nil {
		return 0, dexterr.ErrMissingVariable
	}
	return g.rlab.Eval(psip, theta)
}

// ZlabAt returns the lab-frame height Z(ψp, θ).
func (g *Geometry) ZlabAt(psip, theta float64) (float64, error) {
	if g.zlab == nil {
		return 0, dexterr.ErrMissingVariable
	}
	return g.zlab.Eval(psip, theta)
}

// JacobianAt returns the coordinate Jacobian J(ψp, θ).
func (g *Geometry) JacobianAt(psip, theta float64) (float64, error) {
	if g.jacobian == nil {
		return 0, dexterr.ErrMissingVariable
	}
	return g.jacobian.Eval(psip, theta)
}
