package equilibrium

import (
	"github.com/san-kum/dexter/internal/dexterr"
	"github.com/san-kum/dexter/internal/spline"
)

// Current reports the toroidal current function g(ψp) and poloidal
// current function I(ψp), and their ψp-derivatives. Closed, two-variant
// type: NumericCurrent or LarCurrent (the large-aspect-ratio trivial case).
type Current interface {
	G(psip float64) (float64, error)
	I(psip float64) (float64, error)
	DGDPsip(psip float64) (float64, error)
	DIDPsip(psip float64) (float64, error)
}

// NumericCurrent interpolates g and I from tabulated arrays over ψp.
type NumericCurrent struct {
	g spline.Interpolator1D
	i spline.Interpolator1D
}

// NewNumericCurrent builds a NumericCurrent from a loader.
func NewNumericCurrent(l Loader, kind spline.Kind1D) (*NumericCurrent, error) {
	psip, err := l.Array1D(VarPsipNorm)
	if err != nil {
		return nil, err
	}
	g, err := l.Array1D(VarGNorm)
	if err != nil {
		return nil, err
	}
	i, err := l.Array1D(VarINorm)
	if err != nil {
		return nil, err
	}
	if len(psip) != len(g) || len(psip) != len(i) {
		return nil, dexterr.ErrShapeMismatch
	}
	gInterp, err := build1D(kind, psip, g)
	if err != nil {
		return nil, err
	}
	iInterp, err := build1D(kind, psip, i)
	if err != nil {
		return nil, err
	}
	return &NumericCurrent{g: gInterp, i: iInterp}, nil
}

func (c *NumericCurrent) G(psip float64) (float64, error)       { return c.g.Eval(psip) }
func (c *NumericCurrent) I(psip float64) (float64, error)       { return c.i.Eval(psip) }
func (c *NumericCurrent) DGDPsip(psip float64) (float64, error) { return c.g.EvalDeriv(psip) }
func (c *NumericCurrent) DIDPsip(psip float64) (float64, error) { return c.i.EvalDeriv(psip) }

// LarCurrent is the large-aspect-ratio trivial case: g≡1, I≡0.
type LarCurrent struct{}

func (LarCurrent) G(psip float64) (float64, error)       { return 1.0, nil }
func (LarCurrent) I(psip float64) (float64, error)       { return 0.0, nil }
func (LarCurrent) DGDPsip(psip float64) (float64, error) { return 0.0, nil }
func (LarCurrent) DIDPsip(psip float64) (float64, error) { return 0.0, nil }
