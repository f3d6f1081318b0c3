package spline

import "github.com/san-kum/dexter/internal/dexterr"

// LinearSpline is a piecewise-linear 1D interpolant. Its second derivative
// is zero everywhere except at knots, where it is undefined; EvalDeriv2
// always returns 0.
type LinearSpline struct {
	x, y []float64
}

// NewLinear builds a LinearSpline over knots x with values y. x must be
// strictly increasing and the same length as y.
func NewLinear(x, y []float64) (*LinearSpline, error) {
	if len(x) != len(y) || len(x) < 2 {
		return nil, dexterr.ErrShapeMismatch
	}
	if !checkMonotone(x) {
		return nil, dexterr.ErrNonMonotoneAxis
	}
	return &LinearSpline{x: x, y: y}, nil
}

func (s *LinearSpline) Min() float64 { return s.x[0] }
func (s *LinearSpline) Max() float64 { return s.x[len(s.x)-1] }

func (s *LinearSpline) inRange(x float64) bool {
	return x >= s.x[0] && x <= s.x[len(s.x)-1]
}

func (s *LinearSpline) Eval(x float64) (float64, error) {
	if !s.inRange(x) {
		return 0, &dexterr.EvalError{Op: "spline.Linear.Eval", Coords: []float64{x}, Err: dexterr.ErrOutOfDomain}
	}
	i := findInterval(s.x, x)
	t := (x - s.x[i]) / (s.x[i+1] - s.x[i])
	return s.y[i] + t*(s.y[i+1]-s.y[i]), nil
}

func (s *LinearSpline) EvalDeriv(x float64) (float64, error) {
	if !s.inRange(x) {
		return 0, &dexterr.EvalError{Op: "spline.Linear.EvalDeriv", Coords: []float64{x}, Err: dexterr.ErrOutOfDomain}
	}
	i := findInterval(s.x, x)
	return (s.y[i+1] - s.y[i]) / (s.x[i+1] - s.x[i]), nil
}

func (s *LinearSpline) EvalDeriv2(x float64) (float64, error) {
	if !s.inRange(x) {
		return 0, &dexterr.EvalError{Op: "spline.Linear.EvalDeriv2", Coords: []float64{x}, Err: dexterr.ErrOutOfDomain}
	}
	return 0, nil
}
