package spline

import "github.com/san-kum/dexter/internal/dexterr"

// SteffenSpline is a monotonicity-preserving cubic Hermite interpolant
// (Steffen, 1990): C1, never overshoots the data, and reproduces a locally
// monotone data set with a locally monotone curve. Unlike CubicSpline it
// has no continuous second derivative; EvalDeriv2 is defined piecewise
// from the Hermite cubic on each segment.
type SteffenSpline struct {
	x, y []float64
	d    []float64 // derivative at each knot
}

// NewSteffen builds a SteffenSpline over strictly increasing knots x.
func NewSteffen(x, y []float64) (*SteffenSpline, error) {
	n := len(x)
	if n != len(y) || n < 3 {
		return nil, dexterr.ErrShapeMismatch
	}
	if !checkMonotone(x) {
		return nil, dexterr.ErrNonMonotoneAxis
	}

	h := make([]float64, n-1)
	s := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = x[i+1] - x[i]
		s[i] = (y[i+1] - y[i]) / h[i]
	}

	d := make([]float64, n)
	d[0] = s[0]
	d[n-1] = s[n-2]
	for i := 1; i < n-1; i++ {
		if s[i-1]*s[i] <= 0 {
			d[i] = 0
			continue
		}
		p := (s[i-1]*h[i] + s[i]*h[i-1]) / (h[i-1] + h[i])
		bound := 2 * min(abs(s[i-1]), abs(s[i]))
		d[i] = clampAbs(p, bound)
	}
	return &SteffenSpline{x: x, y: y, d: d}, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func clampAbs(v, bound float64) float64 {
	if v > bound {
		return bound
	}
	if v < -bound {
		return -bound
	}
	return v
}

func (s *SteffenSpline) Min() float64 { return s.x[0] }
func (s *SteffenSpline) Max() float64 { return s.x[len(s.x)-1] }

func (s *SteffenSpline) inRange(x float64) bool {
	return x >= s.x[0] && x <= s.x[len(s.x)-1]
}

// hermite returns the cubic Hermite coefficients on segment i in terms of
// the local parameter t = (x - x[i]) / h.
func (s *SteffenSpline) hermite(x float64) (i int, h, t float64) {
	i = findInterval(s.x, x)
	h = s.x[i+1] - s.x[i]
	t = (x - s.x[i]) / h
	return
}

func (s *SteffenSpline) Eval(x float64) (float64, error) {
	if !s.inRange(x) {
		return 0, &dexterr.EvalError{Op: "spline.Steffen.Eval", Coords: []float64{x}, Err: dexterr.ErrOutOfDomain}
	}
	i, h, t := s.hermite(x)
	h00 := 2*t*t*t - 3*t*t + 1
	h10 := t*t*t - 2*t*t + t
	h01 := -2*t*t*t + 3*t*t
	h11 := t*t*t - t*t
	return h00*s.y[i] + h10*h*s.d[i] + h01*s.y[i+1] + h11*h*s.d[i+1], nil
}

func (s *SteffenSpline) EvalDeriv(x float64) (float64, error) {
	if !s.inRange(x) {
		return 0, &dexterr.EvalError{Op: "spline.Steffen.EvalDeriv", Coords: []float64{x}, Err: dexterr.ErrOutOfDomain}
	}
	i, h, t := s.hermite(x)
	dh00 := 6*t*t - 6*t
	dh10 := 3*t*t - 4*t + 1
	dh01 := -6*t*t + 6*t
	dh11 := 3*t*t - 2*t
	return (dh00*s.y[i]+dh10*h*s.d[i]+dh01*s.y[i+1]+dh11*h*s.d[i+1]) / h, nil
}

func (s *SteffenSpline) EvalDeriv2(x float64) (float64, error) {
	if !s.inRange(x) {
		return 0, &dexterr.EvalError{Op: "spline.Steffen.EvalDeriv2", Coords: []float64{x}, Err: dexterr.ErrOutOfDomain}
	}
	i, h, t := s.hermite(x)
	ddh00 := 12*t - 6
	ddh10 := 6*t - 4
	ddh01 := -12*t + 6
	ddh11 := 6*t - 2
	return (ddh00*s.y[i]+ddh10*h*s.d[i]+ddh01*s.y[i+1]+ddh11*h*s.d[i+1]) / (h * h), nil
}
