package spline

import "github.com/san-kum/dexter/internal/dexterr"

// CubicSpline is a natural (zero second-derivative boundary) cubic spline,
// C2 across the whole domain. Second derivatives at knots are solved with
// a tridiagonal system, following the standard Numerical-Recipes-style
// natural-spline construction.
type CubicSpline struct {
	x, y   []float64
	m      []float64 // second derivative at each knot
}

// NewCubic builds a CubicSpline over strictly increasing knots x.
func NewCubic(x, y []float64) (*CubicSpline, error) {
	n := len(x)
	if n != len(y) || n < 3 {
		return nil, dexterr.ErrShapeMismatch
	}
	if !checkMonotone(x) {
		return nil, dexterr.ErrNonMonotoneAxis
	}

	h := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = x[i+1] - x[i]
	}

	// Tridiagonal system for interior second derivatives; natural (m[0]=m[n-1]=0).
	a := make([]float64, n)
	b := make([]float64, n)
	c := make([]float64, n)
	d := make([]float64, n)
	b[0], b[n-1] = 1, 1

	for i := 1; i < n-1; i++ {
		a[i] = h[i-1]
		b[i] = 2 * (h[i-1] + h[i])
		c[i] = h[i]
		d[i] = 6 * ((y[i+1]-y[i])/h[i] - (y[i]-y[i-1])/h[i-1])
	}

	m, err := solveTridiagonal(a, b, c, d)
	if err != nil {
		return nil, err
	}
	return &CubicSpline{x: x, y: y, m: m}, nil
}

func solveTridiagonal(a, b, c, d []float64) ([]float64, error) {
	n := len(b)
	cp := make([]float64, n)
	dp := make([]float64, n)
	if b[0] == 0 {
		return nil, dexterr.ErrIllConditioned
	}
	cp[0] = c[0] / b[0]
	dp[0] = d[0] / b[0]
	for i := 1; i < n; i++ {
		denom := b[i] - a[i]*cp[i-1]
		if denom == 0 {
			return nil, dexterr.ErrIllConditioned
		}
		cp[i] = c[i] / denom
		dp[i] = (d[i] - a[i]*dp[i-1]) / denom
	}
	x := make([]float64, n)
	x[n-1] = dp[n-1]
	for i := n - 2; i >= 0; i-- {
		x[i] = dp[i] - cp[i]*x[i+1]
	}
	return x, nil
}

func (s *CubicSpline) Min() float64 { return s.x[0] }
func (s *CubicSpline) Max() float64 { return s.x[len(s.x)-1] }

func (s *CubicSpline) inRange(x float64) bool {
	return x >= s.x[0] && x <= s.x[len(s.x)-1]
}

func (s *CubicSpline) segment(x float64) (i int, h, a, b float64) {
	i = findInterval(s.x, x)
	h = s.x[i+1] - s.x[i]
	a = (s.x[i+1] - x) / h
	b = (x - s.x[i]) / h
	return
}

func (s *CubicSpline) Eval(x float64) (float64, error) {
	if !s.inRange(x) {
		return 0, &dexterr.EvalError{Op: "spline.Cubic.Eval", Coords: []float64{x}, Err: dexterr.ErrOutOfDomain}
	}
	i, h, a, b := s.segment(x)
	y := a*s.y[i] + b*s.y[i+1] +
		((a*a*a-a)*s.m[i]+(b*b*b-b)*s.m[i+1])*(h*h)/6
	return y, nil
}

func (s *CubicSpline) EvalDeriv(x float64) (float64, error) {
	if !s.inRange(x) {
		return 0, &dexterr.EvalError{Op: "spline.Cubic.EvalDeriv", Coords: []float64{x}, Err: dexterr.ErrOutOfDomain}
	}
	i, h, a, b := s.segment(x)
	dy := (s.y[i+1]-s.y[i])/h -
		(3*a*a-1)*h*s.m[i]/6 +
		(3*b*b-1)*h*s.m[i+1]/6
	return dy, nil
}

func (s *CubicSpline) EvalDeriv2(x float64) (float64, error) {
	if !s.inRange(x) {
		return 0, &dexterr.EvalError{Op: "spline.Cubic.EvalDeriv2", Coords: []float64{x}, Err: dexterr.ErrOutOfDomain}
	}
	i, _, a, b := s.segment(x)
	return a*s.m[i] + b*s.m[i+1], nil
}
