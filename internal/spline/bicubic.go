package spline

import "github.com/san-kum/dexter/internal/dexterr"

// BicubicSpline interpolates a scalar field tabulated on a rectangular grid
// with a bicubic patch per cell: each cell carries a 4x4 coefficient
// tensor built from the corner values and the corner's x, y and mixed
// partial derivatives (estimated by central differences on the grid),
// following the classic bicubic-patch construction.
type BicubicSpline struct {
	x, y []float64
	z    [][]float64
	fx   [][]float64
	fy   [][]float64
	fxy  [][]float64
}

// NewBicubic builds a BicubicSpline. z must be shaped [len(x)][len(y)].
func NewBicubic(x, y []float64, z [][]float64) (*BicubicSpline, error) {
	nx, ny := len(x), len(y)
	if nx < 3 || ny < 3 {
		return nil, dexterr.ErrShapeMismatch
	}
	if !checkMonotone(x) || !checkMonotone(y) {
		return nil, dexterr.ErrNonMonotoneAxis
	}
	if len(z) != nx {
		return nil, &dexterr.ShapeError{Variable: "z", Expected: [2]int{nx, ny}, Actual: [2]int{len(z), 0}}
	}
	for _, row := range z {
		if len(row) != ny {
			return nil, &dexterr.ShapeError{Variable: "z", Expected: [2]int{nx, ny}, Actual: [2]int{len(z), len(row)}}
		}
	}

	fx := make([][]float64, nx)
	fy := make([][]float64, nx)
	fxy := make([][]float64, nx)
	for i := range fx {
		fx[i] = make([]float64, ny)
		fy[i] = make([]float64, ny)
		fxy[i] = make([]float64, ny)
	}
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			fx[i][j] = centralDiff(x, i, func(k int) float64 { return z[k][j] })
			fy[i][j] = centralDiff(y, j, func(k int) float64 { return z[i][k] })
		}
	}
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			fxy[i][j] = centralDiff(y, j, func(k int) float64 { return fx[i][k] })
		}
	}

	return &BicubicSpline{x: x, y: y, z: z, fx: fx, fy: fy, fxy: fxy}, nil
}

// centralDiff estimates d(values)/d(axis) at index i using a central
// difference, falling back to a one-sided difference at the boundary.
func centralDiff(axis []float64, i int, values func(int) float64) float64 {
	n := len(axis)
	switch {
	case i == 0:
		return (values(1) - values(0)) / (axis[1] - axis[0])
	case i == n-1:
		return (values(n-1) - values(n-2)) / (axis[n-1] - axis[n-2])
	default:
		return (values(i+1) - values(i-1)) / (axis[i+1] - axis[i-1])
	}
}

func (s *BicubicSpline) MinX() float64 { return s.x[0] }
func (s *BicubicSpline) MaxX() float64 { return s.x[len(s.x)-1] }
func (s *BicubicSpline) MinY() float64 { return s.y[0] }
func (s *BicubicSpline) MaxY() float64 { return s.y[len(s.y)-1] }

func (s *BicubicSpline) inRange(x, y float64) bool {
	return x >= s.x[0] && x <= s.x[len(s.x)-1] && y >= s.y[0] && y <= s.y[len(s.y)-1]
}

// patch returns the 4x4 coefficient tensor for the cell containing (x, y)
// together with the cell origin and widths, so callers can map the local
// parameters t=(x-x0)/hx, u=(y-y0)/hy.
func (s *BicubicSpline) patch(x, y float64) (c [4][4]float64, i, j int, hx, hy float64) {
	i = findInterval(s.x, x)
	j = findInterval(s.y, y)
	hx = s.x[i+1] - s.x[i]
	hy = s.y[j+1] - s.y[j]

	// Corner data scaled to the unit square: value, hx*fx, hy*fy, hx*hy*fxy.
	f := [4]float64{s.z[i][j], s.z[i+1][j], s.z[i+1][j+1], s.z[i][j+1]}
	fx := [4]float64{hx * s.fx[i][j], hx * s.fx[i+1][j], hx * s.fx[i+1][j+1], hx * s.fx[i][j+1]}
	fy := [4]float64{hy * s.fy[i][j], hy * s.fy[i+1][j], hy * s.fy[i+1][j+1], hy * s.fy[i][j+1]}
	fxy := [4]float64{hx * hy * s.fxy[i][j], hx * hy * s.fxy[i+1][j], hx * hy * s.fxy[i+1][j+1], hx * hy * s.fxy[i][j+1]}

	c = bicubicCoefficients(f, fx, fy, fxy)
	return
}

// bicubicCoefficients solves for the 16 coefficients of the bicubic patch
// on the unit square given corner values and derivatives, following the
// standard weight-matrix construction (Numerical-Recipes bcucof).
func bicubicCoefficients(f, fx, fy, fxy [4]float64) [4][4]float64 {
	x := make([]float64, 16)
	for i := 0; i < 4; i++ {
		x[i] = f[i]
		x[4+i] = fx[i]
		x[8+i] = fy[i]
		x[12+i] = fxy[i]
	}
	var wt = bicubicWeights
	cl := make([]float64, 16)
	for i := 0; i < 16; i++ {
		sum := 0.0
		for k := 0; k < 16; k++ {
			sum += wt[i][k] * x[k]
		}
		cl[i] = sum
	}
	var c [4][4]float64
	l := 0
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			c[i][j] = cl[l]
			l++
		}
	}
	return c
}

func (s *BicubicSpline) Eval(x, y float64) (float64, error) {
	if !s.inRange(x, y) {
		return 0, &dexterr.EvalError{Op: "spline.Bicubic.Eval", Coords: []float64{x, y}, Err: dexterr.ErrOutOfDomain}
	}
	c, i, j, hx, hy := s.patch(x, y)
	t := (x - s.x[i]) / hx
	u := (y - s.y[j]) / hy
	sum := 0.0
	for a := 3; a >= 0; a-- {
		row := ((c[a][3]*u+c[a][2])*u+c[a][1])*u + c[a][0]
		sum = sum*t + row
	}
	return sum, nil
}

func (s *BicubicSpline) EvalDerivX(x, y float64) (float64, error) {
	if !s.inRange(x, y) {
		return 0, &dexterr.EvalError{Op: "spline.Bicubic.EvalDerivX", Coords: []float64{x, y}, Err: dexterr.ErrOutOfDomain}
	}
	c, i, j, hx, hy := s.patch(x, y)
	t := (x - s.x[i]) / hx
	u := (y - s.y[j]) / hy
	sum := 0.0
	for a := 3; a >= 1; a-- {
		row := ((c[a][3]*u+c[a][2])*u+c[a][1])*u + c[a][0]
		sum = sum*t + float64(a)*row
	}
	return sum / hx, nil
}

func (s *BicubicSpline) EvalDerivY(x, y float64) (float64, error) {
	if !s.inRange(x, y) {
		return 0, &dexterr.EvalError{Op: "spline.Bicubic.EvalDerivY", Coords: []float64{x, y}, Err: dexterr.ErrOutOfDomain}
	}
	c, i, j, hx, hy := s.patch(x, y)
	t := (x - s.x[i]) / hx
	u := (y - s.y[j]) / hy
	sum := 0.0
	for a := 3; a >= 0; a-- {
		row := (3*c[a][3]*u+2*c[a][2])*u + c[a][1]
		sum = sum*t + row
	}
	return sum / hy, nil
}

func (s *BicubicSpline) EvalDerivXX(x, y float64) (float64, error) {
	if !s.inRange(x, y) {
		return 0, &dexterr.EvalError{Op: "spline.Bicubic.EvalDerivXX", Coords: []float64{x, y}, Err: dexterr.ErrOutOfDomain}
	}
	c, i, j, hx, hy := s.patch(x, y)
	t := (x - s.x[i]) / hx
	u := (y - s.y[j]) / hy
	sum := 0.0
	for a := 3; a >= 2; a-- {
		row := ((c[a][3]*u+c[a][2])*u+c[a][1])*u + c[a][0]
		sum = sum*t + float64(a*(a-1))*row
	}
	return sum / (hx * hx), nil
}

func (s *BicubicSpline) EvalDerivYY(x, y float64) (float64, error) {
	if !s.inRange(x, y) {
		return 0, &dexterr.EvalError{Op: "spline.Bicubic.EvalDerivYY", Coords: []float64{x, y}, Err: dexterr.ErrOutOfDomain}
	}
	c, i, j, hx, hy := s.patch(x, y)
	t := (x - s.x[i]) / hx
	u := (y - s.y[j]) / hy
	sum := 0.0
	for a := 3; a >= 0; a-- {
		row := 6*c[a][3]*u + 2*c[a][2]
		sum = sum*t + row
	}
	return sum / (hy * hy), nil
}

func (s *BicubicSpline) EvalDerivXY(x, y float64) (float64, error) {
	if !s.inRange(x, y) {
		return 0, &dexterr.EvalError{Op: "spline.Bicubic.EvalDerivXY", Coords: []float64{x, y}, Err: dexterr.ErrOutOfDomain}
	}
	c, i, j, hx, hy := s.patch(x, y)
	t := (x - s.x[i]) / hx
	u := (y - s.y[j]) / hy
	sum := 0.0
	for a := 3; a >= 1; a-- {
		row := (3*c[a][3]*u+2*c[a][2])*u + c[a][1]
		sum = sum*t + float64(a)*row
	}
	return sum / (hx * hy), nil
}
