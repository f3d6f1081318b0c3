package spline

import "github.com/san-kum/dexter/internal/dexterr"

// BilinearSpline interpolates a scalar field tabulated on a rectangular
// grid using bilinear interpolation within each cell.
type BilinearSpline struct {
	x, y []float64
	z    [][]float64 // z[i][j] = value at (x[i], y[j])
}

// NewBilinear builds a BilinearSpline. z must be shaped [len(x)][len(y)].
func NewBilinear(x, y []float64, z [][]float64) (*BilinearSpline, error) {
	if len(x) < 2 || len(y) < 2 {
		return nil, dexterr.ErrShapeMismatch
	}
	if !checkMonotone(x) || !checkMonotone(y) {
		return nil, dexterr.ErrNonMonotoneAxis
	}
	if len(z) != len(x) {
		return nil, &dexterr.ShapeError{Variable: "z", Expected: [2]int{len(x), len(y)}, Actual: [2]int{len(z), 0}}
	}
	for i, row := range z {
		if len(row) != len(y) {
			return nil, &dexterr.ShapeError{Variable: "z", Expected: [2]int{len(x), len(y)}, Actual: [2]int{len(z), len(row)}}
		}
		_ = i
	}
	return &BilinearSpline{x: x, y: y, z: z}, nil
}

func (s *BilinearSpline) MinX() float64 { return s.x[0] }
func (s *BilinearSpline) MaxX() float64 { return s.x[len(s.x)-1] }
func (s *BilinearSpline) MinY() float64 { return s.y[0] }
func (s *BilinearSpline) MaxY() float64 { return s.y[len(s.y)-1] }

func (s *BilinearSpline) inRange(x, y float64) bool {
	return x >= s.x[0] && x <= s.x[len(s.x)-1] && y >= s.y[0] && y <= s.y[len(s.y)-1]
}

func (s *BilinearSpline) cell(x, y float64) (i, j int, tx, ty float64) {
	i = findInterval(s.x, x)
	j = findInterval(s.y, y)
	tx = (x - s.x[i]) / (s.x[i+1] - s.x[i])
	ty = (y - s.y[j]) / (s.y[j+1] - s.y[j])
	return
}

func (s *BilinearSpline) Eval(x, y float64) (float64, error) {
	if !s.inRange(x, y) {
		return 0, &dexterr.EvalError{Op: "spline.Bilinear.Eval", Coords: []float64{x, y}, Err: dexterr.ErrOutOfDomain}
	}
	i, j, tx, ty := s.cell(x, y)
	z00, z10 := s.z[i][j], s.z[i+1][j]
	z01, z11 := s.z[i][j+1], s.z[i+1][j+1]
	top := z00 + tx*(z10-z00)
	bot := z01 + tx*(z11-z01)
	return top + ty*(bot-top), nil
}

func (s *BilinearSpline) EvalDerivX(x, y float64) (float64, error) {
	if !s.inRange(x, y) {
		return 0, &dexterr.EvalError{Op: "spline.Bilinear.EvalDerivX", Coords: []float64{x, y}, Err: dexterr.ErrOutOfDomain}
	}
	i, j, _, ty := s.cell(x, y)
	hx := s.x[i+1] - s.x[i]
	dtop := (s.z[i+1][j] - s.z[i][j]) / hx
	dbot := (s.z[i+1][j+1] - s.z[i][j+1]) / hx
	return dtop + ty*(dbot-dtop), nil
}

func (s *BilinearSpline) EvalDerivY(x, y float64) (float64, error) {
	if !s.inRange(x, y) {
		return 0, &dexterr.EvalError{Op: "spline.Bilinear.EvalDerivY", Coords: []float64{x, y}, Err: dexterr.ErrOutOfDomain}
	}
	i, j, tx, _ := s.cell(x, y)
	hy := s.y[j+1] - s.y[j]
	left := (s.z[i][j+1] - s.z[i][j]) / hy
	right := (s.z[i+1][j+1] - s.z[i+1][j]) / hy
	return left + tx*(right-left), nil
}

// EvalDerivXX, EvalDerivYY are zero within a cell: bilinear interpolation
// is affine along each axis.
func (s *BilinearSpline) EvalDerivXX(x, y float64) (float64, error) {
	if !s.inRange(x, y) {
		return 0, &dexterr.EvalError{Op: "spline.Bilinear.EvalDerivXX", Coords: []float64{x, y}, Err: dexterr.ErrOutOfDomain}
	}
	return 0, nil
}

func (s *BilinearSpline) EvalDerivYY(x, y float64) (float64, error) {
	if !s.inRange(x, y) {
		return 0, &dexterr.EvalError{Op: "spline.Bilinear.EvalDerivYY", Coords: []float64{x, y}, Err: dexterr.ErrOutOfDomain}
	}
	return 0, nil
}

func (s *BilinearSpline) EvalDerivXY(x, y float64) (float64, error) {
	if !s.inRange(x, y) {
		return 0, &dexterr.EvalError{Op: "spline.Bilinear.EvalDerivXY", Coords: []float64{x, y}, Err: dexterr.ErrOutOfDomain}
	}
	i, j, _, _ := s.cell(x, y)
	hx := s.x[i+1] - s.x[i]
	hy := s.y[j+1] - s.y[j]
	return (s.z[i+1][j+1] - s.z[i+1][j] - s.z[i][j+1] + s.z[i][j]) / (hx * hy), nil
}
