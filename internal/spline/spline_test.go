package spline

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/dexter/internal/dexterr"
)

func TestLinearExactOnLine(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{1, 3, 5, 7} // y = 1 + 2x
	s, err := NewLinear(x, y)
	if err != nil {
		t.Fatalf("NewLinear: %v", err)
	}
	for _, v := range []float64{0, 0.5, 1.5, 3} {
		got, err := s.Eval(v)
		if err != nil {
			t.Fatalf("Eval(%v): %v", v, err)
		}
		want := 1 + 2*v
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("Eval(%v) = %v, want %v", v, got, want)
		}
	}
	d, _ := s.EvalDeriv(1.5)
	if math.Abs(d-2) > 1e-12 {
		t.Errorf("EvalDeriv = %v, want 2", d)
	}
	d2, _ := s.EvalDeriv2(1.5)
	if d2 != 0 {
		t.Errorf("EvalDeriv2 = %v, want 0", d2)
	}
}

func TestLinearOutOfDomain(t *testing.T) {
	s, err := NewLinear([]float64{0, 1}, []float64{0, 1})
	if err != nil {
		t.Fatalf("NewLinear: %v", err)
	}
	if _, err := s.Eval(-0.1); !errors.Is(err, dexterr.ErrOutOfDomain) {
		t.Errorf("Eval(-0.1) error = %v, want ErrOutOfDomain", err)
	}
	if _, err := s.Eval(1.1); !errors.Is(err, dexterr.ErrOutOfDomain) {
		t.Errorf("Eval(1.1) error = %v, want ErrOutOfDomain", err)
	}
}

func TestLinearRejectsNonMonotone(t *testing.T) {
	_, err := NewLinear([]float64{0, 1, 0.5}, []float64{0, 1, 2})
	if !errors.Is(err, dexterr.ErrNonMonotoneAxis) {
		t.Errorf("NewLinear error = %v, want ErrNonMonotoneAxis", err)
	}
}

func TestLinearRejectsShapeMismatch(t *testing.T) {
	_, err := NewLinear([]float64{0, 1, 2}, []float64{0, 1})
	if !errors.Is(err, dexterr.ErrShapeMismatch) {
		t.Errorf("NewLinear error = %v, want ErrShapeMismatch", err)
	}
}

func TestCubicExactOnQuadratic(t *testing.T) {
	// A natural cubic spline isn't exact on a quadratic away from the
	// boundary (zero-second-derivative endpoints bias the fit near the
	// edges), so check the interior only.
	x := []float64{0, 1, 2, 3, 4, 5}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = v * v
	}
	s, err := NewCubic(x, y)
	if err != nil {
		t.Fatalf("NewCubic: %v", err)
	}
	got, _ := s.Eval(2.5)
	if math.Abs(got-6.25) > 0.05 {
		t.Errorf("Eval(2.5) = %v, want ~6.25", got)
	}
}

func TestCubicInterpolatesKnots(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{0, 1, 4, 9, 16}
	s, err := NewCubic(x, y)
	if err != nil {
		t.Fatalf("NewCubic: %v", err)
	}
	for i, xi := range x {
		got, err := s.Eval(xi)
		if err != nil {
			t.Fatalf("Eval(%v): %v", xi, err)
		}
		if math.Abs(got-y[i]) > 1e-9 {
			t.Errorf("Eval(%v) = %v, want %v", xi, got, y[i])
		}
	}
}

func TestCubicRejectsTooFewPoints(t *testing.T) {
	_, err := NewCubic([]float64{0, 1}, []float64{0, 1})
	if !errors.Is(err, dexterr.ErrShapeMismatch) {
		t.Errorf("NewCubic error = %v, want ErrShapeMismatch", err)
	}
}

func TestSteffenInterpolatesKnots(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{0, 1, 8, 27, 64} // x^3
	s, err := NewSteffen(x, y)
	if err != nil {
		t.Fatalf("NewSteffen: %v", err)
	}
	for i, xi := range x {
		got, err := s.Eval(xi)
		if err != nil {
			t.Fatalf("Eval(%v): %v", xi, err)
		}
		if math.Abs(got-y[i]) > 1e-9 {
			t.Errorf("Eval(%v) = %v, want %v", xi, got, y[i])
		}
	}
}

// TestSteffenPreservesMonotonicity is the property Steffen's construction
// is chosen for: given monotone data (even with a local plateau), the
// interpolant must never overshoot beyond the neighboring knot values.
func TestSteffenPreservesMonotonicity(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5}
	y := []float64{0, 0.1, 0.1, 5, 5.1, 10} // plateaus at both ends
	s, err := NewSteffen(x, y)
	if err != nil {
		t.Fatalf("NewSteffen: %v", err)
	}
	const samples = 200
	for i := 0; i <= samples; i++ {
		v := x[0] + (x[len(x)-1]-x[0])*float64(i)/samples
		got, err := s.Eval(v)
		if err != nil {
			t.Fatalf("Eval(%v): %v", v, err)
		}
		if got < y[0]-1e-9 || got > y[len(y)-1]+1e-9 {
			t.Errorf("Eval(%v) = %v, escaped data bounds [%v, %v]", v, got, y[0], y[len(y)-1])
		}
	}
	// Within the flat segment [1, 2] the interpolant must stay flat: any
	// overshoot there would violate local monotonicity preservation.
	for _, v := range []float64{1.0, 1.25, 1.5, 1.75, 2.0} {
		got, _ := s.Eval(v)
		if got < 0.1-1e-9 || got > 0.1+1e-9 {
			t.Errorf("Eval(%v) = %v, want exactly 0.1 on the flat segment", v, got)
		}
	}
}

func TestSteffenRejectsNonMonotoneAxis(t *testing.T) {
	_, err := NewSteffen([]float64{0, 2, 1, 3}, []float64{0, 1, 2, 3})
	if !errors.Is(err, dexterr.ErrNonMonotoneAxis) {
		t.Errorf("NewSteffen error = %v, want ErrNonMonotoneAxis", err)
	}
}

func TestBilinearExactOnPlane(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{0, 1, 2}
	z := make([][]float64, len(x))
	for i, xi := range x {
		z[i] = make([]float64, len(y))
		for j, yj := range y {
			z[i][j] = 2*xi + 3*yj // affine in x and y
		}
	}
	s, err := NewBilinear(x, y, z)
	if err != nil {
		t.Fatalf("NewBilinear: %v", err)
	}
	got, err := s.Eval(1.5, 0.5)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	want := 2*1.5 + 3*0.5
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Eval(1.5, 0.5) = %v, want %v", got, want)
	}
	dx, _ := s.EvalDerivX(1.5, 0.5)
	if math.Abs(dx-2) > 1e-9 {
		t.Errorf("EvalDerivX = %v, want 2", dx)
	}
	dy, _ := s.EvalDerivY(1.5, 0.5)
	if math.Abs(dy-3) > 1e-9 {
		t.Errorf("EvalDerivY = %v, want 3", dy)
	}
	dxx, _ := s.EvalDerivXX(1.5, 0.5)
	if dxx != 0 {
		t.Errorf("EvalDerivXX = %v, want 0", dxx)
	}
}

func TestBilinearOutOfDomain(t *testing.T) {
	x := []float64{0, 1}
	y := []float64{0, 1}
	z := [][]float64{{0, 1}, {1, 2}}
	s, err := NewBilinear(x, y, z)
	if err != nil {
		t.Fatalf("NewBilinear: %v", err)
	}
	if _, err := s.Eval(2, 0.5); !errors.Is(err, dexterr.ErrOutOfDomain) {
		t.Errorf("Eval(2, 0.5) error = %v, want ErrOutOfDomain", err)
	}
}

func TestBicubicExactOnPlane(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 1, 2, 3}
	z := make([][]float64, len(x))
	for i, xi := range x {
		z[i] = make([]float64, len(y))
		for j, yj := range y {
			z[i][j] = 1 + 2*xi + 3*yj
		}
	}
	s, err := NewBicubic(x, y, z)
	if err != nil {
		t.Fatalf("NewBicubic: %v", err)
	}
	got, err := s.Eval(1.7, 2.1)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	want := 1 + 2*1.7 + 3*2.1
	if math.Abs(got-want) > 1e-8 {
		t.Errorf("Eval(1.7, 2.1) = %v, want %v", got, want)
	}
}

func TestBicubicInterpolatesGridPoints(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{0, 1, 2, 3}
	z := make([][]float64, len(x))
	for i, xi := range x {
		z[i] = make([]float64, len(y))
		for j, yj := range y {
			z[i][j] = math.Sin(xi) * math.Cos(yj)
		}
	}
	s, err := NewBicubic(x, y, z)
	if err != nil {
		t.Fatalf("NewBicubic: %v", err)
	}
	for i, xi := range x {
		for j, yj := range y {
			got, err := s.Eval(xi, yj)
			if err != nil {
				t.Fatalf("Eval(%v, %v): %v", xi, yj, err)
			}
			if math.Abs(got-z[i][j]) > 1e-9 {
				t.Errorf("Eval(%v, %v) = %v, want %v", xi, yj, got, z[i][j])
			}
		}
	}
}

func TestBicubicRejectsShapeMismatch(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{0, 1, 2}
	z := [][]float64{{0, 1, 2}, {0, 1, 2}} // missing a row
	_, err := NewBicubic(x, y, z)
	var shapeErr *dexterr.ShapeError
	if !errors.As(err, &shapeErr) {
		t.Errorf("NewBicubic error = %v, want *dexterr.ShapeError", err)
	}
}

func TestFindIntervalBoundaries(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	if i := findInterval(x, 0); i != 0 {
		t.Errorf("findInterval(0) = %v, want 0", i)
	}
	if i := findInterval(x, 3); i != 2 {
		t.Errorf("findInterval(3) = %v, want 2", i)
	}
	if i := findInterval(x, 1.5); i != 1 {
		t.Errorf("findInterval(1.5) = %v, want 1", i)
	}
}

func TestKindStrings(t *testing.T) {
	if Steffen.String() != "steffen" || Linear.String() != "linear" || Cubic.String() != "cubic" {
		t.Errorf("Kind1D.String() mismatch")
	}
	if Bilinear.String() != "bilinear" || Bicubic.String() != "bicubic" {
		t.Errorf("Kind2D.String() mismatch")
	}
}
