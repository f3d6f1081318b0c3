// Package fixture provides an in-memory equilibrium.Loader for tests and
// for equilibrium.BuildTearingModeDemo, which needs tabulated data but no
// real data file.
package fixture

import (
	"fmt"

	"github.com/san-kum/dexter/internal/dexterr"
)

// Loader is a hand-built, in-memory implementation of equilibrium.Loader.
type Loader struct {
	Scalars    map[string]float64
	Arrays1D   map[string][]float64
	Arrays2D   map[string][][]float64
	IntArrays  map[string][]int
	Harmonics  map[[2]int][2][]float64 // key (m,n) -> [alpha, phase]
	Attrs      map[string]string
}

// New returns an empty Loader ready to be filled in by the caller.
func New() *Loader {
	return &Loader{
		Scalars:   map[string]float64{},
		Arrays1D:  map[string][]float64{},
		Arrays2D:  map[string][][]float64{},
		IntArrays: map[string][]int{},
		Harmonics: map[[2]int][2][]float64{},
		Attrs:     map[string]string{},
	}
}

func (l *Loader) Scalar(name string) (float64, error) {
	v, ok := l.Scalars[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", dexterr.ErrMissingVariable, name)
	}
	return v, nil
}

func (l *Loader) Array1D(name string) ([]float64, error) {
	v, ok := l.Arrays1D[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dexterr.ErrMissingVariable, name)
	}
	return v, nil
}

func (l *Loader) Array2D(name string) ([][]float64, error) {
	v, ok := l.Arrays2D[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dexterr.ErrMissingVariable, name)
	}
	return v, nil
}

func (l *Loader) IntArray1D(name string) ([]int, error) {
	v, ok := l.IntArrays[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dexterr.ErrMissingVariable, name)
	}
	return v, nil
}

func (l *Loader) Harmonic(m, n int) ([]float64, []float64, error) {
	v, ok := l.Harmonics[[2]int{m, n}]
	if !ok {
		return nil, nil, fmt.Errorf("%w: harmonic (%d, %d)", dexterr.ErrMissingVariable, m, n)
	}
	return v[0], v[1], nil
}

func (l *Loader) Attr(name string) (string, bool) {
	v, ok := l.Attrs[name]
	return v, ok
}
