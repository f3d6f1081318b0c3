package heap

import "github.com/san-kum/dexter/internal/dexterr"

// InitialConditions holds one ensemble's worth of particle starting points
// as five parallel arrays, rather than a slice of structs, so a run can be
// generated by vectorized code (a config-driven grid, a random sample)
// without per-particle allocation.
type InitialConditions struct {
	Thetas []float64
	Psips  []float64
	Rhos   []float64
	Zetas  []float64
	Mus    []float64
}

// Build validates that every array has the same length and returns the
// InitialConditions, or dexterr.ErrInitMismatch if they don't.
func Build(thetas, psips, rhos, zetas, mus []float64) (*InitialConditions, error) {
	n := len(thetas)
	if len(psips) != n || len(rhos) != n || len(zetas) != n || len(mus) != n {
		return nil, dexterr.ErrInitMismatch
	}
	return &InitialConditions{Thetas: thetas, Psips: psips, Rhos: rhos, Zetas: zetas, Mus: mus}, nil
}

// Len reports the number of particles.
func (ic *InitialConditions) Len() int { return len(ic.Thetas) }
