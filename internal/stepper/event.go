package stepper

// EventFunc is a scalar function of dense-output state whose zero crossing
// marks an event of interest (a Poincaré-section crossing, a resonance
// surface, ...). Sign, not magnitude, is what FindEvent brackets on.
type EventFunc func(t float64, v Vec4) float64

// FindEvent bisects for the time in (tLo, tHi) where f crosses zero, given
// that f(tLo) and f(tHi) already have opposite sign. interp reconstructs
// the dense-output state at any t in the bracket without extra RHS
// evaluations.
func FindEvent(f EventFunc, interp func(t float64) Vec4, tLo, tHi float64, tol float64, maxIter int) (float64, Vec4) {
	fLo := f(tLo, interp(tLo))
	t, v := tHi, interp(tHi)
	for i := 0; i < maxIter && tHi-tLo > tol; i++ {
		tMid := 0.5 * (tLo + tHi)
		v = interp(tMid)
		fMid := f(tMid, v)
		if sameSign(fLo, fMid) {
			tLo, fLo = tMid, fMid
		} else {
			tHi = tMid
		}
		t = tMid
	}
	return t, v
}

func sameSign(a, b float64) bool {
	return (a >= 0) == (b >= 0)
}
