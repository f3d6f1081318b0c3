package equilibrium

// Equilibrium bundles the geometry, safety factor, plasma current,
// magnetic field, and perturbation of one reconstructed configuration.
// Once built it is read-only: every field is safe to share across
// concurrently-running goroutines without locking, since none of Qfactor,
// Current, Bfield or Perturbation mutate shared state on evaluation.
type Equilibrium struct {
	Geometry     *Geometry
	Qfactor      Qfactor
	Current      Current
	Bfield       Bfield
	Perturbation *Perturbation
}

// New assembles an Equilibrium from its already-constructed components.
func New(geom *Geometry, q Qfactor, c Current, b Bfield, p *Perturbation) *Equilibrium {
	if p == nil {
		p = NewPerturbation()
	}
	return &Equilibrium{Geometry: geom, Qfactor: q, Current: c, Bfield: b, Perturbation: p}
}
