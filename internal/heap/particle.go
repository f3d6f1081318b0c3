package heap

import (
	"errors"
	"time"

	"github.com/san-kum/dexter/internal/dexterr"
	"github.com/san-kum/dexter/internal/gc"
	"github.com/san-kum/dexter/internal/orbit"
	"github.com/san-kum/dexter/internal/stepper"
)

// Status reports the outcome of one particle's run, using the same
// vocabulary across every routine (integration, mapping, frequency
// extraction) rather than a routine-specific error type.
type Status string

const (
	StatusCompleted        Status = "Completed"
	StatusEventReached     Status = "EventReached"
	StatusStepTooSmall     Status = "StepTooSmall"
	StatusEscapedDomain    Status = "EscapedDomain"
	StatusStepLimit        Status = "StepLimit"
	StatusNoPeriodFound    Status = "NoPeriodFound"
	StatusNoResonance      Status = "NoResonance"
	StatusOutOfDomain      Status = "OutOfDomain"
	StatusIllConditioned   Status = "IllConditioned"
	StatusFileMissing      Status = "FileMissing"
	StatusMissingVariable  Status = "MissingVariable"
	StatusShapeMismatch    Status = "ShapeMismatch"
	StatusNonMonotoneAxis  Status = "NonMonotoneAxis"
	StatusFailed           Status = "Failed"
)

func statusFromStepper(s stepper.Status) Status {
	switch s {
	case stepper.Completed:
		return StatusCompleted
	case stepper.EventReached:
		return StatusEventReached
	case stepper.StepTooSmall:
		return StatusStepTooSmall
	case stepper.EscapedDomain:
		return StatusEscapedDomain
	case stepper.StepLimit:
		return StatusStepLimit
	default:
		return StatusFailed
	}
}

// statusFromError classifies a construction/evaluation-time error into the
// shared Status vocabulary, falling back to StatusFailed for anything
// unrecognized.
func statusFromError(err error) Status {
	switch {
	case errors.Is(err, dexterr.ErrNoResonance):
		return StatusNoResonance
	case errors.Is(err, dexterr.ErrOutOfDomain):
		return StatusOutOfDomain
	case errors.Is(err, dexterr.ErrIllConditioned):
		return StatusIllConditioned
	case errors.Is(err, dexterr.ErrFileMissing):
		return StatusFileMissing
	case errors.Is(err, dexterr.ErrMissingVariable):
		return StatusMissingVariable
	case errors.Is(err, dexterr.ErrShapeMismatch):
		return StatusShapeMismatch
	case errors.Is(err, dexterr.ErrNonMonotoneAxis):
		return StatusNonMonotoneAxis
	case errors.Is(err, dexterr.ErrNoPeriodFound):
		return StatusNoPeriodFound
	default:
		return StatusFailed
	}
}

// Particle is one ensemble member's initial condition, its recorded
// evolution (once run), and the outcome of whatever routine last ran it.
type Particle struct {
	Initial   gc.State
	Evolution *orbit.Evolution
	Frequencies *orbit.Frequencies
	OrbitType orbit.Type
	Status    Status
	FinalState gc.State

	mapDuration time.Duration
	mapSteps    int
}

// NewParticle builds a Particle from one InitialConditions row.
func NewParticle(ic *InitialConditions, i int) *Particle {
	return &Particle{
		Initial: gc.State{Theta: ic.Thetas[i], Psip: ic.Psips[i], Rho: ic.Rhos[i], Zeta: ic.Zetas[i], Mu: ic.Mus[i]},
	}
}

// Integrate records the particle's full trajectory.
func (p *Particle) Integrate(eq *gc.Equilibrium, cfg stepper.Config) {
	start := time.Now()
	s := stepper.New(eq, p.Initial.Mu, cfg)
	ev := orbit.NewEvolution()

	x0 := stepper.Vec4{p.Initial.Theta, p.Initial.Psip, p.Initial.Rho, p.Initial.Zeta}
	onAccept := func(res stepper.StepResult) {
		state := gc.State{T: res.T1, Theta: res.X1[0], Psip: res.X1[1], Rho: res.X1[2], Zeta: res.X1[3], Mu: p.Initial.Mu}
		if err := ev.Push(eq, state); err != nil {
			return
		}
	}
	t, x, status, err := s.Run(0, x0, nil, onAccept)
	p.mapDuration = time.Since(start)
	p.mapSteps = ev.StepsTaken

	ev.Finish(p.mapDuration)
	p.Evolution = ev
	p.FinalState = gc.State{T: t, Theta: x[0], Psip: x[1], Rho: x[2], Zeta: x[3], Mu: p.Initial.Mu}
	p.OrbitType = orbit.Classify(ev.Theta)

	if err != nil {
		p.Status = statusFromError(err)
		return
	}
	p.Status = statusFromStepper(status)
}

// Map runs the particle through a Poincaré section and returns the raw
// intersections. It sets Status, and FinalState to the last intersection
// when there is one; it records no Evolution.
func (p *Particle) Map(eq *gc.Equilibrium, cfg stepper.Config, params orbit.MappingParameters) orbit.MapResult {
	start := time.Now()
	s := stepper.New(eq, p.Initial.Mu, cfg)
	x0 := stepper.Vec4{p.Initial.Theta, p.Initial.Psip, p.Initial.Rho, p.Initial.Zeta}
	res := orbit.Map(s, 0, x0, params)
	p.mapDuration = time.Since(start)
	p.mapSteps = len(res.Points)
	p.Status = statusFromStepper(res.Status)
	if n := len(res.Points); n > 0 {
		last := res.Points[n-1]
		p.FinalState = gc.State{T: last.T, Theta: last.State[0], Psip: last.State[1], Rho: last.State[2], Zeta: last.State[3], Mu: p.Initial.Mu}
	}
	return res
}

// SinglePeriodIntegrate extracts bounce/transit frequencies without
// recording a time series, to bound memory across a large ensemble.
func (p *Particle) SinglePeriodIntegrate(eq *gc.Equilibrium, cfg stepper.Config) {
	start := time.Now()
	s := stepper.New(eq, p.Initial.Mu, cfg)
	x0 := stepper.Vec4{p.Initial.Theta, p.Initial.Psip, p.Initial.Rho, p.Initial.Zeta}
	freqs, status, err := orbit.ExtractFrequencies(s, p.Initial.Mu, 0, x0)
	p.mapDuration = time.Since(start)
	if err != nil {
		p.Status = statusFromError(err)
		return
	}
	p.Status = statusFromStepper(status)
	if p.Status == StatusCompleted {
		p.Frequencies = &freqs
		p.OrbitType = freqs.OrbitType
	}
}
