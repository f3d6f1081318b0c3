package orbit

import (
	"math"
	"time"

	"github.com/san-kum/dexter/internal/gc"
)

// evolutionInitCapacity is a pre-allocation hint for the parallel time-
// series slices; it's cheap to guess low since append grows them anyway.
const evolutionInitCapacity = 2000

// Evolution is a particle's recorded time series: one entry per accepted
// integrator step, plus the derived quantities (ψ, Pθ, Pζ, energy) needed
// by orbit classification and frequency extraction without re-evaluating
// the equilibrium.
type Evolution struct {
	Time   []float64
	Theta  []float64
	Psip   []float64
	Rho    []float64
	Zeta   []float64
	Psi    []float64
	Ptheta []float64
	Pzeta  []float64
	Energy []float64

	Duration   time.Duration
	StepsTaken int
	EnergyStd  float64
}

// NewEvolution allocates an Evolution with the standard pre-allocation
// hint.
func NewEvolution() *Evolution {
	return &Evolution{
		Time:   make([]float64, 0, evolutionInitCapacity),
		Theta:  make([]float64, 0, evolutionInitCapacity),
		Psip:   make([]float64, 0, evolutionInitCapacity),
		Rho:    make([]float64, 0, evolutionInitCapacity),
		Zeta:   make([]float64, 0, evolutionInitCapacity),
		Psi:    make([]float64, 0, evolutionInitCapacity),
		Ptheta: make([]float64, 0, evolutionInitCapacity),
		Pzeta:  make([]float64, 0, evolutionInitCapacity),
		Energy: make([]float64, 0, evolutionInitCapacity),
	}
}

// Push appends one guiding-center state, computing and storing its derived
// quantities.
func (e *Evolution) Push(eq *gc.Equilibrium, s gc.State) error {
	psi, err := eq.Qfactor.Psi(s.Psip)
	if err != nil {
		return err
	}
	ptheta, err := s.Ptheta(eq)
	if err != nil {
		return err
	}
	pzeta, err := s.Pzeta(eq)
	if err != nil {
		return err
	}
	energy, err := gc.Energy(eq, s)
	if err != nil {
		return err
	}

	e.Time = append(e.Time, s.T)
	e.Theta = append(e.Theta, s.Theta)
	e.Psip = append(e.Psip, s.Psip)
	e.Rho = append(e.Rho, s.Rho)
	e.Zeta = append(e.Zeta, s.Zeta)
	e.Psi = append(e.Psi, psi)
	e.Ptheta = append(e.Ptheta, ptheta)
	e.Pzeta = append(e.Pzeta, pzeta)
	e.Energy = append(e.Energy, energy)
	e.StepsTaken++
	return nil
}

// Len reports the number of recorded states.
func (e *Evolution) Len() int { return len(e.Time) }

// Last returns the most recently pushed state as a gc.State, given the
// particle's constant magnetic moment.
func (e *Evolution) Last(mu float64) gc.State {
	n := e.Len()
	return gc.State{
		T: e.Time[n-1], Theta: e.Theta[n-1], Psip: e.Psip[n-1],
		Rho: e.Rho[n-1], Zeta: e.Zeta[n-1], Mu: mu,
	}
}

// Finish computes the energy series' relative standard deviation
// (σ/μ over Energy) and records the wall-clock duration spent producing
// this Evolution.
func (e *Evolution) Finish(duration time.Duration) {
	e.Duration = duration
	n := len(e.Energy)
	if n == 0 {
		return
	}
	mean := 0.0
	for _, v := range e.Energy {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range e.Energy {
		d := v - mean
		variance += d * d
	}
	variance /= float64(n)
	if mean != 0 {
		e.EnergyStd = math.Sqrt(variance) / math.Abs(mean)
	} else {
		e.EnergyStd = math.Sqrt(variance)
	}
}

// Discard drops the recorded time series to free memory once frequency
// extraction has consumed it, keeping StepsTaken, EnergyStd and Duration.
func (e *Evolution) Discard() {
	e.Time = nil
	e.Theta = nil
	e.Psip = nil
	e.Rho = nil
	e.Zeta = nil
	e.Psi = nil
	e.Ptheta = nil
	e.Pzeta = nil
	e.Energy = nil
}
