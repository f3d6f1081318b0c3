package heap

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/san-kum/dexter/internal/gc"
	"github.com/san-kum/dexter/internal/orbit"
	"github.com/san-kum/dexter/internal/stepper"
)

// Routine selects which per-particle operation a Heap batch runs.
type Routine int

const (
	RoutineIntegration Routine = iota
	RoutinePoincare
	RoutineSinglePeriod
)

// Heap drives one ensemble of particles concurrently against a single,
// immutable Equilibrium shared without locking across worker goroutines.
type Heap struct {
	Equilibrium *gc.Equilibrium
	Config      stepper.Config
	Particles   []*Particle
	Stats       Stats

	workers   int
	completed int64
}

// Progress reports how many of the batch's particles have finished,
// safe to poll from a goroutine other than the one running Integrate,
// Poincare, or CalculateFrequencies (a live TUI, e.g.).
func (h *Heap) Progress() (done, total int) {
	return int(atomic.LoadInt64(&h.completed)), len(h.Particles)
}

// New builds a Heap over the given initial conditions, ready to run.
func New(eq *gc.Equilibrium, cfg stepper.Config, ic *InitialConditions, workers int) *Heap {
	particles := make([]*Particle, ic.Len())
	for i := range particles {
		particles[i] = NewParticle(ic, i)
	}
	if workers <= 0 {
		workers = 4
	}
	return &Heap{Equilibrium: eq, Config: cfg, Particles: particles, workers: workers}
}

// parallelFor runs fn over shards of [0, n), one goroutine per shard,
// mirroring the worker-pool pattern used across this codebase's other
// batch drivers.
func parallelFor(ctx context.Context, n, workers int, fn func(i int)) {
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				select {
				case <-ctx.Done():
					return
				default:
					fn(i)
				}
			}
		}(start, end)
	}
	wg.Wait()
}

// Integrate runs full-trajectory integration for every particle.
func (h *Heap) Integrate(ctx context.Context) {
	atomic.StoreInt64(&h.completed, 0)
	parallelFor(ctx, len(h.Particles), h.workers, func(i int) {
		h.Particles[i].Integrate(h.Equilibrium, h.Config)
		atomic.AddInt64(&h.completed, 1)
	})
	h.Stats = summarize(RoutineIntegration, h.Particles)
}

// Poincare maps every particle through the given section.
func (h *Heap) Poincare(ctx context.Context, params orbit.MappingParameters) [][]orbit.Intersection {
	atomic.StoreInt64(&h.completed, 0)
	results := make([][]orbit.Intersection, len(h.Particles))
	parallelFor(ctx, len(h.Particles), h.workers, func(i int) {
		res := h.Particles[i].Map(h.Equilibrium, h.Config, params)
		results[i] = res.Points
		atomic.AddInt64(&h.completed, 1)
	})
	h.Stats = summarize(RoutinePoincare, h.Particles)
	return results
}

// CalculateFrequencies extracts single-period frequencies for every
// particle, discarding each particle's full time series afterward to
// bound the ensemble's memory footprint.
func (h *Heap) CalculateFrequencies(ctx context.Context) {
	atomic.StoreInt64(&h.completed, 0)
	parallelFor(ctx, len(h.Particles), h.workers, func(i int) {
		p := h.Particles[i]
		p.SinglePeriodIntegrate(h.Equilibrium, h.Config)
		if p.Evolution != nil {
			p.Evolution.Discard()
		}
		atomic.AddInt64(&h.completed, 1)
	})
	h.Stats = summarize(RoutineSinglePeriod, h.Particles)
}

// ShouldBePlotted filters particles whose status indicates a usable
// result, for callers building a plot or export from a mixed-outcome
// batch.
func (h *Heap) ShouldBePlotted() []*Particle {
	var out []*Particle
	for _, p := range h.Particles {
		switch p.Status {
		case StatusCompleted, StatusEventReached:
			out = append(out, p)
		}
	}
	return out
}
