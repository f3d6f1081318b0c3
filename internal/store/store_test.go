package store_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/dexter/internal/equilibrium"
	"github.com/san-kum/dexter/internal/gc"
	"github.com/san-kum/dexter/internal/heap"
	"github.com/san-kum/dexter/internal/orbit"
	"github.com/san-kum/dexter/internal/stepper"
	"github.com/san-kum/dexter/internal/store"
)

func integratedParticle(eq *gc.Equilibrium) *heap.Particle {
	p := heap.NewParticle(&heap.InitialConditions{
		Thetas: []float64{0}, Psips: []float64{0.5}, Rhos: []float64{0}, Zetas: []float64{0}, Mus: []float64{0.01},
	}, 0)
	p.Integrate(eq, stepper.DefaultConfig())
	return p
}

func TestSaveIntegrationRoundTrip(t *testing.T) {
	eq := equilibrium.BuildAnalytic()
	s := store.New(filepath.Join(t.TempDir(), "runs"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	h := &heap.Heap{Equilibrium: eq, Particles: []*heap.Particle{integratedParticle(eq)}}
	h.Stats = heap.Stats{Routine: heap.RoutineIntegration, TotalParticles: 1, Completed: 1}

	runID, err := s.SaveIntegration(h)
	if err != nil {
		t.Fatalf("SaveIntegration: %v", err)
	}
	if runID == "" {
		t.Fatal("SaveIntegration returned empty runID")
	}

	meta, err := s.Load(runID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if meta.Mode != "integrate" || meta.Particles != 1 || meta.Completed != 1 {
		t.Fatalf("Load metadata = %+v, want mode=integrate particles=1 completed=1", meta)
	}

	rows, err := s.LoadParticleCSV(runID, 0)
	if err != nil {
		t.Fatalf("LoadParticleCSV: %v", err)
	}
	if len(rows) < 2 {
		t.Fatalf("LoadParticleCSV returned %d rows, want header + at least one data row", len(rows))
	}
	wantHeader := []string{"time", "theta", "psip", "rho", "zeta", "psi", "ptheta", "pzeta", "energy"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}
}

func TestSavePoincareWritesPerParticleCSV(t *testing.T) {
	eq := equilibrium.BuildAnalytic()
	s := store.New(filepath.Join(t.TempDir(), "runs"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	h := &heap.Heap{Equilibrium: eq, Particles: []*heap.Particle{{}}}
	h.Stats = heap.Stats{Routine: heap.RoutinePoincare, TotalParticles: 1, Completed: 1}
	results := [][]orbit.Intersection{
		{{T: 0.1, State: stepper.Vec4{0, 0.5, 0, 6.28}, Sample: 6.28}},
	}

	runID, err := s.SavePoincare(h, results)
	if err != nil {
		t.Fatalf("SavePoincare: %v", err)
	}
	rows, err := s.LoadParticleCSV(runID, 0)
	if err != nil {
		t.Fatalf("LoadParticleCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("LoadParticleCSV returned %d rows, want 2 (header + 1 crossing)", len(rows))
	}
	wantHeader := []string{"t", "theta", "psip", "rho", "zeta", "sample"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}
}

func TestListReturnsEmptyForUnseededDirectory(t *testing.T) {
	s := store.New(filepath.Join(t.TempDir(), "unseeded"))
	runs, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("List = %v, want empty", runs)
	}
}

func TestListReturnsEverySavedRun(t *testing.T) {
	eq := equilibrium.BuildAnalytic()
	s := store.New(filepath.Join(t.TempDir(), "runs"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	h := &heap.Heap{Equilibrium: eq, Particles: []*heap.Particle{integratedParticle(eq)}}
	h.Stats = heap.Stats{TotalParticles: 1, Completed: 1}
	if _, err := s.SaveIntegration(h); err != nil {
		t.Fatalf("SaveIntegration: %v", err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("List = %v, want exactly one run", runs)
	}
}

func TestSaveFrequenciesWritesRowForFailedParticle(t *testing.T) {
	eq := equilibrium.BuildAnalytic()
	base := filepath.Join(t.TempDir(), "runs")
	s := store.New(base)
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	p := &heap.Particle{Status: heap.StatusNoPeriodFound, OrbitType: orbit.Passing}
	h := &heap.Heap{Equilibrium: eq, Particles: []*heap.Particle{p}}
	h.Stats = heap.Stats{Routine: heap.RoutineSinglePeriod, TotalParticles: 1, Failed: 1}

	runID, err := s.SaveFrequencies(h)
	if err != nil {
		t.Fatalf("SaveFrequencies: %v", err)
	}
	// SaveFrequencies writes a single frequencies.csv, not a per-particle
	// file, so LoadParticleCSV against this run must fail.
	if _, err := s.LoadParticleCSV(runID, 0); err == nil {
		t.Fatal("LoadParticleCSV succeeded against a frequencies run, want error")
	}

	f, err := os.Open(filepath.Join(base, runID, "frequencies.csv"))
	if err != nil {
		t.Fatalf("open frequencies.csv: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read frequencies.csv: %v", err)
	}
	if len(rows) != 2 || rows[1][1] != string(heap.StatusNoPeriodFound) || rows[1][3] != "" {
		t.Fatalf("frequencies.csv rows = %v, want header + one NoPeriodFound row with empty frequencies", rows)
	}
}
