package orbit

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/dexter/internal/dexterr"
	"github.com/san-kum/dexter/internal/equilibrium"
	"github.com/san-kum/dexter/internal/gc"
	"github.com/san-kum/dexter/internal/stepper"
)

func larEquilibrium() *gc.Equilibrium {
	q := equilibrium.UnityQfactor{}
	return equilibrium.New(nil, q, equilibrium.LarCurrent{}, equilibrium.NewLarBfield(q), nil)
}

func TestClassifyPassingVsTrapped(t *testing.T) {
	passing := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	if got := Classify(passing); got != Passing {
		t.Fatalf("Classify(passing) = %v, want Passing", got)
	}
	trapped := []float64{0, 0.5, 1.0, 0.5, 0, -0.5, -1.0, -0.5, 0}
	if got := Classify(trapped); got != Trapped {
		t.Fatalf("Classify(trapped) = %v, want Trapped", got)
	}
}

func TestEvolutionPushAndFinish(t *testing.T) {
	eq := larEquilibrium()
	ev := NewEvolution()
	s := gc.State{Theta: 0.1, Psip: 0.4, Rho: 0.1, Zeta: 0, Mu: 0.05}
	for i := 0; i < 5; i++ {
		s.T = float64(i)
		if err := ev.Push(eq, s); err != nil {
			t.Fatalf("Push: %v", err)
		}
	}
	if ev.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", ev.Len())
	}
	ev.Finish(0)
	if math.IsNaN(ev.EnergyStd) {
		t.Fatal("EnergyStd is NaN")
	}
	ev.Discard()
	if ev.Time != nil {
		t.Fatal("Discard did not clear Time")
	}
	if ev.StepsTaken != 5 {
		t.Fatalf("StepsTaken = %d after Discard, want 5", ev.StepsTaken)
	}
}

// TestExtractFrequenciesFailsAtZeroThetaDot checks the badly-chosen-θ0
// failure mode directly: at (ψp,θ)=(0.5,0) the LAR field B vanishes
// exactly, so every RHS component (including θ̇) is exactly zero and
// ExtractFrequencies has no crossing direction to match against.
func TestExtractFrequenciesFailsAtZeroThetaDot(t *testing.T) {
	eq := larEquilibrium()
	cfg := stepper.DefaultConfig()
	s := stepper.New(eq, 0, cfg)
	x0 := stepper.Vec4{0, 0.5, 0.3, 0}
	_, _, err := ExtractFrequencies(s, 0, 0, x0)
	if !errors.Is(err, dexterr.ErrNoPeriodFound) {
		t.Fatalf("ExtractFrequencies error = %v, want ErrNoPeriodFound", err)
	}
}

func TestExtractFrequenciesInvariants(t *testing.T) {
	eq := larEquilibrium()
	cfg := stepper.DefaultConfig()
	cfg.MaxSteps = 20000
	s := stepper.New(eq, 0.001, cfg)
	// A bounded trapped orbit that returns to (θ0, ψp0) once per bounce.
	x0 := stepper.Vec4{0.1, 0.2, 0.01, 0}
	freqs, status, err := ExtractFrequencies(s, 0.001, 0, x0)
	if err != nil {
		t.Fatalf("ExtractFrequencies: %v", err)
	}
	if status != stepper.Completed {
		t.Fatalf("status = %v, want Completed", status)
	}
	if freqs.Period <= 0 {
		t.Fatalf("Period = %v, want > 0", freqs.Period)
	}
	if freqs.OmegaTheta == 0 {
		t.Fatal("OmegaTheta = 0, want nonzero")
	}
	if freqs.OrbitType != Trapped && freqs.OrbitType != Passing {
		t.Fatalf("OrbitType = %v, want Trapped or Passing", freqs.OrbitType)
	}
}

func TestMapCollectsIntersections(t *testing.T) {
	eq := larEquilibrium()
	cfg := stepper.DefaultConfig()
	s := stepper.New(eq, 0.001, cfg)
	// A bounded trapped orbit bouncing back and forth through θ=0.
	x0 := stepper.Vec4{0, 0.2, 0.01, 0}
	params := MappingParameters{Section: ConstTheta, Alpha: 0, Direction: Either, Intersections: 3, MapThreshold: 1e-6}
	res := Map(s, 0, x0, params)
	if len(res.Points) == 0 {
		t.Fatal("Map found no intersections")
	}
	for i, p := range res.Points {
		if math.IsNaN(p.T) {
			t.Fatalf("intersection %d has NaN time", i)
		}
	}
}
