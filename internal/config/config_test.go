package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Equilibrium.Analytic {
		t.Error("expected default equilibrium to be analytic")
	}
	if cfg.Integrator.MaxSteps <= 0 {
		t.Error("max steps should be positive")
	}
	if cfg.Run.Mode != "integrate" {
		t.Errorf("expected mode integrate, got %s", cfg.Run.Mode)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("tearing-mode")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.Perturbation) != 1 || cfg.Perturbation[0].M != 2 || cfg.Perturbation[0].N != 1 {
		t.Errorf("expected single 2/1 harmonic, got %+v", cfg.Perturbation)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != 3 {
		t.Errorf("expected 3 presets, got %d", len(names))
	}
}

func TestPoincareFanInitialConditions(t *testing.T) {
	psips := PoincareFanInitialConditions()
	if len(psips) != 40 {
		t.Fatalf("expected 40 psip values, got %d", len(psips))
	}
	for i := 1; i < len(psips); i++ {
		if psips[i] <= psips[i-1] {
			t.Fatalf("psip values not strictly increasing at index %d", i)
		}
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")

	want := GetPreset("lar-field-line")
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Run.Mode != want.Run.Mode || got.Run.InitialState.Psip != want.Run.InitialState.Psip {
		t.Errorf("round trip mismatch: got %+v, want %+v", got.Run, want.Run)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
