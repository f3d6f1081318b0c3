package config

// Presets ships canned scenarios runnable straight off the CLI without a
// user-authored YAML file.
var Presets = map[string]*Config{
	"lar-field-line": {
		Equilibrium: EquilibriumConfig{Analytic: true},
		Integrator: IntegratorConfig{
			Method: "error_adaptive", MaxSteps: DefaultMaxSteps, FirstStep: DefaultFirstStep, MinStep: DefaultMinStep,
			SafetyFactor: DefaultSafetyFactor, EnergyRelTol: DefaultEnergyRelTol, EnergyAbsTol: DefaultEnergyAbsTol,
			ErrorRelTol: DefaultErrorRelTol, ErrorAbsTol: DefaultErrorAbsTol, MapThreshold: DefaultMapThreshold,
		},
		Run: RunConfig{
			Mode:         "integrate",
			InitialState: InitialStateConfig{Theta: 0.0, Psip: 0.3, Rho: 1e-5, Zeta: 0.0, Mu: 0.0},
			OutputDir:    "./dexter-out/lar-field-line",
		},
	},
	"tearing-mode": {
		Equilibrium: EquilibriumConfig{Analytic: true},
		Perturbation: []HarmonicConfig{
			{M: 2, N: 1, PhaseMethod: "resonance"},
		},
		Integrator: IntegratorConfig{
			Method: "energy_adaptive", MaxSteps: DefaultMaxSteps, FirstStep: DefaultFirstStep, MinStep: DefaultMinStep,
			SafetyFactor: DefaultSafetyFactor, EnergyRelTol: DefaultEnergyRelTol, EnergyAbsTol: DefaultEnergyAbsTol,
			ErrorRelTol: DefaultErrorRelTol, ErrorAbsTol: DefaultErrorAbsTol, MapThreshold: DefaultMapThreshold,
		},
		Run: RunConfig{
			Mode:          "poincare",
			InitialState:  InitialStateConfig{Theta: 0.1, Psip: 0.45, Rho: 0.02, Zeta: 0.0, Mu: 0.02},
			Section:       "zeta",
			Alpha:         0.0,
			Intersections: 500,
			OutputDir:     "./dexter-out/tearing-mode",
		},
	},
	"poincare-fan": {
		Equilibrium: EquilibriumConfig{Analytic: true},
		Integrator: IntegratorConfig{
			Method: "error_adaptive", MaxSteps: DefaultMaxSteps, FirstStep: DefaultFirstStep, MinStep: DefaultMinStep,
			SafetyFactor: DefaultSafetyFactor, EnergyRelTol: DefaultEnergyRelTol, EnergyAbsTol: DefaultEnergyAbsTol,
			ErrorRelTol: DefaultErrorRelTol, ErrorAbsTol: DefaultErrorAbsTol, MapThreshold: DefaultMapThreshold,
		},
		Run: RunConfig{
			Mode:          "poincare",
			HeapFile:      PoincareFanHeapFilePlaceholder,
			Section:       "zeta",
			Alpha:         0.0,
			Intersections: 200,
			OutputDir:     "./dexter-out/poincare-fan",
		},
	},
}

// GetPreset looks up a named canned scenario, or nil if none matches.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns every canned scenario's name.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}

// PoincareFanHeapFilePlaceholder marks a RunConfig.HeapFile that names no
// real file on disk: the poincare-fan preset's 40 starting radii are data,
// not an asset, so the CLI recognizes this sentinel and materializes the
// heap file from PoincareFanInitialConditions at run time instead of
// shipping a static CSV.
const PoincareFanHeapFilePlaceholder = "<poincare-fan-generated>"

// PoincareFanInitialConditions returns the 40 evenly spaced starting radii
// the poincare-fan preset scans, since that scenario is driven from a heap
// rather than a single InitialStateConfig.
func PoincareFanInitialConditions() (psips []float64) {
	const n = 40
	const psipMin, psipMax = 0.05, 0.95
	psips = make([]float64, n)
	for i := 0; i < n; i++ {
		psips[i] = psipMin + (psipMax-psipMin)*float64(i)/float64(n-1)
	}
	return psips
}
