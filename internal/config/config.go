package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFirstStep    = 1e-1
	DefaultMinStep      = 1e-12
	DefaultMaxSteps     = 1_000_000
	DefaultSafetyFactor = 0.9
	DefaultErrorRelTol  = 1e-12
	DefaultErrorAbsTol  = 1e-14
	DefaultEnergyRelTol = 1e-10
	DefaultEnergyAbsTol = 1e-12
	DefaultMapThreshold = 1e-9
)

// Config is the top-level, YAML-serializable description of one DEXTER
// run: which equilibrium to load, what perturbation to add to it, how the
// stepper should integrate, and what routine to run.
type Config struct {
	Equilibrium EquilibriumConfig `yaml:"equilibrium"`
	Perturbation []HarmonicConfig `yaml:"perturbation"`
	Integrator  IntegratorConfig  `yaml:"integrator"`
	Run         RunConfig         `yaml:"run"`
}

// EquilibriumConfig selects which equilibrium family to build. The
// tabulated-data file format is an external collaborator's concern (see
// equilibrium.Loader and equilibrium.BuildTabulated, which already accept
// a named interpolation-kind variant per spec §6); no file-backed Loader
// ships here, so the CLI only ever builds the analytic family.
type EquilibriumConfig struct {
	Analytic bool `yaml:"analytic"` // must be true; reserved for a future file-backed Loader
}

// HarmonicConfig names one perturbation harmonic to add to the equilibrium.
type HarmonicConfig struct {
	M           int    `yaml:"m"`
	N           int    `yaml:"n"`
	PhaseMethod string `yaml:"phase_method"` // "zero" | "average" | "resonance" | "spline"
}

// IntegratorConfig configures the stepper.
type IntegratorConfig struct {
	Method       string  `yaml:"method"` // "fixed" | "error_adaptive" | "energy_adaptive"
	MaxSteps     int     `yaml:"max_steps"`
	FirstStep    float64 `yaml:"first_step"`
	MinStep      float64 `yaml:"min_step"`
	SafetyFactor float64 `yaml:"safety_factor"`
	EnergyRelTol float64 `yaml:"energy_rel_tol"`
	EnergyAbsTol float64 `yaml:"energy_abs_tol"`
	ErrorRelTol  float64 `yaml:"error_rel_tol"`
	ErrorAbsTol  float64 `yaml:"error_abs_tol"`
	MapThreshold float64 `yaml:"map_threshold"`
}

// RunConfig describes what to do with the built equilibrium and stepper.
type RunConfig struct {
	Mode          string          `yaml:"mode"` // "integrate" | "poincare" | "frequencies"
	InitialState  InitialStateConfig `yaml:"initial_state"`
	HeapFile      string          `yaml:"heap_file"` // if set, overrides InitialState with a multi-particle batch
	Section       string          `yaml:"section"`   // "theta" | "zeta", for mode=poincare
	Alpha         float64         `yaml:"alpha"`
	Intersections int             `yaml:"intersections"`
	OutputDir     string          `yaml:"output_dir"`
}

// InitialStateConfig is one particle's starting guiding-center coordinates.
type InitialStateConfig struct {
	Theta float64 `yaml:"theta"`
	Psip  float64 `yaml:"psip"`
	Rho   float64 `yaml:"rho"`
	Zeta  float64 `yaml:"zeta"`
	Mu    float64 `yaml:"mu"`
}

// DefaultConfig returns the stepper and run defaults shared by every
// scenario, with an unperturbed large-aspect-ratio analytic equilibrium
// and a single particle.
func DefaultConfig() *Config {
	return &Config{
		Equilibrium: EquilibriumConfig{Analytic: true},
		Integrator: IntegratorConfig{
			Method:       "error_adaptive",
			MaxSteps:     DefaultMaxSteps,
			FirstStep:    DefaultFirstStep,
			MinStep:      DefaultMinStep,
			SafetyFactor: DefaultSafetyFactor,
			EnergyRelTol: DefaultEnergyRelTol,
			EnergyAbsTol: DefaultEnergyAbsTol,
			ErrorRelTol:  DefaultErrorRelTol,
			ErrorAbsTol:  DefaultErrorAbsTol,
			MapThreshold: DefaultMapThreshold,
		},
		Run: RunConfig{
			Mode:         "integrate",
			InitialState: InitialStateConfig{Theta: 0.1, Psip: 0.5, Rho: 0.02, Zeta: 0.0, Mu: 0.02},
			OutputDir:    "./dexter-out",
		},
	}
}

// Load reads and unmarshals a YAML config file, seeding unset fields from
// DefaultConfig.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save marshals cfg to YAML and writes it to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
