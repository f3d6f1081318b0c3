// Command dexter runs guiding-center orbit simulations against a Boozer
// equilibrium: single-particle integration, Poincaré mapping, and
// bounce/transit frequency extraction, driven from a YAML config or a
// canned preset. The physics lives in internal/gc, internal/stepper and
// internal/orbit; this package is glue.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/dexter/internal/config"
	"github.com/san-kum/dexter/internal/equilibrium"
	"github.com/san-kum/dexter/internal/gc"
	"github.com/san-kum/dexter/internal/heap"
	"github.com/san-kum/dexter/internal/orbit"
	"github.com/san-kum/dexter/internal/stepper"
	"github.com/san-kum/dexter/internal/store"
	"github.com/san-kum/dexter/internal/tui"
)

var (
	dataDir    string
	configFile string
	workers    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dexter",
		Short: "guiding-center orbit simulator",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dexter", "run output base directory")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 4, "ensemble worker count")

	integrateCmd := &cobra.Command{
		Use:   "integrate",
		Short: "integrate one or more particle trajectories",
		RunE:  runIntegrate,
	}
	integrateCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	poincareCmd := &cobra.Command{
		Use:   "poincare",
		Short: "map particles through a Poincaré section",
		RunE:  runPoincare,
	}
	poincareCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	frequenciesCmd := &cobra.Command{
		Use:   "frequencies",
		Short: "extract bounce/transit frequencies and q_kinetic",
		RunE:  runFrequencies,
	}
	frequenciesCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a named preset scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runPreset,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available preset scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui [preset]",
		Short: "live view of an in-progress ensemble run",
		Args:  cobra.ExactArgs(1),
		RunE:  runTUI,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run-id]",
		Short: "re-export a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().Bool("csv", false, "emit particle CSV to stdout")
	exportCmd.Flags().Bool("json", false, "emit run metadata as JSON")
	exportCmd.Flags().Int("particle", 0, "particle index for --csv")

	rootCmd.AddCommand(integrateCmd, poincareCmd, frequenciesCmd, runCmd, presetsCmd, tuiCmd, exportCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(configFile)
}

// buildEquilibrium wires a config.EquilibriumConfig/[]HarmonicConfig into a
// runnable *gc.Equilibrium. cfg.Equilibrium.Analytic is the only supported
// value: tabulated-data file loading has no Loader implementation here
// (equilibrium.BuildTabulated exists and is exercised by tests, but needs
// a real file-backed Loader this package doesn't provide), so the CLI
// always builds the analytic large-aspect-ratio family, optionally
// carrying a synthetic resonance-bearing perturbation.
func buildEquilibrium(cfg *config.Config) (*gc.Equilibrium, error) {
	if len(cfg.Perturbation) == 0 {
		return equilibrium.BuildAnalytic(), nil
	}
	h := cfg.Perturbation[0]
	method, err := equilibrium.ParsePhaseMethod(h.PhaseMethod)
	if err != nil {
		return nil, err
	}
	return equilibrium.BuildTearingModeDemo(h.M, h.N, method)
}

func buildStepperConfig(ic config.IntegratorConfig) stepper.Config {
	sc := stepper.DefaultConfig()
	switch ic.Method {
	case "fixed":
		sc.Method = stepper.Fixed
	case "energy_adaptive":
		sc.Method = stepper.EnergyAdaptive
	default:
		sc.Method = stepper.ErrorAdaptive
	}
	if ic.MaxSteps > 0 {
		sc.MaxSteps = ic.MaxSteps
	}
	if ic.FirstStep > 0 {
		sc.FirstStep = ic.FirstStep
	}
	if ic.MinStep > 0 {
		sc.MinStep = ic.MinStep
	}
	if ic.SafetyFactor > 0 {
		sc.SafetyFactor = ic.SafetyFactor
	}
	if ic.EnergyRelTol > 0 {
		sc.EnergyRelTol = ic.EnergyRelTol
	}
	if ic.EnergyAbsTol > 0 {
		sc.EnergyAbsTol = ic.EnergyAbsTol
	}
	if ic.ErrorRelTol > 0 {
		sc.ErrorRelTol = ic.ErrorRelTol
	}
	if ic.ErrorAbsTol > 0 {
		sc.ErrorAbsTol = ic.ErrorAbsTol
	}
	return sc
}

// buildInitialConditions reads a single particle from Run.InitialState, or
// a heap of particles from Run.HeapFile (a CSV of theta,psip,rho,zeta,mu
// rows, one per particle).
func buildInitialConditions(run config.RunConfig) (*heap.InitialConditions, error) {
	if run.HeapFile == "" {
		s := run.InitialState
		return heap.Build([]float64{s.Theta}, []float64{s.Psip}, []float64{s.Rho}, []float64{s.Zeta}, []float64{s.Mu})
	}
	f, err := os.Open(run.HeapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	var thetas, psips, rhos, zetas, mus []float64
	for _, rec := range records {
		if len(rec) < 5 {
			continue
		}
		theta, _ := strconv.ParseFloat(rec[0], 64)
		psip, _ := strconv.ParseFloat(rec[1], 64)
		rho, _ := strconv.ParseFloat(rec[2], 64)
		zeta, _ := strconv.ParseFloat(rec[3], 64)
		mu, _ := strconv.ParseFloat(rec[4], 64)
		thetas = append(thetas, theta)
		psips = append(psips, psip)
		rhos = append(rhos, rho)
		zetas = append(zetas, zeta)
		mus = append(mus, mu)
	}
	return heap.Build(thetas, psips, rhos, zetas, mus)
}

func buildMappingParameters(run config.RunConfig) orbit.MappingParameters {
	section := orbit.ConstZeta
	if run.Section == "theta" {
		section = orbit.ConstTheta
	}
	intersections := run.Intersections
	if intersections <= 0 {
		intersections = 100
	}
	threshold := config.DefaultMapThreshold
	return orbit.MappingParameters{Section: section, Alpha: run.Alpha, Intersections: intersections, MapThreshold: threshold}
}

func runIntegrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	eq, err := buildEquilibrium(cfg)
	if err != nil {
		return err
	}
	ic, err := buildInitialConditions(cfg.Run)
	if err != nil {
		return err
	}
	h := heap.New(eq, buildStepperConfig(cfg.Integrator), ic, workers)
	h.Integrate(context.Background())

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.SaveIntegration(h)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	printStats(h.Stats)
	for _, p := range h.ShouldBePlotted() {
		fmt.Println(p.Evolution.PlotEnergy("energy vs time"))
	}
	return nil
}

func runPoincare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	eq, err := buildEquilibrium(cfg)
	if err != nil {
		return err
	}
	ic, err := buildInitialConditions(cfg.Run)
	if err != nil {
		return err
	}
	h := heap.New(eq, buildStepperConfig(cfg.Integrator), ic, workers)
	results := h.Poincare(context.Background(), buildMappingParameters(cfg.Run))

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.SavePoincare(h, results)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	printStats(h.Stats)
	for i, points := range results {
		if len(points) == 0 {
			continue
		}
		fmt.Println(orbit.PlotPoincare(points, fmt.Sprintf("particle %d psip", i)))
	}
	return nil
}

func runFrequencies(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	eq, err := buildEquilibrium(cfg)
	if err != nil {
		return err
	}
	ic, err := buildInitialConditions(cfg.Run)
	if err != nil {
		return err
	}
	h := heap.New(eq, buildStepperConfig(cfg.Integrator), ic, workers)
	h.CalculateFrequencies(context.Background())

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.SaveFrequencies(h)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	printStats(h.Stats)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLE\tSTATUS\tORBIT\tOMEGA_THETA\tOMEGA_ZETA\tQ_KINETIC\tPERIOD")
	for i, p := range h.Particles {
		if p.Frequencies == nil {
			fmt.Fprintf(w, "%d\t%s\t%s\t-\t-\t-\t-\n", i, p.Status, p.OrbitType)
			continue
		}
		f := p.Frequencies
		fmt.Fprintf(w, "%d\t%s\t%s\t%.6g\t%.6g\t%.6g\t%.6g\n", i, p.Status, p.OrbitType, f.OmegaTheta, f.OmegaZeta, f.QKinetic, f.Period)
	}
	return w.Flush()
}

// resolvePresetHeapFile materializes a preset's generated heap data (the
// poincare-fan preset's 40 starting radii) to a real temp file, if the
// preset names one instead of a static asset. The caller must remove the
// returned cleanup path's file, if non-empty, when done.
func resolvePresetHeapFile(cfg *config.Config) (*config.Config, string, error) {
	if cfg.Run.HeapFile != config.PoincareFanHeapFilePlaceholder {
		return cfg, "", nil
	}
	heapPath, err := writePoincareFanHeapFile()
	if err != nil {
		return nil, "", err
	}
	cfgCopy := *cfg
	cfgCopy.Run.HeapFile = heapPath
	return &cfgCopy, heapPath, nil
}

func runPreset(cmd *cobra.Command, args []string) error {
	name := args[0]
	cfg := config.GetPreset(name)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}
	cfg, cleanup, err := resolvePresetHeapFile(cfg)
	if err != nil {
		return err
	}
	if cleanup != "" {
		defer os.Remove(cleanup)
	}
	switch cfg.Run.Mode {
	case "poincare":
		return runPresetMode(cfg, runPoincare)
	case "frequencies":
		return runPresetMode(cfg, runFrequencies)
	default:
		return runPresetMode(cfg, runIntegrate)
	}
}

// writePoincareFanHeapFile materializes the poincare-fan preset's 40
// starting radii as a heap CSV, since that data lives in Go rather than as
// a shipped asset file.
func writePoincareFanHeapFile() (string, error) {
	f, err := os.CreateTemp("", "dexter-poincare-fan-*.csv")
	if err != nil {
		return "", err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	for _, psip := range config.PoincareFanInitialConditions() {
		row := []string{"0.1", strconv.FormatFloat(psip, 'g', -1, 64), "0.02", "0", "0.02"}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	return f.Name(), nil
}

// runPresetMode writes the preset to a temp file so the existing
// --config-driven subcommand handlers can load it unmodified.
func runPresetMode(cfg *config.Config, handler func(*cobra.Command, []string) error) error {
	f, err := os.CreateTemp("", "dexter-preset-*.yaml")
	if err != nil {
		return err
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	if err := config.Save(path, cfg); err != nil {
		return err
	}
	configFile = path
	return handler(nil, nil)
}

func runTUI(cmd *cobra.Command, args []string) error {
	name := args[0]
	cfg := config.GetPreset(name)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s", name)
	}
	cfg, cleanup, err := resolvePresetHeapFile(cfg)
	if err != nil {
		return err
	}
	if cleanup != "" {
		defer os.Remove(cleanup)
	}
	eq, err := buildEquilibrium(cfg)
	if err != nil {
		return err
	}
	ic, err := buildInitialConditions(cfg.Run)
	if err != nil {
		return err
	}
	h := heap.New(eq, buildStepperConfig(cfg.Integrator), ic, workers)

	var run func(context.Context)
	switch cfg.Run.Mode {
	case "poincare":
		params := buildMappingParameters(cfg.Run)
		run = func(ctx context.Context) { h.Poincare(ctx, params) }
	case "frequencies":
		run = h.CalculateFrequencies
	default:
		run = h.Integrate
	}

	m := tui.NewModel(h, run)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func runExport(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := store.New(dataDir)

	csvFlag, _ := cmd.Flags().GetBool("csv")
	jsonFlag, _ := cmd.Flags().GetBool("json")

	if jsonFlag || (!csvFlag && !jsonFlag) {
		meta, err := st.Load(runID)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(meta); err != nil {
			return err
		}
	}
	if csvFlag {
		particle, _ := cmd.Flags().GetInt("particle")
		rows, err := st.LoadParticleCSV(runID, particle)
		if err != nil {
			return err
		}
		w := csv.NewWriter(os.Stdout)
		defer w.Flush()
		return w.WriteAll(rows)
	}
	return nil
}

func printStats(s heap.Stats) {
	fmt.Printf("particles: %d completed: %d escaped: %d timed_out: %d failed: %d\n",
		s.TotalParticles, s.Completed, s.Escaped, s.TimedOut, s.Failed)
}
