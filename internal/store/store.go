// Package store persists Heap/Particle run results to a run directory as
// flat JSON metadata plus CSV data files rather than a database: an
// ensemble's Poincaré or evolution output is array-shaped and maps
// directly onto CSV rows.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/dexter/internal/heap"
	"github.com/san-kum/dexter/internal/orbit"
)

// Store roots every run under one base directory, one subdirectory per run.
type Store struct {
	baseDir string
}

// New builds a Store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Init ensures the base directory exists.
func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata records what a run did and how it ended up, independent of
// the (potentially large) per-particle data files sitting alongside it.
type RunMetadata struct {
	ID         string    `json:"id"`
	Mode       string    `json:"mode"`
	Timestamp  time.Time `json:"timestamp"`
	Particles  int       `json:"particles"`
	Completed  int       `json:"completed"`
	Escaped    int       `json:"escaped"`
	TimedOut   int       `json:"timed_out"`
	Failed     int       `json:"failed"`
}

func metadataFrom(mode string, stats heap.Stats) RunMetadata {
	return RunMetadata{
		Mode:      mode,
		Timestamp: time.Now(),
		Particles: stats.TotalParticles,
		Completed: stats.Completed,
		Escaped:   stats.Escaped,
		TimedOut:  stats.TimedOut,
		Failed:    stats.Failed,
	}
}

func newRunID(mode string) string {
	return fmt.Sprintf("%s_%d", mode, time.Now().UnixNano())
}

// SaveIntegration writes one CSV per particle's full time series (time,
// theta, psip, rho, zeta, psi, ptheta, pzeta, energy) plus run metadata.
func (s *Store) SaveIntegration(h *heap.Heap) (string, error) {
	runID := newRunID("integrate")
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	meta := metadataFrom("integrate", h.Stats)
	meta.ID = runID
	if err := writeMetadata(runDir, meta); err != nil {
		return "", err
	}
	for i, p := range h.Particles {
		if p.Evolution == nil || p.Evolution.Len() == 0 {
			continue
		}
		path := filepath.Join(runDir, fmt.Sprintf("particle_%03d.csv", i))
		if err := writeEvolutionCSV(path, p.Evolution); err != nil {
			return "", err
		}
	}
	return runID, nil
}

// SavePoincare writes one CSV per particle's section intersections.
func (s *Store) SavePoincare(h *heap.Heap, results [][]orbit.Intersection) (string, error) {
	runID := newRunID("poincare")
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	meta := metadataFrom("poincare", h.Stats)
	meta.ID = runID
	if err := writeMetadata(runDir, meta); err != nil {
		return "", err
	}
	for i, points := range results {
		if len(points) == 0 {
			continue
		}
		path := filepath.Join(runDir, fmt.Sprintf("particle_%03d.csv", i))
		if err := writePoincareCSV(path, points); err != nil {
			return "", err
		}
	}
	return runID, nil
}

// SaveFrequencies writes a single CSV summarizing every particle's
// extracted bounce/transit frequencies and kinetic safety factor.
func (s *Store) SaveFrequencies(h *heap.Heap) (string, error) {
	runID := newRunID("frequencies")
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	meta := metadataFrom("frequencies", h.Stats)
	meta.ID = runID
	if err := writeMetadata(runDir, meta); err != nil {
		return "", err
	}

	path := filepath.Join(runDir, "frequencies.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"particle", "status", "orbit_type", "omega_theta", "omega_zeta", "q_kinetic", "period"}); err != nil {
		return "", err
	}
	for i, p := range h.Particles {
		row := []string{strconv.Itoa(i), string(p.Status), p.OrbitType.String()}
		if p.Frequencies != nil {
			f := p.Frequencies
			row = append(row,
				strconv.FormatFloat(f.OmegaTheta, 'g', -1, 64),
				strconv.FormatFloat(f.OmegaZeta, 'g', -1, 64),
				strconv.FormatFloat(f.QKinetic, 'g', -1, 64),
				strconv.FormatFloat(f.Period, 'g', -1, 64),
			)
		} else {
			row = append(row, "", "", "", "")
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	return runID, nil
}

func writeMetadata(runDir string, meta RunMetadata) error {
	path := filepath.Join(runDir, "metadata.json")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeEvolutionCSV(path string, ev *orbit.Evolution) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"time", "theta", "psip", "rho", "zeta", "psi", "ptheta", "pzeta", "energy"}); err != nil {
		return err
	}
	for i := 0; i < ev.Len(); i++ {
		row := []string{
			fmtFloat(ev.Time[i]), fmtFloat(ev.Theta[i]), fmtFloat(ev.Psip[i]), fmtFloat(ev.Rho[i]),
			fmtFloat(ev.Zeta[i]), fmtFloat(ev.Psi[i]), fmtFloat(ev.Ptheta[i]), fmtFloat(ev.Pzeta[i]), fmtFloat(ev.Energy[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writePoincareCSV(path string, points []orbit.Intersection) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"t", "theta", "psip", "rho", "zeta", "sample"}); err != nil {
		return err
	}
	for _, pt := range points {
		row := []string{
			fmtFloat(pt.T), fmtFloat(pt.State[0]), fmtFloat(pt.State[1]), fmtFloat(pt.State[2]), fmtFloat(pt.State[3]), fmtFloat(pt.Sample),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns the metadata of every run stored under the base directory.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}
	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

// Load reads back one run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadParticleCSV reads back one particle's CSV rows verbatim, for the
// export subcommand to re-emit in whatever form the caller wants.
func (s *Store) LoadParticleCSV(runID string, particle int) ([][]string, error) {
	path := filepath.Join(s.baseDir, runID, fmt.Sprintf("particle_%03d.csv", particle))
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
