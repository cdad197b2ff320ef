package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/18Orion/ParticleInteractionSimulator/internal/sim"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

// columnsPerBody is x, y, vx, vy, ax, ay.
const columnsPerBody = 6

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Timestamp   time.Time          `json:"timestamp"`
	Tick        float64            `json:"tick"`
	Duration    float64            `json:"duration"`
	Ticks       int                `json:"ticks"`
	Bodies      []string           `json:"bodies"`
	Metrics     map[string]float64 `json:"metrics"`
	EnergyDrift *float64           `json:"energy_drift,omitempty"`
	Collisions  []sim.Collision    `json:"collisions,omitempty"`
	ElapsedSimS float64            `json:"elapsed_sim_s"`
	SampleEvery int                `json:"sample_every"`
}

// Save writes metadata.json and states.csv under a new run directory and
// returns the run id. meta.ID and meta.Timestamp are filled in.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Scenario, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Ticks = result.TicksTaken
	meta.Metrics = finiteMetrics(result.Metrics)
	if isFinite(result.EnergyDrift) {
		drift := result.EnergyDrift
		meta.EnergyDrift = &drift
	}
	meta.Collisions = result.Collisions
	if n := len(result.Times); n > 0 {
		meta.ElapsedSimS = result.Times[n-1]
	}
	if len(meta.Bodies) == 0 && len(result.Frames) > 0 {
		meta.Bodies = bodyNames(result)
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeStates(filepath.Join(runDir, statesFile), meta.Bodies, result); err != nil {
		return "", err
	}
	return runID, nil
}

// finiteMetrics drops values JSON cannot encode, such as the +Inf a
// separation metric reports for a single body.
func finiteMetrics(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		if isFinite(v) {
			out[k] = v
		}
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func bodyNames(result *sim.Result) []string {
	frame := result.Frames[0]
	names := make([]string, len(frame))
	for i, b := range frame {
		names[i] = b.Name
		if names[i] == "" {
			names[i] = fmt.Sprintf("b%d", i)
		}
	}
	return names
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeStates(path string, names []string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header(names)); err != nil {
		return err
	}

	for i, frame := range result.Frames {
		row := make([]string, 0, 1+len(frame)*columnsPerBody)
		row = append(row, formatFloat(result.Times[i]))
		for _, b := range frame {
			row = append(row,
				formatFloat(b.Position.X()), formatFloat(b.Position.Y()),
				formatFloat(b.Velocity.X()), formatFloat(b.Velocity.Y()),
				formatFloat(b.Acceleration.X()), formatFloat(b.Acceleration.Y()),
			)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// Header returns the CSV header for the given body names.
func Header(names []string) []string {
	header := []string{"time"}
	for _, n := range names {
		header = append(header, n+"_x", n+"_y", n+"_vx", n+"_vy", n+"_ax", n+"_ay")
	}
	return header
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns every readable run, oldest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadStates returns the sampled rows (without the time column) and
// their times.
func (s *Store) LoadStates(runID string) ([][]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([][]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("run %s: bad time %q: %w", runID, record[0], err)
		}
		state := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("run %s: bad value %q: %w", runID, field, err)
			}
			state = append(state, v)
		}
		times = append(times, t)
		states = append(states, state)
	}

	return states, times, nil
}

// BodyColumn extracts one column of a body from rows returned by LoadStates.
// field is 0..5 for x, y, vx, vy, ax, ay.
func BodyColumn(states [][]float64, body, field int) []float64 {
	idx := body*columnsPerBody + field
	out := make([]float64, 0, len(states))
	for _, row := range states {
		if idx < len(row) {
			out = append(out, row[idx])
		}
	}
	return out
}

// ExportCSV copies a run's states.csv to w.
func (s *Store) ExportCSV(runID string, w io.Writer) error {
	f, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
