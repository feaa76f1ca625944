// Package storage persists traced rays: a directory per run holding
// metadata.json and the sampled trajectory as CSV.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/geotrace/internal/geodesic"
)

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
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Mass      float64            `json:"mass"`
	Spin      float64            `json:"spin"`
	Origin    [3]float64         `json:"origin"`
	Direction [3]float64         `json:"direction"`
	Model     string             `json:"model"`
	Status    string             `json:"status"`
	Escaped   bool               `json:"escaped"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// trajectoryHeader is the CSV column layout: affine parameter followed by
// the 8 state components.
var trajectoryHeader = []string{"lambda", "t", "r", "theta", "phi", "pt", "pr", "ptheta", "pphi"}

// Save writes one traced ray. The trajectory slices must be the same length.
func (s *Store) Save(meta RunMetadata, lambdas []float64, states []geodesic.State) (string, error) {
	runID := fmt.Sprintf("ray_%d", time.Now().UnixNano())
	meta.ID = runID
	meta.Timestamp = time.Now()

	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(trajectoryHeader); err != nil {
		return "", err
	}

	row := make([]string, len(trajectoryHeader))
	for i, x := range states {
		row[0] = strconv.FormatFloat(lambdas[i], 'g', -1, 64)
		for j, v := range x {
			row[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// Load reads a run's metadata.
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

// LoadTrajectory reads a run's sampled states.
func (s *Store) LoadTrajectory(runID string) ([]float64, []geodesic.State, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 1 {
		return nil, nil, fmt.Errorf("empty trajectory for run %s", runID)
	}

	lambdas := make([]float64, 0, len(records)-1)
	states := make([]geodesic.State, 0, len(records)-1)

	for _, rec := range records[1:] {
		if len(rec) != len(trajectoryHeader) {
			return nil, nil, fmt.Errorf("malformed trajectory row in run %s", runID)
		}
		lambda, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, nil, err
		}
		x := make(geodesic.State, geodesic.Dim)
		for j := 0; j < geodesic.Dim; j++ {
			if x[j], err = strconv.ParseFloat(rec[j+1], 64); err != nil {
				return nil, nil, err
			}
		}
		lambdas = append(lambdas, lambda)
		states = append(states, x)
	}

	return lambdas, states, nil
}

// List returns metadata for all stored runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})

	return runs, nil
}
