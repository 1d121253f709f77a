package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/saltflux/internal/field"
)

var (
	ErrRunNotFound = errors.New("storage: run not found")
	ErrCorruptRun  = errors.New("storage: corrupt run data")
)

const (
	metadataFile = "metadata.json"
	fluxesFile   = "fluxes.csv"
)

// Columns of fluxes.csv after the index column.
var Columns = []string{"flux1", "flux2", "flux3", "flux4", "total"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type GridMetadata struct {
	Times  int `json:"times"`
	Space  int `json:"space"`
	Space2 int `json:"space2,omitempty"`
	Depth  int `json:"depth"`
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Scenario   string             `json:"scenario"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Noise      float64            `json:"noise,omitempty"`
	Grid       GridMetadata       `json:"grid"`
	TimeAxis   int                `json:"time_axis"`
	DepthAxis  int                `json:"depth_axis"`
	SpaceShape []int              `json:"space_shape"`
	Params     map[string]float64 `json:"params,omitempty"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Run is a stored decomposition: the four fluxes and the total transport,
// all with the same space shape.
type Run struct {
	Meta   RunMetadata
	Fluxes [4]*field.Field
	Total  *field.Field
}

func (r *Run) columns() []*field.Field {
	return []*field.Field{r.Fluxes[0], r.Fluxes[1], r.Fluxes[2], r.Fluxes[3], r.Total}
}

// Save writes the run under a new ID and returns it.
func (s *Store) Save(run *Run) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", run.Meta.Scenario, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := run.Meta
	meta.ID = runID
	meta.Timestamp = now
	meta.SpaceShape = run.Total.Shape()
	meta.Metrics = finite(meta.Metrics)

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, fluxesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(append([]string{"index"}, Columns...)); err != nil {
		return "", err
	}

	cols := run.columns()
	values := make([][]float64, len(cols))
	for i, c := range cols {
		values[i] = c.Values()
	}
	for i := 0; i < run.Total.Size(); i++ {
		row := []string{strconv.Itoa(i)}
		for _, v := range values {
			if math.IsNaN(v[i]) {
				row = append(row, "")
				continue
			}
			row = append(row, strconv.FormatFloat(v[i], 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// finite drops NaN and Inf values, which JSON cannot encode.
func finite(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}
	return out
}

// List returns all readable runs, oldest first.
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
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRun, runID, err)
	}

	return &meta, nil
}

// LoadRun reads a run back, restoring the space shape and the masked cells.
func (s *Store) LoadRun(runID string) (*Run, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, fluxesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRun, runID, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: missing header", ErrCorruptRun, runID)
	}

	n := len(records) - 1
	data := make([][]float64, len(Columns))
	for c := range data {
		data[c] = make([]float64, n)
	}
	for i, record := range records[1:] {
		if len(record) != len(Columns)+1 {
			return nil, fmt.Errorf("%w: %s: row %d has %d fields", ErrCorruptRun, runID, i, len(record))
		}
		for c, cell := range record[1:] {
			if cell == "" {
				data[c][i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: row %d: %v", ErrCorruptRun, runID, i, err)
			}
			data[c][i] = v
		}
	}

	shape := meta.SpaceShape
	if len(shape) == 0 {
		shape = []int{n}
	}
	cols := make([]*field.Field, len(Columns))
	for c := range cols {
		cols[c], err = field.FromSlice(data[c], shape...)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRun, runID, err)
		}
	}

	return &Run{
		Meta:   *meta,
		Fluxes: [4]*field.Field{cols[0], cols[1], cols[2], cols[3]},
		Total:  cols[4],
	}, nil
}
