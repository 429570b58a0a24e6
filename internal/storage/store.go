package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/merthusman/fractalcode/internal/analysis"
	"github.com/merthusman/fractalcode/internal/field"
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
	ID             string             `json:"id"`
	Timestamp      time.Time          `json:"timestamp"`
	Source         string             `json:"source"`
	Resampler      string             `json:"resampler"`
	Schedule       []int              `json:"schedule"`
	Steps          int                `json:"steps"`
	DigitsUsed     int                `json:"digits_used"`
	ElapsedSeconds float64            `json:"elapsed_seconds"`
	Metrics        map[string]float64 `json:"metrics"`
	Whole          DimensionRecord    `json:"whole"`
	Quadrant       DimensionRecord    `json:"quadrant"`
}

type DimensionRecord struct {
	Dimension float64            `json:"dimension"`
	Valid     bool               `json:"valid"`
	Points    []ScalePointRecord `json:"points,omitempty"`
}

type ScalePointRecord struct {
	BoxSize int `json:"box_size"`
	Count   int `json:"count"`
}

// NewDimensionRecord converts a measurement into its stored form.
func NewDimensionRecord(est analysis.Estimate) DimensionRecord {
	rec := DimensionRecord{Dimension: est.Dimension, Valid: est.Valid}
	for _, p := range est.Points {
		rec.Points = append(rec.Points, ScalePointRecord{BoxSize: p.BoxSize, Count: p.Count})
	}
	return rec
}

// Save writes one run directory holding metadata.json and field.csv.
// The ID and timestamp are filled in here; the returned run ID names the
// directory.
func (s *Store) Save(meta RunMetadata, g *field.Field) (string, error) {
	runID := fmt.Sprintf("%s_%d_%d", meta.Source, g.Size(), time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "field.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	n := g.Size()
	data := g.Data()
	row := make([]string, n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			// Shortest exact representation, so a reloaded grid is
			// bit-identical to the saved one.
			row[c] = strconv.FormatFloat(data[r*n+c], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
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

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadField(runID string) (*field.Field, error) {
	csvPath := filepath.Join(s.baseDir, runID, "field.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	n := len(records)
	if n == 0 {
		return nil, fmt.Errorf("storage: run %s has an empty field file", runID)
	}

	values := make([]float64, 0, n*n)
	for i, record := range records {
		if len(record) != n {
			return nil, fmt.Errorf("storage: run %s field row %d has %d values, want %d",
				runID, i, len(record), n)
		}
		for _, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: run %s field row %d: %w", runID, i, err)
			}
			values = append(values, v)
		}
	}

	return field.FromValues(n, values)
}
