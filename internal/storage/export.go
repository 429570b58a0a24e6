package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/merthusman/fractalcode/internal/field"
)

type ExportData struct {
	ID         string             `json:"id"`
	Source     string             `json:"source"`
	Resampler  string             `json:"resampler"`
	Schedule   []int              `json:"schedule"`
	Steps      int                `json:"steps"`
	DigitsUsed int                `json:"digits_used"`
	Metrics    map[string]float64 `json:"metrics"`
	Whole      DimensionRecord    `json:"whole"`
	Quadrant   DimensionRecord    `json:"quadrant"`
	Grid       [][]float64        `json:"grid"`
}

func exportData(meta *RunMetadata, g *field.Field) ExportData {
	n := g.Size()
	grid := make([][]float64, n)
	for r := 0; r < n; r++ {
		grid[r] = make([]float64, n)
		copy(grid[r], g.Data()[r*n:(r+1)*n])
	}
	return ExportData{
		ID:         meta.ID,
		Source:     meta.Source,
		Resampler:  meta.Resampler,
		Schedule:   meta.Schedule,
		Steps:      meta.Steps,
		DigitsUsed: meta.DigitsUsed,
		Metrics:    meta.Metrics,
		Whole:      meta.Whole,
		Quadrant:   meta.Quadrant,
		Grid:       grid,
	}
}

func WriteJSON(w io.Writer, meta *RunMetadata, g *field.Field) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(meta, g))
}

func ExportJSON(path string, meta *RunMetadata, g *field.Field) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, meta, g)
}

func ExportJSONStdout(meta *RunMetadata, g *field.Field) error {
	return WriteJSON(os.Stdout, meta, g)
}
