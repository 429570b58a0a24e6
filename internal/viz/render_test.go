package viz

import (
	"strings"
	"testing"

	"github.com/merthusman/fractalcode/internal/analysis"
	"github.com/merthusman/fractalcode/internal/builder"
	"github.com/merthusman/fractalcode/internal/field"
)

var _ builder.Observer = (*ChannelObserver)(nil)

func rampGrid(t *testing.T, size int) *field.Field {
	t.Helper()
	g, err := field.New(size)
	if err != nil {
		t.Fatal(err)
	}
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			g.Set(r, c, float64(r*size+c))
		}
	}
	return g
}

func TestDownsample(t *testing.T) {
	g := rampGrid(t, 4)

	out := Downsample(g, 2)
	if out.Size() != 2 {
		t.Fatalf("size = %d, want 2", out.Size())
	}
	if got := out.At(0, 0); got != 2.5 {
		t.Errorf("At(0,0) = %v, want 2.5", got)
	}
	if got := out.At(1, 1); got != 12.5 {
		t.Errorf("At(1,1) = %v, want 12.5", got)
	}
}

func TestDownsampleSmallGridUnchanged(t *testing.T) {
	g := rampGrid(t, 4)
	if out := Downsample(g, 8); out != g {
		t.Error("grid below the limit should come back unchanged")
	}
}

func TestHeatmapShape(t *testing.T) {
	g := rampGrid(t, 4)

	// Each character pools a 1x2 block, so a 4x4 grid renders as 2 rows
	// of 4. Block means are 2..5 on top and 10..13 below.
	if got := Heatmap(g, 4); got != "░░░░\n▓▓▓▓\n" {
		t.Errorf("Heatmap = %q, want %q", got, "░░░░\n▓▓▓▓\n")
	}
}

func TestHeatmapSpansPalette(t *testing.T) {
	g, err := field.New(4)
	if err != nil {
		t.Fatal(err)
	}
	for c := 0; c < 4; c++ {
		g.Set(2, c, 15)
		g.Set(3, c, 15)
	}

	if got := Heatmap(g, 4); got != "    \n████\n" {
		t.Errorf("Heatmap = %q, want %q", got, "    \n████\n")
	}
}

func TestHeatmapFlatGrid(t *testing.T) {
	g, err := field.New(4)
	if err != nil {
		t.Fatal(err)
	}
	g.Fill(2.5)

	out := Heatmap(g, 4)
	if strings.Trim(out, " \n") != "" {
		t.Errorf("flat grid should render empty, got %q", out)
	}
}

func TestDotsAboveMeanSet(t *testing.T) {
	g, err := field.New(8)
	if err != nil {
		t.Fatal(err)
	}
	for r := 0; r < 8; r++ {
		for c := 0; c < 4; c++ {
			g.Set(r, c, 1)
		}
	}

	out := Dots(g, 4)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("rows = %d, want 2", len(lines))
	}
	for i, line := range lines {
		if line != "⣿⣿⠀⠀" {
			t.Errorf("row %d = %q, want left half filled", i, line)
		}
	}
}

func TestScalingPlot(t *testing.T) {
	points := []analysis.ScalePoint{
		{BoxSize: 2, Count: 1024},
		{BoxSize: 4, Count: 256},
		{BoxSize: 8, Count: 64},
		{BoxSize: 16, Count: 16},
	}

	out := ScalingPlot(points, 30, 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("rows = %d, want 10", len(lines))
	}

	lit := 0
	for _, line := range lines {
		for _, r := range line {
			if r > 0x2800 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("plot has no lit cells")
	}
}

func TestScalingPlotTooFewPoints(t *testing.T) {
	if out := ScalingPlot([]analysis.ScalePoint{{BoxSize: 2, Count: 4}}, 20, 8); out != "" {
		t.Errorf("single point should render nothing, got %q", out)
	}
}
