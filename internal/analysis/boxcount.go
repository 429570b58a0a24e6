package analysis

import (
	"math"

	"github.com/merthusman/fractalcode/internal/field"
)

// candidateScales is how many log-spaced box sizes are tried between 2
// and half the grid side.
const candidateScales = 15

// ScalePoint is one (box size, occupied box count) sample of the
// counting curve.
type ScalePoint struct {
	BoxSize int
	Count   int
}

// Estimate is the outcome of a box-counting measurement.
type Estimate struct {
	Dimension float64
	Points    []ScalePoint
	Valid     bool
}

// BoxCount estimates the box-counting dimension of the grid's above-mean
// set.
//
// The grid is binarized at its own mean, so no external threshold enters
// the measurement. The set is then covered with boxes at log-spaced
// sizes from 2 up to half the side; for each size, boxes holding at
// least one set cell are counted over the largest top-left region the
// size divides evenly. The dimension is the negated slope of log(count)
// against log(size).
//
// Degenerate inputs yield Valid=false: a set that is empty or covers
// every cell, fewer than two usable box sizes, or fewer than two
// non-zero counts.
func BoxCount(g *field.Field) Estimate {
	n := g.Size()
	data := g.Data()
	mean := g.Mean()

	binary := make([]bool, len(data))
	on := 0
	for i, v := range data {
		if v > mean {
			binary[i] = true
			on++
		}
	}
	if on == 0 || on == len(binary) {
		return Estimate{}
	}

	sizes := logSpacedSizes(2, n/2, candidateScales)
	if len(sizes) < 2 {
		return Estimate{}
	}

	points := make([]ScalePoint, 0, len(sizes))
	for _, s := range sizes {
		if c := occupiedBoxes(binary, n, s); c > 0 {
			points = append(points, ScalePoint{BoxSize: s, Count: c})
		}
	}
	if len(points) < 2 {
		return Estimate{Points: points}
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = math.Log(float64(p.BoxSize))
		ys[i] = math.Log(float64(p.Count))
	}
	slope, _ := FitLine(xs, ys)
	return Estimate{Dimension: -slope, Points: points, Valid: true}
}

// Quadrant returns the top-left quarter of the grid. Measuring it with
// the same estimator as the whole grid is the basic self-similarity
// probe: on self-similar texture the two dimensions agree.
func Quadrant(g *field.Field) (*field.Field, error) {
	return g.Region(0, 0, g.Size()/2)
}

// logSpacedSizes returns up to count integers spaced evenly in log space
// over [lo, hi], rounded, deduplicated, entries below 2 dropped. The
// rounded sequence is non-decreasing, so adjacent deduplication is
// complete deduplication.
func logSpacedSizes(lo, hi, count int) []int {
	if hi < lo || count < 1 {
		return nil
	}
	logLo := math.Log(float64(lo))
	logHi := math.Log(float64(hi))
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		t := 0.0
		if count > 1 {
			t = float64(i) / float64(count-1)
		}
		s := int(math.Round(math.Exp(logLo + t*(logHi-logLo))))
		if s < 2 {
			continue
		}
		if len(out) > 0 && out[len(out)-1] == s {
			continue
		}
		out = append(out, s)
	}
	return out
}

// occupiedBoxes counts s×s boxes containing at least one set cell,
// scanning the largest top-left span evenly divisible by s.
func occupiedBoxes(binary []bool, n, s int) int {
	span := (n / s) * s
	if span == 0 {
		return 0
	}
	count := 0
	for br := 0; br < span; br += s {
		for bc := 0; bc < span; bc += s {
			if boxOccupied(binary, n, br, bc, s) {
				count++
			}
		}
	}
	return count
}

func boxOccupied(binary []bool, n, r0, c0, s int) bool {
	for r := r0; r < r0+s; r++ {
		row := r * n
		for c := c0; c < c0+s; c++ {
			if binary[row+c] {
				return true
			}
		}
	}
	return false
}

// FitLine returns the least-squares slope and intercept of y against x.
// A degenerate x spread yields (0, mean of y).
func FitLine(xs, ys []float64) (slope, intercept float64) {
	n := float64(len(xs))
	if n == 0 {
		return 0, 0
	}
	var sx, sy, sxx, sxy float64
	for i := range xs {
		sx += xs[i]
		sy += ys[i]
		sxx += xs[i] * xs[i]
		sxy += xs[i] * ys[i]
	}
	den := n*sxx - sx*sx
	if den == 0 {
		return 0, sy / n
	}
	slope = (n*sxy - sx*sy) / den
	intercept = (sy - slope*sx) / n
	return slope, intercept
}
