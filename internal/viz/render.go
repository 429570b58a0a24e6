package viz

import (
	"math"

	"github.com/merthusman/fractalcode/internal/analysis"
	"github.com/merthusman/fractalcode/internal/field"
)

var shades = []rune(" ░▒▓█")

// Downsample reduces a grid to at most maxSide cells per side by block
// averaging. Grids already small enough are returned unchanged.
func Downsample(g *field.Field, maxSide int) *field.Field {
	n := g.Size()
	if maxSide < 1 || n <= maxSide {
		return g
	}

	block := (n + maxSide - 1) / maxSide
	m := (n + block - 1) / block
	out, _ := field.New(m)

	for r := 0; r < m; r++ {
		for c := 0; c < m; c++ {
			sum := 0.0
			count := 0
			for dr := r * block; dr < (r+1)*block && dr < n; dr++ {
				for dc := c * block; dc < (c+1)*block && dc < n; dc++ {
					sum += g.At(dr, dc)
					count++
				}
			}
			out.Set(r, c, sum/float64(count))
		}
	}
	return out
}

// Heatmap renders a grid as shaded block characters, at most width
// characters wide. Each character covers a 1x2 block of cells so the
// output stays roughly square in a terminal.
func Heatmap(g *field.Field, width int) string {
	n := g.Size()
	if width < 1 {
		width = 64
	}

	bw := (n + width - 1) / width
	bh := 2 * bw
	cols := (n + bw - 1) / bw
	rows := (n + bh - 1) / bh

	min, max := g.MinMax()
	rng := max - min
	if rng == 0 {
		rng = 1
	}

	out := make([]rune, 0, rows*(cols+1))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			sum := 0.0
			count := 0
			for dr := r * bh; dr < (r+1)*bh && dr < n; dr++ {
				for dc := c * bw; dc < (c+1)*bw && dc < n; dc++ {
					sum += g.At(dr, dc)
					count++
				}
			}
			t := (sum/float64(count) - min) / rng
			idx := int(t*float64(len(shades)-1) + 0.5)
			if idx < 0 {
				idx = 0
			}
			if idx > len(shades)-1 {
				idx = len(shades) - 1
			}
			out = append(out, shades[idx])
		}
		out = append(out, '\n')
	}
	return string(out)
}

// Dots renders the above-mean set of a grid on a Braille canvas, at most
// width characters wide. This is the set the box-counting estimator
// measures, so the picture previews what the dimension describes.
func Dots(g *field.Field, width int) string {
	n := g.Size()
	if width < 1 {
		width = 40
	}

	sub := 2 * width
	canvas := NewCanvas(width, (sub+3)/4)

	mean := g.Mean()
	for dy := 0; dy < sub; dy++ {
		r := dy * n / sub
		for dx := 0; dx < sub; dx++ {
			c := dx * n / sub
			if g.At(r, c) > mean {
				canvas.Set(dx, dy)
			}
		}
	}
	return canvas.String()
}

// ScalingPlot draws the log-log box-counting curve with its fitted line
// on a Braille canvas. Box size grows to the right, occupied count up.
func ScalingPlot(points []analysis.ScalePoint, width, height int) string {
	if len(points) < 2 {
		return ""
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = math.Log(float64(p.BoxSize))
		ys[i] = math.Log(float64(p.Count))
	}
	slope, intercept := analysis.FitLine(xs, ys)

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := range xs {
		minX = math.Min(minX, xs[i])
		maxX = math.Max(maxX, xs[i])
		minY = math.Min(minY, ys[i])
		maxY = math.Max(maxY, ys[i])
	}
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	subW := 2 * width
	subH := 4 * height
	canvas := NewCanvas(width, height)

	toPixel := func(x, y float64) (int, int) {
		px := int((x - minX) / rangeX * float64(subW-2))
		py := int((maxY - y) / rangeY * float64(subH-2))
		return px, py
	}

	x0, y0 := toPixel(minX, intercept+slope*minX)
	x1, y1 := toPixel(maxX, intercept+slope*maxX)
	canvas.DrawLine(x0, y0, x1, y1)

	for i := range xs {
		px, py := toPixel(xs[i], ys[i])
		canvas.Set(px, py)
		canvas.Set(px+1, py)
		canvas.Set(px, py+1)
		canvas.Set(px+1, py+1)
	}
	return canvas.String()
}
