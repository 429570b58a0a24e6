// Package export renders constructed fields and their box-counting
// statistics to SVG for use outside the terminal.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/merthusman/fractalcode/internal/analysis"
	"github.com/merthusman/fractalcode/internal/field"
	"github.com/merthusman/fractalcode/internal/viz"
)

// maxRasterSide caps the rect count of a field SVG. Larger grids are
// block-averaged down before rendering.
const maxRasterSide = 128

// FieldToSVG renders a grid as a grayscale raster, one rect per cell.
func FieldToSVG(g *field.Field, cellSize float64) string {
	if g == nil {
		return ""
	}
	if cellSize <= 0 {
		cellSize = 4
	}

	ds := viz.Downsample(g, maxRasterSide)
	n := ds.Size()

	min, max := ds.MinMax()
	rng := max - min
	if rng == 0 {
		rng = 1
	}

	side := float64(n) * cellSize

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, side, side, side, side))

	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			shade := int((ds.At(r, c) - min) / rng * 255)
			if shade < 0 {
				shade = 0
			}
			if shade > 255 {
				shade = 255
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#%02x%02x%02x"/>
`, float64(c)*cellSize, float64(r)*cellSize, cellSize, cellSize, shade, shade, shade))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// ScalingToSVG plots the log-log box-counting curve with its fitted
// line. Each point is one box size; the slope of the line is the
// negated dimension estimate.
func ScalingToSVG(points []analysis.ScalePoint, width, height int) string {
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

	// Pad the bounds so points never sit on the border.
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	toPixel := func(x, y float64) (float64, float64) {
		px := (x - minX) / rangeX * float64(width)
		py := float64(height) - (y-minY)/rangeY*float64(height)
		return px, py
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	x0, y0 := toPixel(minX, intercept+slope*minX)
	x1, y1 := toPixel(maxX, intercept+slope*maxX)
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="#00ccff" stroke-width="1.5" d="M%.1f,%.1f L%.1f,%.1f"/>
`, x0, y0, x1, y1))

	for i := range xs {
		px, py := toPixel(xs[i], ys[i])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="#00ff88"/>
`, px, py))
	}

	sb.WriteString(fmt.Sprintf(`<text x="10" y="20" fill="#888899" font-family="monospace" font-size="12">D = %.4f</text>
`, -slope))

	sb.WriteString("</svg>")
	return sb.String()
}
