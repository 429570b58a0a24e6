package evolve

import (
	"math"

	"github.com/merthusman/fractalcode/internal/field"
)

// Update coefficients, all derived from π rather than hand tuning.
const (
	Diffusion = 1 / math.Pi
	Restoring = math.Pi
	Growth    = math.Pi * math.Pi

	// Dt is the explicit Euler step size.
	Dt = 0.01
)

// minParallelRows keeps small grids single-threaded; the goroutine
// handoff costs more than a few thousand cells of arithmetic.
const minParallelRows = 16

// Evolver advances a grid by one explicit Euler step of the update law.
// Step reads only a frozen input snapshot and writes a fresh output grid,
// so per-cell updates are order independent and rows can run in parallel.
type Evolver struct{}

func NewEvolver() *Evolver { return &Evolver{} }

// Step returns the evolved grid. The input is left untouched.
func (e *Evolver) Step(g *field.Field) *field.Field {
	n := g.Size()
	out, _ := field.New(n)
	src := g.Data()
	dst := out.Data()

	field.ParallelFor(n, minParallelRows, func(r0, r1 int) {
		for r := r0; r < r1; r++ {
			row := r * n
			rowUp := ((r - 1 + n) % n) * n
			rowDown := ((r + 1) % n) * n
			for c := 0; c < n; c++ {
				cl := c - 1
				if cl < 0 {
					cl = n - 1
				}
				cr := c + 1
				if cr == n {
					cr = 0
				}

				v := src[row+c]
				neighbors := src[rowUp+c] + src[rowDown+c] + src[row+cl] + src[row+cr]

				laplacian := neighbors - 4*v
				smoothed := (4*v + neighbors) / 8

				diffuse := Diffusion * laplacian
				restore := -Restoring * (v - math.Tanh(v))
				grow := Growth * (v - smoothed)

				dst[row+c] = v + Dt*(diffuse+restore+grow)
			}
		}
	})
	return out
}
