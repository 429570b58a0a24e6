// Package metrics provides named scalar summaries of construction
// output. Each metric observes stage snapshots and keeps the value for
// the most recent grid it saw, so after a finished build it describes
// the final texture.
package metrics

import (
	"github.com/merthusman/fractalcode/internal/builder"
	"github.com/merthusman/fractalcode/internal/field"
)

// Coverage tracks the fraction of cells above the grid mean, the same
// set the box-counting estimator measures. Values near 0 or 1 warn that
// a dimension estimate will be degenerate.
type Coverage struct {
	name  string
	value float64
}

func NewCoverage() *Coverage {
	return &Coverage{name: "coverage"}
}

func (c *Coverage) Name() string { return c.name }

func (c *Coverage) OnStage(_ builder.Stage, _ int, g *field.Field) {
	mean := g.Mean()
	on := 0
	for _, v := range g.Data() {
		if v > mean {
			on++
		}
	}
	c.value = float64(on) / float64(len(g.Data()))
}

func (c *Coverage) Value() float64 { return c.value }

func (c *Coverage) Reset() { c.value = 0 }
