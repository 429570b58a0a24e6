package metrics

import (
	"math"

	"github.com/merthusman/fractalcode/internal/builder"
	"github.com/merthusman/fractalcode/internal/field"
)

// Roughness tracks the mean absolute difference between toroidal
// neighbors, a cheap proxy for how much fine-scale texture survives
// each stage.
type Roughness struct {
	name  string
	value float64
}

func NewRoughness() *Roughness {
	return &Roughness{name: "roughness"}
}

func (m *Roughness) Name() string { return m.name }

func (m *Roughness) OnStage(_ builder.Stage, _ int, g *field.Field) {
	n := g.Size()
	data := g.Data()
	total := 0.0
	for r := 0; r < n; r++ {
		row := r * n
		rowDown := ((r + 1) % n) * n
		for c := 0; c < n; c++ {
			right := (c + 1) % n
			v := data[row+c]
			total += math.Abs(data[row+right]-v) + math.Abs(data[rowDown+c]-v)
		}
	}
	m.value = total / float64(2*n*n)
}

func (m *Roughness) Value() float64 { return m.value }

func (m *Roughness) Reset() { m.value = 0 }
