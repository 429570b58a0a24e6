package metrics

import (
	"github.com/merthusman/fractalcode/internal/builder"
	"github.com/merthusman/fractalcode/internal/field"
)

// Amplitude tracks the value range of the latest grid. After
// normalization it hovers in the single digits; runaway growth points at
// an unstable evolution.
type Amplitude struct {
	name  string
	value float64
}

func NewAmplitude() *Amplitude {
	return &Amplitude{name: "amplitude"}
}

func (m *Amplitude) Name() string { return m.name }

func (m *Amplitude) OnStage(_ builder.Stage, _ int, g *field.Field) {
	min, max := g.MinMax()
	m.value = max - min
}

func (m *Amplitude) Value() float64 { return m.value }

func (m *Amplitude) Reset() { m.value = 0 }
