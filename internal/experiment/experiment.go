// Package experiment wires digit sources, the builder and the analysis
// pass into single runnable constructions.
package experiment

import (
	"context"
	"time"

	"github.com/merthusman/fractalcode/internal/analysis"
	"github.com/merthusman/fractalcode/internal/builder"
	"github.com/merthusman/fractalcode/internal/field"
	"github.com/merthusman/fractalcode/internal/noise"
)

// Config describes one construction run.
type Config struct {
	SeedSize  int
	FinalSize int
	Steps     int
	Source    string
	Resampler string

	// Digits, when non-nil, is consumed instead of generating the named
	// source. Lets callers reuse an expensive digit expansion across runs.
	Digits []uint8
}

// Result is everything one run produced.
type Result struct {
	Field      *field.Field
	Whole      analysis.Estimate
	Quadrant   analysis.Estimate
	Metrics    map[string]float64
	Schedule   builder.Schedule
	DigitsUsed int
	Elapsed    time.Duration
}

type Experiment struct {
	cfg       Config
	registry  *Registry
	observers []builder.Observer
	metrics   []builder.Metric
}

func New(cfg Config) *Experiment {
	return &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
	}
}

// AddObserver forwards stage notifications from the underlying build.
func (e *Experiment) AddObserver(o builder.Observer) {
	e.observers = append(e.observers, o)
}

// AddMetric registers a metric whose final value lands in Result.Metrics.
func (e *Experiment) AddMetric(m builder.Metric) {
	e.metrics = append(e.metrics, m)
}

// Run executes the construction and measures what came out. The digit
// sequence is generated once for the whole schedule, fed through the
// builder, and the final grid is box-counted whole and as its top-left
// quadrant.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	schedule, err := builder.NewSchedule(e.cfg.SeedSize, e.cfg.FinalSize)
	if err != nil {
		return nil, err
	}

	rs, err := e.registry.GetResampler(e.cfg.Resampler)
	if err != nil {
		return nil, err
	}

	seq := e.cfg.Digits
	if seq == nil {
		gen, err := e.registry.GetSource(e.cfg.Source)
		if err != nil {
			return nil, err
		}
		seq = gen(schedule.DigitBudget())
	}
	src := noise.NewSource(seq)

	steps := e.cfg.Steps
	if steps == 0 {
		steps = builder.DefaultSteps
	}

	b := builder.New(src, rs, steps)
	for _, m := range e.metrics {
		m.Reset()
		b.AddObserver(m)
	}
	for _, o := range e.observers {
		b.AddObserver(o)
	}

	start := time.Now()
	grid, err := b.Build(ctx, schedule)
	if err != nil {
		return nil, err
	}

	quad, err := analysis.Quadrant(grid)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Field:      grid,
		Whole:      analysis.BoxCount(grid),
		Quadrant:   analysis.BoxCount(quad),
		Schedule:   schedule,
		DigitsUsed: src.Cursor(),
		Elapsed:    time.Since(start),
		Metrics:    make(map[string]float64, len(e.metrics)),
	}
	for _, m := range e.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, nil
}
