package builder

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/merthusman/fractalcode/internal/evolve"
	"github.com/merthusman/fractalcode/internal/field"
	"github.com/merthusman/fractalcode/internal/noise"
	"github.com/merthusman/fractalcode/internal/resample"
)

// DefaultSteps is the number of evolution steps applied at each scale.
const DefaultSteps = 30

// ErrBadStepCount rejects a per-scale evolution step count below 1.
var ErrBadStepCount = errors.New("builder: evolution step count must be at least 1")

// Stage identifies one phase of the construction cycle.
type Stage int

const (
	StageSeed Stage = iota
	StageEvolve
	StageGrow
	StageDetail
)

func (st Stage) String() string {
	switch st {
	case StageSeed:
		return "seed"
	case StageEvolve:
		return "evolve"
	case StageGrow:
		return "grow"
	case StageDetail:
		return "detail"
	}
	return "unknown"
}

// BuildError records where a construction died: which stage, at which
// grid side length, and the underlying cause.
type BuildError struct {
	Stage Stage
	Scale int
	Err   error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("builder: %s stage failed at scale %d: %v", e.Stage, e.Scale, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// Observer receives the grid after each completed stage. The grid is the
// builder's live working copy; observers must not mutate it and must
// Clone it to retain it past the call.
type Observer interface {
	OnStage(stage Stage, scale int, g *field.Field)
}

// Metric is an Observer that reduces what it saw to one named value.
type Metric interface {
	Observer
	Name() string
	Value() float64
	Reset()
}

// Builder runs the seed → evolve → grow → detail cycle over a schedule.
type Builder struct {
	source     *noise.Source
	evolver    *evolve.Evolver
	normalizer *evolve.Normalizer
	resampler  resample.Resampler
	steps      int
	observers  []Observer
}

// New assembles a builder around a digit source and a resampler, running
// steps evolution iterations per scale.
func New(src *noise.Source, rs resample.Resampler, steps int) *Builder {
	return &Builder{
		source:     src,
		evolver:    evolve.NewEvolver(),
		normalizer: evolve.NewNormalizer(),
		resampler:  rs,
		steps:      steps,
	}
}

// AddObserver registers an observer for stage notifications, in order.
func (b *Builder) AddObserver(o Observer) {
	b.observers = append(b.observers, o)
}

// Build runs the construction over the schedule and returns the final
// grid. The schedule is validated up front, before any digit is consumed.
// Cancellation is checked between scales; a cancelled build reports the
// scale it was about to process.
func (b *Builder) Build(ctx context.Context, schedule Schedule) (*field.Field, error) {
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	if b.steps < 1 {
		return nil, ErrBadStepCount
	}

	grid, err := b.source.NextBlock(schedule.Seed())
	if err != nil {
		return nil, &BuildError{Stage: StageSeed, Scale: schedule.Seed(), Err: err}
	}
	b.notify(StageSeed, schedule.Seed(), grid)

	for i := 0; i+1 < len(schedule); i++ {
		scale, next := schedule[i], schedule[i+1]

		if err := ctx.Err(); err != nil {
			return nil, &BuildError{Stage: StageEvolve, Scale: scale, Err: err}
		}

		for k := 0; k < b.steps; k++ {
			grid = b.normalizer.Normalize(b.evolver.Step(grid))
		}
		b.notify(StageEvolve, scale, grid)

		grown, err := b.resampler.Upscale(grid, next)
		if err != nil {
			return nil, &BuildError{Stage: StageGrow, Scale: next, Err: err}
		}
		b.notify(StageGrow, next, grown)

		detail, err := b.source.NextBlock(next)
		if err != nil {
			return nil, &BuildError{Stage: StageDetail, Scale: next, Err: err}
		}
		// Detail amplitude fades as 1/log₂(side): each octave gets the
		// same injection, geometrically fainter.
		decay := 1 / math.Log2(float64(next))
		blended, _ := field.New(next)
		gd, dd, bd := grown.Data(), detail.Data(), blended.Data()
		for j := range bd {
			bd[j] = gd[j] + dd[j]*decay
		}
		grid = blended
		b.notify(StageDetail, next, grid)
	}

	return grid, nil
}

func (b *Builder) notify(stage Stage, scale int, g *field.Field) {
	for _, o := range b.observers {
		o.OnStage(stage, scale, g)
	}
}
