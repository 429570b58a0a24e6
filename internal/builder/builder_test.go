package builder

import (
	"context"
	"errors"
	"testing"

	"github.com/merthusman/fractalcode/internal/field"
	"github.com/merthusman/fractalcode/internal/noise"
	"github.com/merthusman/fractalcode/internal/resample"
)

func digitSeq(n int) []uint8 {
	seq := make([]uint8, n)
	for i := range seq {
		seq[i] = uint8((i*7 + 3) % 10)
	}
	return seq
}

type stageEvent struct {
	stage Stage
	scale int
}

type recorder struct {
	events []stageEvent
}

func (r *recorder) OnStage(stage Stage, scale int, _ *field.Field) {
	r.events = append(r.events, stageEvent{stage, scale})
}

func TestBuildVisitsScalesInOrder(t *testing.T) {
	schedule := Schedule{8, 16, 32, 64}
	src := noise.NewSource(digitSeq(schedule.DigitBudget()))
	b := New(src, resample.Bicubic{}, 5)

	rec := &recorder{}
	b.AddObserver(rec)

	g, err := b.Build(context.Background(), schedule)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.Size() != 64 {
		t.Errorf("final size %d, want 64", g.Size())
	}
	if !g.IsValid() {
		t.Error("final grid contains non-finite values")
	}

	want := []stageEvent{
		{StageSeed, 8},
		{StageEvolve, 8}, {StageGrow, 16}, {StageDetail, 16},
		{StageEvolve, 16}, {StageGrow, 32}, {StageDetail, 32},
		{StageEvolve, 32}, {StageGrow, 64}, {StageDetail, 64},
	}
	if len(rec.events) != len(want) {
		t.Fatalf("saw %d stage events, want %d: %v", len(rec.events), len(want), rec.events)
	}
	for i, w := range want {
		if rec.events[i] != w {
			t.Errorf("event %d = %v, want %v", i, rec.events[i], w)
		}
	}
}

func TestBuildConsumesExactBudget(t *testing.T) {
	schedule := Schedule{8, 16, 32}
	src := noise.NewSource(digitSeq(schedule.DigitBudget()))
	b := New(src, resample.Bicubic{}, 3)

	if _, err := b.Build(context.Background(), schedule); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if src.Remaining() != 0 {
		t.Errorf("%d digits left over, want 0", src.Remaining())
	}
}

func TestBuildRejectsInvalidScheduleBeforeConsumingDigits(t *testing.T) {
	src := noise.NewSource(digitSeq(10000))
	b := New(src, resample.Bicubic{}, 5)

	_, err := b.Build(context.Background(), Schedule{8, 32})
	if !errors.Is(err, ErrNotDoubling) {
		t.Fatalf("got %v, want ErrNotDoubling", err)
	}
	if src.Cursor() != 0 {
		t.Errorf("invalid schedule consumed %d digits", src.Cursor())
	}
}

func TestBuildRejectsBadStepCount(t *testing.T) {
	src := noise.NewSource(digitSeq(1000))
	b := New(src, resample.Bicubic{}, 0)

	if _, err := b.Build(context.Background(), Schedule{8, 16}); !errors.Is(err, ErrBadStepCount) {
		t.Fatalf("got %v, want ErrBadStepCount", err)
	}
}

func TestBuildSeedExhaustion(t *testing.T) {
	src := noise.NewSource(digitSeq(10)) // seed alone needs 64
	b := New(src, resample.Bicubic{}, 5)

	_, err := b.Build(context.Background(), Schedule{8, 16})
	if !errors.Is(err, noise.ErrExhausted) {
		t.Fatalf("got %v, want wrapped ErrExhausted", err)
	}
	var be *BuildError
	if !errors.As(err, &be) {
		t.Fatalf("error %T does not unwrap to *BuildError", err)
	}
	if be.Stage != StageSeed || be.Scale != 8 {
		t.Errorf("failure at %s/%d, want seed/8", be.Stage, be.Scale)
	}
}

func TestBuildDetailExhaustion(t *testing.T) {
	// Enough for the 8×8 seed but one digit short of the 16×16 detail.
	src := noise.NewSource(digitSeq(64 + 255))
	b := New(src, resample.Bicubic{}, 2)

	_, err := b.Build(context.Background(), Schedule{8, 16})
	if !errors.Is(err, noise.ErrExhausted) {
		t.Fatalf("got %v, want wrapped ErrExhausted", err)
	}
	var be *BuildError
	if !errors.As(err, &be) {
		t.Fatalf("error %T does not unwrap to *BuildError", err)
	}
	if be.Stage != StageDetail || be.Scale != 16 {
		t.Errorf("failure at %s/%d, want detail/16", be.Stage, be.Scale)
	}
}

func TestBuildDeterministic(t *testing.T) {
	schedule := Schedule{8, 16, 32}
	run := func() *field.Field {
		src := noise.NewSource(digitSeq(schedule.DigitBudget()))
		g, err := New(src, resample.Bicubic{}, 5).Build(context.Background(), schedule)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		return g
	}

	a, b := run(), run()
	for i := range a.Data() {
		if a.Data()[i] != b.Data()[i] {
			t.Fatalf("cell %d differs between identical builds", i)
		}
	}
}

func TestBuildCancellation(t *testing.T) {
	schedule := Schedule{8, 16}
	src := noise.NewSource(digitSeq(schedule.DigitBudget()))
	b := New(src, resample.Bicubic{}, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Build(ctx, schedule)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want wrapped context.Canceled", err)
	}
}

func TestStageString(t *testing.T) {
	cases := map[Stage]string{
		StageSeed:   "seed",
		StageEvolve: "evolve",
		StageGrow:   "grow",
		StageDetail: "detail",
		Stage(99):   "unknown",
	}
	for st, want := range cases {
		if st.String() != want {
			t.Errorf("Stage(%d).String() = %q, want %q", int(st), st.String(), want)
		}
	}
}
