package field

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"
)

func TestNewRejectsBadSize(t *testing.T) {
	for _, size := range []int{0, -1, -16} {
		if _, err := New(size); !errors.Is(err, ErrBadSize) {
			t.Errorf("New(%d): got %v, want ErrBadSize", size, err)
		}
	}
}

func TestFromValues(t *testing.T) {
	vals := []float64{1, 2, 3, 4}
	f, err := FromValues(2, vals)
	if err != nil {
		t.Fatalf("FromValues: %v", err)
	}
	if got := f.At(1, 0); got != 3 {
		t.Errorf("At(1,0) = %v, want 3", got)
	}

	// Slice is copied, not aliased.
	vals[0] = 99
	if got := f.At(0, 0); got != 1 {
		t.Errorf("At(0,0) after mutating input = %v, want 1", got)
	}

	if _, err := FromValues(2, []float64{1, 2, 3}); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("short slice: got %v, want ErrSizeMismatch", err)
	}
}

func TestCloneIndependence(t *testing.T) {
	f, _ := New(4)
	f.Set(2, 3, 7.5)

	c := f.Clone()
	c.Set(2, 3, -1)

	if got := f.At(2, 3); got != 7.5 {
		t.Errorf("original mutated through clone: got %v, want 7.5", got)
	}
	if c.Size() != f.Size() {
		t.Errorf("clone size %d, want %d", c.Size(), f.Size())
	}
}

func TestRegion(t *testing.T) {
	f, _ := New(4)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			f.Set(r, c, float64(r*4+c))
		}
	}

	q, err := f.Region(0, 0, 2)
	if err != nil {
		t.Fatalf("Region: %v", err)
	}
	want := []float64{0, 1, 4, 5}
	for i, w := range want {
		if q.Data()[i] != w {
			t.Errorf("quadrant[%d] = %v, want %v", i, q.Data()[i], w)
		}
	}

	if _, err := f.Region(3, 3, 2); !errors.Is(err, ErrRegionBounds) {
		t.Errorf("out-of-bounds region: got %v, want ErrRegionBounds", err)
	}
	if _, err := f.Region(0, 0, 0); !errors.Is(err, ErrBadSize) {
		t.Errorf("zero region: got %v, want ErrBadSize", err)
	}
}

func TestStats(t *testing.T) {
	f, _ := FromValues(2, []float64{1, 2, 3, 4})

	mean, std := f.Stats()
	if math.Abs(mean-2.5) > 1e-12 {
		t.Errorf("mean = %v, want 2.5", mean)
	}
	wantStd := math.Sqrt(1.25)
	if math.Abs(std-wantStd) > 1e-12 {
		t.Errorf("std = %v, want %v", std, wantStd)
	}
}

func TestStatsFlatGrid(t *testing.T) {
	f, _ := New(8)
	f.Fill(3.25)

	mean, std := f.Stats()
	if mean != 3.25 {
		t.Errorf("mean = %v, want 3.25", mean)
	}
	if std != 0 {
		t.Errorf("std = %v, want 0", std)
	}
}

func TestMinMax(t *testing.T) {
	f, _ := FromValues(2, []float64{-3, 0.5, 8, 1})
	min, max := f.MinMax()
	if min != -3 || max != 8 {
		t.Errorf("MinMax = (%v, %v), want (-3, 8)", min, max)
	}
}

func TestIsValid(t *testing.T) {
	f, _ := New(3)
	if !f.IsValid() {
		t.Error("zero grid reported invalid")
	}
	f.Set(1, 1, math.NaN())
	if f.IsValid() {
		t.Error("NaN cell not detected")
	}
	f.Set(1, 1, math.Inf(-1))
	if f.IsValid() {
		t.Error("Inf cell not detected")
	}
}

func TestParallelForCoversRange(t *testing.T) {
	const n = 1000
	hits := make([]int32, n)
	ParallelFor(n, 10, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	})
	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times, want exactly once", i, h)
		}
	}
}

func TestParallelForSmallRunsSerial(t *testing.T) {
	var calls int32
	ParallelFor(5, 10, func(start, end int) {
		atomic.AddInt32(&calls, 1)
		if start != 0 || end != 5 {
			t.Errorf("serial chunk = [%d,%d), want [0,5)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("small range used %d chunks, want 1", calls)
	}
}

func TestParallelForEmptyRange(t *testing.T) {
	called := false
	ParallelFor(0, 10, func(start, end int) { called = true })
	if called {
		t.Error("fn called for empty range")
	}
}
