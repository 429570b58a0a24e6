package noise

import (
	"errors"
	"math"
	"testing"
)

func TestNextBlockMapsDigits(t *testing.T) {
	src := NewSource([]uint8{0, 9, 4, 5})
	g, err := src.NextBlock(2)
	if err != nil {
		t.Fatalf("NextBlock: %v", err)
	}

	want := []float64{-1, 1, (4 - 4.5) / 4.5, (5 - 4.5) / 4.5}
	for i, w := range want {
		if math.Abs(g.Data()[i]-w) > 1e-15 {
			t.Errorf("cell %d = %v, want %v", i, g.Data()[i], w)
		}
	}
}

func TestCursorAdvancesBySquare(t *testing.T) {
	src := NewSource(make([]uint8, 100))

	if _, err := src.NextBlock(3); err != nil {
		t.Fatalf("first block: %v", err)
	}
	if src.Cursor() != 9 {
		t.Errorf("cursor after 3×3 = %d, want 9", src.Cursor())
	}

	if _, err := src.NextBlock(4); err != nil {
		t.Fatalf("second block: %v", err)
	}
	if src.Cursor() != 25 {
		t.Errorf("cursor after 4×4 = %d, want 25", src.Cursor())
	}
	if src.Remaining() != 75 {
		t.Errorf("remaining = %d, want 75", src.Remaining())
	}
}

func TestBlocksDoNotOverlap(t *testing.T) {
	seq := make([]uint8, 8)
	for i := range seq {
		seq[i] = uint8(i)
	}
	src := NewSource(seq)

	a, _ := src.NextBlock(2)
	b, _ := src.NextBlock(2)

	// Second block starts where the first ended: digits 4..7.
	wantB := []float64{(4 - 4.5) / 4.5, (5 - 4.5) / 4.5, (6 - 4.5) / 4.5, (7 - 4.5) / 4.5}
	for i, w := range wantB {
		if math.Abs(b.Data()[i]-w) > 1e-15 {
			t.Errorf("second block cell %d = %v, want %v", i, b.Data()[i], w)
		}
	}
	if a.Data()[0] != -1 {
		t.Errorf("first block cell 0 = %v, want -1", a.Data()[0])
	}
}

func TestExhaustion(t *testing.T) {
	src := NewSource(make([]uint8, 10))

	if _, err := src.NextBlock(3); err != nil {
		t.Fatalf("block within budget: %v", err)
	}

	_, err := src.NextBlock(2)
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("got %v, want ErrExhausted", err)
	}
	// Failed request must not consume digits.
	if src.Cursor() != 9 {
		t.Errorf("cursor moved on failure: %d, want 9", src.Cursor())
	}
}

func TestBadBlockSize(t *testing.T) {
	src := NewSource(make([]uint8, 10))
	if _, err := src.NextBlock(0); err == nil {
		t.Error("NextBlock(0) did not fail")
	}
}

func TestDeterminism(t *testing.T) {
	seq := []uint8{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8}

	a, _ := NewSource(seq).NextBlock(3)
	b, _ := NewSource(seq).NextBlock(3)
	for i := range a.Data() {
		if a.Data()[i] != b.Data()[i] {
			t.Fatalf("cell %d differs between identical sources", i)
		}
	}
}
