// Package noise turns a precomputed decimal digit sequence into square
// grids of deterministic noise.
package noise

import (
	"errors"
	"fmt"

	"github.com/merthusman/fractalcode/internal/field"
)

// ErrExhausted reports that the digit sequence cannot supply the requested
// block. Retrying cannot help; the caller must precompute a longer
// sequence or shorten the construction.
var ErrExhausted = errors.New("noise: digit sequence exhausted")

// Source hands out noise grids cut from a digit sequence. The cursor only
// moves forward and every request consumes a fresh span, so blocks handed
// to different construction stages never overlap. A Source is not safe for
// concurrent use; a construction owns exactly one and drives it from a
// single goroutine.
type Source struct {
	seq    []uint8
	cursor int
}

// NewSource wraps a digit sequence. The slice is retained, not copied.
func NewSource(seq []uint8) *Source {
	return &Source{seq: seq}
}

// NextBlock consumes size² digits and returns them as a size×size grid,
// each digit d mapped affinely to (d−4.5)/4.5, spanning [−1, 1] with zero
// sample mean over a uniform digit distribution. Digits fill the grid in
// row-major order. On exhaustion the cursor is left untouched.
func (s *Source) NextBlock(size int) (*field.Field, error) {
	if size < 1 {
		return nil, field.ErrBadSize
	}
	need := size * size
	if s.cursor+need > len(s.seq) {
		return nil, fmt.Errorf("noise: block %d×%d needs %d digits but %d remain at cursor %d: %w",
			size, size, need, len(s.seq)-s.cursor, s.cursor, ErrExhausted)
	}
	g, err := field.New(size)
	if err != nil {
		return nil, err
	}
	data := g.Data()
	for i, d := range s.seq[s.cursor : s.cursor+need] {
		data[i] = (float64(d) - 4.5) / 4.5
	}
	s.cursor += need
	return g, nil
}

// Cursor returns the number of digits consumed so far.
func (s *Source) Cursor() int { return s.cursor }

// Remaining returns the number of unconsumed digits.
func (s *Source) Remaining() int { return len(s.seq) - s.cursor }
