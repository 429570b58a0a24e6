package field

import "math"

// Field is a square 2D scalar grid stored row-major.
type Field struct {
	size int
	data []float64
}

// New allocates a zero-filled size×size grid.
func New(size int) (*Field, error) {
	if size < 1 {
		return nil, ErrBadSize
	}
	return &Field{size: size, data: make([]float64, size*size)}, nil
}

// FromValues builds a grid from a row-major value slice. The slice is
// copied, so the caller keeps ownership of values.
func FromValues(size int, values []float64) (*Field, error) {
	if size < 1 {
		return nil, ErrBadSize
	}
	if len(values) != size*size {
		return nil, ErrSizeMismatch
	}
	f := &Field{size: size, data: make([]float64, size*size)}
	copy(f.data, values)
	return f, nil
}

// Size returns the side length.
func (f *Field) Size() int { return f.size }

// Data exposes the row-major backing slice. Hot loops index it directly;
// cell (r, c) lives at r*Size()+c.
func (f *Field) Data() []float64 { return f.data }

// At returns the cell at row r, column c. Indices must be in range.
func (f *Field) At(r, c int) float64 { return f.data[r*f.size+c] }

// Set writes the cell at row r, column c. Indices must be in range.
func (f *Field) Set(r, c int, v float64) { f.data[r*f.size+c] = v }

// Fill sets every cell to v.
func (f *Field) Fill(v float64) {
	for i := range f.data {
		f.data[i] = v
	}
}

// Clone returns an independent copy.
func (f *Field) Clone() *Field {
	c := &Field{size: f.size, data: make([]float64, len(f.data))}
	copy(c.data, f.data)
	return c
}

// Region copies out the size×size sub-grid whose top-left corner is
// (r0, c0). The region must lie entirely inside the grid.
func (f *Field) Region(r0, c0, size int) (*Field, error) {
	if size < 1 {
		return nil, ErrBadSize
	}
	if r0 < 0 || c0 < 0 || r0+size > f.size || c0+size > f.size {
		return nil, ErrRegionBounds
	}
	out := &Field{size: size, data: make([]float64, size*size)}
	for r := 0; r < size; r++ {
		src := (r0+r)*f.size + c0
		copy(out.data[r*size:(r+1)*size], f.data[src:src+size])
	}
	return out, nil
}

// Mean returns the arithmetic mean over all cells.
func (f *Field) Mean() float64 {
	sum := 0.0
	for _, v := range f.data {
		sum += v
	}
	return sum / float64(len(f.data))
}

// Stats returns the mean and the population standard deviation. The
// variance pass runs against the already computed mean, which keeps the
// result stable for grids whose values sit far from zero.
func (f *Field) Stats() (mean, std float64) {
	mean = f.Mean()
	acc := 0.0
	for _, v := range f.data {
		d := v - mean
		acc += d * d
	}
	return mean, math.Sqrt(acc / float64(len(f.data)))
}

// MinMax returns the smallest and largest cell values.
func (f *Field) MinMax() (min, max float64) {
	min, max = f.data[0], f.data[0]
	for _, v := range f.data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// IsValid reports whether every cell is finite.
func (f *Field) IsValid() bool {
	for _, v := range f.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
