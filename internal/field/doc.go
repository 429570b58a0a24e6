// Package field provides the square scalar grid shared by every stage of
// the multiscale construction.
//
// The package defines the fundamental grid type and helpers:
//
//   - [Field]: square 2D grid of float64 cells, row-major backing
//   - [Field.Region]: copy-out sub-grid extraction
//   - [Field.Stats]: mean and standard deviation in one call
//   - [ParallelFor]: worker-chunked data-parallel range helper
//
// # Topology
//
// A Field is semantically toroidal: the last row and column are adjacent to
// the first. The type itself stores flat data and leaves wrap arithmetic to
// the stencil and resampling code, which iterate over Data directly.
//
// # Ownership
//
// Construction stages never share a live grid: each stage produces a fresh
// Field and hands it to the next. Code holding a Field it did not create
// must treat it as read-only or Clone it first.
package field
