// Package analysis provides fractal measurement tools for grids.
//
// The package measures how thoroughly a set fills the plane:
//
//   - [BoxCount]: box-counting dimension of the above-mean set
//   - [Quadrant]: top-left quarter extraction for self-similarity checks
//   - [FitLine]: least-squares line fit used for the log-log regression
//
// # Reading an Estimate
//
// A filled region measures close to 2, a thin curve close to 1, and
// self-similar texture lands between:
//
//	est := analysis.BoxCount(grid)
//	if est.Valid && est.Dimension > 1.5 {
//	    // Structure is plane-filling rather than curve-like
//	}
//
// Estimates degrade explicitly rather than silently: a structureless
// grid or too few usable scales yields Valid=false, never a fabricated
// number.
package analysis
