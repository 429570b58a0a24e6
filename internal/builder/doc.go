// Package builder drives the multiscale construction: a seed grid of
// digit noise is alternately evolved, enlarged, and re-seeded with
// fresh detail until it reaches the final scale.
//
// The cycle per scale transition is:
//
//	evolve ×K   relax the grid under the update law, renormalizing
//	            after every step
//	grow        enlarge to the next side length with the configured
//	            resampler
//	detail      inject a fresh noise block, scaled by 1/log₂(side),
//	            so finer scales receive geometrically fainter noise
//
// The fading detail injection is what makes the final texture
// self-similar: every octave receives the same construction, at an
// amplitude tied to its scale.
//
// A [Schedule] fixes the side lengths visited. Schedules are validated
// before any digit is consumed, and any stage failure aborts the whole
// build; partial grids never escape.
package builder
