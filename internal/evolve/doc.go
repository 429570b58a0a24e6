// Package evolve applies the local update law that turns raw digit noise
// into structured texture.
//
// One step of the law combines three terms per cell, all read from a
// frozen snapshot of the grid:
//
//   - diffusion: the discrete Laplacian of the four-neighborhood, scaled
//     by 1/π, which spreads value into neighbors
//   - restoring: −π·(v − tanh v), which pulls cells toward the bounded
//     attractors of tanh and keeps the field from blowing up
//   - growth: π²·(v − smoothed), which amplifies deviation from the local
//     average and keeps structure forming instead of washing out
//
// The grid is toroidal; offsets wrap at every edge. [Normalizer] rescales
// a grid to zero mean and unit variance between steps so the three terms
// keep operating at a fixed amplitude regardless of depth.
package evolve
