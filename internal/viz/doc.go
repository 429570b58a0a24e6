// Package viz provides terminal-based visualization for constructed fields.
//
// The package renders scalar grids as text and implements a live build
// watcher using the Bubble Tea framework:
//
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - [Heatmap], [Dots]: static grid renderers for any terminal
//   - [ScalingPlot]: log-log box-counting plot with the fitted slope
//   - [Live]: streaming view of a build in progress, one frame per stage
//
// # Key Bindings
//
//	Q / Ctrl+C - Quit the live view
//
// The live view consumes [StageUpdate] values from a channel while the
// build runs in a separate goroutine; each update carries its own clone
// of the grid, detached from the builder's working copy.
package viz
