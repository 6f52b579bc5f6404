// Package viz renders the galaxy in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the viewer; tweak panel, orbit camera and status sidebar
//   - [Canvas]: Braille dot canvas with per-cell additive color
//   - [DrawScene]: projects every scene object onto a canvas
//   - [DrawGuide]: draws the galactic plane axes under the particles
//
// # Key Bindings
//
//	j/k, ↑/↓  - Select control (leaving an edited control commits it)
//	h/l, ←/→  - Nudge the selected value (H/L: ten steps)
//	Enter     - Commit the pending edit, or type a value
//	R         - Regenerate with the current parameters
//	W/A/S/D   - Orbit the camera
//	+/-       - Zoom
//	P         - Toggle the radial profile chart
//	T         - Cycle color themes
//	G         - Toggle the ground axes guide
//	?         - Show help overlay
//	Q         - Quit
package viz
