// Package viz provides terminal-based visualization for ray tracing runs.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live single-ray view with trajectory, horizon disc, and
//     conserved-quantity diagnostics
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//
// # Key Bindings
//
//	Space - Pause/Resume tracing
//	R     - Restart the ray from its initial conditions
//	+/-   - Change integration steps per frame
//	?     - Show help overlay
package viz
