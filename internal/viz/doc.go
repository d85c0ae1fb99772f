// Package viz provides the terminal front end for projectile playback.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the live view driving a [playback.Controller]
//   - [TeaScheduler]: turns the controller's tick requests into tea.Tick commands
//   - [Canvas]: Braille-based pixel canvas for the flight scene
//   - Day and night themes
//
// # Key Bindings
//
//	S/Enter - Start a new run
//	Space   - Pause/Resume (starts a run when idle)
//	R       - Reset
//	Tab     - Select parameter, Up/Down to tune it
//	A       - Toggle air resistance
//	P       - Apply next preset
//	T       - Toggle day/night theme
//	?       - Show help overlay
//
// Parameter changes take effect on the next start.
package viz
