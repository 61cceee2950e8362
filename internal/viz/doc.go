// Package viz runs the rain in a terminal using Bubble Tea.
//
// Tea's tick messages are the frame primitive: every tick hands the elapsed
// time to the driver, which decides whether a frame is due. The terminal
// surface uses one character cell per rain column.
//
//   - [Model]: the live view with a navigation bar and status line
//   - [Picker]: preset menu that tunes a config before starting the view
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Rebuild the grid
//	T     - Cycle color themes
//	J/K   - Scroll the page (toggles the navigation bar)
//	S     - Toggle frame statistics
//	?     - Show help overlay
package viz
