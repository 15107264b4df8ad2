// Package viz shows demos in the terminal.
//
// A demo's page is rasterized as usual and its snapshot is downsampled
// into a braille [Canvas], two by four dots per character cell. [Model]
// runs one demo live, driven by the Bubble Tea tick; [Picker] lists the
// registered demos and launches the chosen one.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart the demo
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
