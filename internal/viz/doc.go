// Package viz renders finished simulation runs in the terminal.
//
// Everything here consumes immutable engine results:
//
//   - [Canvas]: braille dot canvas with a world-coordinate [Viewport]
//   - [Scene]: per-frame drawing of a run ([WalkerScene], [SpringScene])
//   - [Player]: frame cursor with pause, restart and looping
//   - [Model]: Bubble Tea program animating a scene next to live charts
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart from the first frame
//	[ ]   - Step back/forward
//	T     - Cycle color themes
//	?     - Toggle help
//	Q     - Quit
package viz
