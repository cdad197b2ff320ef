// Package viz renders a running world in the terminal.
//
// [Model] is a Bubble Tea program that advances a [sim.World] a few ticks
// per frame and draws every body on a braille [Canvas], with a side panel
// of per-body state and an energy chart.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Rebuild the world from its scenario
//	+/-   - More or fewer ticks per frame
//	T     - Toggle trails
//	Q     - Quit
package viz
