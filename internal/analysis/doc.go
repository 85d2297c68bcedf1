// Package analysis derives summary characteristics from recorded step
// responses:
//
//   - [StepResponseInfo]: rise time, peak, overshoot and settling time
//   - [PhasePortrait]: character plot of a velocity/position trajectory
//
// # Conventions
//
// Rise time is measured from 10% to 90% of the steady-state value and
// settling time uses a 2% band, the textbook definitions for second-order
// systems:
//
//	info := analysis.StepResponseInfo(times, y, 1/k)
//	if info.Settled {
//	    fmt.Printf("settles after %.2fs\n", info.SettlingTime)
//	}
package analysis
