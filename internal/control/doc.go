// Package control provides the feedback controller used by the PID loop.
//
// [PID] implements [dynamo.Controller] on a fixed sample period:
//
//	pid := control.NewPID(control.Gains{Kp: 0.1}, 50, 0.05)
//	pid.Seed(50) // error assumed one step before t=0
//	u := pid.Update(err)
//
// The integral term is unbounded unless IntegralLimit is set. [PID]
// implements [dynamo.Configurable] for live tuning.
package control
