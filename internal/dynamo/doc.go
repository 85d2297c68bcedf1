// Package dynamo provides the core primitives shared by the simulation engines.
//
// The package defines the fundamental types for discrete-time simulation of
// scalar control loops and linear second-order systems:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: numerical integrator interface
//   - [Controller]: feedback controller interface
//   - [Clock]: fixed time step and duration of a run
//   - [Trajectory]: immutable sampled signal produced by a run
//
// # Example
//
//	clk := dynamo.Clock{Dt: 0.05, Duration: 40}
//	if err := clk.Validate(); err != nil {
//	    return err
//	}
//	times := clk.Times()
//
// # Thread Safety
//
// Trajectories are never modified after construction and may be shared
// freely between goroutines. Controllers and integrators carry per-run
// scratch state and must not be shared between concurrent runs.
package dynamo
