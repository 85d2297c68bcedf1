// Package physics provides the plant models driven by the engines.
//
// Each model implements the [dynamo.System] interface:
//
//   - [Walker]: first-order kinematic plant, the control input is the velocity
//   - [MassSpringDamper]: linear second-order plant m*x'' + b*x' + k*x = F
//
// [MassSpringDamper] also implements [dynamo.Hamiltonian] and
// [dynamo.Configurable].
package physics
