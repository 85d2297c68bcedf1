// Package integrators provides fixed-step solvers implementing
// [dynamo.Integrator]. The control input is held constant across a step
// (zero-order hold), matching how the engines sample their controllers.
package integrators
