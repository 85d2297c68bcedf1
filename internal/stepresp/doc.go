// Package stepresp computes the unit-step response of a mass-spring-damper,
// the transfer function X(s)/F(s) = 1/(m*s^2 + b*s + k), starting from rest.
//
// Three methods produce the same response to numerical tolerance:
//
//   - [ZOH]: exact zero-order-hold discretisation through the matrix
//     exponential of the state-space model; works for any stiffness
//   - [Spring]: closed-form damped-spring stepping; needs k > 0
//   - [RK4]: fourth-order Runge-Kutta integration of the plant
//
// Modal properties (natural frequency, damping ratio, damped frequency and
// the damping class) are reported alongside the response but never steer
// the numerics.
package stepresp
