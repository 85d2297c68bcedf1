package integrators

import "github.com/san-kum/ctrlsim/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta method. The stage buffers
// are reused between steps, so one RK4 must not be shared across goroutines.
type RK4 struct {
	k      [4]dynamo.State
	probe  dynamo.State
	stateN int
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) resize(n int) {
	if r.stateN == n {
		return
	}
	for i := range r.k {
		r.k[i] = make(dynamo.State, n)
	}
	r.probe = make(dynamo.State, n)
	r.stateN = n
}

// stage evaluates f at x + h*slope and stores it in dst.
func (r *RK4) stage(dst dynamo.State, dyn dynamo.System, x, slope dynamo.State, u dynamo.Control, t, h float64) {
	for i := range x {
		r.probe[i] = x[i] + h*slope[i]
	}
	copy(dst, dyn.Derive(r.probe, u, t))
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	r.resize(len(x))
	half := 0.5 * dt

	copy(r.k[0], dyn.Derive(x, u, t))
	r.stage(r.k[1], dyn, x, r.k[0], u, t+half, half)
	r.stage(r.k[2], dyn, x, r.k[1], u, t+half, half)
	r.stage(r.k[3], dyn, x, r.k[2], u, t+dt, dt)

	next := make(dynamo.State, len(x))
	w := dt / 6.0
	for i := range x {
		next[i] = x[i] + w*(r.k[0][i]+2*r.k[1][i]+2*r.k[2][i]+r.k[3][i])
	}
	return next
}
