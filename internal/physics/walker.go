package physics

import "github.com/san-kum/ctrlsim/internal/dynamo"

// Walker moves with whatever velocity it is commanded: dx/dt = u.
// There is no mass and no force; the controller output is the speed.
type Walker struct{}

func NewWalker() *Walker {
	return &Walker{}
}

func (w *Walker) StateDim() int   { return 1 }
func (w *Walker) ControlDim() int { return 1 }

func (w *Walker) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	v := 0.0
	if len(u) > 0 {
		v = u[0]
	}
	return dynamo.State{v}
}
