package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/ctrlsim/internal/dynamo"
)

// ControlEffort is the mean L1 norm of the controller output per sample.
type ControlEffort struct {
	total float64
	n     int
}

func NewControlEffort() *ControlEffort { return &ControlEffort{} }

func (e *ControlEffort) Name() string { return "control_effort" }

func (e *ControlEffort) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if len(u) > 0 {
		e.total += floats.Norm(u, 1)
	}
	e.n++
}

func (e *ControlEffort) Value() float64 {
	if e.n == 0 {
		return 0
	}
	return e.total / float64(e.n)
}

func (e *ControlEffort) Reset() { e.total, e.n = 0, 0 }
