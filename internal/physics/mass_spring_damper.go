package physics

import (
	"fmt"

	"github.com/san-kum/ctrlsim/internal/dynamo"
)

const (
	DefaultMass      = 1.0
	DefaultDamping   = 5.0
	DefaultStiffness = 20.0
)

// MassSpringDamper is a single mass tied to a wall by a spring and a damper.
// State is [position, velocity]; the control input is the applied force.
type MassSpringDamper struct {
	Mass      float64
	Damping   float64
	Stiffness float64
}

func NewMassSpringDamper(m, b, k float64) *MassSpringDamper {
	return &MassSpringDamper{Mass: m, Damping: b, Stiffness: k}
}

func (s *MassSpringDamper) StateDim() int   { return 2 }
func (s *MassSpringDamper) ControlDim() int { return 1 }

func (s *MassSpringDamper) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	pos, vel := x[0], x[1]

	force := 0.0
	if len(u) > 0 {
		force = u[0]
	}

	acc := (force - s.Damping*vel - s.Stiffness*pos) / s.Mass
	return dynamo.State{vel, acc}
}

// Energy is kinetic plus spring potential energy.
func (s *MassSpringDamper) Energy(x dynamo.State) float64 {
	pos, vel := x[0], x[1]
	return 0.5*s.Mass*vel*vel + 0.5*s.Stiffness*pos*pos
}

func (s *MassSpringDamper) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":      s.Mass,
		"damping":   s.Damping,
		"stiffness": s.Stiffness,
	}
}

func (s *MassSpringDamper) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		if err := dynamo.Positive(name, value); err != nil {
			return err
		}
		s.Mass = value
	case "damping":
		s.Damping = value
	case "stiffness":
		s.Stiffness = value
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}
