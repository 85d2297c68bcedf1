package control

import (
	"fmt"
	"math"

	"github.com/san-kum/ctrlsim/internal/dynamo"
)

type Gains struct {
	Kp float64
	Ki float64
	Kd float64
}

// Zero reports whether the controller would produce no effort at all.
func (g Gains) Zero() bool {
	return g.Kp == 0 && g.Ki == 0 && g.Kd == 0
}

func (g Gains) Validate() error {
	return dynamo.Combine(
		dynamo.Finite("kp", g.Kp),
		dynamo.Finite("ki", g.Ki),
		dynamo.Finite("kd", g.Kd),
	)
}

func (g Gains) String() string {
	return fmt.Sprintf("Kp=%g Ki=%g Kd=%g", g.Kp, g.Ki, g.Kd)
}

// PID is a positional PID controller sampled every Dt seconds.
type PID struct {
	Gains
	Target float64
	Dt     float64

	// IntegralLimit clamps the integral accumulator to [-limit, limit].
	// Zero disables clamping.
	IntegralLimit float64

	integral float64
	prevErr  float64
}

func NewPID(g Gains, target, dt float64) *PID {
	return &PID{
		Gains:  g,
		Target: target,
		Dt:     dt,
	}
}

// Seed sets the error the derivative term differences against on the
// first update.
func (p *PID) Seed(prevErr float64) {
	p.prevErr = prevErr
}

// Update advances the controller by one period and returns its output.
func (p *PID) Update(err float64) float64 {
	proportional := p.Kp * err
	p.integral += err * p.Dt
	if p.IntegralLimit > 0 {
		p.integral = math.Max(-p.IntegralLimit, math.Min(p.IntegralLimit, p.integral))
	}
	derivative := p.Kd * (err - p.prevErr) / p.Dt
	p.prevErr = err

	return proportional + p.Ki*p.integral + derivative
}

func (p *PID) Compute(x dynamo.State, t float64) dynamo.Control {
	if len(x) == 0 {
		return dynamo.Control{0}
	}
	return dynamo.Control{p.Update(p.Target - x[0])}
}

func (p *PID) Integral() float64 {
	return p.integral
}

// Reset clears integral and derivative state
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
}

// GetParams returns tunable parameters for live adjustment
func (p *PID) GetParams() map[string]float64 {
	return map[string]float64{
		"Kp":     p.Kp,
		"Ki":     p.Ki,
		"Kd":     p.Kd,
		"Target": p.Target,
	}
}

// SetParam adjusts a PID parameter
func (p *PID) SetParam(name string, value float64) error {
	if err := dynamo.Finite(name, value); err != nil {
		return err
	}
	switch name {
	case "Kp":
		p.Kp = value
	case "Ki":
		p.Ki = value
	case "Kd":
		p.Kd = value
	case "Target":
		p.Target = value
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}
