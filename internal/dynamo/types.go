package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type Control []float64

type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(dyn System, x State, u Control, t float64, dt float64) State
}

type Controller interface {
	Compute(x State, t float64) Control
}

type Metric interface {
	Name() string
	Observe(x State, u Control, t float64)
	Value() float64
	Reset()
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Clock is the fixed time base of a run.
type Clock struct {
	Dt       float64
	Duration float64
}

// MaxFrames caps the samples a single run may allocate.
const MaxFrames = 10_000_000

func (c Clock) Validate() error {
	err := Combine(
		Positive("dt", c.Dt),
		Positive("duration", c.Duration),
	)
	if err != nil {
		return err
	}
	frames := math.Ceil(c.Duration / c.Dt)
	switch {
	case math.IsInf(frames, 0) || frames > MaxFrames:
		return &ConfigError{Field: "duration", Value: c.Duration, Reason: fmt.Sprintf("needs %g frames at dt=%g, limit is %d", frames, c.Dt, MaxFrames)}
	case frames < 1:
		return &ConfigError{Field: "duration", Value: c.Duration, Reason: "shorter than one frame"}
	}
	return nil
}

// Frames returns ceil(Duration/Dt), the number of samples in a run.
func (c Clock) Frames() int {
	return int(math.Ceil(c.Duration / c.Dt))
}

func (c Clock) Time(i int) float64 {
	return float64(i) * c.Dt
}

func (c Clock) Times() []float64 {
	n := c.Frames()
	times := make([]float64, n)
	for i := range times {
		times[i] = c.Time(i)
	}
	return times
}

// SimError reports a run that produced a non-finite state.
type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

func (e SimError) Unwrap() error {
	return ErrUnstable
}
