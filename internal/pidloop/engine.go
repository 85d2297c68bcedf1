package pidloop

import (
	"github.com/san-kum/ctrlsim/internal/control"
	"github.com/san-kum/ctrlsim/internal/dynamo"
	"github.com/san-kum/ctrlsim/internal/integrators"
	"github.com/san-kum/ctrlsim/internal/metrics"
	"github.com/san-kum/ctrlsim/internal/physics"
)

// Frame is the recorded state of one sample.
type Frame struct {
	Index    int
	Time     float64
	Position float64
	Velocity float64
	Error    float64
}

type Result struct {
	Config   Config
	Frames   int
	Position dynamo.Trajectory
	Velocity dynamo.Trajectory
	Error    dynamo.Trajectory
	Metrics  map[string]float64
}

// Frame panics unless 0 <= i < Frames.
func (r *Result) Frame(i int) Frame {
	t, x := r.Position.At(i)
	return Frame{
		Index:    i,
		Time:     t,
		Position: x,
		Velocity: r.Velocity.Value(i),
		Error:    r.Error.Value(i),
	}
}

func (r *Result) Times() []float64 {
	return r.Position.Times()
}

// Run simulates the loop. Invalid configurations are rejected before any
// sample is produced; a diverging run returns a dynamo.SimError.
func Run(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := cfg.Clock.Frames()
	dt := cfg.Clock.Dt
	times := cfg.Clock.Times()
	position := make([]float64, n)
	velocity := make([]float64, n)
	tracking := make([]float64, n)

	plant := physics.NewWalker()
	integ := integrators.NewEuler()
	pid := control.NewPID(cfg.Gains, cfg.Target, dt)
	pid.IntegralLimit = cfg.IntegralLimit
	if cfg.Seed == SeedInitialError {
		pid.Seed(cfg.Target - cfg.Start)
	}

	observers := []dynamo.Metric{
		metrics.NewControlEffort(),
		metrics.NewIAE(cfg.Target, dt),
		metrics.NewStability(cfg.Target, cfg.band()),
	}

	x := dynamo.State{cfg.Start}
	for i := 0; i < n; i++ {
		t := times[i]
		position[i] = x[0]
		tracking[i] = cfg.Target - x[0]

		u := pid.Compute(x, t)
		velocity[i] = u[0]
		if !dynamo.State(u).IsValid() {
			return nil, dynamo.SimError{Time: t, Step: i, Message: "controller output is not finite"}
		}

		for _, m := range observers {
			m.Observe(x, u, t)
		}

		if i < n-1 {
			x = integ.Step(plant, x, u, t, dt)
			if !x.IsValid() {
				return nil, dynamo.SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"}
			}
		}
	}

	res := &Result{
		Config:   cfg,
		Frames:   n,
		Position: dynamo.NewTrajectory("position", times, position),
		Velocity: dynamo.NewTrajectory("velocity", times, velocity),
		Error:    dynamo.NewTrajectory("error", times, tracking),
		Metrics:  make(map[string]float64, len(observers)+1),
	}
	for _, m := range observers {
		res.Metrics[m.Name()] = m.Value()
	}
	res.Metrics["final_error"] = tracking[n-1]

	return res, nil
}
