package stepresp

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/ctrlsim/internal/analysis"
	"github.com/san-kum/ctrlsim/internal/dynamo"
	"github.com/san-kum/ctrlsim/internal/integrators"
	"github.com/san-kum/ctrlsim/internal/physics"
)

// Frame is the recorded state of one sample.
type Frame struct {
	Index        int
	Time         float64
	Displacement float64
	Velocity     float64
}

type Result struct {
	Config       Config
	Modal        Modal
	Displacement dynamo.Trajectory
	Velocity     dynamo.Trajectory
	Info         analysis.StepInfo
}

func (r *Result) Frames() int {
	return r.Displacement.Len()
}

// Frame panics unless 0 <= i < Frames().
func (r *Result) Frame(i int) Frame {
	t, x := r.Displacement.At(i)
	return Frame{Index: i, Time: t, Displacement: x, Velocity: r.Velocity.Value(i)}
}

func (r *Result) Times() []float64 {
	return r.Displacement.Times()
}

// SteadyState is 1/k, the final value of the step response of a stable
// system. ok is false when the system has no finite resting point.
func (r *Result) SteadyState() (value float64, ok bool) {
	if r.Config.Stiffness <= 0 || r.Config.Damping <= 0 {
		return 0, false
	}
	return 1 / r.Config.Stiffness, true
}

type responder func(p Params, times []float64, h float64) (disp, vel []float64)

var responders = map[Method]responder{
	ZOH:    zohResponse,
	Spring: springResponse,
	RK4:    rk4Response,
}

// Run computes the unit-step response. Invalid configurations are rejected
// before any sample is produced.
func Run(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Method, _ = ParseMethod(string(cfg.Method))

	times := make([]float64, cfg.Samples)
	if cfg.Samples > 1 {
		floats.Span(times, 0, cfg.Span)
	}

	disp, vel := responders[cfg.Method](cfg.Params, times, cfg.Step())
	for i := range disp {
		if !(dynamo.State{disp[i], vel[i]}).IsValid() {
			return nil, dynamo.SimError{Time: times[i], Step: i, Message: "invalid state (NaN/Inf)"}
		}
	}

	res := &Result{
		Config:       cfg,
		Modal:        ModalOf(cfg.Params),
		Displacement: dynamo.NewTrajectory("displacement", times, disp),
		Velocity:     dynamo.NewTrajectory("velocity", times, vel),
	}

	final := math.NaN()
	if v, ok := res.SteadyState(); ok {
		final = v
	}
	res.Info = analysis.StepResponseInfo(times, disp, final)

	return res, nil
}

// zohResponse propagates x[n+1] = Ad*x[n] + Bd with the exact discretisation
// exp([[A, B], [0, 0]]*h) = [[Ad, Bd], [0, 1]].
func zohResponse(p Params, times []float64, h float64) ([]float64, []float64) {
	n := len(times)
	disp := make([]float64, n)
	vel := make([]float64, n)
	if n < 2 {
		return disp, vel
	}

	aug := mat.NewDense(3, 3, []float64{
		0, 1, 0,
		-p.Stiffness / p.Mass, -p.Damping / p.Mass, 1 / p.Mass,
		0, 0, 0,
	})
	aug.Scale(h, aug)

	var phi mat.Dense
	phi.Exp(aug)

	ad := phi.Slice(0, 2, 0, 2)
	bd := mat.NewVecDense(2, []float64{phi.At(0, 2), phi.At(1, 2)})

	cur := mat.NewVecDense(2, nil)
	next := mat.NewVecDense(2, nil)
	for i := 1; i < n; i++ {
		next.MulVec(ad, cur)
		next.AddVec(next, bd)
		cur, next = next, cur
		disp[i], vel[i] = cur.AtVec(0), cur.AtVec(1)
	}
	return disp, vel
}

// springResponse relaxes a damped spring toward the static deflection 1/k.
func springResponse(p Params, times []float64, h float64) ([]float64, []float64) {
	n := len(times)
	disp := make([]float64, n)
	vel := make([]float64, n)

	modal := ModalOf(p)
	spring := harmonica.NewSpring(h, modal.NaturalFreq, modal.DampingRatio)
	rest := 1 / p.Stiffness

	pos, v := 0.0, 0.0
	for i := 1; i < n; i++ {
		pos, v = spring.Update(pos, v, rest)
		disp[i], vel[i] = pos, v
	}
	return disp, vel
}

// rk4StepScale bounds h*rate for the inner RK4 steps.
const rk4StepScale = 0.05

func rk4Response(p Params, times []float64, h float64) ([]float64, []float64) {
	n := len(times)
	disp := make([]float64, n)
	vel := make([]float64, n)
	if n < 2 {
		return disp, vel
	}

	rate := math.Max(1, math.Max(math.Sqrt(math.Abs(p.Stiffness)/p.Mass), math.Abs(p.Damping)/p.Mass))
	sub := int(math.Ceil(h * rate / rk4StepScale))
	dt := h / float64(sub)

	plant := physics.NewMassSpringDamper(p.Mass, p.Damping, p.Stiffness)
	integ := integrators.NewRK4()
	force := dynamo.Control{1}

	x := dynamo.State{0, 0}
	for i := 1; i < n; i++ {
		t := times[i-1]
		for s := 0; s < sub; s++ {
			x = integ.Step(plant, x, force, t, dt)
			t += dt
		}
		disp[i], vel[i] = x[0], x[1]
	}
	return disp, vel
}
