package dynamo

import "math"

// Trajectory is one recorded signal of a run. It takes ownership of the
// slices handed to NewTrajectory and never writes to them again; accessors
// that return slices return copies.
type Trajectory struct {
	name   string
	times  []float64
	values []float64
}

// NewTrajectory panics if times and values differ in length.
func NewTrajectory(name string, times, values []float64) Trajectory {
	if len(times) != len(values) {
		panic("dynamo: trajectory times and values differ in length")
	}
	return Trajectory{name: name, times: times, values: values}
}

func (tr Trajectory) Name() string { return tr.name }
func (tr Trajectory) Len() int     { return len(tr.values) }

func (tr Trajectory) Time(i int) float64  { return tr.times[i] }
func (tr Trajectory) Value(i int) float64 { return tr.values[i] }

func (tr Trajectory) At(i int) (t, v float64) {
	return tr.times[i], tr.values[i]
}

func (tr Trajectory) Times() []float64 {
	return append([]float64(nil), tr.times...)
}

func (tr Trajectory) Values() []float64 {
	return append([]float64(nil), tr.values...)
}

// Head returns the values of frames [0, n].
func (tr Trajectory) Head(n int) []float64 {
	if n >= len(tr.values) {
		n = len(tr.values) - 1
	}
	if n < 0 {
		return nil
	}
	return append([]float64(nil), tr.values[:n+1]...)
}

func (tr Trajectory) Last() float64 {
	if len(tr.values) == 0 {
		return math.NaN()
	}
	return tr.values[len(tr.values)-1]
}

// Bounds returns the smallest and largest value, or (0, 0) when empty.
func (tr Trajectory) Bounds() (lo, hi float64) {
	if len(tr.values) == 0 {
		return 0, 0
	}
	lo, hi = tr.values[0], tr.values[0]
	for _, v := range tr.values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// AbsMax is the largest magnitude in the trajectory.
func (tr Trajectory) AbsMax() float64 {
	lo, hi := tr.Bounds()
	return math.Max(math.Abs(lo), math.Abs(hi))
}
