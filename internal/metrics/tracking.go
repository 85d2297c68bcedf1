package metrics

import (
	"math"

	"github.com/san-kum/ctrlsim/internal/dynamo"
)

// IAE is the integral of absolute tracking error, sum(|target - x0| * dt).
type IAE struct {
	target float64
	dt     float64
	sum    float64
}

func NewIAE(target, dt float64) *IAE {
	return &IAE{target: target, dt: dt}
}

func (m *IAE) Name() string { return "iae" }

func (m *IAE) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if len(x) == 0 {
		return
	}
	m.sum += math.Abs(m.target-x[0]) * m.dt
}

func (m *IAE) Value() float64 { return m.sum }
func (m *IAE) Reset()         { m.sum = 0 }

// Stability is the fraction of samples whose tracking error stays within
// the band |target - x0| <= threshold.
type Stability struct {
	name       string
	target     float64
	threshold  float64
	violations int
	samples    int
}

func NewStability(target, threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		target:    target,
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if len(x) == 0 {
		return
	}
	s.samples++
	if math.Abs(s.target-x[0]) > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
