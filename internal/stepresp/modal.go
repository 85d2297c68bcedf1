package stepresp

import (
	"fmt"
	"math"

	"github.com/san-kum/ctrlsim/internal/dynamo"
)

// CriticalTolerance is how close zeta must be to 1 to count as critical.
const CriticalTolerance = 1e-6

type Class int

const (
	Undefined Class = iota
	Underdamped
	CriticallyDamped
	Overdamped
)

func (c Class) String() string {
	switch c {
	case Underdamped:
		return "underdamped"
	case CriticallyDamped:
		return "critically damped"
	case Overdamped:
		return "overdamped"
	default:
		return "undefined"
	}
}

// Modal holds the derived frequencies of a second-order system. When
// m*k <= 0 the damping ratio has no meaning and Defined is false; the
// numeric fields are then zero rather than NaN.
type Modal struct {
	NaturalFreq  float64
	DampingRatio float64
	DampedFreq   float64
	Class        Class
	Defined      bool
}

func ModalOf(p Params) Modal {
	mk := p.Mass * p.Stiffness
	if p.Mass <= 0 || mk <= 0 {
		return Modal{Class: Undefined}
	}

	wn := math.Sqrt(p.Stiffness / p.Mass)
	zeta := p.Damping / (2 * math.Sqrt(mk))
	m := Modal{
		NaturalFreq:  wn,
		DampingRatio: zeta,
		Defined:      true,
	}

	switch {
	case math.Abs(zeta-1) < CriticalTolerance:
		m.Class = CriticallyDamped
	case zeta < 1:
		m.Class = Underdamped
		if r := 1 - zeta*zeta; r > 0 {
			m.DampedFreq = wn * math.Sqrt(r)
		}
	default:
		m.Class = Overdamped
	}
	return m
}

// Err reports ErrNumericDegeneracy for undefined modal properties.
func (m Modal) Err() error {
	if m.Defined {
		return nil
	}
	return fmt.Errorf("%w: damping ratio needs m*k > 0", dynamo.ErrNumericDegeneracy)
}

func (m Modal) String() string {
	if !m.Defined {
		return "modal properties undefined (m*k <= 0)"
	}
	s := fmt.Sprintf("wn=%.3f rad/s zeta=%.3f %s", m.NaturalFreq, m.DampingRatio, m.Class)
	if m.Class == Underdamped {
		s += fmt.Sprintf(" wd=%.3f rad/s", m.DampedFreq)
	}
	return s
}
