package viz

import (
	"fmt"
	"math"

	"github.com/san-kum/ctrlsim/internal/stepresp"
)

// Layout of the wall/spring/damper/mass diagram in world metres.
const (
	restLength   = 0.8
	travel       = 0.6
	massWidth    = 0.3
	massHeight   = 0.25
	massBase     = 0.4
	springY      = 0.6
	springAmp    = 0.12
	springCoils  = 6
	springPoints = 80
	damperY      = 0.25
	cylinderEnd  = 0.55
)

// SpringScene animates a step response: a mass tethered to a wall by a
// spring and a damper, pushed by a constant force. Displacements are
// rescaled so the largest one spans a fixed travel on screen.
type SpringScene struct {
	res   *stepresp.Result
	scale float64
}

func NewSpringScene(res *stepresp.Result) *SpringScene {
	scale := 1.0
	if m := res.Displacement.AbsMax(); m > 0 {
		scale = travel / m
	}
	return &SpringScene{res: res, scale: scale}
}

func (s *SpringScene) Title() string      { return "mass-spring-damper" }
func (s *SpringScene) Frames() int        { return s.res.Frames() }
func (s *SpringScene) Time(i int) float64 { return s.res.Displacement.Time(i) }

func (s *SpringScene) Viewport() Viewport {
	return Viewport{XMin: -0.5, XMax: 2.5, YMin: -0.3, YMax: 1.2}
}

// MassX is the on-screen left edge of the mass at frame i.
func (s *SpringScene) MassX(i int) float64 {
	return restLength + s.res.Displacement.Value(i)*s.scale
}

func (s *SpringScene) Draw(c *Canvas, i int) {
	c.SetViewport(s.Viewport())
	v := s.Viewport()

	c.Line(v.XMin, 0, v.XMax, 0)
	c.Rect(-0.15, 0.1, 0.15, 0.9)

	mx := s.MassX(i)

	// spring coil from the wall to the mass
	xs := make([]float64, springPoints)
	ys := make([]float64, springPoints)
	for k := range xs {
		f := float64(k) / float64(springPoints-1)
		xs[k] = f * mx
		ys[k] = springY + springAmp*math.Sin(f*springCoils*2*math.Pi)
	}
	c.Polyline(xs, ys)

	// damper: fixed cylinder, piston rod on the mass
	c.Line(0, damperY, 0.1, damperY)
	c.Rect(0.1, damperY-0.08, cylinderEnd-0.1, 0.16)
	piston := math.Max(0.15, math.Min(mx-0.25, cylinderEnd-0.02))
	c.Line(piston, damperY-0.06, piston, damperY+0.06)
	c.Line(piston, damperY, mx, damperY)
	c.Line(mx, damperY, mx, massBase)

	c.Rect(mx, massBase, massWidth, massHeight)

	// applied force
	fy := massBase + massHeight/2
	tip := mx + massWidth + 0.35
	c.Line(mx+massWidth+0.05, fy, tip, fy)
	c.Line(tip, fy, tip-0.08, fy+0.06)
	c.Line(tip, fy, tip-0.08, fy-0.06)
}

func (s *SpringScene) Stats(i int) []Stat {
	f := s.res.Frame(i)
	stats := []Stat{
		{"Time", fmt.Sprintf("%.2fs", f.Time)},
		{"x(t)", fmt.Sprintf("%.5fm", f.Displacement)},
		{"v(t)", fmt.Sprintf("%.5fm/s", f.Velocity)},
		{"Params", fmt.Sprintf("m=%g b=%g k=%g", s.res.Config.Mass, s.res.Config.Damping, s.res.Config.Stiffness)},
		{"Method", string(s.res.Config.Method)},
	}
	if m := s.res.Modal; m.Defined {
		stats = append(stats,
			Stat{"wn", fmt.Sprintf("%.3f rad/s", m.NaturalFreq)},
			Stat{"zeta", fmt.Sprintf("%.3f", m.DampingRatio)},
		)
		if m.Class == stepresp.Underdamped {
			stats = append(stats, Stat{"wd", fmt.Sprintf("%.3f rad/s", m.DampedFreq)})
		}
	}
	stats = append(stats, Stat{"Class", s.res.Modal.Class.String()})
	if ss, ok := s.res.SteadyState(); ok {
		stats = append(stats, Stat{"Final", fmt.Sprintf("%.5fm", ss)})
	}
	return stats
}

func (s *SpringScene) Series() []Series {
	series := Series{Name: "displacement x(t) (m)", Values: s.res.Displacement.Values()}
	if ss, ok := s.res.SteadyState(); ok {
		series.Reference = constant(ss, s.res.Frames())
	}
	return []Series{series}
}
