package viz

import (
	"fmt"
	"math"

	"github.com/san-kum/ctrlsim/internal/pidloop"
)

// Stick-figure proportions in metres.
const (
	hipHeight  = 1.5
	torsoLen   = 0.3
	headRadius = 0.15
	legLen     = 0.4
	stride     = 0.2
	armReach   = 0.25
	armLift    = 0.2
	gaitRate   = 4.0
)

// WalkerScene animates a PID walk: a stick figure crossing from the
// start marker toward the target marker.
type WalkerScene struct {
	res *pidloop.Result
}

func NewWalkerScene(res *pidloop.Result) *WalkerScene {
	return &WalkerScene{res: res}
}

func (s *WalkerScene) Title() string      { return "pid walk" }
func (s *WalkerScene) Frames() int        { return s.res.Frames }
func (s *WalkerScene) Time(i int) float64 { return s.res.Position.Time(i) }

func (s *WalkerScene) Viewport() Viewport {
	lo := math.Min(s.res.Config.Start, s.res.Config.Target)
	hi := math.Max(s.res.Config.Start, s.res.Config.Target)
	pmin, pmax := s.res.Position.Bounds()
	lo, hi = math.Min(lo, pmin), math.Max(hi, pmax)
	return Viewport{XMin: lo - 5, XMax: hi + 10, YMin: -1, YMax: 3}
}

func (s *WalkerScene) Draw(c *Canvas, i int) {
	c.SetViewport(s.Viewport())
	v := s.Viewport()
	ax := c.Aspect()

	c.Line(v.XMin, 0, v.XMax, 0)
	c.Rect(s.res.Config.Start-0.5, 0, 1, 0.2)
	c.Rect(s.res.Config.Target-0.5, 0, 1, 0.2)

	f := s.res.Frame(i)
	x := f.Position

	c.Circle(x, hipHeight+torsoLen, headRadius)
	c.Line(x, hipHeight, x, hipHeight+torsoLen)

	leg := math.Sin(f.Time*gaitRate) * 0.3
	c.Line(x, hipHeight, x-ax*stride*math.Cos(leg), hipHeight-legLen-0.1*math.Sin(leg))
	c.Line(x, hipHeight, x+ax*stride*math.Cos(leg), hipHeight-legLen+0.1*math.Sin(leg))

	arm := math.Sin(f.Time*gaitRate+math.Pi) * 0.4
	shoulder := hipHeight + torsoLen/2
	c.Line(x, shoulder, x-ax*armReach*math.Cos(arm), shoulder+armLift*math.Sin(arm))
	c.Line(x, shoulder, x+ax*armReach*math.Cos(arm), shoulder-armLift*math.Sin(arm))
}

func (s *WalkerScene) Stats(i int) []Stat {
	f := s.res.Frame(i)
	return []Stat{
		{"Time", fmt.Sprintf("%.2fs", f.Time)},
		{"Target", fmt.Sprintf("%.2fm", s.res.Config.Target)},
		{"Position", fmt.Sprintf("%.3fm", f.Position)},
		{"Velocity", fmt.Sprintf("%.3fm/s", f.Velocity)},
		{"Error", fmt.Sprintf("%.3fm", f.Error)},
		{"Gains", s.res.Config.Gains.String()},
	}
}

func (s *WalkerScene) Series() []Series {
	return []Series{
		{Name: "position (m)", Values: s.res.Position.Values(), Reference: constant(s.res.Config.Target, s.res.Frames)},
		{Name: "velocity (m/s)", Values: s.res.Velocity.Values()},
		{Name: "error (m)", Values: s.res.Error.Values()},
	}
}
