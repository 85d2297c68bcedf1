package viz

// Scene draws one frame of a finished run.
type Scene interface {
	Title() string
	Frames() int
	Time(i int) float64
	Viewport() Viewport
	Draw(c *Canvas, i int)
	Stats(i int) []Stat
	Series() []Series
}

type Stat struct {
	Label string
	Value string
}

// Series is one chartable column of a run. Reference, when set, is drawn
// as a second line.
type Series struct {
	Name      string
	Values    []float64
	Reference []float64
}

func constant(v float64, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}
