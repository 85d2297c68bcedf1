package viz

import (
	"strings"

	"github.com/guptarohit/asciigraph"
)

// Chart plots the first upto+1 samples of s. Fewer than two samples
// render as an empty string.
func Chart(s Series, upto, width, height int) string {
	n := min(upto+1, len(s.Values))
	if n < 2 {
		return ""
	}
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(s.Name),
	}
	if len(s.Reference) >= n {
		return asciigraph.PlotMany([][]float64{s.Values[:n], s.Reference[:n]},
			append(opts, asciigraph.SeriesColors(asciigraph.Default, asciigraph.Green))...)
	}
	return asciigraph.Plot(s.Values[:n], opts...)
}

// Charts plots every series of a scene in full, one below the other.
func Charts(scene Scene, width, height int) string {
	var b strings.Builder
	last := scene.Frames() - 1
	for _, s := range scene.Series() {
		if c := Chart(s, last, width, height); c != "" {
			b.WriteString(c)
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// Snapshot renders frame i of a scene on a fresh canvas.
func Snapshot(scene Scene, i, width, height int) string {
	c := NewCanvas(width, height)
	scene.Draw(c, i)
	return c.String()
}
