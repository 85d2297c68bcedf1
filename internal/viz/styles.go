package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss renderers derived from one Theme.
type Styles struct {
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Running lipgloss.Style
	Paused  lipgloss.Style
	Help    lipgloss.Style
	Graph   lipgloss.Style
	Canvas  lipgloss.Style
	Panel   lipgloss.Style
	barHigh lipgloss.Style
	barMid  lipgloss.Style
	barLow  lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		Label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		Value:   lipgloss.NewStyle().Foreground(t.Text),
		Running: lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		Paused:  lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		Help:    lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		Graph:   lipgloss.NewStyle().Foreground(t.Accent),
		Canvas:  lipgloss.NewStyle().Padding(1, 2).Foreground(t.Text),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2),
		barHigh: lipgloss.NewStyle().Foreground(t.Success),
		barMid:  lipgloss.NewStyle().Foreground(t.Warning),
		barLow:  lipgloss.NewStyle().Foreground(t.Error),
	}
}

// ProgressBar renders fraction in [0, 1] as a bar of width cells.
func (s Styles) ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = max(0, min(filled, width))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case fraction > 0.8:
		return s.barHigh.Render(bar)
	case fraction > 0.4:
		return s.barMid.Render(bar)
	default:
		return s.barLow.Render(bar)
	}
}

// Row renders one label/value line of the stats panel.
func (s Styles) Row(label, value string) string {
	return s.Label.Render(label) + s.Value.Render(value) + "\n"
}
