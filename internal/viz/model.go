package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	canvasWidth  = 60
	canvasHeight = 16
	chartWidth   = 40
	chartHeight  = 5
	minInterval  = time.Second / 60
	scrubFrames  = 10
)

type TickMsg time.Time

type Options struct {
	Theme string
	Loop  bool
}

// Model plays a scene back in real time next to charts that grow with
// the cursor.
type Model struct {
	scene    Scene
	player   *Player
	canvas   *Canvas
	theme    Theme
	styles   Styles
	interval time.Duration
	stride   int
	showHelp bool
}

func NewModel(scene Scene, opts Options) Model {
	theme := GetTheme(opts.Theme)
	interval, stride := pacing(scene)
	return Model{
		scene:    scene,
		player:   NewPlayer(scene.Frames(), opts.Loop),
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		theme:    theme,
		styles:   NewStyles(theme),
		interval: interval,
		stride:   stride,
	}
}

// pacing picks a tick interval no faster than 60 Hz and the number of
// frames each tick advances so playback follows simulated time.
func pacing(scene Scene) (time.Duration, int) {
	if scene.Frames() < 2 {
		return minInterval, 1
	}
	dt := scene.Time(1) - scene.Time(0)
	if !(dt > 0) {
		return minInterval, 1
	}
	// sub-nanosecond steps still advance at least one frame per nanosecond
	frameTime := max(time.Duration(dt*float64(time.Second)), time.Nanosecond)
	if frameTime >= minInterval {
		return frameTime, 1
	}
	stride := int(math.Ceil(float64(minInterval) / float64(frameTime)))
	return time.Duration(stride) * frameTime, stride
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.player.Toggle()
		case "r":
			m.player.Restart()
		case "[":
			m.player.Seek(-scrubFrames * m.stride)
		case "]":
			m.player.Seek(scrubFrames * m.stride)
		case "t":
			m.cycleTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		m.player.Advance(m.stride)
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) cycleTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == m.theme.Name {
			m.theme = GetTheme(names[(i+1)%len(names)])
			m.styles = NewStyles(m.theme)
			return
		}
	}
}

// Index is the frame currently shown.
func (m Model) Index() int {
	return m.player.Index()
}

func (m Model) View() string {
	i := m.player.Index()
	st := m.styles

	m.canvas.Clear()
	m.scene.Draw(m.canvas, i)
	canvasView := st.Canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(st.Header.Render(strings.ToUpper(m.scene.Title())) + "\n")
	switch {
	case m.player.Paused():
		s.WriteString(st.Paused.Render("PAUSED") + "\n\n")
	case m.player.Done():
		s.WriteString(st.Paused.Render("FINISHED") + "\n\n")
	default:
		s.WriteString(st.Running.Render("PLAYING") + "\n\n")
	}
	for _, stat := range m.scene.Stats(i) {
		s.WriteString(st.Row(stat.Label, stat.Value))
	}
	s.WriteString(st.Row("Frame", fmt.Sprintf("%d/%d", i+1, m.player.Frames())))
	s.WriteString(st.ProgressBar(m.player.Progress(), 24) + "\n")
	if m.showHelp {
		s.WriteString(st.Help.Render("SP:Pause R:Restart Q:Quit\n[ ]:Step T:Theme ?:Help"))
	} else {
		s.WriteString(st.Help.Render("?:Help Q:Quit"))
	}
	statsView := st.Panel.Render(s.String())

	var charts []string
	for _, series := range m.scene.Series() {
		if c := Chart(series, i, chartWidth, chartHeight); c != "" {
			charts = append(charts, st.Graph.Render(c))
		}
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if len(charts) == 0 {
		return top
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, lipgloss.JoinHorizontal(lipgloss.Top, charts...))
}

// Run plays scene in the terminal until the user quits.
func Run(scene Scene, opts Options) error {
	_, err := tea.NewProgram(NewModel(scene, opts), tea.WithAltScreen()).Run()
	return err
}
