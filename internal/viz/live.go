package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/glcanvas/internal/demos"
	"github.com/san-kum/glcanvas/internal/session"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
)

type TickMsg time.Time

// Starter begins a fresh session of one demo.
type Starter func() (*session.Session, error)

// Model runs one demo in the terminal. Each tea tick is one frame; the
// frame timestamp is the running time since start, excluding pauses.
type Model struct {
	name     string
	start    Starter
	interval time.Duration

	sess    *session.Session
	elapsed float64
	last    time.Time

	canvas     *Canvas
	fpsHistory []float64
	popHistory []float64
	theme      Theme
	running    bool
	showHelp   bool
	err        error
}

// NewModel starts the demo right away so setup errors surface before
// the program takes over the terminal.
func NewModel(name string, start Starter, fps float64) (Model, error) {
	if fps <= 0 {
		fps = 60
	}
	m := Model{
		name:     name,
		start:    start,
		interval: time.Duration(float64(time.Second) / fps),
		canvas:   NewCanvas(width, height),
		theme:    Themes[0],
		running:  true,
	}
	if err := m.restart(); err != nil {
		return Model{}, err
	}
	return m, nil
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
		case "q", "ctrl+c":
			m.sess.Stop()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if err := m.restart(); err != nil {
				m.err = err
			}
		case "t":
			m.theme = NextTheme(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		m.step(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) restart() error {
	sess, err := m.start()
	if err != nil {
		return err
	}
	m.sess = sess
	m.elapsed = 0
	m.last = time.Time{}
	m.fpsHistory = m.fpsHistory[:0]
	m.popHistory = m.popHistory[:0]
	m.err = nil
	m.canvas.FromImage(sess.Document().Snapshot())
	return nil
}

// step advances the demo by the wall time since the previous tick.
// Paused time is skipped so the animation resumes where it stopped.
func (m *Model) step(now time.Time) {
	if !m.last.IsZero() && m.running {
		m.elapsed += float64(now.Sub(m.last).Microseconds()) / 1000
	}
	m.last = now

	if !m.running || m.sess.Done() || m.err != nil {
		return
	}

	if _, err := m.sess.Tick(m.elapsed); err != nil {
		m.err = err
		return
	}

	if smp, ok := m.sess.Latest(); ok {
		if smp.FPSValid {
			m.fpsHistory = appendCapped(m.fpsHistory, smp.FPS)
		}
		m.popHistory = appendCapped(m.popHistory, float64(smp.Population))
	}
	m.canvas.FromImage(m.sess.Document().Snapshot())
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func rateText(fps float64, ok bool) string {
	if !ok {
		return "--"
	}
	return fmt.Sprintf("%.0f", fps)
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return "FAILED"
	case m.sess.Done():
		return "DONE"
	case !m.running:
		return "PAUSED"
	}
	return "RUNNING"
}

func (m Model) View() string {
	ink, header, graph := themed(m.theme)
	canvasView := canvasStyle.Render(ink.Render(m.canvas.String()))

	var s strings.Builder
	s.WriteString(header.Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(statusStyle(m.theme, m.running && m.err == nil).Render(m.status()) + "\n\n")

	if len(m.fpsHistory) > 1 {
		chart := asciigraph.Plot(m.fpsHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("FPS"))
		s.WriteString(graph.Render(chart) + "\n\n")
	}

	smp, _ := m.sess.Latest()
	s.WriteString(labelStyle.Render("Frames") + valueStyle.Render(fmt.Sprintf("%d", len(m.sess.Samples()))) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.elapsed/1000)) + "\n")
	s.WriteString(labelStyle.Render("FPS") + valueStyle.Render(rateText(smp.FPS, smp.FPSValid)) + "\n")

	if _, ok := m.sess.Demo().(demos.Populated); ok {
		s.WriteString(labelStyle.Render("Population") + valueStyle.Render(fmt.Sprintf("%d", smp.Population)) + "\n")
		if src, ok := m.sess.Demo().(demos.SwarmSource); ok && src.Swarm() != nil && src.Swarm().Cap() > 0 {
			fill := float64(smp.Population) / float64(src.Swarm().Cap())
			s.WriteString(labelStyle.Render("Cap") + ProgressBar(m.theme, fill, 20) + "\n")
		}
		s.WriteString(labelStyle.Render("") + Sparkline(m.popHistory, 20) + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Restart Q:Quit\nT:Theme  ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Restart the demo         ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
