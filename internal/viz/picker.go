package viz

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	dimmerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
)

type PickerItem struct {
	Name    string
	Summary string
}

// Launcher builds the live view for a demo.
type Launcher func(name string) (Model, error)

// Picker lists demos and runs the selected one. Esc in a running demo
// returns to the list.
type Picker struct {
	items  []PickerItem
	launch Launcher
	cursor int

	live    *Model
	lastErr error
}

func NewPicker(items []PickerItem, launch Launcher) Picker {
	return Picker{items: items, launch: launch}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.live != nil {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			p.live.sess.Stop()
			p.live = nil
			return p, nil
		}
		next, cmd := p.live.Update(msg)
		lm := next.(Model)
		p.live = &lm
		return p, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.items)-1 {
			p.cursor++
		}
	case "enter":
		if len(p.items) == 0 {
			return p, nil
		}
		m, err := p.launch(p.items[p.cursor].Name)
		if err != nil {
			p.lastErr = err
			return p, nil
		}
		p.lastErr = nil
		p.live = &m
		return p, m.Init()
	}
	return p, nil
}

// Selected returns the highlighted demo name.
func (p Picker) Selected() string {
	if len(p.items) == 0 {
		return ""
	}
	return p.items[p.cursor].Name
}

func (p Picker) View() string {
	if p.live != nil {
		return p.live.View()
	}

	var b []byte
	b = fmt.Appendf(b, "\n\n    %s\n    %s\n    %s\n\n",
		titleStyle.Render("GLCANVAS"),
		dimStyle.Render("canvas and webgl demos"),
		dimStyle.Render("─────────────────────────"))

	for i, it := range p.items {
		if i == p.cursor {
			b = fmt.Appendf(b, "    %s %s  %s\n", cursorStyle.Render("▸"), nameStyle.Render(fmt.Sprintf("%-20s", it.Name)), summaryStyle.Render(it.Summary))
		} else {
			b = fmt.Appendf(b, "    %s  %s\n", dimStyle.Render(fmt.Sprintf("  %-20s", it.Name)), dimmerStyle.Render(it.Summary))
		}
	}

	if p.lastErr != nil {
		b = fmt.Appendf(b, "\n    %s\n", errorStyle.Render(p.lastErr.Error()))
	}

	b = fmt.Appendf(b, "\n    %s%s%s%s%s%s\n",
		keyStyle.Render("j/k"), dimStyle.Render(" navigate  "),
		keyStyle.Render("enter"), dimStyle.Render(" run  "),
		keyStyle.Render("q"), dimStyle.Render(" quit"))
	return string(b)
}
