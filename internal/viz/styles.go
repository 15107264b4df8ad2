package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)
)

// themed returns the styles that follow the current theme.
func themed(t Theme) (ink, header, graph lipgloss.Style) {
	ink = lipgloss.NewStyle().Foreground(t.Ink)
	header = lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginBottom(1)
	graph = lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0)
	return ink, header, graph
}

func statusStyle(t Theme, running bool) lipgloss.Style {
	if running {
		return lipgloss.NewStyle().Bold(true).Foreground(t.Good)
	}
	return lipgloss.NewStyle().Bold(true).Foreground(t.Warn)
}

// ProgressBar renders fill level percent in [0,1]; the bar turns from
// good to bad as it fills.
func ProgressBar(t Theme, percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	c := t.Good
	if percent > 0.8 {
		c = t.Bad
	} else if percent > 0.4 {
		c = t.Warn
	}
	return lipgloss.NewStyle().Foreground(c).Render(bar)
}

// Sparkline renders the last width values as block characters.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	rng := max - min
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - min) * float64(len(chars)-1) / rng)
		b.WriteRune(chars[idx])
	}
	return b.String()
}
