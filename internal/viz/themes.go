package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the live view.
type Theme struct {
	Name   string
	Ink    lipgloss.Color // braille dots
	Accent lipgloss.Color // headers and the fps chart
	Muted  lipgloss.Color
	Good   lipgloss.Color
	Warn   lipgloss.Color
	Bad    lipgloss.Color
}

var (
	ThemePhosphor = Theme{
		Name:   "phosphor",
		Ink:    lipgloss.Color("#00ff00"),
		Accent: lipgloss.Color("#88ff88"),
		Muted:  lipgloss.Color("#005500"),
		Good:   lipgloss.Color("#88ff88"),
		Warn:   lipgloss.Color("#ffff00"),
		Bad:    lipgloss.Color("#ff0000"),
	}

	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Ink:    lipgloss.Color("#00ffff"),
		Accent: lipgloss.Color("#ff00ff"),
		Muted:  lipgloss.Color("#666666"),
		Good:   lipgloss.Color("#00ff00"),
		Warn:   lipgloss.Color("#ff8800"),
		Bad:    lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Ink:    lipgloss.Color("#ffffff"),
		Accent: lipgloss.Color("#0088ff"),
		Muted:  lipgloss.Color("#888888"),
		Good:   lipgloss.Color("#00ff00"),
		Warn:   lipgloss.Color("#ffaa00"),
		Bad:    lipgloss.Color("#ff0000"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Ink:    lipgloss.Color("#feca57"),
		Accent: lipgloss.Color("#ff6b6b"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Good:   lipgloss.Color("#5fd068"),
		Warn:   lipgloss.Color("#ffc048"),
		Bad:    lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{
		ThemePhosphor,
		ThemeCyberpunk,
		ThemeMinimal,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, or the first theme if none matches.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
