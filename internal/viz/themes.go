package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Sky        lipgloss.Color
	Ground     lipgloss.Color
	Path       lipgloss.Color
	Projectile lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
}

var (
	ThemeDay = Theme{
		Name:       "day",
		Sky:        lipgloss.Color("#87ceeb"),
		Ground:     lipgloss.Color("#2e7d32"),
		Path:       lipgloss.Color("#1565c0"),
		Projectile: lipgloss.Color("#d84315"),
		Text:       lipgloss.Color("#202020"),
		Muted:      lipgloss.Color("#607080"),
		Accent:     lipgloss.Color("#1565c0"),
		Success:    lipgloss.Color("#2e7d32"),
		Warning:    lipgloss.Color("#ef6c00"),
	}

	ThemeNight = Theme{
		Name:       "night",
		Sky:        lipgloss.Color("#0b1026"),
		Ground:     lipgloss.Color("#4caf50"),
		Path:       lipgloss.Color("#00e5ff"),
		Projectile: lipgloss.Color("#ffd54f"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#6677aa"),
		Accent:     lipgloss.Color("#00e5ff"),
		Success:    lipgloss.Color("#69f0ae"),
		Warning:    lipgloss.Color("#ffab40"),
	}

	Themes = []Theme{ThemeDay, ThemeNight}
)

// GetTheme returns a theme by name, falling back to day.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDay
}

// Next returns the theme after t in Themes, wrapping around.
func (t Theme) Next() Theme {
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
