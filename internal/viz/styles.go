package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Canvas       lipgloss.Style
	Panel        lipgloss.Style
	Header       lipgloss.Style
	Label        lipgloss.Style
	Value        lipgloss.Style
	ActiveParam  lipgloss.Style
	Graph        lipgloss.Style
	Help         lipgloss.Style
	Status       lipgloss.Style
	StatusPaused lipgloss.Style
	StatusDone   lipgloss.Style
	Flash        lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Canvas: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Ground).
			Foreground(t.Path),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		Label:        lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		Value:        lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		ActiveParam:  lipgloss.NewStyle().Foreground(t.Projectile).Bold(true),
		Graph:        lipgloss.NewStyle().Foreground(t.Path),
		Help:         lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Status:       lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		StatusPaused: lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		StatusDone:   lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Flash:        lipgloss.NewStyle().Foreground(t.Warning).Italic(true),
	}
}

// ProgressBar renders fraction in [0, 1] as a bar of the given width.
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}
