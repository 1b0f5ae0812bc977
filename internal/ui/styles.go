package ui

import "github.com/charmbracelet/lipgloss"

// Styles are the lipgloss styles of the run summary.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Box     lipgloss.Style
}

// color returns a lipgloss color for an index, or NoColor when empty.
func color(index string) lipgloss.TerminalColor {
	if index == "" {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(index)
}

// NewStyles builds the styles for a theme.
func NewStyles(t Theme) Styles {
	p := t.Palette
	colored := t.Colored()
	box := lipgloss.NewStyle().Padding(0, 1)
	if colored {
		box = box.Border(lipgloss.RoundedBorder()).BorderForeground(color(p.Secondary))
	}
	return Styles{
		Title:   lipgloss.NewStyle().Bold(colored).Foreground(color(p.Primary)),
		Label:   lipgloss.NewStyle().Foreground(color(p.Secondary)),
		Value:   lipgloss.NewStyle().Bold(colored),
		Success: lipgloss.NewStyle().Foreground(color(p.Success)),
		Warning: lipgloss.NewStyle().Foreground(color(p.Warning)),
		Error:   lipgloss.NewStyle().Bold(colored).Foreground(color(p.Error)),
		Box:     box,
	}
}

// CurrentStyles returns the styles of the active theme.
func CurrentStyles() Styles {
	return NewStyles(GetCurrentTheme())
}
