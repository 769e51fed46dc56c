package styles

import "github.com/charmbracelet/lipgloss"

// Styles defines the core UI styles
var (
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7B61FF"))

	Location = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#81A1C1"))

	Status = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#959595"))

	Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF0000"))

	Help = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5A9"))
)

// ListStyle frames the directory listing
var ListStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#7B61FF"))
