package display

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	fastColor     = lipgloss.Color("10") // green, fast response
	normalColor   = lipgloss.Color("14") // cyan, normal response
	slowColor     = lipgloss.Color("11") // yellow, slower response
	verySlowColor = lipgloss.Color("9")  // red, very slow response
	fallbackColor = lipgloss.Color("196")
	dimColor      = lipgloss.Color("245")
	accentColor   = lipgloss.Color("12")
	queryColor    = lipgloss.Color("15")
)

var (
	queryPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(queryColor).
			Padding(0, 1)

	recordPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1)

	guidePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true)

	responseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(normalColor)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	warnStyle = lipgloss.NewStyle().
			Foreground(slowColor)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(verySlowColor)

	headerCellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			PaddingRight(2)

	cellStyle = lipgloss.NewStyle().
			PaddingRight(2)
)
