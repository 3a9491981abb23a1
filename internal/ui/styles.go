package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	colorPrimary = lipgloss.Color("#FFB703") // Solar amber
	colorLSTM    = lipgloss.Color("#00BFFF") // Deep sky blue
	colorLGBM    = lipgloss.Color("#C77DFF") // Violet
	colorActual  = lipgloss.Color("#6BCF7F") // Green
	colorDanger  = lipgloss.Color("#FF6B6B") // Red for large errors
	colorWarning = lipgloss.Color("#FFD93D") // Yellow
	colorMuted   = lipgloss.Color("#6C757D") // Gray
	colorBorder  = lipgloss.Color("#4A90E2") // Border blue

	// Title styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(colorPrimary).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// Card styles
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 2).
			MarginRight(1)

	// Content styles
	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	lstmStyle   = lipgloss.NewStyle().Foreground(colorLSTM)
	lgbmStyle   = lipgloss.NewStyle().Foreground(colorLGBM)
	actualStyle = lipgloss.NewStyle().Foreground(colorActual)

	// Error severity in the error table legend
	errorHighStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	errorMidStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	// Help text style
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(1, 0)

	// Utility styles
	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Section header styles
	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				Padding(0, 1).
				MarginTop(1)

	sectionBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)

// seriesStyle returns the legend/chart style for a model.
func seriesStyle(name string) lipgloss.Style {
	switch name {
	case seriesLGBM:
		return lgbmStyle
	case seriesActual:
		return actualStyle
	default:
		return lstmStyle
	}
}
