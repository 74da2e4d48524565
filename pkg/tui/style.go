package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// UI styles and layout settings
// Color palette "Rosebox" from https://gogh-co.github.io/Gogh/
const (
	colorGray   = "#3a3a3a"
	colorWhite  = "#e8e8d3"
	colorGreen  = "#a8cc8c"
	colorRed    = "#bf616a"
	colorRedDim = "#b3574e"
	colorOrange = "#d08770"
	colorBlue   = "#8fa1b3"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue)).
			Background(lipgloss.Color(colorGray)).
			Padding(0, 2).Align(lipgloss.Center)
	subtitleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGray)).
			Background(lipgloss.Color(colorGreen))
	dangerSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(colorGray)).
				Background(lipgloss.Color(colorRed))
	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorWhite))
	markedDayStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorOrange))
	errorTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorRed))
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGray))
)

// Function to colorize text based on its status
// 0 (default) - unknown, 1 - green, 2 - red
func TextStatusColorize(text string, status int) string {
	switch status {
	case 1:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)).Render(text)
	case 2:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorRedDim)).Render(text)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)).Render(text)
	}
}
