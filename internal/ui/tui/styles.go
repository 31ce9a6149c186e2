package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	welcomeStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	suggestionStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#AFAFAF")).PaddingLeft(2)
	selectedSuggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFDF5")).Background(lipgloss.Color("62")).PaddingLeft(2)

	userLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	botLabelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	timestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	userTextStyle  = lipgloss.NewStyle().PaddingLeft(2)

	typingStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#888888"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262"))
	activeInputStyle = inputStyle.BorderForeground(lipgloss.Color("170"))

	sendStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Padding(0, 1)
	activeSendStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFDF5")).Background(lipgloss.Color("170")).Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("170")).
			Padding(1, 3)
)
