package review

import "github.com/charmbracelet/lipgloss"

var (
	// Pattern summary - bold bright white
	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Bold(true)

	// Quoted examples - dim italic
	exampleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	// Prompt title - bold bright cyan
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true)

	// Selected choice - bright cyan with pointer
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51"))

	// Unselected choice - plain
	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// Help footer - dim
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)
