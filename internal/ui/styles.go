package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary = lipgloss.Color("63")  // Purple/blue
	Success = lipgloss.Color("78")  // Green
	Warning = lipgloss.Color("214") // Orange
	Error   = lipgloss.Color("196") // Red
	Subtle  = lipgloss.Color("241") // Gray
	TextDim = lipgloss.Color("245") // Dimmer text

	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	PassStyle = lipgloss.NewStyle().Foreground(Success).Bold(true)
	FailStyle = lipgloss.NewStyle().Foreground(Error).Bold(true)
	WarnStyle = lipgloss.NewStyle().Foreground(Warning)

	BoldStyle = lipgloss.NewStyle().Bold(true)
	DimStyle  = lipgloss.NewStyle().Foreground(TextDim)
)

// PassMark renders the green check mark used for passing checks.
func PassMark() string {
	return PassStyle.Render("✓")
}

// FailMark renders the red cross used for failing checks.
func FailMark() string {
	return FailStyle.Render("✗")
}

// Title renders a styled heading.
func Title(text string) string {
	return TitleStyle.Render(text)
}
