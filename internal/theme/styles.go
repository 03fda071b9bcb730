package theme

import "github.com/charmbracelet/lipgloss"

// Main UI styles
var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSubtle)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	TabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Underline(true)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0)

	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWarning)
)

// Session status styles
var (
	CancelledStyle = lipgloss.NewStyle().Foreground(ColorCancelled)
	CompletedStyle = lipgloss.NewStyle().Foreground(ColorCompleted)
	NoShowStyle    = lipgloss.NewStyle().Foreground(ColorNoShow)
	PaymentStyle   = lipgloss.NewStyle().Foreground(ColorPayment)
)

// StatusStyle returns the style for a session status string
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "completed":
		return CompletedStyle
	case "cancelled":
		return CancelledStyle
	case "no_show":
		return NoShowStyle
	case "payment":
		return PaymentStyle
	}
	return NormalStyle
}
