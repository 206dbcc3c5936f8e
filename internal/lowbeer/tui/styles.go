package tui

import "github.com/charmbracelet/lipgloss"

// Color palette (Tokyo Night inspired)
var (
	ColorPrimary = lipgloss.Color("#7aa2f7") // Blue
	ColorSuccess = lipgloss.Color("#9ece6a") // Green
	ColorWarning = lipgloss.Color("#e0af68") // Yellow
	ColorError   = lipgloss.Color("#f7768e") // Red
	ColorMuted   = lipgloss.Color("#565f89") // Gray
	ColorFg      = lipgloss.Color("#c0caf5") // Foreground
	ColorFgDim   = lipgloss.Color("#a9b1d6") // Dimmed foreground
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorFgDim)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	PanelInfoStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	PanelSuccessStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorSuccess).
				Padding(0, 1)

	ToastStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	UserMsgStyle = lipgloss.NewStyle().
			Foreground(ColorFg).
			Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// StatusTag renders a task status for the milestones list.
func StatusTag(status string) string {
	switch status {
	case "pending":
		return ToastStyle.Render("pending")
	case "verified":
		return SuccessStyle.Render("verified")
	default:
		return LabelStyle.Render(status)
	}
}
