package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/mistakeknot/lowbeer/internal/lowbeer/session"
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{m.renderHeader()}

	switch m.mode {
	case modeConfig:
		sections = append(sections, m.renderConfig())
	case modeLogs:
		sections = append(sections, m.renderLogs())
	default:
		sections = append(sections,
			m.renderDashboard(),
			m.renderMilestones(),
			m.chatView.View(),
			m.input.View(),
		)
	}

	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := TitleStyle.Render("◉ Lowbeer")
	toast := ""
	if m.session.Notification != "" {
		toast = ToastStyle.Render(m.session.Notification)
	}
	padding := m.width - lipgloss.Width(title) - lipgloss.Width(toast) - 2
	if padding < 1 {
		padding = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		title,
		strings.Repeat(" ", padding),
		toast,
	) + "\n"
}

func (m Model) renderDashboard() string {
	half := m.width/2 - 3
	if half < 20 {
		half = 20
	}

	var current string
	if task := m.session.PendingTask(); task != nil {
		current = PanelInfoStyle.Width(half).Render(
			SubtitleStyle.Render("Current Task") + "\n" + task.Description)
	} else {
		current = PanelSuccessStyle.Width(half).Render(
			SubtitleStyle.Render("Current Task") + "\n" +
				"No pending tasks. Ask 'What's next?' to generate a new one.")
	}

	last := PanelStyle.Width(half).Render(
		SubtitleStyle.Render("Last Completed") + "\n" + LabelStyle.Render("Nothing verified yet."))
	if task := m.session.LastVerifiedTask(); task != nil {
		last = PanelSuccessStyle.Width(half).Render(
			SubtitleStyle.Render("Last Completed") + "\n" + task.Description)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, current, " ", last)
}

func (m Model) renderMilestones() string {
	title := SubtitleStyle.Render("Milestones")
	if len(m.session.Tasks) == 0 {
		return title + "\n" + LabelStyle.Render("  No milestones defined yet.")
	}
	lines := make([]string, 0, len(m.session.Tasks))
	for _, task := range m.session.Tasks {
		lines = append(lines, fmt.Sprintf("  %d. %s (%s)", task.ID, task.Description, StatusTag(string(task.Status))))
	}
	return title + "\n" + strings.Join(lines, "\n")
}

func (m Model) renderConfig() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Project Controls") + "\n\n")
	b.WriteString(m.cfgInputs[cfgFieldRepo].View() + "\n")
	b.WriteString(m.cfgInputs[cfgFieldKey].View() + "\n\n")

	if m.saveErr != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Failed to save configuration: %v", m.saveErr)) + "\n")
	}
	if m.backendErr != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Failed to initialize AI: %v", m.backendErr)) + "\n")
	}
	if m.watchErr != nil {
		b.WriteString(ErrorStyle.Render(m.watchErr.Error()) + "\n")
	}
	if m.cfgSaved {
		b.WriteString(SuccessStyle.Render("Configuration saved!") + "\n")
	}

	b.WriteString("\n" + HelpKeyStyle.Render("tab") + HelpDescStyle.Render(" switch field • ") +
		HelpKeyStyle.Render("enter") + HelpDescStyle.Render(" save • ") +
		HelpKeyStyle.Render("esc") + HelpDescStyle.Render(" back"))

	width := m.width - 4
	if width > 72 {
		width = 72
	}
	return PanelStyle.Width(width).Render(b.String())
}

func (m Model) renderFooter() string {
	help := HelpKeyStyle.Render("enter") + HelpDescStyle.Render(" send • ") +
		HelpKeyStyle.Render("ctrl+g") + HelpDescStyle.Render(" config • ") +
		HelpKeyStyle.Render("ctrl+l") + HelpDescStyle.Render(" logs • ") +
		HelpKeyStyle.Render("ctrl+c") + HelpDescStyle.Render(" quit")

	status := ""
	switch {
	case m.confirmQuit:
		status = ToastStyle.Render("Press ctrl+c again to quit")
	case m.watchErr != nil:
		status = ErrorStyle.Render("⚠ " + m.watchErr.Error())
	case m.watcher != nil:
		status = SuccessStyle.Render("Monitoring: " + m.watcher.Path())
	case m.backendErr != nil:
		status = ErrorStyle.Render("AI not configured")
	}

	padding := m.width - lipgloss.Width(help) - lipgloss.Width(status) - 2
	if padding < 1 {
		padding = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		help,
		strings.Repeat(" ", padding),
		status,
	)
}

// syncChat rebuilds the transcript viewport. Assistant messages render
// as markdown; user messages are wrapped plain text.
func (m *Model) syncChat() {
	width := m.chatView.Width
	if width <= 0 {
		width = 80
	}
	var b strings.Builder
	for _, msg := range m.session.Chat {
		if msg.Role == session.RoleUser {
			b.WriteString(UserMsgStyle.Render("you") + " " + wordwrap.String(msg.Text, width-4) + "\n")
			continue
		}
		rendered, err := renderAssistantMarkdown(msg.Text, width-2)
		if err != nil || strings.TrimSpace(rendered) == "" {
			rendered = wordwrap.String(msg.Text, width-4) + "\n"
		}
		b.WriteString(SubtitleStyle.Render("ai") + "\n" + rendered)
	}
	m.chatView.SetContent(b.String())
	m.chatView.GotoBottom()
}
