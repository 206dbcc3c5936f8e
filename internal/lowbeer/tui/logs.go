package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mistakeknot/lowbeer/internal/lowbeer/project"
)

func errInvalidRepoPath(path string) error {
	return fmt.Errorf("invalid repository path: %s", path)
}

// formatLogEntry flattens an entry to one searchable display line.
func formatLogEntry(entry project.LogEntry) string {
	line := entry.Timestamp + "  " + entry.Event
	if len(entry.Details) == 0 {
		return line
	}
	keys := make([]string, 0, len(entry.Details))
	for k := range entry.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+entry.Details[k])
	}
	return line + "  " + strings.Join(parts, " ")
}

// filterLogLines returns the lines matching query, newest first. An
// empty query returns everything.
func filterLogLines(entries []project.LogEntry, query string) []string {
	lines := make([]string, len(entries))
	for i, entry := range entries {
		// Newest first.
		lines[len(entries)-1-i] = formatLogEntry(entry)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return lines
	}
	matches := fuzzy.Find(query, lines)
	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, lines[match.Index])
	}
	return out
}

func (m Model) renderLogs() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Event Logs") + "\n")
	b.WriteString(m.logsFilter.View() + "\n\n")

	lines := filterLogLines(m.session.Logs, m.logsFilter.Value())
	if len(lines) == 0 {
		b.WriteString(LabelStyle.Render("  No matching events."))
	} else {
		max := m.height - 10
		if max < 5 {
			max = 5
		}
		if len(lines) > max {
			lines = lines[:max]
		}
		for _, line := range lines {
			b.WriteString("  " + SubtitleStyle.Render(line) + "\n")
		}
	}

	b.WriteString("\n" + HelpKeyStyle.Render("esc") + HelpDescStyle.Render(" back"))
	width := m.width - 2
	if width < 20 {
		width = 20
	}
	return PanelStyle.Width(width).Render(b.String())
}
