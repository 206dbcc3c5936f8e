package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// renderAssistantMarkdown renders one assistant chat message for the
// transcript viewport. Callers pass the usable width; blank messages
// render as nothing.
func renderAssistantMarkdown(text string, width int) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(text)
}
