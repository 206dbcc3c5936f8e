package tui

import (
	"strings"
	"testing"

	"github.com/mistakeknot/lowbeer/internal/lowbeer/project"
)

func TestFilterLogLinesNewestFirst(t *testing.T) {
	entries := []project.LogEntry{
		{Timestamp: "2026-03-14 09:00:00", Event: "Task Generated"},
		{Timestamp: "2026-03-14 10:00:00", Event: "Task Verified"},
	}
	lines := filterLogLines(entries, "")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "2026-03-14 10:00:00  Task Verified" {
		t.Fatalf("expected newest first, got %q", lines[0])
	}
}

func TestFilterLogLinesFuzzyMatch(t *testing.T) {
	entries := []project.LogEntry{
		{Timestamp: "2026-03-14 09:00:00", Event: "Task Generated", Details: map[string]string{"task_id": "1"}},
		{Timestamp: "2026-03-14 09:05:00", Event: "Repo Change Detected", Details: map[string]string{"src_path": "/repo/main.go"}},
	}
	lines := filterLogLines(entries, "repo change")
	if len(lines) != 1 {
		t.Fatalf("expected 1 match, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "Repo Change Detected") {
		t.Fatalf("wrong entry matched: %q", lines[0])
	}
}

func TestFormatLogEntryDetailsSorted(t *testing.T) {
	entry := project.LogEntry{
		Timestamp: "2026-03-14 09:00:00",
		Event:     "Repo Change Detected",
		Details:   map[string]string{"src_path": "/a", "event_type": "modified"},
	}
	got := formatLogEntry(entry)
	want := "2026-03-14 09:00:00  Repo Change Detected  event_type=modified src_path=/a"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
