package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mistakeknot/lowbeer/internal/lowbeer/project"
)

func seedStorage(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	st := project.Storage{
		Tasks: []project.Task{
			{ID: 1, Description: "Implement login page", Status: project.StatusVerified, CreatedAt: time.Now()},
			{ID: 2, Description: "Add session handling", Status: project.StatusPending, CreatedAt: time.Now()},
		},
		Logs: []project.LogEntry{
			{ID: "a", Timestamp: "2026-03-14 09:00:00", Event: "Task Generated"},
		},
	}
	if err := project.SaveStorage(project.StoragePath(root), st); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestStatusOutput(t *testing.T) {
	root := seedStorage(t)
	var buf bytes.Buffer
	if err := runStatus(root, &buf); err != nil {
		t.Fatalf("status: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Tasks: 2 total, 1 verified",
		"Current task: #2 Add session handling",
		"Last completed: #1 Implement login page",
		"Log entries: 1",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestStatusEmptyProject(t *testing.T) {
	var buf bytes.Buffer
	if err := runStatus(t.TempDir(), &buf); err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(buf.String(), "No pending tasks.") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestExportJSON(t *testing.T) {
	root := seedStorage(t)
	var buf bytes.Buffer
	if err := runExport(root, "json", &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(buf.String(), `"description": "Implement login page"`) {
		t.Fatalf("unexpected json: %s", buf.String())
	}
}

func TestExportYAML(t *testing.T) {
	root := seedStorage(t)
	var buf bytes.Buffer
	if err := runExport(root, "yaml", &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(buf.String(), "description: Implement login page") {
		t.Fatalf("unexpected yaml: %s", buf.String())
	}
}

func TestExportUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := runExport(t.TempDir(), "toml", &buf); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
