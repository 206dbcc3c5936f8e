package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mistakeknot/lowbeer/internal/lowbeer/events"
)

func waitForEvent(t *testing.T, q *events.Queue) events.FileChange {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if ev, ok := q.TryPop(); ok {
			return ev
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("no event arrived before deadline")
	return events.FileChange{}
}

func TestStartInvalidPath(t *testing.T) {
	q := events.NewQueue()
	if _, err := Start(filepath.Join(t.TempDir(), "missing"), q, nil); err == nil {
		t.Fatalf("expected error for missing path")
	}
}

func TestStopNeverStarted(t *testing.T) {
	var w *Watcher
	w.Stop() // must not panic
}

func TestStopIdempotent(t *testing.T) {
	q := events.NewQueue()
	w, err := Start(t.TempDir(), q, nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()
}

func TestWatchEnqueuesCreate(t *testing.T) {
	dir := t.TempDir()
	q := events.NewQueue()
	w, err := Start(dir, q, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	ev := waitForEvent(t, q)
	if ev.Kind != events.KindCreated && ev.Kind != events.KindModified {
		t.Fatalf("unexpected kind: %s", ev.Kind)
	}
	if ev.Path != path {
		t.Fatalf("unexpected path: %s", ev.Path)
	}
}

func TestIgnoredDirsFiltered(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".lowbeer"), 0o755); err != nil {
		t.Fatal(err)
	}
	q := events.NewQueue()
	w, err := Start(dir, q, []string{".lowbeer"})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, ".lowbeer", "storage.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "visible.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	ev := waitForEvent(t, q)
	if filepath.Base(ev.Path) != "visible.txt" {
		t.Fatalf("ignored path leaked: %s", ev.Path)
	}
}

func TestRestartLeavesOneAlive(t *testing.T) {
	dir := t.TempDir()
	q := events.NewQueue()

	first, err := Start(dir, q, nil)
	if err != nil {
		t.Fatal(err)
	}
	first.Stop()

	second, err := Start(dir, q, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Stop()

	// Drain anything left over, then confirm only the live watcher reports.
	q.Drain()
	if err := os.WriteFile(filepath.Join(dir, "one.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitForEvent(t, q)
	time.Sleep(100 * time.Millisecond)
	if extra := q.Drain(); len(extra) > 1 {
		t.Fatalf("stopped watcher still reporting: %d extra events", len(extra))
	}
}
