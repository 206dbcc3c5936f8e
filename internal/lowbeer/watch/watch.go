// Package watch observes a repository tree on a background goroutine
// and reports changes through an events.Queue. The queue is the only
// thing the goroutine shares with the rest of the program.
package watch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mistakeknot/lowbeer/internal/lowbeer/events"
)

// Watcher is a handle to one active recursive watch.
type Watcher struct {
	path   string
	fsw    *fsnotify.Watcher
	queue  *events.Queue
	ignore map[string]bool
	done   chan struct{}
	stop   sync.Once
}

// Start begins observing path recursively and enqueues a FileChange for
// every event under it. The returned handle must be stopped before a
// new watch on another path is started.
func Start(path string, q *events.Queue, ignoreDirs []string) (*Watcher, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", path)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:   path,
		fsw:    fsw,
		queue:  q,
		ignore: map[string]bool{},
		done:   make(chan struct{}),
	}
	for _, name := range ignoreDirs {
		w.ignore[name] = true
	}

	if err := w.addTree(path); err != nil {
		fsw.Close()
		return nil, err
	}

	go w.loop()
	return w, nil
}

// Path returns the watched root.
func (w *Watcher) Path() string {
	if w == nil {
		return ""
	}
	return w.path
}

// Stop terminates the watch and blocks until the background goroutine
// has exited. It is safe to call on a nil handle and safe to call more
// than once.
func (w *Watcher) Stop() {
	if w == nil {
		return
	}
	w.stop.Do(func() {
		w.fsw.Close()
		<-w.done
	})
}

// addTree registers path and every non-ignored directory below it.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.ignore[d.Name()] {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if w.ignored(ev.Name) {
		return
	}

	var kind events.Kind
	switch {
	case ev.Op.Has(fsnotify.Create):
		kind = events.KindCreated
	case ev.Op.Has(fsnotify.Write):
		kind = events.KindModified
	case ev.Op.Has(fsnotify.Remove):
		kind = events.KindDeleted
	case ev.Op.Has(fsnotify.Rename):
		kind = events.KindMoved
	default:
		// Chmod churn is noise, not a repo change.
		return
	}

	isDir := false
	if info, err := os.Stat(ev.Name); err == nil {
		isDir = info.IsDir()
		// fsnotify does not recurse; pick up directories as they appear.
		if isDir && kind == events.KindCreated {
			_ = w.addTree(ev.Name)
		}
	}

	w.queue.Put(events.FileChange{
		Kind:  kind,
		Path:  ev.Name,
		IsDir: isDir,
		Time:  time.Now(),
	})
}

func (w *Watcher) ignored(path string) bool {
	rel, err := filepath.Rel(w.path, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if w.ignore[part] {
			return true
		}
	}
	return false
}
