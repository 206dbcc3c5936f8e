// Package session owns the dashboard state and the task reducers. All
// mutation happens on the render loop's goroutine; the only cross-thread
// input is the event queue fed by the watcher.
package session

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mistakeknot/lowbeer/internal/lowbeer/events"
	"github.com/mistakeknot/lowbeer/internal/lowbeer/project"
)

// Completer is the completion backend boundary: prompt text in,
// response text out, never an error.
type Completer interface {
	Complete(ctx context.Context, prompt string) string
}

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the session chat transcript.
type Message struct {
	Role Role
	Text string
}

// Session is the single session-scoped state struct threaded through
// every reducer call.
type Session struct {
	Tasks        []project.Task
	Logs         []project.LogEntry
	Chat         []Message
	Notification string

	root    string
	backend Completer
	queue   *events.Queue
	now     func() time.Time
}

// New loads persisted storage under root and returns a fresh session.
// backend may be nil when no credential is configured.
func New(root string, backend Completer, q *events.Queue) *Session {
	st := project.LoadStorage(project.StoragePath(root))
	return &Session{
		Tasks:   st.Tasks,
		Logs:    st.Logs,
		root:    root,
		backend: backend,
		queue:   q,
		now:     time.Now,
	}
}

// SetBackend swaps the completion backend, e.g. after the user saves a
// new API key.
func (s *Session) SetBackend(c Completer) {
	s.backend = c
}

// Configured reports whether a completion backend is available.
func (s *Session) Configured() bool {
	return s.backend != nil
}

// PendingTask returns the first task with status pending, or nil.
func (s *Session) PendingTask() *project.Task {
	for i := range s.Tasks {
		if s.Tasks[i].Status == project.StatusPending {
			return &s.Tasks[i]
		}
	}
	return nil
}

// LastVerifiedTask returns the most recently verified task in insertion
// order, or nil.
func (s *Session) LastVerifiedTask() *project.Task {
	for i := len(s.Tasks) - 1; i >= 0; i-- {
		if s.Tasks[i].Status == project.StatusVerified {
			return &s.Tasks[i]
		}
	}
	return nil
}

// DrainEvents empties the queue, logging each file change and setting a
// one-shot notification. It returns the number of drained events and is
// a no-op when the queue is empty.
func (s *Session) DrainEvents() int {
	if s.queue == nil {
		return 0
	}
	drained := s.queue.Drain()
	for _, ev := range drained {
		s.logEvent("Repo Change Detected", map[string]string{
			"event_type":   string(ev.Kind),
			"src_path":     ev.Path,
			"is_directory": fmt.Sprintf("%t", ev.IsDir),
		})
		s.Notification = fmt.Sprintf("Repo change: %s on %s", ev.Kind, filepath.Base(ev.Path))
	}
	return len(drained)
}

// LogMonitoringStarted records that the repo watcher came up.
func (s *Session) LogMonitoringStarted(path string) {
	s.logEvent("Repo Monitoring Started", map[string]string{"path": path})
}

// ClearNotification resets the one-shot notification after display.
func (s *Session) ClearNotification() {
	s.Notification = ""
}

func (s *Session) say(role Role, text string) {
	s.Chat = append(s.Chat, Message{Role: role, Text: text})
}

func (s *Session) logEvent(event string, details map[string]string) {
	s.Logs = append(s.Logs, project.LogEntry{
		ID:        uuid.NewString(),
		Timestamp: s.now().Format(project.LogTimeFormat),
		Event:     event,
		Details:   details,
	})
}

// persist rewrites storage wholesale. Failures are surfaced to the user
// rather than crashing the process.
func (s *Session) persist() {
	err := project.SaveStorage(project.StoragePath(s.root), project.Storage{
		Tasks: s.Tasks,
		Logs:  s.Logs,
	})
	if err != nil {
		// The entry stays in memory even while writes keep failing.
		s.logEvent("Persistence Failed", map[string]string{"error": err.Error()})
		s.Notification = "Failed to save project data"
		s.say(RoleAssistant, fmt.Sprintf("Failed to save project data: %v", err))
	}
}
