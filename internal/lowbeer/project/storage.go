package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
)

// Task is a single project milestone. IDs increase monotonically within
// a project; at most one task is pending at any time.
type Task struct {
	ID          int       `json:"id" yaml:"id"`
	Description string    `json:"description" yaml:"description"`
	Prompt      string    `json:"prompt" yaml:"prompt"`
	Status      Status    `json:"status" yaml:"status"`
	CreatedAt   time.Time `json:"timestamp" yaml:"timestamp"`
}

// LogEntry is one append-only event log record.
type LogEntry struct {
	ID        string            `json:"id" yaml:"id"`
	Timestamp string            `json:"timestamp" yaml:"timestamp"`
	Event     string            `json:"event" yaml:"event"`
	Details   map[string]string `json:"details,omitempty" yaml:"details,omitempty"`
}

// LogTimeFormat is the layout used for LogEntry timestamps.
const LogTimeFormat = "2006-01-02 15:04:05"

// Storage is the durable projection of a session: the ordered task list
// and the event log, rewritten wholesale on every mutation.
type Storage struct {
	Tasks []Task     `json:"tasks" yaml:"tasks"`
	Logs  []LogEntry `json:"logs" yaml:"logs"`
}

// LoadStorage reads storage from path. A missing or corrupt file yields
// empty storage, not an error.
func LoadStorage(path string) Storage {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Storage{}
	}
	var out Storage
	if err := json.Unmarshal(raw, &out); err != nil {
		return Storage{}
	}
	return out
}

// SaveStorage writes storage to path, creating the parent directory if
// needed.
func SaveStorage(path string, st Storage) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
