// Package events carries file-change notifications from the watcher
// goroutine to the render loop. The queue is the only object shared
// between the two contexts.
package events

import "time"

// Kind identifies the type of filesystem change.
type Kind string

const (
	KindCreated  Kind = "created"
	KindModified Kind = "modified"
	KindDeleted  Kind = "deleted"
	KindMoved    Kind = "moved"
)

// FileChange describes a single filesystem event under the watched root.
type FileChange struct {
	Kind  Kind      `json:"event_type"`
	Path  string    `json:"src_path"`
	IsDir bool      `json:"is_directory"`
	Time  time.Time `json:"timestamp"`
}
