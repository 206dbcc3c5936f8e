package events

import "sync"

// Queue is a thread-safe FIFO. The watcher goroutine calls Put, the
// render loop calls TryPop or Drain; neither side ever blocks.
type Queue struct {
	mu    sync.Mutex
	items []FileChange
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Put appends an event to the tail of the queue.
func (q *Queue) Put(ev FileChange) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, ev)
}

// TryPop removes and returns the event at the head of the queue.
// The second return is false when the queue is empty.
func (q *Queue) TryPop() (FileChange, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return FileChange{}, false
	}
	ev := q.items[0]
	q.items = q.items[1:]
	return ev, true
}

// Drain removes and returns all pending events in FIFO order.
func (q *Queue) Drain() []FileChange {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	drained := q.items
	q.items = nil
	return drained
}

// Len reports the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
