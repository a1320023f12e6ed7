// Package notify implements the single-slot transient notification display.
// Only one message is visible at a time; a newer Show pre-empts the current
// one and the slot auto-clears after a fixed window.
package notify

import (
	"sync"
	"time"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// DefaultWindow is how long a message stays visible before auto-dismissal
const DefaultWindow = 3 * time.Second

// Message is the currently displayed notification
type Message struct {
	Text     string
	Severity Severity
}

// Queue is the single-slot display. Despite the name there is no ordering
// queue: last write wins the slot. Safe for concurrent use because the
// dismiss timer fires on its own goroutine.
type Queue struct {
	mu      sync.Mutex
	current *Message
	window  time.Duration
	timer   *time.Timer
	gen     uint64
}

// NewQueue creates a queue with the default 3-second display window
func NewQueue() *Queue {
	return NewQueueWithWindow(DefaultWindow)
}

// NewQueueWithWindow creates a queue with a custom display window
func NewQueueWithWindow(window time.Duration) *Queue {
	return &Queue{window: window}
}

// Show replaces any currently displayed message and restarts the dismissal
// window from now. A pre-empted message's pending dismissal never clears the
// newer message.
func (q *Queue) Show(text string, severity Severity) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.current = &Message{Text: text, Severity: severity}
	q.gen++
	gen := q.gen

	if q.timer != nil {
		q.timer.Stop()
	}
	q.timer = time.AfterFunc(q.window, func() {
		q.dismissGen(gen)
	})
}

// Dismiss clears the displayed message by explicit user action
func (q *Queue) Dismiss() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.clearLocked()
}

// Current returns the displayed message, or nil when the slot is empty
func (q *Queue) Current() *Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current == nil {
		return nil
	}
	msg := *q.current
	return &msg
}

func (q *Queue) dismissGen(gen uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	// A newer Show has taken the slot; its own timer owns dismissal.
	if gen != q.gen {
		return
	}
	q.clearLocked()
}

func (q *Queue) clearLocked() {
	q.current = nil
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
}
