// Package notify holds transient user-facing notices. At most one notice is
// visible at a time; pushing a new one replaces the current one.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultDuration is how long a notice stays visible
const DefaultDuration = 2 * time.Second

// Kind classifies a notice for rendering
type Kind int

const (
	KindSuccess Kind = iota
	KindError
	KindInfo
)

// Notice is a single acknowledgment or message
type Notice struct {
	ID      string // unique per push; used to dismiss
	Key     string // logical identity, e.g. "favorite-success"
	Kind    Kind
	Message string
	Expires time.Time
}

// Notifier is a single-slot queue with replacement semantics.
type Notifier struct {
	mu       sync.Mutex
	slot     *Notice
	duration time.Duration
	now      func() time.Time
}

// New creates a Notifier. A non-positive duration uses DefaultDuration.
func New(duration time.Duration) *Notifier {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Notifier{duration: duration, now: time.Now}
}

// Duration returns the display duration applied to pushed notices
func (n *Notifier) Duration() time.Duration {
	return n.duration
}

// Push replaces the visible notice and returns the new one
func (n *Notifier) Push(kind Kind, key, message string) Notice {
	notice := Notice{
		ID:      uuid.NewString(),
		Key:     key,
		Kind:    kind,
		Message: message,
		Expires: n.now().Add(n.duration),
	}

	n.mu.Lock()
	n.slot = &notice
	n.mu.Unlock()
	return notice
}

// Success pushes a success notice
func (n *Notifier) Success(key, message string) Notice {
	return n.Push(KindSuccess, key, message)
}

// Error pushes an error notice
func (n *Notifier) Error(key, message string) Notice {
	return n.Push(KindError, key, message)
}

// Current returns the visible notice, if any, that has not expired at now
func (n *Notifier) Current(now time.Time) (Notice, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.slot == nil {
		return Notice{}, false
	}
	if !now.Before(n.slot.Expires) {
		n.slot = nil
		return Notice{}, false
	}
	return *n.slot, true
}

// Dismiss clears the slot only if it still holds the notice with id.
// Returns false when a newer notice has replaced it.
func (n *Notifier) Dismiss(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.slot == nil || n.slot.ID != id {
		return false
	}
	n.slot = nil
	return true
}
