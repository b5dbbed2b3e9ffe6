// Package notification keeps the transient success/error toasts produced by
// the API. Each notification auto-dismisses after a TTL; removing one cancels
// its pending timer, and a manual removal supersedes the scheduled one.
package notification

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	TypeSuccess = "success"
	TypeError   = "error"
	TypeWarning = "warning"
)

// DefaultTTL matches the UI's 3-second toast lifetime.
const DefaultTTL = 3 * time.Second

type Notification struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	CreatedAt string `json:"createdAt"`
}

// Store is an in-memory notification list with per-entry dismissal timers.
type Store struct {
	mu     sync.Mutex
	ttl    time.Duration
	items  []Notification
	timers map[string]*time.Timer
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{ttl: ttl, timers: make(map[string]*time.Timer)}
}

// Add appends a notification and schedules its auto-dismiss.
func (s *Store) Add(message, typ string) Notification {
	n := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Type:      typ,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	s.mu.Lock()
	s.items = append(s.items, n)
	s.timers[n.ID] = time.AfterFunc(s.ttl, func() {
		s.Remove(n.ID)
	})
	s.mu.Unlock()

	return n
}

// Success records a success notification. Implements the Notifier interface
// the handlers expect.
func (s *Store) Success(message string) {
	s.Add(message, TypeSuccess)
}

// Error records an error notification.
func (s *Store) Error(message string) {
	s.Add(message, TypeError)
}

// Remove deletes a notification and cancels its pending timer. Removing an
// unknown id is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	for i, n := range s.items {
		if n.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Clear drops every notification and cancels all timers.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.items = nil
}

// List returns the live notifications, oldest first.
func (s *Store) List() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.items))
	copy(out, s.items)
	return out
}
