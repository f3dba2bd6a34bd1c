// Package toast keeps the queue of transient notifications shown over the
// board. Toasts dismiss themselves after their duration and linger for a
// short exit animation before being dropped.
package toast

import (
	"slices"
	"sync"
	"time"

	"github.com/omnisketch/omnisketch/backend-go/internal/typeid"
)

const (
	DefaultDuration = 3 * time.Second
	ExitDuration    = 300 * time.Millisecond
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

type Toast struct {
	ID       string        `json:"id"`
	Message  string        `json:"message"`
	Kind     Kind          `json:"type"`
	Duration time.Duration `json:"duration"`
	Exiting  bool          `json:"isExiting"`
}

// AfterFunc runs f once d has elapsed. time.AfterFunc satisfies it once
// its return value is dropped.
type AfterFunc func(d time.Duration, f func())

// Store is safe for concurrent use; timer callbacks arrive on their own
// goroutines.
type Store struct {
	mu       sync.Mutex
	toasts   []Toast
	after    AfterFunc
	onChange func([]Toast)
}

func New() *Store {
	return NewWithScheduler(func(d time.Duration, f func()) { time.AfterFunc(d, f) })
}

func NewWithScheduler(after AfterFunc) *Store {
	return &Store{after: after}
}

// OnChange registers fn to receive the toast list after every change.
func (s *Store) OnChange(fn func([]Toast)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Add queues a toast and returns its id. A zero duration keeps the toast
// until it is removed explicitly; an empty kind means info.
func (s *Store) Add(message string, kind Kind, duration time.Duration) string {
	if kind == "" {
		kind = KindInfo
	}
	t := Toast{ID: typeid.NewToastID(), Message: message, Kind: kind, Duration: duration}

	s.mu.Lock()
	s.toasts = append(s.toasts, t)
	s.mu.Unlock()
	s.changed()

	if duration > 0 {
		s.after(duration, func() { s.StartExit(t.ID) })
	}
	return t.ID
}

func (s *Store) Success(message string) string { return s.Add(message, KindSuccess, DefaultDuration) }
func (s *Store) Error(message string) string   { return s.Add(message, KindError, DefaultDuration) }
func (s *Store) Warning(message string) string { return s.Add(message, KindWarning, DefaultDuration) }
func (s *Store) Info(message string) string    { return s.Add(message, KindInfo, DefaultDuration) }

// StartExit marks a toast as leaving and drops it after ExitDuration.
func (s *Store) StartExit(id string) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 || s.toasts[i].Exiting {
		s.mu.Unlock()
		return
	}
	s.toasts[i].Exiting = true
	s.mu.Unlock()
	s.changed()

	s.after(ExitDuration, func() { s.drop(id) })
}

// Remove dismisses a toast unless it is already on its way out.
func (s *Store) Remove(id string) {
	s.StartExit(id)
}

// List returns a copy of the current toasts, oldest first.
func (s *Store) List() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.toasts)
}

func (s *Store) drop(id string) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.toasts = slices.Delete(s.toasts, i, i+1)
	s.mu.Unlock()
	s.changed()
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.toasts, func(t Toast) bool { return t.ID == id })
}

func (s *Store) changed() {
	s.mu.Lock()
	fn := s.onChange
	list := slices.Clone(s.toasts)
	s.mu.Unlock()
	if fn != nil {
		fn(list)
	}
}
