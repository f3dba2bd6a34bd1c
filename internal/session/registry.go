package session

import (
	"errors"
	"sync"
	"time"

	"github.com/omnisketch/omnisketch/backend-go/internal/typeid"
)

var ErrNotFound = errors.New("session not found")

// Session is a shareable board: a join code plus the participants that
// have been issued an identity for it.
type Session struct {
	Code      string    `json:"code"`
	HostID    string    `json:"hostId"`
	CreatedAt time.Time `json:"createdAt"`
	Users     []User    `json:"users"`
}

// Registry keeps sessions in memory for the life of the process.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	newCode  func() string
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		newCode:  typeid.NewSessionCode,
		now:      time.Now,
	}
}

// Create opens a session hosted by a new user named Host.
func (r *Registry) Create() (*Session, User) {
	host := User{ID: typeid.NewUserID(), Name: HostName, Color: randomColor()}

	r.mu.Lock()
	defer r.mu.Unlock()
	code := r.newCode()
	for r.sessions[code] != nil {
		code = r.newCode()
	}
	s := &Session{Code: code, HostID: host.ID, CreatedAt: r.now(), Users: []User{host}}
	r.sessions[code] = s
	return s.clone(), host
}

// Join issues a new participant for the session. An empty name joins as
// Guest.
func (r *Registry) Join(code, name string) (User, error) {
	if name == "" {
		name = GuestName
	}
	u := User{ID: typeid.NewUserID(), Name: name, Color: randomColor()}

	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[code]
	if !ok {
		return User{}, ErrNotFound
	}
	s.Users = append(s.Users, u)
	return u, nil
}

func (r *Registry) Get(code string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[code]
	if !ok {
		return nil, ErrNotFound
	}
	return s.clone(), nil
}

// User returns a participant of the session by id.
func (r *Registry) User(code, userID string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[code]
	if !ok {
		return User{}, ErrNotFound
	}
	for _, u := range s.Users {
		if u.ID == userID {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *Registry) Delete(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, code)
}

func (s *Session) clone() *Session {
	c := *s
	c.Users = append([]User(nil), s.Users...)
	return &c
}
