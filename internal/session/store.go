package session

import (
	"errors"
	"slices"
	"sync"

	"github.com/omnisketch/omnisketch/backend-go/internal/document"
	"github.com/omnisketch/omnisketch/backend-go/internal/typeid"
)

var ErrNotConnected = errors.New("not connected to a session")

// State is a point-in-time copy of the local session.
type State struct {
	SessionID   string `json:"sessionId,omitempty"`
	IsHost      bool   `json:"isHost"`
	Users       []User `json:"users"`
	CurrentUser *User  `json:"currentUser,omitempty"`
	IsConnected bool   `json:"isConnected"`
}

// Store is the browser-side view of a shared session: who is here, where
// their cursors are, and where remote element collections go.
type Store struct {
	mu               sync.Mutex
	state            State
	onElementsChange func([]*document.Element)
}

func NewStore() *Store {
	return &Store{state: State{Users: []User{}}}
}

// OnElementsChange registers the receiver of SyncElements.
func (s *Store) OnElementsChange(fn func([]*document.Element)) {
	s.mu.Lock()
	s.onElementsChange = fn
	s.mu.Unlock()
}

// CreateSession starts hosting a new session and returns its code.
func (s *Store) CreateSession() string {
	code := typeid.NewSessionCode()
	host := User{ID: typeid.NewUserID(), Name: HostName, Color: randomColor()}
	s.connect(code, true, host)
	return code
}

// JoinSession enters the session with the given code. An empty name joins
// as Guest.
func (s *Store) JoinSession(code, name string) User {
	if name == "" {
		name = GuestName
	}
	u := User{ID: typeid.NewUserID(), Name: name, Color: randomColor()}
	s.connect(code, false, u)
	return u
}

// Connect installs a session whose identity was issued elsewhere, such as
// by the relay server.
func (s *Store) Connect(code string, host bool, u User) {
	s.connect(code, host, u)
}

func (s *Store) connect(code string, host bool, u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := u
	s.state = State{
		SessionID:   code,
		IsHost:      host,
		Users:       []User{u},
		CurrentUser: &cur,
		IsConnected: true,
	}
}

func (s *Store) LeaveSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{Users: []User{}}
}

func (s *Store) SetCurrentUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentUser = &u
}

// AddUser appends u, replacing any participant with the same id.
func (s *Store) AddUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Users = slices.DeleteFunc(s.state.Users, func(x User) bool { return x.ID == u.ID })
	s.state.Users = append(s.state.Users, u)
}

func (s *Store) RemoveUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Users = slices.DeleteFunc(s.state.Users, func(x User) bool { return x.ID == id })
}

// UpdateUserCursor moves a participant's cursor. Unknown ids are ignored.
func (s *Store) UpdateUserCursor(id string, c Cursor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Users {
		if s.state.Users[i].ID == id {
			s.state.Users[i].Cursor = &c
		}
	}
}

// MoveCursor updates the current user's own cursor.
func (s *Store) MoveCursor(c Cursor) error {
	s.mu.Lock()
	cur := s.state.CurrentUser
	s.mu.Unlock()
	if cur == nil || !s.Connected() {
		return ErrNotConnected
	}
	s.UpdateUserCursor(cur.ID, c)
	return nil
}

// SyncElements hands a remote element collection to the registered
// receiver.
func (s *Store) SyncElements(elements []*document.Element) {
	s.mu.Lock()
	fn := s.onElementsChange
	s.mu.Unlock()
	if fn != nil {
		fn(elements)
	}
}

func (s *Store) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsConnected
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Users = slices.Clone(s.state.Users)
	if s.state.CurrentUser != nil {
		cur := *s.state.CurrentUser
		st.CurrentUser = &cur
	}
	return st
}
