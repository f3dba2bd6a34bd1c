package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnisketch/omnisketch/backend-go/internal/document"
)

func TestCreateSession(t *testing.T) {
	s := NewStore()
	code := s.CreateSession()

	assert.Len(t, code, 8)
	assert.Equal(t, strings.ToUpper(code), code)

	st := s.State()
	assert.Equal(t, code, st.SessionID)
	assert.True(t, st.IsHost)
	assert.True(t, st.IsConnected)
	require.NotNil(t, st.CurrentUser)
	assert.Equal(t, HostName, st.CurrentUser.Name)
	assert.Contains(t, Palette, st.CurrentUser.Color)
	assert.Equal(t, []User{*st.CurrentUser}, st.Users)
}

func TestJoinSessionDefaultsName(t *testing.T) {
	s := NewStore()
	u := s.JoinSession("ABCD1234", "")
	assert.Equal(t, GuestName, u.Name)

	st := s.State()
	assert.False(t, st.IsHost)
	assert.Equal(t, "ABCD1234", st.SessionID)

	u = s.JoinSession("ABCD1234", "Ada")
	assert.Equal(t, "Ada", u.Name)
	assert.Len(t, s.State().Users, 1)
}

func TestLeaveSession(t *testing.T) {
	s := NewStore()
	s.CreateSession()
	s.LeaveSession()

	st := s.State()
	assert.Empty(t, st.SessionID)
	assert.False(t, st.IsConnected)
	assert.Nil(t, st.CurrentUser)
	assert.Empty(t, st.Users)
}

func TestUsers(t *testing.T) {
	s := NewStore()
	s.CreateSession()

	s.AddUser(User{ID: "u1", Name: "one"})
	s.AddUser(User{ID: "u2", Name: "two"})
	s.AddUser(User{ID: "u1", Name: "uno"})

	users := s.State().Users
	require.Len(t, users, 3)
	assert.Equal(t, "two", users[1].Name)
	assert.Equal(t, "uno", users[2].Name)

	s.UpdateUserCursor("u2", Cursor{X: 3, Y: 4})
	s.UpdateUserCursor("missing", Cursor{X: 9, Y: 9})
	users = s.State().Users
	require.NotNil(t, users[1].Cursor)
	assert.Equal(t, Cursor{X: 3, Y: 4}, *users[1].Cursor)

	s.RemoveUser("u1")
	s.RemoveUser("missing")
	assert.Len(t, s.State().Users, 2)
}

func TestMoveCursor(t *testing.T) {
	s := NewStore()
	assert.ErrorIs(t, s.MoveCursor(Cursor{X: 1, Y: 1}), ErrNotConnected)

	s.CreateSession()
	require.NoError(t, s.MoveCursor(Cursor{X: 1, Y: 2}))
	assert.Equal(t, Cursor{X: 1, Y: 2}, *s.State().Users[0].Cursor)
}

func TestSetCurrentUser(t *testing.T) {
	s := NewStore()
	s.SetCurrentUser(User{ID: "u9", Name: "nine"})
	assert.Equal(t, "nine", s.State().CurrentUser.Name)
}

func TestSyncElementsForwards(t *testing.T) {
	s := NewStore()
	s.SyncElements(document.NewSampleBoard()) // no receiver yet

	var got []*document.Element
	s.OnElementsChange(func(els []*document.Element) { got = els })
	sample := document.NewSampleBoard()
	s.SyncElements(sample)
	assert.Equal(t, sample, got)
}

func TestStateIsACopy(t *testing.T) {
	s := NewStore()
	s.CreateSession()
	st := s.State()
	st.Users[0].Name = "changed"
	st.CurrentUser.Name = "changed"

	again := s.State()
	assert.Equal(t, HostName, again.Users[0].Name)
	assert.Equal(t, HostName, again.CurrentUser.Name)
}
