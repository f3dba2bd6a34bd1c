package session

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnisketch/omnisketch/backend-go/internal/document"
)

type testServer struct {
	*httptest.Server
	hub *Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	hub := NewHub()
	go hub.Run()

	tokens := NewTokenService("test-secret", time.Hour)
	h := NewHandler(NewRegistry(), tokens, hub, nil)
	r := mux.NewRouter()
	r.HandleFunc("/sessions", h.Create).Methods(http.MethodPost)
	r.Handle("/sessions/{code}", tokens.Middleware(http.HandlerFunc(h.Get))).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{code}/join", h.Join).Methods(http.MethodPost)
	r.HandleFunc("/ws/session/{code}", h.ServeWS)

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		hub.Stop()
		srv.Close()
	})
	return &testServer{Server: srv, hub: hub}
}

func (s *testServer) create(t *testing.T) createResponse {
	t.Helper()
	resp, err := http.Post(s.URL+"/sessions", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out createResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (s *testServer) join(t *testing.T, code, name string) joinResponse {
	t.Helper()
	body, _ := json.Marshal(joinRequest{Name: name})
	resp, err := http.Post(s.URL+"/sessions/"+code+"/join", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out joinResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (s *testServer) dial(t *testing.T, code, token string) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(s.URL, "http") + "/ws/session/" + code + "?token=" + token
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

// readUntil skips messages until one of the given type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, typ string) Message {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		var msg Message
		require.NoError(t, wsjson.Read(ctx, conn, &msg), "waiting for %s", typ)
		if msg.Type == typ {
			return msg
		}
	}
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, wsjson.Write(ctx, conn, Message{Type: typ, Payload: data}))
}

func TestCreateAndJoinEndpoints(t *testing.T) {
	srv := newTestServer(t)
	created := srv.create(t)
	assert.Len(t, created.Code, 8)
	assert.Equal(t, HostName, created.User.Name)
	assert.NotEmpty(t, created.Token)

	joined := srv.join(t, strings.ToLower(created.Code), "Ada")
	assert.Equal(t, "Ada", joined.User.Name)
	assert.NotEqual(t, created.User.ID, joined.User.ID)

	resp, err := getSession(t, srv.URL+"/sessions/"+created.Code, joined.Token)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var info sessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Len(t, info.Users, 2)
	assert.Zero(t, info.Seq)
}

func getSession(t *testing.T, url, token string) (*http.Response, error) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return http.DefaultClient.Do(req)
}

func TestGetSessionRequiresParticipantToken(t *testing.T) {
	srv := newTestServer(t)
	a := srv.create(t)
	b := srv.create(t)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"garbage", "nope", http.StatusUnauthorized},
		{"other session", b.Token, http.StatusForbidden},
		{"participant", a.Token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := getSession(t, srv.URL+"/sessions/"+a.Code, tt.token)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestJoinEmptyBodyAndUnknownSession(t *testing.T) {
	srv := newTestServer(t)
	created := srv.create(t)

	resp, err := http.Post(srv.URL+"/sessions/"+created.Code+"/join", "application/json", nil)
	require.NoError(t, err)
	var out joinResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, GuestName, out.User.Name)

	resp, err = http.Post(srv.URL+"/sessions/ZZZZZZZZ/join", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServeWSRejectsBadTokens(t *testing.T) {
	srv := newTestServer(t)
	a := srv.create(t)
	b := srv.create(t)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"missing token", "/ws/session/" + a.Code, http.StatusUnauthorized},
		{"garbage token", "/ws/session/" + a.Code + "?token=nope", http.StatusUnauthorized},
		{"other session", "/ws/session/" + a.Code + "?token=" + b.Token, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestRelay(t *testing.T) {
	srv := newTestServer(t)
	host := srv.create(t)

	c1 := srv.dial(t, host.Code, host.Token)
	welcome := readUntil(t, c1, TypeWelcome)
	var wp WelcomePayload
	require.NoError(t, json.Unmarshal(welcome.Payload, &wp))
	assert.Equal(t, host.User.ID, wp.User.ID)

	// Host publishes the board and waits for the relay to accept it.
	sample, err := json.Marshal(document.NewSampleBoard())
	require.NoError(t, err)
	send(t, c1, TypeElementsSync, ElementsSyncPayload{Elements: sample})
	ack := readUntil(t, c1, TypeElementsAck)
	assert.Equal(t, int64(1), ack.Seq)

	latest, seq, ok := srv.hub.Latest(host.Code)
	require.True(t, ok)
	assert.Equal(t, int64(1), seq)
	els, err := document.DecodeElements(latest)
	require.NoError(t, err)
	assert.Len(t, els, 5)

	// A late joiner receives the newest collection.
	guest := srv.join(t, host.Code, "Ada")
	c2 := srv.dial(t, host.Code, guest.Token)
	sync := readUntil(t, c2, TypeElementsSync)
	assert.Equal(t, int64(1), sync.Seq)
	var sp ElementsSyncPayload
	require.NoError(t, json.Unmarshal(sync.Payload, &sp))
	els, err = document.DecodeElements(sp.Elements)
	require.NoError(t, err)
	assert.Len(t, els, 5)

	join := readUntil(t, c1, TypePresenceJoin)
	assert.Equal(t, guest.User.ID, join.UserID)

	// Cursor moves reach the other participant with the server-side name.
	send(t, c2, TypePresenceUpdate, PresencePayload{Cursor: &Cursor{X: 1, Y: 2}, Name: "spoofed"})
	update := readUntil(t, c1, TypePresenceUpdate)
	var pp PresencePayload
	require.NoError(t, json.Unmarshal(update.Payload, &pp))
	assert.Equal(t, guest.User.ID, update.UserID)
	assert.Equal(t, "Ada", pp.Name)
	require.NotNil(t, pp.Cursor)
	assert.Equal(t, Cursor{X: 1, Y: 2}, *pp.Cursor)

	// Newer syncs replace the collection wholesale.
	send(t, c2, TypeElementsSync, ElementsSyncPayload{Elements: json.RawMessage(`[]`)})
	assert.Equal(t, int64(2), readUntil(t, c2, TypeElementsAck).Seq)
	relayed := readUntil(t, c1, TypeElementsSync)
	assert.Equal(t, int64(2), relayed.Seq)
	assert.Equal(t, guest.User.ID, relayed.UserID)

	// Invalid collections are refused and reported to the sender only.
	send(t, c2, TypeElementsSync, ElementsSyncPayload{Elements: json.RawMessage(`[{"id":"x","type":"text"}]`)})
	readUntil(t, c2, TypeError)
	send(t, c2, TypeElementsSync, ElementsSyncPayload{Elements: json.RawMessage(`[null]`)})
	readUntil(t, c2, TypeError)
	latest, seq, _ = srv.hub.Latest(host.Code)
	assert.Equal(t, int64(2), seq)
	assert.JSONEq(t, `[]`, string(latest))

	c2.Close(websocket.StatusNormalClosure, "")
	leave := readUntil(t, c1, TypePresenceLeave)
	assert.Equal(t, guest.User.ID, leave.UserID)
}
