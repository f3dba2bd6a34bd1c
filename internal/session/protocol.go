package session

import (
	"encoding/json"
	"log/slog"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	UserID    string          `json:"userId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

type WelcomePayload struct {
	ClientID string `json:"clientId"`
	User     User   `json:"user"`
}

type PresencePayload struct {
	Cursor    *Cursor  `json:"cursor,omitempty"`
	Selection []string `json:"selection,omitempty"`
	Name      string   `json:"name,omitempty"`
	Color     string   `json:"color,omitempty"`
}

type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type PresenceJoinPayload struct {
	User User `json:"user"`
}

type PresenceLeavePayload struct {
	UserID string `json:"userId"`
}

// ElementsSyncPayload carries a whole element collection in its wire form.
type ElementsSyncPayload struct {
	Elements json.RawMessage `json:"elements"`
}

type ElementsAckPayload struct {
	Seq int64 `json:"seq"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

const (
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
	TypeError          = "error"

	// Connection
	TypeWelcome = "welcome"

	// Element sync
	TypeElementsSync = "elements.sync"
	TypeElementsAck  = "elements.ack"
)

func newMessage(typ string, payload any) *Message {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal message", "type", typ, "error", err)
		return nil
	}
	return &Message{Type: typ, Payload: data}
}

func errorMessage(text string) *Message {
	return newMessage(TypeError, ErrorPayload{Message: text})
}
