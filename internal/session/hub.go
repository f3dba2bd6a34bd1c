package session

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/coder/websocket"

	"github.com/omnisketch/omnisketch/backend-go/internal/document"
)

// Room is the live state of one session: its connections, presence, and
// the last element collection anyone synced.
type Room struct {
	code     string
	clients  map[string]*Client // clientID -> client
	presence *PresenceManager
	elements json.RawMessage
	seq      int64
}

func NewRoom(code string) *Room {
	return &Room{
		code:     code,
		clients:  make(map[string]*Client),
		presence: NewPresenceManager(),
	}
}

// Hub routes messages between the clients of every room. Rooms exist while
// at least one client is connected.
type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // session code -> room
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.done:
			return
		}
	}
}

// Stop ends Run and disconnects every client.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)

		h.mu.Lock()
		var clients []*Client
		for _, room := range h.rooms {
			for _, c := range room.clients {
				clients = append(clients, c)
			}
		}
		h.rooms = make(map[string]*Room)
		h.mu.Unlock()

		for _, c := range clients {
			c.close()
			c.conn.Close(websocket.StatusGoingAway, "server shutting down")
		}
	})
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.close()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Latest returns the last synced element collection of a room.
func (h *Hub) Latest(code string) (json.RawMessage, int64, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room, ok := h.rooms[code]
	if !ok || room.seq == 0 {
		return nil, 0, false
	}
	return room.elements, room.seq, true
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.SessionCode]
	if !ok {
		room = NewRoom(client.SessionCode)
		h.rooms[client.SessionCode] = room
	}
	room.clients[client.ClientID] = client
	room.presence.Join(client.User)
	elements, seq := room.elements, room.seq
	h.mu.Unlock()

	client.Send(newMessage(TypeWelcome, WelcomePayload{ClientID: client.ClientID, User: client.User}))
	client.Send(room.presence.StateMessage())

	// Late joiners start from the newest collection.
	if seq > 0 {
		if msg := newMessage(TypeElementsSync, ElementsSyncPayload{Elements: elements}); msg != nil {
			msg.Seq = seq
			client.Send(msg)
		}
	}

	if joinMsg := newMessage(TypePresenceJoin, PresenceJoinPayload{User: client.User}); joinMsg != nil {
		joinMsg.UserID = client.User.ID
		h.broadcastToRoom(client.SessionCode, joinMsg, client.ClientID)
	}

	slog.Info("client joined", "user", client.User.ID, "session", client.SessionCode)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.SessionCode]
	if !ok || room.clients[client.ClientID] != client {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	client.close()
	room.presence.Leave(client.User.ID)

	if len(room.clients) == 0 {
		delete(h.rooms, client.SessionCode)
	}
	h.mu.Unlock()

	if leaveMsg := newMessage(TypePresenceLeave, PresenceLeavePayload{UserID: client.User.ID}); leaveMsg != nil {
		leaveMsg.UserID = client.User.ID
		h.broadcastToRoom(client.SessionCode, leaveMsg, "")
	}

	slog.Info("client left", "user", client.User.ID, "session", client.SessionCode)
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypePresenceUpdate:
		h.handlePresenceUpdate(sender, msg)
	case TypeElementsSync:
		h.handleElementsSync(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", sender.User.ID)
		sender.Send(errorMessage("unknown message type: " + msg.Type))
	}
}

func (h *Hub) handlePresenceUpdate(sender *Client, msg *Message) {
	var presence PresencePayload
	if err := json.Unmarshal(msg.Payload, &presence); err != nil {
		slog.Warn("invalid presence payload", "error", err)
		sender.Send(errorMessage("invalid presence payload"))
		return
	}

	h.mu.RLock()
	room, ok := h.rooms[sender.SessionCode]
	h.mu.RUnlock()
	if !ok {
		return
	}

	merged, ok := room.presence.Move(sender.User.ID, presence)
	if !ok {
		return
	}

	if outMsg := newMessage(TypePresenceUpdate, merged); outMsg != nil {
		outMsg.UserID = sender.User.ID
		h.broadcastToRoom(sender.SessionCode, outMsg, sender.ClientID)
	}
}

// handleElementsSync replaces the room's collection wholesale. The newest
// sync wins; there is no merging.
func (h *Hub) handleElementsSync(sender *Client, msg *Message) {
	var payload ElementsSyncPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		slog.Warn("invalid elements payload", "error", err)
		sender.Send(errorMessage("invalid elements payload"))
		return
	}
	elements, err := document.DecodeElements(payload.Elements)
	if err != nil {
		slog.Warn("invalid elements", "error", err, "user", sender.User.ID)
		sender.Send(errorMessage("invalid elements: " + err.Error()))
		return
	}
	if elements == nil {
		elements = []*document.Element{}
	}
	canonical, err := json.Marshal(elements)
	if err != nil {
		slog.Error("marshal elements", "error", err)
		return
	}

	h.mu.Lock()
	room, ok := h.rooms[sender.SessionCode]
	if !ok {
		h.mu.Unlock()
		return
	}
	room.seq++
	room.elements = canonical
	seq := room.seq
	h.mu.Unlock()

	if out := newMessage(TypeElementsSync, ElementsSyncPayload{Elements: canonical}); out != nil {
		out.UserID = sender.User.ID
		out.Seq = seq
		h.broadcastToRoom(sender.SessionCode, out, sender.ClientID)
	}
	if ack := newMessage(TypeElementsAck, ElementsAckPayload{Seq: seq}); ack != nil {
		ack.Seq = seq
		sender.Send(ack)
	}

	slog.Debug("elements synced", "session", sender.SessionCode, "seq", seq, "count", len(elements))
}

func (h *Hub) broadcastToRoom(code string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[code]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}
