package session

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type Handler struct {
	registry       *Registry
	tokens         *TokenService
	hub            *Hub
	originPatterns []string
}

func NewHandler(registry *Registry, tokens *TokenService, hub *Hub, originPatterns []string) *Handler {
	return &Handler{registry: registry, tokens: tokens, hub: hub, originPatterns: originPatterns}
}

type createResponse struct {
	Code  string `json:"code"`
	User  User   `json:"user"`
	Token string `json:"token"`
}

type joinRequest struct {
	Name string `json:"name"`
}

type joinResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type sessionResponse struct {
	*Session
	Seq int64 `json:"seq"`
}

// Create handles POST /sessions.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	s, host := h.registry.Create()
	token, err := h.tokens.Issue(s.Code, host.ID)
	if err != nil {
		h.registry.Delete(s.Code)
		slog.Error("issue session token", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	slog.Info("session created", "session", s.Code, "user", host.ID)
	writeJSON(w, http.StatusCreated, createResponse{Code: s.Code, User: host, Token: token})
}

// Join handles POST /sessions/{code}/join. The body is optional.
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(mux.Vars(r)["code"])

	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	user, err := h.registry.Join(code, strings.TrimSpace(req.Name))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
			return
		}
		slog.Error("join session", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	token, err := h.tokens.Issue(code, user.ID)
	if err != nil {
		slog.Error("issue session token", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	slog.Info("session joined", "session", code, "user", user.ID)
	writeJSON(w, http.StatusOK, joinResponse{User: user, Token: token})
}

// Get handles GET /sessions/{code} for participants of that session. It
// expects TokenService.Middleware in front of it.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(mux.Vars(r)["code"])
	claims, ok := ClaimsFromContext(r.Context())
	if !ok || claims.SessionCode != code {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "not a participant of this session"})
		return
	}
	s, err := h.registry.Get(code)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	_, seq, _ := h.hub.Latest(code)
	writeJSON(w, http.StatusOK, sessionResponse{Session: s, Seq: seq})
}

// ServeWS handles GET /ws/session/{code}?token=….
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(mux.Vars(r)["code"])

	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}
	claims, err := h.tokens.Validate(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	if claims.SessionCode != code {
		http.Error(w, "token is for another session", http.StatusForbidden)
		return
	}
	user, err := h.registry.User(code, claims.UserID)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := NewClient(h.hub, conn, user, code, clientID)

	h.hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
