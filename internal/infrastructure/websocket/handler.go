package websocket

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades HTTP requests to WebSocket connections and registers
// the resulting client with a Hub.
type Handler struct {
	hub    *Hub
	auth   Authenticator
	logger *slog.Logger
}

// NewHandler creates a new WebSocket handler.
func NewHandler(hub *Hub, auth Authenticator, logger *slog.Logger) *Handler {
	return &Handler{hub: hub, auth: auth, logger: logger}
}

// ServeHTTP handles the WebSocket upgrade request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := h.auth.Authenticate(r)
	if err != nil {
		h.logger.Warn("websocket authentication failed", "error", err, "remote_addr", r.RemoteAddr)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err, "remote_addr", r.RemoteAddr)
		return
	}

	clientID := uuid.New().String()
	client := NewClient(clientID, h.hub, conn)

	h.logger.Info("websocket client connected", "client_id", clientID, "user_id", userID, "remote_addr", r.RemoteAddr)

	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// SetCheckOrigin allows customizing the origin check function.
func SetCheckOrigin(f func(r *http.Request) bool) {
	upgrader.CheckOrigin = f
}
