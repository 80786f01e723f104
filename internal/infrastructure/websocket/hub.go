package websocket

import (
	"log/slog"
	"sync"
)

// Broadcaster pushes design-evaluated events to subscribed clients. Kept as
// an interface, as the teacher does, so a future Redis-backed adapter can
// stand in for horizontal scaling.
type Broadcaster interface {
	Broadcast(workspaceID string, event *WSEvent)
}

type broadcastMsg struct {
	workspaceID string
	event       *WSEvent
}

// Hub manages WebSocket connections and fans out design.evaluated events to
// clients subscribed to the relevant workspace. Condensed from the
// teacher's execution-event Hub: one subscription index (by workspace id)
// instead of three (user/workflow/execution), since there is only one
// event type to route.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *broadcastMsg

	byWorkspaceID map[string]map[*Client]bool

	logger *slog.Logger
	mu     sync.RWMutex
}

// NewHub creates a new Hub instance.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:       make(map[*Client]bool),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		broadcast:     make(chan *broadcastMsg, 256),
		byWorkspaceID: make(map[string]map[*Client]bool),
		logger:        logger,
	}
}

// Run starts the hub's main event loop. Call it in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case msg := <-h.broadcast:
			h.broadcastEvent(msg)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = true
	h.logger.Debug("client registered", "client_id", client.id, "total_clients", len(h.clients))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)

	client.subs.mu.RLock()
	for wsID := range client.subs.workspaces {
		if clients, ok := h.byWorkspaceID[wsID]; ok {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.byWorkspaceID, wsID)
			}
		}
	}
	client.subs.mu.RUnlock()

	h.logger.Debug("client unregistered", "client_id", client.id, "total_clients", len(h.clients))
}

// Broadcast sends a design-evaluated event to every client subscribed to
// workspaceID. Implements the Broadcaster interface.
func (h *Hub) Broadcast(workspaceID string, event *WSEvent) {
	h.broadcast <- &broadcastMsg{workspaceID: workspaceID, event: event}
}

func (h *Hub) broadcastEvent(msg *broadcastMsg) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.byWorkspaceID[msg.workspaceID]
	if !ok {
		return
	}
	for client := range clients {
		select {
		case client.send <- msg.event:
		default:
			h.logger.Warn("client buffer full, dropping message", "client_id", client.id, "event_type", msg.event.Type)
		}
	}
}

// Subscribe registers a client's interest in workspaceID's events.
func (h *Hub) Subscribe(client *Client, workspaceID string) {
	if workspaceID == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	client.subs.mu.Lock()
	defer client.subs.mu.Unlock()

	client.subs.workspaces[workspaceID] = true
	if h.byWorkspaceID[workspaceID] == nil {
		h.byWorkspaceID[workspaceID] = make(map[*Client]bool)
	}
	h.byWorkspaceID[workspaceID][client] = true

	h.logger.Debug("client subscribed", "client_id", client.id, "workspace_id", workspaceID)
}

// Unsubscribe removes a client's interest in workspaceID's events.
func (h *Hub) Unsubscribe(client *Client, workspaceID string) {
	if workspaceID == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	client.subs.mu.Lock()
	defer client.subs.mu.Unlock()

	delete(client.subs.workspaces, workspaceID)
	if clients, ok := h.byWorkspaceID[workspaceID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.byWorkspaceID, workspaceID)
		}
	}

	h.logger.Debug("client unsubscribed", "client_id", client.id, "workspace_id", workspaceID)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
