package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 64
)

// Subscriptions tracks the workspace ids a client wants events for.
type Subscriptions struct {
	workspaces map[string]bool
	mu         sync.RWMutex
}

// NewSubscriptions creates an empty Subscriptions set.
func NewSubscriptions() *Subscriptions {
	return &Subscriptions{workspaces: make(map[string]bool)}
}

// Client represents a WebSocket client connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan *WSEvent

	id   string
	subs *Subscriptions
}

// NewClient creates a new Client instance.
func NewClient(id string, hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan *WSEvent, sendBufferSize),
		id:   id,
		subs: NewSubscriptions(),
	}
}

// readPump pumps commands from the WebSocket connection to the hub.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket unexpected close", "client_id", c.id, "error", err)
			}
			break
		}

		var cmd WSCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			c.sendResponse(newErrorResponse("error", "invalid command format"))
			continue
		}
		c.handleCommand(&cmd)
	}
}

// writePump pumps events from the hub to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleCommand(cmd *WSCommand) {
	switch cmd.Action {
	case CmdSubscribe:
		if cmd.WorkspaceID == "" {
			c.sendResponse(newErrorResponse(CmdSubscribe, "workspace_id required"))
			return
		}
		c.hub.Subscribe(c, cmd.WorkspaceID)
		c.sendResponse(newSuccessResponse(CmdSubscribe, "subscribed to workspace: "+cmd.WorkspaceID))

	case CmdUnsubscribe:
		if cmd.WorkspaceID == "" {
			c.sendResponse(newErrorResponse(CmdUnsubscribe, "workspace_id required"))
			return
		}
		c.hub.Unsubscribe(c, cmd.WorkspaceID)
		c.sendResponse(newSuccessResponse(CmdUnsubscribe, "unsubscribed from workspace: "+cmd.WorkspaceID))

	default:
		c.sendResponse(newErrorResponse("error", "unknown command: "+cmd.Action))
	}
}

func (c *Client) sendResponse(resp *WSResponse) {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteJSON(resp)
}
