package websocket

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestNewHub(t *testing.T) {
	hub := NewHub(testLogger())

	assert.NotNil(t, hub.clients)
	assert.NotNil(t, hub.register)
	assert.NotNil(t, hub.unregister)
	assert.NotNil(t, hub.broadcast)
	assert.NotNil(t, hub.byWorkspaceID)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_RegisterAndSubscribe(t *testing.T) {
	hub := NewHub(testLogger())
	go hub.Run()

	client := &Client{hub: hub, id: "client-1", subs: NewSubscriptions(), send: make(chan *WSEvent, sendBufferSize)}
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	assert.Equal(t, 1, hub.ClientCount())

	hub.Subscribe(client, "ws-1")

	hub.mu.RLock()
	_, ok := hub.byWorkspaceID["ws-1"][client]
	hub.mu.RUnlock()
	assert.True(t, ok)
}

func TestHub_BroadcastReachesSubscribedClientOnly(t *testing.T) {
	hub := NewHub(testLogger())
	go hub.Run()

	subscribed := &Client{hub: hub, id: "subscribed", subs: NewSubscriptions(), send: make(chan *WSEvent, sendBufferSize)}
	unrelated := &Client{hub: hub, id: "unrelated", subs: NewSubscriptions(), send: make(chan *WSEvent, sendBufferSize)}

	hub.register <- subscribed
	hub.register <- unrelated
	time.Sleep(10 * time.Millisecond)

	hub.Subscribe(subscribed, "ws-1")

	hub.Broadcast("ws-1", &WSEvent{Type: EventDesignEvaluated, WorkspaceID: "ws-1"})
	time.Sleep(10 * time.Millisecond)

	select {
	case ev := <-subscribed.send:
		assert.Equal(t, "ws-1", ev.WorkspaceID)
	default:
		t.Fatal("expected subscribed client to receive event")
	}

	select {
	case <-unrelated.send:
		t.Fatal("unrelated client should not receive event")
	default:
	}
}

func TestHub_UnregisterClient(t *testing.T) {
	hub := NewHub(testLogger())
	go hub.Run()

	client := &Client{hub: hub, id: "client-1", subs: NewSubscriptions(), send: make(chan *WSEvent, sendBufferSize)}
	hub.register <- client
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 1, hub.ClientCount())

	hub.unregister <- client
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 0, hub.ClientCount())
}
