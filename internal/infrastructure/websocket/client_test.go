package websocket

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	hub := NewHub(testLogger())
	client := NewClient("client-1", hub, nil)

	assert.Equal(t, "client-1", client.id)
	assert.Equal(t, hub, client.hub)
	assert.NotNil(t, client.send)
	assert.NotNil(t, client.subs)
}

func TestClient_SubscribeCommandOverTheWire(t *testing.T) {
	hub := NewHub(testLogger())
	go hub.Run()
	time.Sleep(10 * time.Millisecond)

	handler := NewHandler(hub, NewNoAuth(), testLogger())
	server := httptest.NewServer(handler)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	cmd := WSCommand{Action: CmdSubscribe, WorkspaceID: "ws-1"}
	require.NoError(t, conn.WriteJSON(cmd))

	var resp WSResponse
	require.NoError(t, conn.ReadJSON(&resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Message, "ws-1")
}

func TestClient_SubscribeWithoutWorkspaceIDFails(t *testing.T) {
	hub := NewHub(testLogger())
	go hub.Run()
	time.Sleep(10 * time.Millisecond)

	handler := NewHandler(hub, NewNoAuth(), testLogger())
	server := httptest.NewServer(handler)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(WSCommand{Action: CmdSubscribe}))

	var resp WSResponse
	require.NoError(t, conn.ReadJSON(&resp))
	assert.False(t, resp.Success)
}

func TestClient_InvalidCommandFormat(t *testing.T) {
	hub := NewHub(testLogger())
	go hub.Run()
	time.Sleep(10 * time.Millisecond)

	handler := NewHandler(hub, NewNoAuth(), testLogger())
	server := httptest.NewServer(handler)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	var resp WSResponse
	require.NoError(t, conn.ReadJSON(&resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}
