package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandler(t *testing.T) {
	logger := testLogger()
	hub := NewHub(logger)
	auth := NewNoAuth()

	handler := NewHandler(hub, auth, logger)

	assert.Equal(t, hub, handler.hub)
	assert.Equal(t, auth, handler.auth)
	assert.Equal(t, logger, handler.logger)
}

func TestHandler_ServeHTTP_Success(t *testing.T) {
	hub := NewHub(testLogger())
	go hub.Run()
	time.Sleep(10 * time.Millisecond)

	handler := NewHandler(hub, NewNoAuth(), testLogger())
	server := httptest.NewServer(handler)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, hub.ClientCount())
}

type failingAuth struct{}

func (failingAuth) Authenticate(r *http.Request) (string, error) {
	return "", assert.AnError
}

func TestHandler_ServeHTTP_AuthenticationFailed(t *testing.T) {
	hub := NewHub(testLogger())
	go hub.Run()
	time.Sleep(10 * time.Millisecond)

	handler := NewHandler(hub, failingAuth{}, testLogger())
	server := httptest.NewServer(handler)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)

	assert.Error(t, err)
	assert.Nil(t, conn)
	if resp != nil {
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, hub.ClientCount())
}
