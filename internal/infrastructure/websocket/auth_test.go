package websocket

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthenticator_Interface(t *testing.T) {
	var _ Authenticator = (*HeaderAuth)(nil)
	var _ Authenticator = (*NoAuth)(nil)
}

func TestHeaderAuth_ReadsConfiguredHeader(t *testing.T) {
	a := NewHeaderAuth("X-User-ID")
	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("X-User-ID", "user-42")

	userID, err := a.Authenticate(r)
	assert.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestHeaderAuth_MissingHeaderFallsBackToAnonymous(t *testing.T) {
	a := NewHeaderAuth("")
	r := httptest.NewRequest(http.MethodGet, "/ws", nil)

	userID, err := a.Authenticate(r)
	assert.NoError(t, err)
	assert.Equal(t, "anonymous", userID)
}

func TestNoAuth_PrefersQueryParam(t *testing.T) {
	a := NewNoAuth()
	r := httptest.NewRequest(http.MethodGet, "/ws?user_id=dev-user", nil)

	userID, err := a.Authenticate(r)
	assert.NoError(t, err)
	assert.Equal(t, "dev-user", userID)
}
