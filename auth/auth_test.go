package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	p := NewTokenProvider("secret", time.Hour)

	token, err := p.Issue(42, "karl")
	require.NoError(t, err)

	id, err := p.Parse(token)
	require.NoError(t, err)
	require.Equal(t, uint(42), id.UserID)
	require.Equal(t, "karl", id.Username)
}

func TestTokenExpired(t *testing.T) {
	p := NewTokenProvider("secret", -time.Minute)

	token, err := p.Issue(42, "karl")
	require.NoError(t, err)

	_, err = p.Parse(token)
	require.Error(t, err)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenProvider("secret-a", time.Hour).Issue(42, "karl")
	require.NoError(t, err)

	_, err = NewTokenProvider("secret-b", time.Hour).Parse(token)
	require.Error(t, err)
}

func TestMiddlewareAndRequireAuth(t *testing.T) {
	p := NewTokenProvider("secret", time.Hour)
	token, err := p.Issue(7, "karl")
	require.NoError(t, err)

	var seen Identity
	var present bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, present = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := p.Middleware(RequireAuth(inner))

	// valid token reaches the handler with the identity attached
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, present)
	require.Equal(t, uint(7), seen.UserID)

	// no token
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	// garbage token
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	// wrong scheme
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic abc")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}
