package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/middleware"
)

const testSecret = "test-secret-do-not-use"

func authMiddleware() func(http.Handler) http.Handler {
	verifier := middleware.NewTokenVerifier(testSecret)
	return middleware.RequireAuth(verifier, slog.New(slog.DiscardHandler))
}

// echoOwnerHandler writes the owner ID extracted from the request context.
var echoOwnerHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	io.WriteString(w, middleware.GetOwnerID(r.Context()))
})

func TestRequireAuth_ValidToken(t *testing.T) {
	verifier := middleware.NewTokenVerifier(testSecret)
	token, err := verifier.Sign("user-1", "me@example.com", time.Hour)
	require.NoError(t, err)

	h := authMiddleware()(echoOwnerHandler)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Body.String())
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	h := authMiddleware()(echoOwnerHandler)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	h := authMiddleware()(echoOwnerHandler)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	other := middleware.NewTokenVerifier("some-other-secret")
	token, err := other.Sign("user-1", "", time.Hour)
	require.NoError(t, err)

	h := authMiddleware()(echoOwnerHandler)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	verifier := middleware.NewTokenVerifier(testSecret)
	token, err := verifier.Sign("user-1", "", -time.Minute)
	require.NoError(t, err)

	h := authMiddleware()(echoOwnerHandler)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenVerifier_RejectsEmptySubject(t *testing.T) {
	verifier := middleware.NewTokenVerifier(testSecret)
	token, err := verifier.Sign("", "", time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)

	assert.Error(t, err)
}
