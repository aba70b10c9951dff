package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, ttl time.Duration) *Service {
	t.Helper()
	svc, err := NewService("hunter2", "test-secret", ttl)
	require.NoError(t, err)
	return svc
}

func TestNewService_RequiresConfiguration(t *testing.T) {
	_, err := NewService("", "secret", time.Hour)
	require.Error(t, err)
	_, err = NewService("password", "", time.Hour)
	require.Error(t, err)
}

func TestLogin_TokenRoundTrip(t *testing.T) {
	svc := newTestService(t, time.Hour)

	token, err := svc.Login("hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NoError(t, svc.Verify(token))
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(t, time.Hour)

	_, err := svc.Login("letmein")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerify_RejectsGarbageAndForeignTokens(t *testing.T) {
	svc := newTestService(t, time.Hour)
	require.ErrorIs(t, svc.Verify("not-a-token"), ErrInvalidToken)

	other, err := NewService("hunter2", "different-secret", time.Hour)
	require.NoError(t, err)
	foreign, err := other.Login("hunter2")
	require.NoError(t, err)
	require.ErrorIs(t, svc.Verify(foreign), ErrInvalidToken)
}

func TestVerify_RejectsExpiredToken(t *testing.T) {
	svc := newTestService(t, -time.Minute)
	token, err := svc.Login("hunter2")
	require.NoError(t, err)
	require.ErrorIs(t, svc.Verify(token), ErrInvalidToken)
}

func TestRequireAdmin(t *testing.T) {
	svc := newTestService(t, time.Hour)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	protected := svc.RequireAdmin(next)

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "missing header is rejected")

	token, err := svc.Login("hunter2")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", token) // missing Bearer prefix
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
