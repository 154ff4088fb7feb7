package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samudev/portfolio-backend/auth"
)

type stubProvider struct {
	initial   *auth.Principal
	initDelay time.Duration
}

func (p *stubProvider) OnStateChange(callback auth.StateCallback) {
	if p.initDelay > 0 {
		go func() {
			time.Sleep(p.initDelay)
			callback(p.initial)
		}()
		return
	}
	callback(p.initial)
}

func (p *stubProvider) SignIn(ctx context.Context, email, secret string) (*auth.Principal, error) {
	return &auth.Principal{Email: email}, nil
}

func (p *stubProvider) SignOut(ctx context.Context) error { return nil }

var gateSecret = []byte("gate-test-secret")

func gateFor(provider auth.Provider, admins []string) accessGate {
	return newAccessGate(auth.NewSession(provider, admins), gateSecret)
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func denialBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGateDeniesWithoutToken(t *testing.T) {
	provider := &stubProvider{initial: &auth.Principal{Email: "admin@example.com"}}
	gate := gateFor(provider, []string{"admin@example.com"})
	next, called := okHandler()

	req := httptest.NewRequest(http.MethodDelete, "/project/p-1?confirm=yes", nil)
	rec := httptest.NewRecorder()
	gate.requireAdmin(next).ServeHTTP(rec, req)

	assert.False(t, *called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	body := denialBody(t, rec)
	assert.Equal(t, "denied", body["status"])
	assert.Equal(t, "/auth/login", body["loginUrl"])
	assert.Equal(t, "/project/p-1?confirm=yes", body["returnUrl"])
}

func TestGateDeniesNonAdminPrincipal(t *testing.T) {
	provider := &stubProvider{initial: &auth.Principal{Email: "visitor@example.com"}}
	gate := gateFor(provider, []string{"admin@example.com"})
	next, called := okHandler()

	token, err := auth.GenerateToken("visitor@example.com", gateSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/project", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gate.requireAdmin(next).ServeHTTP(rec, req)

	assert.False(t, *called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "denied", denialBody(t, rec)["status"])
}

func TestGateDeniesTokenForDifferentPrincipal(t *testing.T) {
	provider := &stubProvider{initial: &auth.Principal{Email: "admin@example.com"}}
	gate := gateFor(provider, []string{"admin@example.com", "other@example.com"})
	next, called := okHandler()

	token, err := auth.GenerateToken("other@example.com", gateSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/project", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gate.requireAdmin(next).ServeHTTP(rec, req)

	assert.False(t, *called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGateWaitsForDelayedInitialization(t *testing.T) {
	provider := &stubProvider{
		initial:   &auth.Principal{Email: "admin@example.com"},
		initDelay: 200 * time.Millisecond,
	}
	gate := gateFor(provider, []string{"admin@example.com"})
	next, called := okHandler()

	token, err := auth.GenerateToken("admin@example.com", gateSecret, time.Hour)
	require.NoError(t, err)

	// the request arrives before the session knows who is signed in; the
	// gate must wait out initialization rather than deny early
	req := httptest.NewRequest(http.MethodPost, "/project", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gate.requireAdmin(next).ServeHTTP(rec, req)

	assert.True(t, *called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGateDeniesWhenInitializationOutlivesRequest(t *testing.T) {
	provider := &stubProvider{
		initial:   &auth.Principal{Email: "admin@example.com"},
		initDelay: time.Minute,
	}
	gate := gateFor(provider, []string{"admin@example.com"})
	next, called := okHandler()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest(http.MethodPost, "/project", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	gate.requireAdmin(next).ServeHTTP(rec, req)

	assert.False(t, *called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDenyDefaultsToUnauthorized(t *testing.T) {
	gate := gateFor(&stubProvider{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/project/p-1", nil)
	rec := httptest.NewRecorder()
	gate.deny(rec, req, errors.New("boom"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	body := denialBody(t, rec)
	assert.Equal(t, "unauthorized", body["error"])
	assert.Equal(t, "denied", body["status"])
}

func TestGatePassesPrincipalToHandler(t *testing.T) {
	provider := &stubProvider{initial: &auth.Principal{Email: "admin@example.com"}}
	gate := gateFor(provider, []string{"admin@example.com"})

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ctxPrincipalEmail(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	token, err := auth.GenerateToken("admin@example.com", gateSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/project", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	gate.requireAdmin(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin@example.com", seen)
}
