// Package testutil carries the shared scaffolding for handler tests: session
// store setup and chi request helpers.
package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cheermate/internal/app/system/auth"
)

// SessionKey is the signing key every handler test boots the session store
// with. Long enough to satisfy the production length check.
const SessionKey = "test-session-key-0123456789abcdef01234567"

// InitSession boots the cookie session store for a test. Fails the test on
// error rather than returning one.
func InitSession(t *testing.T) {
	t.Helper()
	if err := auth.InitSessionStore(SessionKey, "", false, zap.NewNop()); err != nil {
		t.Fatalf("InitSessionStore failed: %v", err)
	}
}

// FakeBackend serves mux as a stand-in praise service and closes it when
// the test finishes.
func FakeBackend(t *testing.T, mux http.Handler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that call a handler method directly instead of
// going through the feature router.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
