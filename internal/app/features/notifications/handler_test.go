package notifications_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	uierrors "cheermate/internal/app/features/errors"
	"cheermate/internal/app/features/notifications"
	"cheermate/internal/app/system/auth"
	"cheermate/internal/backend"
	"cheermate/internal/domain/models"
	"cheermate/internal/testutil"
)

func newTestRouter(t *testing.T, backendURL string) (http.Handler, *backend.Client) {
	t.Helper()
	logger := zap.NewNop()
	testutil.InitSession(t)
	api := backend.New(backendURL, time.Second, logger)
	h := notifications.NewHandler(api, uierrors.NewErrorLogger(logger), logger)
	return notifications.Routes(h), api
}

func adminViewer(api *backend.Client) *auth.Viewer {
	return &auth.Viewer{
		User: &models.User{
			ID:   1,
			Name: "회장",
			Clubs: []models.Club{
				{ID: 3, Name: "체스 동아리"},
			},
		},
		API: api.WithAuth("JSESSIONID=t"),
	}
}

func TestHandleApprove_RedirectsBackToList(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/clubs/3/members/9/approve", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(models.JoinRequest{ClubID: 3, UserID: 9, RequestStatus: models.RequestApproved})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	router, api := newTestRouter(t, srv.URL)

	req := httptest.NewRequest("POST", "/3/9/approve", nil)
	req = auth.WithTestViewer(req, adminViewer(api))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if calls.Load() != 1 {
		t.Errorf("approve calls = %d, want 1", calls.Load())
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/notifications" {
		t.Errorf("Location: got %q, want %q", loc, "/notifications")
	}
}

func TestHandleReject_RedirectsBackToList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/clubs/3/members/9/reject", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.JoinRequest{ClubID: 3, UserID: 9, RequestStatus: models.RequestRejected})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	router, api := newTestRouter(t, srv.URL)

	req := httptest.NewRequest("POST", "/3/9/reject", nil)
	req = auth.WithTestViewer(req, adminViewer(api))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
}

func TestHandleApprove_BackendFailureDoesNotRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/clubs/3/members/9/approve", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	router, api := newTestRouter(t, srv.URL)

	req := httptest.NewRequest("POST", "/3/9/approve", nil)
	req = auth.WithTestViewer(req, adminViewer(api))
	rec := httptest.NewRecorder()
	// The failure path renders the shared error page, which panics without
	// booted templates.
	func() {
		defer func() { recover() }()
		router.ServeHTTP(rec, req)
	}()

	if rec.Code == http.StatusSeeOther {
		t.Error("a failed decision must keep the member on the error page, not refetch")
	}
}

func TestServeList_CollectsAcrossClubs(t *testing.T) {
	var pendingCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/clubs/3/members", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("active") != "false" {
			t.Errorf("active = %q, want false for the pending list", r.URL.Query().Get("active"))
		}
		pendingCalls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"clubId":  3,
			"members": []map[string]any{{"userId": 9, "name": "지원자", "requestedAt": "2026-08-30T10:00:00Z"}},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	router, api := newTestRouter(t, srv.URL)

	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestViewer(req, adminViewer(api))
	rec := httptest.NewRecorder()
	func() {
		defer func() { recover() }()
		router.ServeHTTP(rec, req)
	}()

	if pendingCalls.Load() != 1 {
		t.Errorf("pending list fetches = %d, want 1 per club", pendingCalls.Load())
	}
}
