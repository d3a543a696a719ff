package ranking_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	uierrors "cheermate/internal/app/features/errors"
	"cheermate/internal/app/features/ranking"
	"cheermate/internal/app/system/auth"
	"cheermate/internal/backend"
	"cheermate/internal/domain/models"
	"cheermate/internal/testutil"
)

func newTestHandler(t *testing.T) *ranking.Handler {
	t.Helper()
	logger := zap.NewNop()
	testutil.InitSession(t)
	return ranking.NewHandler(uierrors.NewErrorLogger(logger), logger)
}

func TestServePage_FetchesAllLists(t *testing.T) {
	var board, global, clubs, clubSent atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/ranking", func(w http.ResponseWriter, r *http.Request) {
		board.Add(1)
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	})
	mux.HandleFunc("GET /api/rankings/global/sent", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "10" {
			t.Errorf("global limit = %q, want 10", r.URL.Query().Get("limit"))
		}
		global.Add(1)
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	})
	mux.HandleFunc("GET /api/rankings/clubs/sent", func(w http.ResponseWriter, r *http.Request) {
		clubs.Add(1)
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	})
	mux.HandleFunc("GET /api/rankings/clubs/3/sent", func(w http.ResponseWriter, r *http.Request) {
		clubSent.Add(1)
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	h := newTestHandler(t)
	api := backend.New(srv.URL, time.Second, zap.NewNop())
	viewer := &auth.Viewer{
		User: &models.User{ID: 7, Clubs: []models.Club{{ID: 3, Name: "체스 동아리"}}},
		API:  api.WithAuth("JSESSIONID=t"),
	}

	req := auth.WithTestViewer(httptest.NewRequest("GET", "/ranking", nil), viewer)
	rec := httptest.NewRecorder()
	func() {
		defer func() { recover() }()
		h.ServePage(rec, req)
	}()

	if board.Load() != 1 || global.Load() != 1 || clubs.Load() != 1 || clubSent.Load() != 1 {
		t.Errorf("fetches = board %d, global %d, clubs %d, clubSent %d; want 1 each",
			board.Load(), global.Load(), clubs.Load(), clubSent.Load())
	}
}

func TestServePage_ClublessSkipsClubList(t *testing.T) {
	var clubSent atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/rankings/global/sent", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	})
	mux.HandleFunc("GET /api/rankings/clubs/sent", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	})
	mux.HandleFunc("GET /api/rankings/clubs/", func(w http.ResponseWriter, r *http.Request) {
		clubSent.Add(1)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	h := newTestHandler(t)
	api := backend.New(srv.URL, time.Second, zap.NewNop())
	viewer := &auth.Viewer{
		User: &models.User{ID: 7},
		API:  api.WithAuth("JSESSIONID=t"),
	}

	req := auth.WithTestViewer(httptest.NewRequest("GET", "/ranking", nil), viewer)
	rec := httptest.NewRecorder()
	func() {
		defer func() { recover() }()
		h.ServePage(rec, req)
	}()

	if clubSent.Load() != 0 {
		t.Error("a clubless member must not trigger a per-club ranking fetch")
	}
}

func TestPodiumOrder(t *testing.T) {
	entries := []models.RankingEntry{
		{Rank: 1, Name: "일등"},
		{Rank: 2, Name: "이등"},
		{Rank: 3, Name: "삼등"},
	}
	got := ranking.PodiumOrder(entries)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Name != "이등" || got[1].Name != "일등" || got[2].Name != "삼등" {
		t.Errorf("order = %s, %s, %s; want 이등, 일등, 삼등", got[0].Name, got[1].Name, got[2].Name)
	}
}

func TestPodiumOrder_TooFewEntries(t *testing.T) {
	entries := []models.RankingEntry{{Rank: 1, Name: "일등"}}
	if got := ranking.PodiumOrder(entries); got != nil {
		t.Errorf("podium = %v, want nil for fewer than three entries", got)
	}
}
