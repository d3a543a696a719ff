package home_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"cheermate/internal/app/features/home"
	"cheermate/internal/app/system/auth"
	"cheermate/internal/domain/models"
)

func TestRoutes_RequiresSignIn(t *testing.T) {
	r := home.Routes(home.NewHandler(zap.NewNop()))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?return=%2F" {
		t.Errorf("Location: got %q, want %q", loc, "/login?return=%2F")
	}
}

func TestServeRoot_SignedIn(t *testing.T) {
	h := home.NewHandler(zap.NewNop())

	user := &models.User{
		ID:   7,
		Name: "민수",
		Clubs: []models.Club{
			{ID: 3, Name: "체스 동아리", University: "한국대학교"},
		},
	}
	req := auth.WithTestViewer(httptest.NewRequest("GET", "/", nil), &auth.Viewer{User: user})
	rec := httptest.NewRecorder()

	// Rendering panics without booted templates; the handler must get as far
	// as the render call without erroring.
	func() {
		defer func() { recover() }()
		h.ServeRoot(rec, req)
	}()

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d (no redirect for a signed-in member)", rec.Code, http.StatusOK)
	}
}
