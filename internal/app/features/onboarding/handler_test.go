package onboarding_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	uierrors "cheermate/internal/app/features/errors"
	"cheermate/internal/app/features/onboarding"
	"cheermate/internal/app/system/auth"
	"cheermate/internal/app/system/draftcookie"
	"cheermate/internal/backend"
	"cheermate/internal/domain/models"
	"cheermate/internal/testutil"
)

const draftSecret = "draft-secret-0123456789abcdef0123456789"

func newTestRouter(t *testing.T, backendURL string) (http.Handler, *draftcookie.Store) {
	t.Helper()
	logger := zap.NewNop()
	testutil.InitSession(t)
	drafts, err := draftcookie.New(draftSecret, false)
	if err != nil {
		t.Fatalf("draftcookie.New failed: %v", err)
	}
	api := backend.New(backendURL, time.Second, logger)
	h := onboarding.NewHandler(api, drafts, uierrors.NewErrorLogger(logger), logger)
	return onboarding.Routes(h), drafts
}

// completeDraft is a draft one personality pick short of registration-ready.
func completeDraft() *models.OnboardingDraft {
	d := &models.OnboardingDraft{
		Email:    "new@example.com",
		Password: "secret1",
		Name:     "민수",
		Gender:   "남성",
	}
	codes := []string{"ENERGY", "WARMTH", "HUMOR", "DILIGENCE"}
	labels := []string{"활발한", "친근한", "유머러스한", "성실한"}
	for i := range codes {
		d.SetSelection(models.Selection{CategoryCode: codes[i], OptionLabel: labels[i], Rank: i + 1})
	}
	return d
}

func withDraft(t *testing.T, drafts *draftcookie.Store, req *http.Request, d *models.OnboardingDraft) *http.Request {
	t.Helper()
	seed := httptest.NewRecorder()
	if err := drafts.Save(seed, d); err != nil {
		t.Fatalf("seed draft: %v", err)
	}
	for _, c := range seed.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func postForm(router http.Handler, target string, form url.Values, seed func(*http.Request) *http.Request) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if seed != nil {
		req = seed(req)
	}
	rec := httptest.NewRecorder()
	func() {
		defer func() { recover() }()
		router.ServeHTTP(rec, req)
	}()
	return rec
}

func TestServeStart_RedirectsToFirstStep(t *testing.T) {
	router, _ := newTestRouter(t, "http://127.0.0.1:0")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/onboarding/email-password" {
		t.Errorf("Location: got %q, want %q", loc, "/onboarding/email-password")
	}
}

func TestServeStep_UnknownSegmentResetsToFirst(t *testing.T) {
	router, _ := newTestRouter(t, "http://127.0.0.1:0")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/step-99", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/onboarding/email-password" {
		t.Errorf("Location: got %q, want %q", loc, "/onboarding/email-password")
	}
}

func TestHandleCredentials_SavesDraftAndAdvances(t *testing.T) {
	router, drafts := newTestRouter(t, "http://127.0.0.1:0")

	rec := postForm(router, "/email-password", url.Values{
		"email":            {"  NEW@Example.com "},
		"password":         {"secret1"},
		"password_confirm": {"secret1"},
	}, nil)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/onboarding/name-gender" {
		t.Errorf("Location: got %q, want %q", loc, "/onboarding/name-gender")
	}

	// Round-trip the cookie: the draft must resume with normalized values.
	next := httptest.NewRequest("GET", "/onboarding/name-gender", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	d := drafts.Load(next)
	if d.Email != "new@example.com" {
		t.Errorf("draft email = %q, want %q", d.Email, "new@example.com")
	}
	if d.Password != "secret1" {
		t.Errorf("draft password not persisted")
	}
}

func TestHandleCredentials_ShortPasswordStays(t *testing.T) {
	router, _ := newTestRouter(t, "http://127.0.0.1:0")

	rec := postForm(router, "/email-password", url.Values{
		"email":            {"new@example.com"},
		"password":         {"tiny"},
		"password_confirm": {"tiny"},
	}, nil)

	if rec.Code == http.StatusSeeOther {
		t.Error("short password must not advance the wizard")
	}
}

func TestHandleCredentials_MismatchStays(t *testing.T) {
	router, _ := newTestRouter(t, "http://127.0.0.1:0")

	rec := postForm(router, "/email-password", url.Values{
		"email":            {"new@example.com"},
		"password":         {"secret1"},
		"password_confirm": {"secret2"},
	}, nil)

	if rec.Code == http.StatusSeeOther {
		t.Error("mismatched passwords must not advance the wizard")
	}
}

func TestHandleIdentity_Advances(t *testing.T) {
	router, drafts := newTestRouter(t, "http://127.0.0.1:0")

	seed := func(req *http.Request) *http.Request {
		return withDraft(t, drafts, req, &models.OnboardingDraft{Email: "new@example.com", Password: "secret1"})
	}
	rec := postForm(router, "/name-gender", url.Values{
		"name":   {"민수"},
		"gender": {"남성"},
	}, seed)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/onboarding/personality-1" {
		t.Errorf("Location: got %q, want %q", loc, "/onboarding/personality-1")
	}
}

func TestComplete_RegistersAndSignsIn(t *testing.T) {
	var payload map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/members/register", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("register payload: %v", err)
		}
	})
	mux.HandleFunc("POST /api/members/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "fresh"})
		_, _ = w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	router, drafts := newTestRouter(t, srv.URL)

	seed := func(req *http.Request) *http.Request {
		return withDraft(t, drafts, req, completeDraft())
	}
	rec := postForm(router, "/personality-5", url.Values{"option": {"논리적인"}}, seed)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location: got %q, want %q", loc, "/")
	}

	if payload["gender"] != "male" {
		t.Errorf("gender = %v, want male (wire enum, not label)", payload["gender"])
	}
	if nick, present := payload["nickname"]; !present || nick != nil {
		t.Errorf("nickname = %v, want explicit null", payload["nickname"])
	}
	if sels, _ := payload["selections"].([]any); len(sels) != models.SelectionCount {
		t.Errorf("selections length = %d, want %d", len(sels), models.SelectionCount)
	}

	var sawSession, clearedDraft bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionName && c.Value != "" {
			sawSession = true
		}
		if c.Name == draftcookie.CookieName && c.MaxAge < 0 {
			clearedDraft = true
		}
	}
	if !sawSession {
		t.Error("expected a signed-in session cookie")
	}
	if !clearedDraft {
		t.Error("expected the draft cookie to be cleared")
	}
}

func TestComplete_AutoLoginFailureLandsOnLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/members/register", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("POST /api/members/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	router, drafts := newTestRouter(t, srv.URL)

	seed := func(req *http.Request) *http.Request {
		return withDraft(t, drafts, req, completeDraft())
	}
	rec := postForm(router, "/personality-5", url.Values{"option": {"논리적인"}}, seed)

	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location: got %q, want %q", loc, "/login")
	}
	clearedDraft := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == draftcookie.CookieName && c.MaxAge < 0 {
			clearedDraft = true
		}
	}
	if !clearedDraft {
		t.Error("draft must be cleared even when auto-login fails")
	}
}

func TestComplete_DuplicateEmailReturnsToFirstStep(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/members/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "이미 가입된 이메일입니다."})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	router, drafts := newTestRouter(t, srv.URL)

	seed := func(req *http.Request) *http.Request {
		return withDraft(t, drafts, req, completeDraft())
	}
	rec := postForm(router, "/personality-5", url.Values{"option": {"논리적인"}}, seed)

	// The handler re-renders the email step rather than redirecting; without
	// booted templates the render panics, so only assert it didn't succeed.
	if loc := rec.Header().Get("Location"); loc == "/" || loc == "/login" {
		t.Errorf("duplicate email must not complete onboarding, got redirect to %q", loc)
	}
}

func TestSkipOnFinalStepFailsValidation(t *testing.T) {
	registerCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/members/register", func(w http.ResponseWriter, r *http.Request) {
		registerCalls++
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	router, drafts := newTestRouter(t, srv.URL)

	seed := func(req *http.Request) *http.Request {
		return withDraft(t, drafts, req, completeDraft())
	}
	rec := postForm(router, "/personality-5", url.Values{"action": {"skip"}}, seed)

	if registerCalls != 0 {
		t.Error("an incomplete draft must never reach the registration endpoint")
	}
	if rec.Code == http.StatusSeeOther {
		t.Error("skipping the final pick must not complete onboarding")
	}
}
