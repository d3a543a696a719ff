package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"cheermate/internal/backend"
	"cheermate/internal/domain/models"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session constants & globals                                                |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	SessionName = "cheermate-session"

	upstreamKey = "upstream_cookie"
	clubKey     = "selected_club"
)

// Store is initialised once via InitSessionStore.
var Store *sessions.CookieStore

/*─────────────────────────────────────────────────────────────────────────────*
| Current-Viewer helper                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// Viewer is the signed-in member plus the backend session bound to their
// upstream cookie. The profile is fetched fresh on every request, so the
// user here is never staler than the page it renders.
type Viewer struct {
	User *models.User
	API  *backend.Session
}

type ctxKey string

const viewerKey ctxKey = "viewer"

// CurrentViewer returns the viewer & “found?” flag.
func CurrentViewer(r *http.Request) (*Viewer, bool) {
	v, ok := r.Context().Value(viewerKey).(*Viewer)
	return v, ok
}

// CurrentUser returns just the signed-in member.
func CurrentUser(r *http.Request) (*models.User, bool) {
	if v, ok := CurrentViewer(r); ok {
		return v.User, true
	}
	return nil, false
}

/*─────────────────────────────────────────────────────────────────────────────*
| Session writes                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// SignIn stores the upstream session cookie captured at login. Everything
// else about the member is refetched per request, so this is the only
// credential the browser session holds.
func SignIn(w http.ResponseWriter, r *http.Request, upstreamCookie string) error {
	sess, _ := Store.Get(r, SessionName)
	sess.Values[upstreamKey] = upstreamCookie
	delete(sess.Values, clubKey)
	return sess.Save(r, w)
}

// SignOut clears the browser session.
func SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := Store.Get(r, SessionName)
	sess.Options.MaxAge = -1
	sess.Values = map[any]any{}
	return sess.Save(r, w)
}

// SelectClub remembers the member's active club for this browser session.
func SelectClub(w http.ResponseWriter, r *http.Request, clubID string) error {
	sess, _ := Store.Get(r, SessionName)
	sess.Values[clubKey] = clubID
	return sess.Save(r, w)
}

// UpstreamCookie returns the stored upstream session cookie, if any.
func UpstreamCookie(r *http.Request) string {
	if Store == nil {
		return ""
	}
	sess, _ := Store.Get(r, SessionName)
	return getString(sess, upstreamKey)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// publicPrefixes are reachable without a signed-in member. A 401 from the
// profile fetch on these paths stays silent: the request proceeds anonymous
// instead of bouncing to /login.
var publicPrefixes = []string{
	"/login",
	"/onboarding",
	"/health",
	"/static/",
	"/favicon",
}

func isPublicPath(path string) bool {
	for _, p := range publicPrefixes {
		if path == strings.TrimSuffix(p, "/") || strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// authBypass suppresses the 401 redirect; local dev against a cold backend.
var authBypass bool

// SetAuthBypass toggles bypass mode. Set once at startup from config.
func SetAuthBypass(on bool) { authBypass = on }

// LoadSessionUser fetches the member behind the stored upstream cookie and
// injects a Viewer into r.Context(). Public paths never touch the backend.
// An expired upstream session (401) is handled silently: the browser session
// is cleared and the request is redirected to /login, unless bypass mode is
// on. Any other fetch failure keeps the session and stops the request at
// onError, which renders the failure to the user; a nil onError answers with
// a plain 502. If the session store has not been initialized yet, it is a
// no-op.
func LoadSessionUser(api *backend.Client, onError func(http.ResponseWriter, *http.Request, error), logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if Store == nil || isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			sess, _ := Store.Get(r, SessionName)
			cookie := getString(sess, upstreamKey)
			if cookie == "" {
				next.ServeHTTP(w, r)
				return
			}

			api := api.WithAuth(cookie)
			user, err := api.Me(r.Context())
			if err != nil {
				if backend.IsUnauthenticated(err) {
					sess.Options.MaxAge = -1
					sess.Values = map[any]any{}
					_ = sess.Save(r, w)
					if authBypass {
						next.ServeHTTP(w, r)
						return
					}
					redirectToLogin(w, r)
					return
				}
				logger.Warn("profile fetch failed",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				if onError != nil {
					onError(w, r, err)
					return
				}
				http.Error(w, "서비스에 일시적인 문제가 발생했습니다.", http.StatusBadGateway)
				return
			}

			user.SelectedClubID = getString(sess, clubKey)
			user.Normalize()

			r = withViewer(r, &Viewer{User: user, API: api})
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSignedIn ensures there is a viewer in context (set by LoadSessionUser).
// If not signed in:
//   - HTMX: sends HX-Redirect to /login?return=...
//   - HTML: 303 redirect to /login?return=...
//   - API:  401 Unauthorized with a plain error body.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentViewer(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		redirectToLogin(w, r)
	})
}

// RequireClubMember ensures the viewer belongs to at least one club; members
// without a club are sent to club search to find or found one.
func RequireClubMember(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := CurrentUser(r)
		if !ok {
			redirectToLogin(w, r)
			return
		}
		if len(u.Clubs) == 0 {
			if r.Header.Get("HX-Request") == "true" {
				w.Header().Set("HX-Redirect", "/clubs/search")
				w.WriteHeader(http.StatusForbidden)
				return
			}
			http.Redirect(w, r, "/clubs/search", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	ret := url.QueryEscape(currentURI(r))

	// HTMX: full-page client redirect (no partial swap)
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login?return="+ret)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if wantsHTML(r) {
		http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
		return
	}

	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

// InitSessionStore initializes the global session Store using the provided
// session key and domain. The `secure` flag controls whether cookies are
// marked Secure and which SameSite mode is used.
//
// In production (secure=true), cookies should be Secure + SameSite=None
// (for cross-site use with HTTPS).
// In local dev over http://localhost, use secure=false so cookies are accepted.
func InitSessionStore(sessionKey, domain string, secure bool, logger *zap.Logger) error {
	if sessionKey == "" {
		return fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}

	// SameSite handling: in prod with Secure cookies, we use None
	// so cookies can be sent in cross-site contexts. In dev, Lax is fine.
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}

	store.Options = opts
	Store = store

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return nil
}

// helpers

func withViewer(r *http.Request, v *Viewer) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), viewerKey, v))
}

// WithTestViewer injects a viewer for handler tests.
func WithTestViewer(r *http.Request, v *Viewer) *http.Request {
	return withViewer(r, v)
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	// Very light heuristic: treat it as HTML if it's HTMX or Accepts text/html.
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html")
}

func currentURI(r *http.Request) string {
	// Preserve path + query as a return param.
	u := *r.URL
	return u.RequestURI()
}
