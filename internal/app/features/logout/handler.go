// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"go.uber.org/zap"

	"cheermate/internal/app/system/auth"
	"cheermate/internal/app/system/timeouts"
	"cheermate/internal/backend"
)

type Handler struct {
	API *backend.Client
	Log *zap.Logger
}

func NewHandler(api *backend.Client, logger *zap.Logger) *Handler {
	return &Handler{API: api, Log: logger}
}

// ServeLogout ends both sessions: the upstream one at the praise service and
// the browser one. The upstream call is best-effort; the browser session is
// cleared no matter what.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if cookie := auth.UpstreamCookie(r); cookie != "" {
		ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "logout")
		auth.LogoutUpstream(ctx, h.API, cookie, h.Log)
		cancel()
	}

	if err := auth.SignOut(w, r); err != nil {
		h.Log.Error("clear session on logout", zap.Error(err))
	}

	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
