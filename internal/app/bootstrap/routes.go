// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"

	clubsfeature "cheermate/internal/app/features/clubs"
	errorsfeature "cheermate/internal/app/features/errors"
	healthfeature "cheermate/internal/app/features/health"
	homefeature "cheermate/internal/app/features/home"
	loginfeature "cheermate/internal/app/features/login"
	logoutfeature "cheermate/internal/app/features/logout"
	notificationsfeature "cheermate/internal/app/features/notifications"
	onboardingfeature "cheermate/internal/app/features/onboarding"
	praisefeature "cheermate/internal/app/features/praise"
	profilefeature "cheermate/internal/app/features/profile"
	rankingfeature "cheermate/internal/app/features/ranking"
	"cheermate/internal/app/system/auth"
	"cheermate/internal/app/system/draftcookie"

	// Template registration happens in each feature's views init.
	_ "cheermate/internal/app/features/clubs/views"
	_ "cheermate/internal/app/features/home/views"
	_ "cheermate/internal/app/features/login/views"
	_ "cheermate/internal/app/features/notifications/views"
	_ "cheermate/internal/app/features/onboarding/views"
	_ "cheermate/internal/app/features/praise/views"
	_ "cheermate/internal/app/features/profile/views"
	_ "cheermate/internal/app/features/ranking/views"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration and the Startup hook have completed.
// At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: the praise service client bundled in Deps
//   - logger: the fully configured zap.Logger for this app
//
// Cheermate initializes the session store and template engine, applies CSRF
// and session middleware, and mounts feature routers for the member-facing
// flows: login, onboarding, clubs, praise, ranking, notifications, profile.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}
	auth.SetAuthBypass(appCfg.AuthBypass)

	// Onboarding drafts ride in their own signed cookie.
	drafts, err := draftcookie.New(appCfg.SessionKey, secure)
	if err != nil {
		logger.Error("draft cookie store init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// CSRF tokens for every form; the praise service itself is protected by
	// its own session cookie, this guards the HTML surface.
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey)[:32],
		csrf.Secure(secure),
		csrf.Path("/"),
	))

	// Global auth middleware: resolves the upstream session into a viewer so
	// handlers can use auth.CurrentViewer(r). An expired session redirects to
	// /login; a backend outage keeps the session and shows the error page.
	sessionLoadFailed := func(w http.ResponseWriter, r *http.Request, _ error) {
		errorsfeature.RenderError(w, r,
			"서비스에 일시적인 문제가 발생했습니다. 잠시 후 다시 시도해주세요.", "/")
	}
	r.Use(auth.LoadSessionUser(deps.API, sessionLoadFailed, logger))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.API, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.API, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(deps.API, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	onboardingHandler := onboardingfeature.NewHandler(deps.API, drafts, errLog, logger)
	r.Mount("/onboarding", onboardingfeature.Routes(onboardingHandler))

	// Member-facing pages
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	clubsHandler := clubsfeature.NewHandler(deps.API, errLog, logger)
	r.Mount("/clubs", clubsfeature.Routes(clubsHandler))

	praiseHandler := praisefeature.NewHandler(deps.API, errLog, logger)
	r.Mount("/praise", praisefeature.Routes(praiseHandler))

	rankingHandler := rankingfeature.NewHandler(errLog, logger)
	r.Mount("/ranking", rankingfeature.Routes(rankingHandler))

	notificationsHandler := notificationsfeature.NewHandler(deps.API, errLog, logger)
	r.Mount("/notifications", notificationsfeature.Routes(notificationsHandler))

	profileHandler := profilefeature.NewHandler(errLog, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)

	return r, nil
}
