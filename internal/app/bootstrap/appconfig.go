// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//
// AppConfig is where you put everything specific to YOUR application.
// Cheermate has no database of its own; all state lives in the praise
// service, so the config surface is the backend endpoint plus cookie keys.
type AppConfig struct {
	// Praise service connection
	BackendBaseURL string        // Base URL of the praise REST service (no trailing /api)
	BackendTimeout time.Duration // Per-call timeout for backend requests

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionDomain string // Cookie domain (blank means current host)

	// CSRF protection
	CSRFKey string // 32-byte key for form CSRF tokens

	// AuthBypass suppresses the 401 login redirect. Local development only.
	AuthBypass bool
}
