// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"cheermate/internal/app/system/inputval"
)

// appConfigKeys defines the configuration keys for Cheermate.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: backend_base_url, session_key, etc.
//   - Environment variables: CHEERMATE_BACKEND_BASE_URL, CHEERMATE_SESSION_KEY, etc.
//   - Command-line flags: --backend_base_url, --session_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "backend_base_url", Default: "http://localhost:8080", Desc: "Base URL of the praise service"},
	{Name: "backend_timeout", Default: "10s", Desc: "Per-call timeout for praise service requests"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	{Name: "csrf_key", Default: "dev-only-csrf-key-0123456789ABCDEF!!", Desc: "CSRF token key (first 32 bytes used)"},

	{Name: "auth_bypass", Default: false, Desc: "Suppress the 401 login redirect (local development only)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, CHEERMATE_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CHEERMATE", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		BackendBaseURL: appValues.String("backend_base_url"),
		BackendTimeout: appValues.Duration("backend_timeout", 10*time.Second),

		SessionKey:    appValues.String("session_key"),
		SessionDomain: appValues.String("session_domain"),

		CSRFKey: appValues.String("csrf_key"),

		AuthBypass: appValues.Bool("auth_bypass"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if !inputval.IsValidHTTPURL(appCfg.BackendBaseURL) {
		logger.Error("invalid backend base URL", zap.String("backend_base_url", appCfg.BackendBaseURL))
		return fmt.Errorf("backend_base_url must be an absolute http(s) URL, got %q", appCfg.BackendBaseURL)
	}
	if appCfg.BackendTimeout <= 0 {
		return fmt.Errorf("backend_timeout must be positive, got %s", appCfg.BackendTimeout)
	}
	if len(appCfg.SessionKey) < 32 {
		return fmt.Errorf("session_key must be at least 32 bytes")
	}
	if len(appCfg.CSRFKey) < 32 {
		return fmt.Errorf("csrf_key must be at least 32 bytes")
	}
	if coreCfg.Env == "prod" && appCfg.AuthBypass {
		return fmt.Errorf("auth_bypass must not be enabled in prod")
	}
	return nil
}
