// internal/app/bootstrap/deps.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"cheermate/internal/backend"
)

// Deps holds back-end dependencies for the app. Cheermate's only backend is
// the praise service; there is no database of its own.
type Deps struct {
	API *backend.Client
}

// ConnectBackend fills the ConnectDB lifecycle slot. Construction never
// dials; the first real call surfaces connectivity problems, and /health
// checks reachability explicitly.
func ConnectBackend(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (Deps, error) {
	api := backend.New(appCfg.BackendBaseURL, appCfg.BackendTimeout, logger)
	logger.Info("praise service client ready",
		zap.String("base_url", appCfg.BackendBaseURL),
		zap.Duration("timeout", appCfg.BackendTimeout))
	return Deps{API: api}, nil
}

// EnsureSchema has nothing to do here: all persistent state is upstream.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	return nil
}
