// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"cheermate/internal/app/resources"
)

// Startup runs one-time application initialization after the backend client
// is built, but before the HTTP handler. It is the place to load shared
// resources (like templates) or perform any app-wide setup that depends on
// config and backends.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()
	return nil
}
