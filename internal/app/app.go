// Package app holds process-wide state for the service.
package app

import (
	"time"

	"github.com/rs/zerolog"

	"meeting-analysis-service/internal/config"
	"meeting-analysis-service/internal/observability/logging"
)

// Application holds process-wide state for the service.
type Application struct {
	StartupTime time.Time
	Logger      zerolog.Logger
	Cfg         *config.Configuration
}

// New constructs a new Application from the provided configuration and
// initializes the global logger.
func New(cfg *config.Configuration) *Application {
	logging.Init(logging.Config{
		Level:      cfg.Observability.LogLevel,
		Format:     cfg.Observability.LogFormat,
		TimeFormat: time.RFC3339,
	})

	a := &Application{
		Cfg:    cfg,
		Logger: logging.WithComponent("application"),
	}

	a.Logger.Info().
		Str("service", cfg.Service.Name).
		Str("logLevel", cfg.Observability.LogLevel).
		Msg("Meeting analysis service application created")
	return a
}

// Start performs any startup work required before serving traffic.
func (a *Application) Start() error {
	a.StartupTime = time.Now().UTC()
	a.Logger.Info().
		Time("startupTime", a.StartupTime).
		Msg("Meeting analysis service starting")
	return nil
}

// Shutdown performs a best-effort cleanup before process exit.
func (a *Application) Shutdown() {
	a.Logger.Info().Msg("Meeting analysis service shutting down")
}
