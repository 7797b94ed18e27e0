package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/flightdeck360/flightdeck/internal/cli/app"
	"github.com/flightdeck360/flightdeck/internal/cli/serverselect"
	"github.com/flightdeck360/flightdeck/internal/cli/userconfig"
	"github.com/flightdeck360/flightdeck/internal/config"
	"github.com/flightdeck360/flightdeck/internal/logger"
)

// AppFactory builds the app a command runs against. Tests substitute one
// wired to an in-memory token store and a local backend.
type AppFactory func(ctx context.Context) (*app.App, error)

// DefaultApp loads configuration from the environment and the user config
// file and builds the production app.
func DefaultApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}

	// Logs go to stderr so they never mix with command output
	log := logger.InitWithWriter(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	baseURL, err := serverselect.ResolveBaseURL(cfg)
	if err != nil {
		return nil, err
	}

	a, err := app.New(app.Options{
		Config:  cfg,
		BaseURL: baseURL,
		Logger:  log,
		Prefs:   userconfig.Preferences{},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start: %w", err)
	}
	return a, nil
}

// start builds the app and kicks off the startup session check
func start(ctx context.Context, newApp AppFactory) (*app.App, error) {
	a, err := newApp(ctx)
	if err != nil {
		return nil, err
	}
	a.Start(ctx)
	return a, nil
}

// firstNonEmpty returns the first non-empty value
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
