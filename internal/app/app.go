package app

import (
	"context"
	"io"

	"seatbroker/internal/logging"
)

// App is what CLI commands run against.
type App struct {
	Config *Config
	Log    *logging.Logger
	*Wire
}

// New builds the logger and the dependency graph; logs go to logOut.
func New(cfg *Config, logOut io.Writer) (*App, error) {
	log, err := logging.New(cfg.Log, logOut)
	if err != nil {
		return nil, err
	}
	return &App{
		Config: cfg,
		Log:    log,
		Wire:   NewWire(*cfg, log.Logger),
	}, nil
}

// Context returns ctx bounded by the configured timeout.
func (a *App) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.Config.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.Config.Timeout)
}

// Close releases resources owned by the app.
func (a *App) Close() error {
	return a.Log.Close()
}
