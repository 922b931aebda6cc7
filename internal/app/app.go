package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/specialistvlad/ciconfig/internal/config"
	"github.com/specialistvlad/ciconfig/internal/ctxlog"
	"github.com/specialistvlad/ciconfig/internal/hcl_adapter"
	"github.com/specialistvlad/ciconfig/internal/yaml_adapter"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	loaders config.Loaders
	runID   string
}

// NewApp is the constructor for the main application. Results are written to
// outW and log records to logW. When no loaders are given the YAML and HCL
// front-ends are used.
func NewApp(outW, logW io.Writer, cfg *Config, loaders ...config.Loader) *App {
	runID := uuid.NewString()
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW).With("run_id", runID)
	logger.Debug("Logger configured successfully.")

	if len(loaders) == 0 {
		loaders = []config.Loader{
			yaml_adapter.NewLoader(cfg.MaxDepth),
			hcl_adapter.NewLoader(cfg.MaxDepth),
		}
	}

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		loaders: loaders,
		runID:   runID,
	}
}

// RunID identifies this App's log records.
func (a *App) RunID() string { return a.runID }

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
