package app

import (
	"errors"
	"fmt"
	"slices"

	"github.com/specialistvlad/ciconfig/internal/entry"
	"github.com/specialistvlad/ciconfig/internal/nodeid"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

var (
	logFormats = []string{"text", "json"}
	logLevels  = []string{"debug", "info", "warn", "error"}
	outputs    = []string{OutputText, OutputJSON, OutputYAML}
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Path string // a document or a directory of documents

	LogFormat   string
	LogLevel    string
	Output      string
	WorkerCount int
	// Select narrows rendered values to one key path, such as `jobs:rspec`.
	Select string

	Features    entry.Features
	MaxDepth    int
	MaxElements int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.Path == "" {
		return nil, errors.New("Path is a required configuration field and cannot be empty")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Output == "" {
		cfg.Output = OutputText
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = entry.DefaultMaxDepth
	}
	if cfg.MaxElements == 0 {
		cfg.MaxElements = entry.DefaultMaxElements
	}

	switch {
	case !slices.Contains(logFormats, cfg.LogFormat):
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	case !slices.Contains(logLevels, cfg.LogLevel):
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	case !slices.Contains(outputs, cfg.Output):
		return nil, fmt.Errorf("invalid output %q: must be 'text', 'json' or 'yaml'", cfg.Output)
	case cfg.WorkerCount < 1:
		return nil, fmt.Errorf("invalid worker count %d: must be at least 1", cfg.WorkerCount)
	case cfg.MaxDepth < 1 || cfg.MaxElements < 1:
		return nil, errors.New("document limits must be positive")
	}
	if cfg.Select != "" {
		if _, err := nodeid.Parse(cfg.Select); err != nil {
			return nil, fmt.Errorf("invalid select path: %w", err)
		}
	}

	return &cfg, nil
}

// Settings returns the engine settings described by the config.
func (c *Config) Settings() *entry.Settings {
	return &entry.Settings{
		Features: c.Features,
		Limits:   entry.Limits{MaxDepth: c.MaxDepth, MaxElements: c.MaxElements},
	}
}
