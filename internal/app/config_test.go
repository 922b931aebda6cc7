package app

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/ciconfig/internal/entry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig(Config{Path: ".gitlab-ci.yml"})
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, OutputText, cfg.Output)
	assert.Equal(t, 4, cfg.WorkerCount)
	assert.Equal(t, entry.DefaultMaxDepth, cfg.MaxDepth)
	assert.Equal(t, entry.DefaultMaxElements, cfg.MaxElements)
}

func TestNewConfig_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "missing path", cfg: Config{}, wantErr: "Path is a required"},
		{name: "log format", cfg: Config{Path: "x", LogFormat: "xml"}, wantErr: "invalid log format"},
		{name: "log level", cfg: Config{Path: "x", LogLevel: "trace"}, wantErr: "invalid log level"},
		{name: "output", cfg: Config{Path: "x", Output: "toml"}, wantErr: "invalid output"},
		{name: "workers", cfg: Config{Path: "x", WorkerCount: -1}, wantErr: "invalid worker count"},
		{name: "limits", cfg: Config{Path: "x", MaxDepth: -3}, wantErr: "document limits"},
		{name: "select", cfg: Config{Path: "x", Select: "jobs:"}, wantErr: "invalid select path"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewConfig(tc.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestConfig_Settings(t *testing.T) {
	cfg, err := NewConfig(Config{
		Path:        "x",
		Features:    entry.Features{ImagePorts: true},
		MaxDepth:    8,
		MaxElements: 100,
	})
	require.NoError(t, err)

	s := cfg.Settings()
	assert.True(t, s.Features.ImagePorts)
	assert.False(t, s.Features.PullPolicy)
	assert.Equal(t, entry.Limits{MaxDepth: 8, MaxElements: 100}, s.Limits)
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("warn", "json", &buf)
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
