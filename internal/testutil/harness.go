package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/ciconfig/internal/app"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of a lint run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	Dir       string
	App       *app.App
}

// WriteFiles writes files, keyed by relative path, into a fresh temporary
// directory and returns it.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// RunLintTest writes files to a temporary directory and runs the App over it.
// configure may adjust the config before it is validated.
func RunLintTest(t *testing.T, files map[string]string, configure func(*app.Config)) *HarnessResult {
	t.Helper()

	dir := WriteFiles(t, files)
	cfg := app.Config{Path: dir, LogLevel: "debug", WorkerCount: 2}
	if configure != nil {
		configure(&cfg)
	}
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out, logs := &SafeBuffer{}, &SafeBuffer{}
	a := app.NewApp(out, logs, appConfig)
	runErr := a.Run(context.Background())

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       runErr,
		Dir:       dir,
		App:       a,
	}
}
