package ci

import (
	"testing"

	"github.com/specialistvlad/ciconfig/internal/entry"
	"github.com/stretchr/testify/require"
)

// compose runs a whole document through the root with default settings.
func compose(t *testing.T, raw map[string]any) *Root {
	t.Helper()
	return composeWith(t, raw, nil)
}

func composeWith(t *testing.T, raw map[string]any, s *entry.Settings) *Root {
	t.Helper()
	root := NewRoot(raw, s)
	root.Compose(nil)
	require.True(t, root.Composed())
	return root
}

// composedJob returns the composed value of one visible job.
func composedJob(t *testing.T, root *Root, name string) map[string]any {
	t.Helper()
	value, err := root.Result()
	require.NoError(t, err)
	jobs, ok := value["jobs"].(map[string]any)
	require.True(t, ok, "jobs should be a map")
	job, ok := jobs[name].(map[string]any)
	require.True(t, ok, "job %q not found", name)
	return job
}

// standalone composes a single entry outside any document.
func standalone(newNode entry.Factory, raw any) entry.Node {
	n := newNode(raw, entry.Root("", nil))
	n.Compose(nil)
	return n
}

func withFeatures(f entry.Features) *entry.Settings {
	s := entry.DefaultSettings()
	s.Features = f
	return s
}
