package testutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertDocumentStatus checks the text output of a HarnessResult for the
// status line of one document, given by its path relative to the run dir.
func AssertDocumentStatus(t *testing.T, result *HarnessResult, name, status string) {
	t.Helper()

	line := filepath.Join(result.Dir, name) + ": " + status
	require.True(t,
		strings.Contains(result.Output, line),
		"expected %q in output:\n%s", line, result.Output,
	)
}

// AssertMessage checks that msg was reported for any document.
func AssertMessage(t *testing.T, result *HarnessResult, msg string) {
	t.Helper()
	require.Contains(t, result.Output, msg)
}
