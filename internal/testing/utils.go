// Package testing provides utilities and helpers for testing the style-guide search.
package testing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteDataDir creates a temporary data directory holding the given files.
// Keys are slash-separated paths relative to the directory, such as "stacks/react.csv".
// The directory is removed when the test finishes.
func WriteDataDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "Failed to create directory for %s", name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write %s", name)
	}
	return dir
}

// CSV joins a header row and data rows into CSV text with a trailing newline.
// Cells are written as given, so callers quote values containing commas.
func CSV(rows ...string) string {
	out := ""
	for _, row := range rows {
		out += row + "\n"
	}
	return out
}
