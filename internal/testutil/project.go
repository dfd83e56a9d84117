package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Project creates a temporary project tree and returns its root.
//
// Keys are slash-separated paths relative to the root. A key ending in "/"
// creates an empty directory; any other key creates a file with the value
// as its content:
//
//	root := testutil.Project(t, map[string]string{
//	    "composer.json":        `{"require": {"laravel/octane": "^2.0"}}`,
//	    "database/migrations/": "",
//	})
func Project(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		WriteFile(t, root, rel, content)
	}
	return root
}

// WriteFile creates rel under root, including parent directories.
// A rel ending in "/" creates a directory instead.
func WriteFile(t *testing.T, root, rel, content string) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	if rel != "" && rel[len(rel)-1] == '/' {
		require.NoError(t, os.MkdirAll(path, 0o755))
		return
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// ShellOnlyPath returns a directory containing only a link to sh, suitable
// for PATH when a test needs every other command to be missing.
func ShellOnlyPath(t *testing.T) string {
	t.Helper()

	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	dir := t.TempDir()
	require.NoError(t, os.Symlink(sh, filepath.Join(dir, "sh")))
	return dir
}
