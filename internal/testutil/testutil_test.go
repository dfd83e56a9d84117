package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitRecorder(t *testing.T) {
	r := NewExitRecorder()
	assert.Equal(t, -1, r.Code())
	assert.Equal(t, 0, r.Calls())

	r.Exit(1)
	r.Exit(0)
	assert.Equal(t, 0, r.Code())
	assert.Equal(t, 2, r.Calls())
}

func TestProject(t *testing.T) {
	root := Project(t, map[string]string{
		"composer.json":        "{}",
		"config/octane.php":    "frankenphp",
		"database/migrations/": "",
	})

	data, err := os.ReadFile(filepath.Join(root, "config", "octane.php"))
	require.NoError(t, err)
	assert.Equal(t, "frankenphp", string(data))

	info, err := os.Stat(filepath.Join(root, "database", "migrations"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
