package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/specgate/internal/testutil"
)

const demoManifest = `id: demo
title: Demo Milestone
sections:
  - title: "T1: Scaffold"
    checks:
      - {name: composer.json exists, file: composer.json}
      - name: Octane in composer.json
        when: composer.json exists
        contains: {path: composer.json, text: laravel/octane}
runtime:
  - {section: "Runtime: Shell", name: shell works, command: echo ok, quiet: true}
`

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunManifestPasses(t *testing.T) {
	root := testutil.Project(t, map[string]string{"composer.json": `{"require": {"laravel/octane": "^2.0"}}`})
	opts, rec := testOptions(root, "text")

	buf := &bytes.Buffer{}
	cmd := NewRunCommand(opts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{writeManifest(t, "demo.yaml", demoManifest)})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, ExitSuccess, rec.Code())
	assert.Contains(t, buf.String(), "  Demo Milestone\n")
	assert.Contains(t, buf.String(), "  RESULTS: 3/3 passed, 0 failed\n")
	assert.Contains(t, buf.String(), "\n  All checks passed.\n")
}

func TestRunManifestGatedFailure(t *testing.T) {
	opts, rec := testOptions(t.TempDir(), "json")

	stdout := &bytes.Buffer{}
	cmd := NewRunCommand(opts)
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{writeManifest(t, "demo.yaml", demoManifest)})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, ExitFailure, rec.Code())

	var report struct {
		Milestone string `json:"milestone"`
		Total     int    `json:"total"`
		Failed    int    `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &report))
	assert.Equal(t, "demo", report.Milestone)
	assert.Equal(t, 2, report.Total, "gated requirement is not recorded")
	assert.Equal(t, 1, report.Failed)
}

func TestRunManifestNotFound(t *testing.T) {
	opts, rec := testOptions(t.TempDir(), "text")

	buf := &bytes.Buffer{}
	cmd := NewRunCommand(opts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.yaml")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error [E003]")
	assert.Equal(t, 0, rec.Calls())
}

func TestRunInvalidManifest(t *testing.T) {
	opts, rec := testOptions(t.TempDir(), "json")

	buf := &bytes.Buffer{}
	cmd := NewRunCommand(opts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{writeManifest(t, "bad.yaml", "id: bad\ntitle: Bad\nsections:\n  - title: S\n    checks:\n      - {name: a}\n")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, 0, rec.Calls())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeInvalidManifest, resp.Error.Code)
	assert.Equal(t, map[string]interface{}{"field": "sections[0].checks[0]"}, resp.Error.Details)
}
