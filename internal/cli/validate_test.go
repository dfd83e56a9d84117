package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValidManifest(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{writeManifest(t, "demo.yaml", demoManifest)})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Equal(t, "✓ Manifest valid: demo (3 checks)\n", buf.String())
}

func TestValidateValidManifestJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{writeManifest(t, "demo.yaml", demoManifest)})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, ValidationResult{Valid: true, ID: "demo", Title: "Demo Milestone", Checks: 3}, resp.Data)
}

func TestValidateCUEManifest(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join("..", "milestone", "testdata", "sample.cue")})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ Manifest valid: demo")
}

func TestValidateNonExistentFile(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"/nonexistent/manifest.yaml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E003")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "failed to read manifest file")
}

func TestValidateInvalidManifest(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		want     string
	}{
		{
			name:     "unknown field",
			manifest: "id: x\ntitle: X\nsections:\n  - title: S\n    checks:\n      - {name: a, exist: f}\n",
			want:     "field exist not found",
		},
		{
			name:     "forward gate",
			manifest: "id: x\ntitle: X\nsections:\n  - title: S\n    checks:\n      - {name: a, when: b, file: f}\n      - {name: b, file: f}\n",
			want:     "sections[0].checks[0].when",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			rootOpts := &RootOptions{Format: "text"}
			cmd := NewValidateCommand(rootOpts)
			cmd.SetOut(buf)
			cmd.SetArgs([]string{writeManifest(t, "bad.yaml", tt.manifest)})

			err := cmd.Execute()
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Contains(t, buf.String(), "✗ Validation failed")
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestValidateInvalidManifestJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{writeManifest(t, "bad.yaml", "id: x\ntitle: X\nruntime:\n  - {name: tests}\n")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeInvalidManifest, resp.Error.Code)
	details, ok := resp.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "runtime[0].command", details["field"])
	assert.Equal(t, false, details["valid"])
}
