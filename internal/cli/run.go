package cli

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/roach88/specgate/internal/milestone"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <manifest>",
		Short: "Run a milestone manifest",
		Long: `Load a milestone manifest (.yaml, .yml, .json or .cue) and run it
against the project tree.

The manifest is validated before anything runs; an invalid manifest is a
command error (exit 2) and produces no report.

Example:
  specgate run verify/m7.yaml
  specgate run verify/m7.cue --root ../vunnix --timeout 5m`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runManifest(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runManifest(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	m, err := milestone.LoadManifest(path)
	if err != nil {
		code := manifestErrorCode(err)
		_ = formatter.Error(code, err.Error(), manifestErrorDetails(err))
		return WrapExitError(ExitCommandError, code, err)
	}
	formatter.VerboseLog("Loaded manifest %s: %s (%d checks)", path, m.ID, m.Count())

	executeMilestone(opts, m.Milestone(), cmd)
	return nil
}

// manifestErrorCode maps a LoadManifest error to an error code.
func manifestErrorCode(err error) string {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return ErrCodeNotFound
	}
	return ErrCodeInvalidManifest
}

// manifestErrorDetails returns the offending field, if known.
func manifestErrorDetails(err error) interface{} {
	var merr *milestone.ManifestError
	if errors.As(err, &merr) && merr.Field != "" {
		return map[string]string{"field": merr.Field}
	}
	return nil
}
