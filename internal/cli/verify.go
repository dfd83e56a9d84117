package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/specgate/internal/check"
	"github.com/roach88/specgate/internal/milestone"
)

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <milestone>",
		Short: "Verify a built-in milestone",
		Long: `Run a built-in milestone against the project tree.

The project root is --root, or the nearest directory above the working
directory that contains verify/. Run "specgate list" for the milestones.

Example:
  specgate verify m1
  specgate verify m6 --format json > report.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runVerify(opts *RootOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	m, err := milestone.Lookup(id)
	if err != nil {
		_ = formatter.Error(ErrCodeUnknownMilestone, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeUnknownMilestone, err)
	}

	executeMilestone(opts, m, cmd)
	return nil
}

// executeMilestone runs m under the milestone contract. In JSON mode the
// human-readable report moves to stderr and stdout carries only the JSON
// report. Finalize calls opts.Exit, so with the default os.Exit this does
// not return.
func executeMilestone(opts *RootOptions, m milestone.Milestone, cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	var checkOpts []check.Option
	if opts.Format == "json" {
		checkOpts = append(checkOpts, check.WithJSON(out))
		out = cmd.ErrOrStderr()
	}
	checkOpts = append(checkOpts,
		check.WithExit(opts.exit()),
		check.WithColor(!opts.NoColor && check.ColorEnabled(out)))

	log := newLogger(opts, cmd.ErrOrStderr())
	log.Debug("running milestone",
		zap.String("milestone", m.ID),
		zap.String("root", opts.Root),
		zap.Duration("timeout", opts.Timeout),
		zap.String("format", opts.Format))

	milestone.Execute(cmd.Context(), m, milestone.Env{
		Root:         opts.Root,
		Out:          out,
		Timeout:      opts.Timeout,
		Logger:       log,
		CheckOptions: checkOpts,
	})
}

// describe is the one-line text form of a milestone.
func describe(m milestone.Milestone) string {
	return fmt.Sprintf("%-4s %s", m.ID, m.Title)
}
