package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/specgate/internal/milestone"
)

// MilestoneInfo is the JSON form of a built-in milestone.
type MilestoneInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List built-in milestones",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}

	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	all, err := milestone.Builtin()
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeGeneric, err)
	}

	if formatter.Format == "json" {
		infos := make([]MilestoneInfo, 0, len(all))
		for _, m := range all {
			infos = append(infos, MilestoneInfo{ID: m.ID, Title: m.Title})
		}
		return formatter.Success(infos)
	}

	for _, m := range all {
		if err := formatter.Success(describe(m)); err != nil {
			return err
		}
	}
	return nil
}
