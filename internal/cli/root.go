package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/specgate/internal/config"
	"github.com/roach88/specgate/internal/predicate"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// Root is the project directory; empty searches upwards from the
	// working directory.
	Root string

	// Timeout bounds each runtime command.
	Timeout time.Duration

	NoColor bool

	// Exit terminates a milestone run with its exit code. Defaults to os.Exit.
	Exit func(int)
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{config.FormatText, config.FormatJSON}

// OptionsFromConfig seeds the global flag defaults from the environment.
// A nil cfg yields the built-in defaults.
func OptionsFromConfig(cfg *config.Config) *RootOptions {
	if cfg == nil {
		return &RootOptions{Format: config.FormatText, Timeout: predicate.DefaultTimeout}
	}
	return &RootOptions{
		Verbose: cfg.Verbose,
		Format:  cfg.Format,
		Root:    cfg.Root,
		Timeout: cfg.Timeout,
	}
}

func (o *RootOptions) exit() func(int) {
	if o.Exit != nil {
		return o.Exit
	}
	return os.Exit
}

// NewRootCommand creates the root command for the specgate CLI. Flag
// defaults are taken from opts, so environment settings show up in --help.
func NewRootCommand(opts *RootOptions) *cobra.Command {
	if opts == nil {
		opts = OptionsFromConfig(nil)
	}

	cmd := &cobra.Command{
		Use:   "specgate",
		Short: "specgate - milestone verification for project trees",
		Long: `Verify that a project tree satisfies a delivery milestone.

Each milestone is an ordered list of named requirements: file and directory
existence, content and pattern checks, and runtime commands. Every
requirement is reported as PASS or FAIL, followed by a summary. The exit
code is 0 when every requirement passed and 1 otherwise.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if opts.Timeout < 0 {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid timeout %s: must not be negative", opts.Timeout))
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", opts.Verbose, "verbose output (SPECGATE_VERBOSE)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", opts.Format, "output format (json|text) (SPECGATE_FORMAT)")
	cmd.PersistentFlags().StringVar(&opts.Root, "root", opts.Root, "project root; default searches upwards for verify/ (SPECGATE_ROOT)")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", opts.Timeout, "timeout for each runtime command (SPECGATE_TIMEOUT)")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", opts.NoColor, "disable coloured PASS/FAIL tokens (NO_COLOR)")

	// Add subcommands
	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewListCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
