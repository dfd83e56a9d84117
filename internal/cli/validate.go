package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/specgate/internal/milestone"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool   `json:"valid"`
	ID     string `json:"id,omitempty"`
	Title  string `json:"title,omitempty"`
	Checks int    `json:"checks,omitempty"`
	Field  string `json:"field,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <manifest>",
		Short: "Validate a milestone manifest without running it",
		Long: `Load and validate a milestone manifest without touching the project.

Checks strict decoding (unknown fields are errors), that every requirement
has exactly one predicate, that patterns compile and that every when gate
names an earlier requirement.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	formatter.VerboseLog("Validating manifest %s", path)
	m, err := milestone.LoadManifest(path)
	if err != nil {
		code := manifestErrorCode(err)
		if code == ErrCodeNotFound {
			_ = formatter.Error(code, err.Error(), nil)
			// Unreadable files are command-level errors (exit code 2)
			return WrapExitError(ExitCommandError, code, err)
		}
		return outputValidationError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, ID: m.ID, Title: m.Title, Checks: m.Count()})
	}
	fmt.Fprintf(formatter.Writer, "✓ Manifest valid: %s (%d checks)\n", m.ID, m.Count())
	return nil
}

// outputValidationError reports an invalid manifest.
func outputValidationError(formatter *OutputFormatter, err error) error {
	result := ValidationResult{Valid: false}
	var merr *milestone.ManifestError
	if errors.As(err, &merr) {
		result.Field = merr.Field
	}

	if formatter.Format == "json" {
		if encErr := formatter.Error(ErrCodeInvalidManifest, err.Error(), result); encErr != nil {
			return encErr
		}
	} else {
		fmt.Fprintln(formatter.Writer, "✗ Validation failed")
		fmt.Fprintln(formatter.Writer)
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", ErrCodeInvalidManifest, err)
	}

	// Validation failures = exit code 1 (test/validation failure)
	return WrapExitError(ExitFailure, "validation failed", err)
}
