package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/lazyreals/internal/compiler"
)

// ValidationResult is the output of the validate command.
type ValidationResult struct {
	Valid    bool                       `json:"valid"`
	Files    int                        `json:"files"`
	Problems []string                   `json:"problems"`
	Errors   []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <problems-dir>",
		Short: "Check CUE problem files without running them",
		Long: `Compile the CUE problem files of a directory and check every problem
against the catalog: known real, argument count and values, precision of
at least 2, consistent limits and unique names.

Examples:
  reals validate ./problems
  reals validate ./problems --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, rootOpts, args[0])
		},
	}
	return cmd
}

func runValidate(cmd *cobra.Command, opts *RootOptions, dir string) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	loaded, err := loadOrReport(formatter, dir)
	if err != nil {
		return err
	}
	formatter.VerboseLog("loaded %d problem(s) from %d file(s)", len(loaded.Problems), loaded.FileCount)

	result := ValidationResult{
		Valid:  true,
		Files:  loaded.FileCount,
		Errors: compiler.ValidateAll(loaded.Problems),
	}
	for _, p := range loaded.Problems {
		result.Problems = append(result.Problems, p.Name)
	}
	result.Valid = len(result.Errors) == 0

	if err := formatter.Render(result, result.writeText); err != nil {
		return err
	}
	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d validation error(s)", len(result.Errors)))
	}
	return nil
}

func (r ValidationResult) writeText(w io.Writer) {
	if r.Valid {
		fmt.Fprintf(w, "✓ All problems valid (%d problem(s) in %d file(s))\n", len(r.Problems), r.Files)
		return
	}
	fmt.Fprintf(w, "✗ Validation failed with %d error(s):\n", len(r.Errors))
	for _, e := range r.Errors {
		fmt.Fprintf(w, "  %s\n", e.Error())
	}
}

// loadOrReport loads a problems directory and reports failures through the
// formatter. A missing or empty directory is a command error; a file that
// does not compile is a validation failure.
func loadOrReport(formatter *OutputFormatter, dir string) (*LoadResult, error) {
	loaded, err := LoadProblems(dir)
	if err == nil {
		return loaded, nil
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "load failed", err)
	}

	var details any
	if loadErr.Pos.IsValid() {
		details = map[string]any{
			"file":   loadErr.Pos.Filename(),
			"line":   loadErr.Pos.Line(),
			"column": loadErr.Pos.Column(),
		}
	}
	_ = formatter.Error(loadErr.Code, loadErr.Message, details)

	switch loadErr.Code {
	case ErrCodeNotFound, ErrCodeNoFiles, ErrCodeScanError:
		return nil, WrapExitError(ExitCommandError, "load failed", err)
	default:
		return nil, WrapExitError(ExitFailure, "compile failed", err)
	}
}
