package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/lazyreals/internal/ir"
	"github.com/roach88/lazyreals/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	Problem  string // filter listed runs by problem name
	Status   string // filter listed runs by status
	MinPrec  int
	Limit    int
}

// TraceResult is one run with its passes.
type TraceResult struct {
	Run     ir.RunRecord    `json:"run"`
	Problem ir.Problem      `json:"problem"`
	Passes  []ir.PassRecord `json:"passes"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace [run-id]",
		Short: "Show recorded runs and their passes",
		Long: `Without a run ID, list the runs recorded in a database in the order
they finished. With a run ID, show that run's problem, final enclosure
and every pass the driver made.

Examples:
  reals trace --db ./reals.db
  reals trace --db ./reals.db --problem sqrt2 --status failed
  reals trace --db ./reals.db 0192f3c4-... --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runTraceShow(cmd, opts, args[0])
			}
			return runTraceList(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Problem, "problem", "", "only list runs of this problem")
	cmd.Flags().StringVar(&opts.Status, "status", "", "only list runs with this status (ok|failed)")
	cmd.Flags().IntVar(&opts.MinPrec, "min-precision", 0, "only list runs requesting at least this precision")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "list at most this many runs")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

// openExistingStore opens a database that must already exist. store.Open
// would create a missing file, which hides a mistyped path.
func openExistingStore(formatter *OutputFormatter, path string) (*store.Store, error) {
	if _, err := os.Stat(path); err != nil {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("database not found: %s", path), nil)
		return nil, WrapExitError(ExitCommandError, "database not found", err)
	}
	st, err := store.Open(path)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

func runTraceList(cmd *cobra.Command, opts *TraceOptions) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	status := ir.RunStatus(opts.Status)
	if status != "" && status != ir.RunOK && status != ir.RunFailed {
		_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("invalid status %q: must be ok or failed", opts.Status), nil)
		return NewExitError(ExitCommandError, "invalid status")
	}

	st, err := openExistingStore(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(cmd.Context(), store.ListOptions{
		Problem:      opts.Problem,
		Status:       status,
		MinPrecision: opts.MinPrec,
		Limit:        opts.Limit,
	})
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	return formatter.Render(runs, func(w io.Writer) {
		if len(runs) == 0 {
			fmt.Fprintln(w, "No runs recorded.")
			return
		}
		for _, r := range runs {
			result := r.Rendered
			if r.Status == ir.RunFailed {
				result = r.ErrorCode
			}
			fmt.Fprintf(w, "%-38s %-6s %-16s p=%-4d %s\n", r.ID, r.Status, r.Problem, r.Precision, result)
		}
	})
}

func runTraceShow(cmd *cobra.Command, opts *TraceOptions, runID string) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	st, err := openExistingStore(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	trace, err := st.ReadTrace(cmd.Context(), runID)
	if errors.Is(err, sql.ErrNoRows) {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("run not found: %s", runID), nil)
		return WrapExitError(ExitCommandError, "run not found", err)
	}
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	result := TraceResult{Run: trace.Run, Problem: trace.Problem, Passes: trace.Passes}
	return formatter.Render(result, result.writeText)
}

func (t TraceResult) writeText(w io.Writer) {
	r := t.Run
	fmt.Fprintf(w, "Run %s\n", r.ID)
	fmt.Fprintf(w, "  problem:   %s (%s)\n", r.Problem, problemLabel(t.Problem.Real, t.Problem.Args))
	fmt.Fprintf(w, "  precision: %d\n", r.Precision)
	fmt.Fprintf(w, "  status:    %s\n", r.Status)
	if r.Error != "" {
		fmt.Fprintf(w, "  error:     %s\n", r.Error)
	}
	fmt.Fprintf(w, "  rendered:  %s\n", r.Rendered)
	if r.Lo != "" {
		fmt.Fprintf(w, "  lo:        %s\n", r.Lo)
		fmt.Fprintf(w, "  hi:        %s\n", r.Hi)
	}
	fmt.Fprintf(w, "  passes:\n")
	for _, p := range t.Passes {
		line := fmt.Sprintf("    [%d] seq=%d digits=%d depth=%d steps=%d %s",
			p.Attempt, p.Seq, p.Digits, p.SigmaDepth, p.Steps, p.Rendered)
		if p.ErrorKind != "" {
			line += " (" + p.ErrorKind + ")"
		}
		fmt.Fprintln(w, line)
	}
}
