package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/lazyreals/internal/catalog"
	"github.com/roach88/lazyreals/internal/engine"
	"github.com/roach88/lazyreals/internal/ir"
	"github.com/roach88/lazyreals/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
}

// ReplayResult is the output of the replay command.
type ReplayResult struct {
	RunID         string          `json:"run_id"`
	Problem       string          `json:"problem"`
	Deterministic bool            `json:"deterministic"`
	Passes        int             `json:"passes"`
	Rendered      string          `json:"rendered"`
	Mismatch      *store.Mismatch `json:"mismatch,omitempty"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <run-id>",
		Short: "Re-evaluate a recorded run and compare pass by pass",
		Long: `Load a recorded run and its problem, evaluate the problem again from a
fresh real and compare every pass: digits, sigma depth, steps, rendering
and outcome. Refinement is deterministic, so any difference is a bug.

Exits with code 1 if the replay diverges.

Examples:
  reals replay --db ./reals.db 0192f3c4-...`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runReplay(cmd *cobra.Command, opts *ReplayOptions, runID string) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	ctx := cmd.Context()

	st, err := openExistingStore(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	trace, err := st.ReadTrace(ctx, runID)
	if errors.Is(err, sql.ErrNoRows) {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("run not found: %s", runID), nil)
		return WrapExitError(ExitCommandError, "run not found", err)
	}
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	r, err := catalog.Build(trace.Problem.Real, trace.Problem.Args...)
	if err != nil {
		_ = formatter.Error(usageCode(err), err.Error(), nil)
		return WrapExitError(ExitCommandError, "stored problem no longer builds", err)
	}

	// The stored problem carries every limit the run used, so the driver
	// needs nothing but the original run ID.
	driver := engine.New(
		engine.WithLogger(opts.logger()),
		engine.WithRunIDGenerator(engine.NewFixedGenerator(runID)),
	)
	res, runErr := driver.Solve(ctx, trace.Problem, r)
	if runErr != nil && engine.CodeOf(runErr) == "" {
		_ = formatter.Error(ErrCodeGeneric, runErr.Error(), nil)
		return WrapExitError(ExitCommandError, "replay failed", runErr)
	}

	var got []ir.PassRecord
	if res != nil {
		for _, p := range res.Passes {
			got = append(got, p.Record(runID))
		}
	}
	mismatch, err := store.ComparePasses(trace.Passes, got)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "compare failed", err)
	}

	result := ReplayResult{
		RunID:         runID,
		Problem:       trace.Run.Problem,
		Deterministic: mismatch == nil,
		Passes:        len(trace.Passes),
		Rendered:      trace.Run.Rendered,
		Mismatch:      mismatch,
	}
	if result.Deterministic && res != nil && res.Rendered != trace.Run.Rendered {
		result.Deterministic = false
		result.Mismatch = &store.Mismatch{Attempt: len(got), Stored: trace.Run.Rendered, Got: res.Rendered}
	}
	opts.logger().Debug("replay finished",
		zap.String("run_id", runID),
		zap.Bool("deterministic", result.Deterministic),
	)

	if err := formatter.Render(result, result.writeText); err != nil {
		return err
	}
	if !result.Deterministic {
		return NewExitError(ExitFailure, "replay diverged from the recorded run")
	}
	return nil
}

func (r ReplayResult) writeText(w io.Writer) {
	if r.Deterministic {
		fmt.Fprintf(w, "✓ Replay matches: %s (%s), %d pass(es), %s\n", r.RunID, r.Problem, r.Passes, r.Rendered)
		return
	}
	fmt.Fprintf(w, "✗ Replay diverged: %s (%s)\n", r.RunID, r.Problem)
	fmt.Fprintf(w, "  %s\n", r.Mismatch.Error())
}
