package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/lazyreals/internal/compiler"
	"github.com/roach88/lazyreals/internal/engine"
	"github.com/roach88/lazyreals/internal/ir"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Driver      DriverOptions
	Database    string
	MetricsFile string

	// RunIDs overrides the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs engine.RunIDGenerator
}

// RunSummary is the output of the run command.
type RunSummary struct {
	Runs   []ComputeResult `json:"runs"`
	Passed int             `json:"passed"`
	Failed int             `json:"failed"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return newRunCommand(&RunOptions{RootOptions: rootOpts})
}

func newRunCommand(opts *RunOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <problems-dir>",
		Short: "Evaluate every problem in a directory",
		Long: `Compile and validate the CUE problem files of a directory, then evaluate
each problem in declaration order.

With --db every run and pass is recorded in a SQLite database for
"reals trace" and "reals replay". Flags such as --max-digits apply to
problems that do not set the limit themselves, and are stored with them.

Examples:
  reals run ./problems
  reals run ./problems --db ./reals.db --metrics-file ./reals.prom
  reals run ./problems --max-digits 4096 --timeout 30s`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProblems(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record runs in this SQLite database")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file when done")
	opts.Driver.bind(cmd)

	return cmd
}

func runProblems(cmd *cobra.Command, opts *RunOptions, dir string) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := opts.logger()

	loaded, err := loadOrReport(formatter, dir)
	if err != nil {
		return err
	}
	if errs := compiler.ValidateAll(loaded.Problems); len(errs) > 0 {
		_ = formatter.Error(errs[0].Code, errs[0].Error(), errs)
		return NewExitError(ExitFailure, fmt.Sprintf("%d validation error(s)", len(errs)))
	}
	logger.Info("problems compiled", zap.String("dir", dir), zap.Int("problems", len(loaded.Problems)))

	ctx, cancel := opts.Driver.context(cmd)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := openSession(ctx, sessionConfig{
		database: opts.Database,
		runIDs:   opts.RunIDs,
		logger:   logger,
	})
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "run failed", err)
	}
	defer sess.close()

	summary := RunSummary{Runs: []ComputeResult{}}
	for _, problem := range loaded.Problems {
		p := opts.Driver.apply(problem)
		res, runErr := sess.solve(ctx, p)
		if runErr != nil && engine.CodeOf(runErr) == "" {
			_ = formatter.Error(ErrCodeGeneric, runErr.Error(), map[string]string{"problem": p.Name})
			return WrapExitError(ExitCommandError, "run failed", runErr)
		}

		out := newComputeResult(p, res, runErr)
		summary.Runs = append(summary.Runs, out)
		if runErr != nil {
			summary.Failed++
		} else {
			summary.Passed++
		}
		formatter.VerboseLog("%s: %s", p.Name, out.Status)

		if engine.CodeOf(runErr) == engine.ErrCodeCancelled {
			break
		}
	}

	if opts.MetricsFile != "" {
		if err := sess.writeMetrics(opts.MetricsFile); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "run failed", err)
		}
	}

	if err := formatter.Render(summary, summary.writeText); err != nil {
		return err
	}
	if ctx.Err() == context.Canceled {
		return NewExitError(ExitFailure, "interrupted")
	}
	if summary.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d run(s) failed", summary.Failed, len(summary.Runs)))
	}
	return nil
}

func (s RunSummary) writeText(w io.Writer) {
	for _, r := range s.Runs {
		if r.Status == ir.RunOK {
			fmt.Fprintf(w, "✓ %s = %s (%d pass(es))\n", r.Problem, r.Rendered, len(r.Passes))
		} else {
			fmt.Fprintf(w, "✗ %s: %s\n", r.Problem, r.Error)
		}
	}
	fmt.Fprintf(w, "\n%d passed, %d failed, %d total\n", s.Passed, s.Failed, len(s.Runs))
}
