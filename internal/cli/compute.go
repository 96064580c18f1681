package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/lazyreals/internal/catalog"
	"github.com/roach88/lazyreals/internal/compiler"
	"github.com/roach88/lazyreals/internal/engine"
	"github.com/roach88/lazyreals/internal/ir"
)

// ComputeOptions holds flags for the compute command.
type ComputeOptions struct {
	*RootOptions
	Driver    DriverOptions
	Precision int
	Database  string

	// RunIDs overrides the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs engine.RunIDGenerator
}

// PassView is one pass as shown to users.
type PassView struct {
	Attempt    int    `json:"attempt"`
	Digits     int    `json:"digits"`
	SigmaDepth int    `json:"sigma_depth"`
	Steps      int    `json:"steps"`
	Outcome    string `json:"outcome"`
	Rendered   string `json:"rendered"`
	Error      string `json:"error,omitempty"`
}

// ComputeResult is the output of one evaluated problem.
type ComputeResult struct {
	Problem   string       `json:"problem"`
	RunID     string       `json:"run_id,omitempty"`
	Real      string       `json:"real"`
	Args      []string     `json:"args,omitempty"`
	Precision int          `json:"precision"`
	Status    ir.RunStatus `json:"status"`
	Rendered  string       `json:"rendered"`
	Lo        string       `json:"lo,omitempty"`
	Hi        string       `json:"hi,omitempty"`
	ErrorCode string       `json:"error_code,omitempty"`
	Error     string       `json:"error,omitempty"`
	Passes    []PassView   `json:"passes"`
}

func newComputeResult(p ir.Problem, res *engine.Result, runErr error) ComputeResult {
	out := ComputeResult{
		Problem:   p.Name,
		Real:      p.Real,
		Args:      p.Args,
		Precision: p.Precision,
		Status:    ir.RunOK,
		Passes:    []PassView{},
	}
	if runErr != nil {
		out.Status = ir.RunFailed
		out.ErrorCode = string(engine.CodeOf(runErr))
		out.Error = runErr.Error()
	}
	if res == nil {
		return out
	}
	out.RunID = res.RunID
	out.Rendered = res.Rendered
	if res.Known {
		out.Lo = res.Bounds.Lo.Text()
		out.Hi = res.Bounds.Hi.Text()
	}
	for _, pass := range res.Passes {
		v := PassView{
			Attempt:    pass.Attempt,
			Digits:     pass.Digits,
			SigmaDepth: pass.SigmaDepth,
			Steps:      pass.Steps,
			Outcome:    pass.Outcome(),
			Rendered:   pass.Rendered,
		}
		if pass.Err != nil {
			v.Error = pass.Err.Error()
		}
		out.Passes = append(out.Passes, v)
	}
	return out
}

func (r ComputeResult) writeText(w io.Writer) {
	if r.Status == ir.RunOK {
		fmt.Fprintf(w, "%s = %s\n", r.Problem, r.Rendered)
	} else {
		fmt.Fprintf(w, "%s failed: %s\n", r.Problem, r.Error)
		if r.Rendered != "" {
			fmt.Fprintf(w, "  enclosure: %s\n", r.Rendered)
		}
	}
	if r.Lo != "" {
		fmt.Fprintf(w, "  lo: %s\n", r.Lo)
		fmt.Fprintf(w, "  hi: %s\n", r.Hi)
	}
	if r.RunID != "" {
		fmt.Fprintf(w, "  run: %s\n", r.RunID)
	}
	if len(r.Passes) > 0 {
		fmt.Fprintln(w, "  passes:")
		writePasses(w, r.Passes)
	}
}

func writePasses(w io.Writer, passes []PassView) {
	for _, p := range passes {
		fmt.Fprintf(w, "    [%d] digits=%d depth=%d steps=%d %-9s %s\n",
			p.Attempt, p.Digits, p.SigmaDepth, p.Steps, p.Outcome, p.Rendered)
	}
}

// NewComputeCommand creates the compute command.
func NewComputeCommand(rootOpts *RootOptions) *cobra.Command {
	return newComputeCommand(&ComputeOptions{RootOptions: rootOpts})
}

func newComputeCommand(opts *ComputeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute <real> [args...]",
		Short: "Evaluate one catalog real to a decimal precision",
		Long: `Evaluate a real from the catalog until its enclosure is at most
10^-precision wide, then print the rendered result and every pass.

Run "reals list" to see the catalog.

Examples:
  reals compute sqrt 2 --precision 30
  reals compute golden --precision 50 --format json
  reals compute reciprocal 7 --precision 20 --db ./reals.db`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(cmd, opts, args[0], args[1:])
		},
	}

	cmd.Flags().IntVarP(&opts.Precision, "precision", "p", 10, "decimal digits after the point")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database")
	opts.Driver.bind(cmd)

	return cmd
}

func runCompute(cmd *cobra.Command, opts *ComputeOptions, name string, args []string) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	p := opts.Driver.apply(ir.Problem{
		Name:      problemLabel(name, args),
		Real:      name,
		Args:      args,
		Precision: opts.Precision,
	})

	ctx, cancel := opts.Driver.context(cmd)
	defer cancel()

	sess, err := openSession(ctx, sessionConfig{
		database: opts.Database,
		runIDs:   opts.RunIDs,
		logger:   opts.logger(),
	})
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "compute failed", err)
	}
	defer sess.close()

	res, runErr := sess.solve(ctx, p)
	if catalog.IsUsageError(runErr) {
		_ = formatter.Error(usageCode(runErr), runErr.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid real", runErr)
	}
	if engine.IsInvalidPrecision(runErr) {
		_ = formatter.Error(string(engine.ErrCodeInvalidPrecision), runErr.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid precision", runErr)
	}
	if runErr != nil && engine.CodeOf(runErr) == "" {
		_ = formatter.Error(ErrCodeGeneric, runErr.Error(), nil)
		return WrapExitError(ExitCommandError, "compute failed", runErr)
	}

	out := newComputeResult(p, res, runErr)
	if err := formatter.Render(out, out.writeText); err != nil {
		return err
	}
	if runErr != nil {
		return WrapExitError(ExitFailure, "run failed", runErr)
	}
	return nil
}

// problemLabel names an ad hoc problem the way it would be written as a
// call, e.g. "sqrt(2)".
func problemLabel(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + "(" + strings.Join(args, ", ") + ")"
}

// usageCode maps a catalog error to the validation code the compiler uses
// for the same mistake in a problem file.
func usageCode(err error) string {
	var unknown *catalog.UnknownRealError
	var arity *catalog.ArityError
	switch {
	case errors.As(err, &unknown):
		return compiler.ErrUnknownReal
	case errors.As(err, &arity):
		return compiler.ErrArity
	default:
		return compiler.ErrInvalidArgument
	}
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List the reals in the catalog",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			type entryView struct {
				Name        string `json:"name"`
				Usage       string `json:"usage"`
				Arity       int    `json:"arity"`
				Description string `json:"description"`
			}
			var views []entryView
			for _, e := range catalog.Entries() {
				views = append(views, entryView{e.Name, e.Usage, e.Arity(), e.Description})
			}
			return formatter.Render(views, func(w io.Writer) {
				for _, v := range views {
					fmt.Fprintf(w, "%-22s %s\n", v.Usage, v.Description)
				}
			})
		},
	}
}
