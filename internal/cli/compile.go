package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/lazyreals/internal/compiler"
	"github.com/roach88/lazyreals/internal/ir"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string
}

// CompiledProblem is a problem together with its content hash.
type CompiledProblem struct {
	Hash    string     `json:"hash"`
	Problem ir.Problem `json:"problem"`
}

// CompileResult is the output of the compile command.
type CompileResult struct {
	Files    int               `json:"files"`
	Problems []CompiledProblem `json:"problems"`
	Output   string            `json:"output,omitempty"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <problems-dir>",
		Short: "Compile CUE problem files to canonical JSON",
		Long: `Compile and validate the CUE problem files of a directory and print
each problem with the hash the store files it under.

With -o the problems are written as canonical JSON, byte-identical for
identical inputs.

Examples:
  reals compile ./problems
  reals compile ./problems -o problems.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write canonical JSON to this file")
	return cmd
}

func runCompile(cmd *cobra.Command, opts *CompileOptions, dir string) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	loaded, err := loadOrReport(formatter, dir)
	if err != nil {
		return err
	}
	if errs := compiler.ValidateAll(loaded.Problems); len(errs) > 0 {
		_ = formatter.Error(errs[0].Code, errs[0].Error(), errs)
		return NewExitError(ExitFailure, fmt.Sprintf("%d validation error(s)", len(errs)))
	}

	result := CompileResult{Files: loaded.FileCount, Output: opts.Output}
	for _, p := range loaded.Problems {
		hash, err := ir.ProblemHash(p)
		if err != nil {
			_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
			return WrapExitError(ExitCommandError, "hash failed", err)
		}
		result.Problems = append(result.Problems, CompiledProblem{Hash: hash, Problem: p})
	}

	if opts.Output != "" {
		data, err := marshalCompiled(result.Problems)
		if err != nil {
			_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
			return WrapExitError(ExitCommandError, "marshal failed", err)
		}
		if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "write failed", err)
		}
		formatter.VerboseLog("wrote %s", opts.Output)
	}

	return formatter.Render(result, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Compiled %d problem(s) from %d file(s)\n", len(result.Problems), result.Files)
		for _, cp := range result.Problems {
			fmt.Fprintf(w, "  %s  %s\n", cp.Hash[:12], cp.Problem.Name)
		}
		if result.Output != "" {
			fmt.Fprintf(w, "Written to %s\n", result.Output)
		}
	})
}

// marshalCompiled encodes problems as {"problems":[{"hash":..,"problem":..}]}
// in canonical JSON.
func marshalCompiled(problems []CompiledProblem) ([]byte, error) {
	list := make([]any, len(problems))
	for i, cp := range problems {
		list[i] = map[string]any{
			"hash":    cp.Hash,
			"problem": cp.Problem.Canonical(),
		}
	}
	return ir.MarshalCanonical(map[string]any{"problems": list})
}
