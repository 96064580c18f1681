package compiler

import (
	"fmt"
	"strconv"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/lazyreals/internal/ir"
)

// limitFields are the optional per-problem overrides, in the order they
// are read.
var limitFields = []string{
	"initial_digits",
	"max_digits",
	"max_attempts",
	"sigma_depth",
	"max_steps",
}

// CompileProblems compiles every field of the top-level "problem" struct in
// declaration order. A missing "problem" struct yields no problems.
func CompileProblems(v cue.Value) ([]ir.Problem, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	pv := v.LookupPath(cue.ParsePath("problem"))
	if !pv.Exists() {
		return nil, nil
	}
	iter, err := pv.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var problems []ir.Problem
	for iter.Next() {
		p, err := CompileProblem(iter.Value())
		if err != nil {
			return problems, err
		}
		problems = append(problems, *p)
	}
	return problems, nil
}

// CompileProblem parses a CUE value into a Problem. The value should be the
// problem struct itself:
//
//	v := ctx.CompileString(`problem: sqrt2: { ... }`)
//	p, err := CompileProblem(v.LookupPath(cue.ParsePath("problem.sqrt2")))
func CompileProblem(v cue.Value) (*ir.Problem, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	p := &ir.Problem{}
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		p.Name = labels[len(labels)-1].String()
	}

	realVal := v.LookupPath(cue.ParsePath("real"))
	if !realVal.Exists() {
		return nil, &CompileError{Field: "real", Message: "real is required", Pos: v.Pos()}
	}
	realName, err := realVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	p.Real = realName

	p.Args, err = parseArgs(v.LookupPath(cue.ParsePath("args")))
	if err != nil {
		return nil, err
	}

	precVal := v.LookupPath(cue.ParsePath("precision"))
	if !precVal.Exists() {
		return nil, &CompileError{Field: "precision", Message: "precision is required", Pos: v.Pos()}
	}
	if p.Precision, err = parseInt("precision", precVal); err != nil {
		return nil, err
	}

	limits := []*int{&p.InitialDigits, &p.MaxDigits, &p.MaxAttempts, &p.SigmaDepth, &p.MaxSteps}
	for i, field := range limitFields {
		fv := v.LookupPath(cue.ParsePath(field))
		if !fv.Exists() {
			continue
		}
		if *limits[i], err = parseInt(field, fv); err != nil {
			return nil, err
		}
	}

	if dv := v.LookupPath(cue.ParsePath("description")); dv.Exists() {
		if p.Description, err = dv.String(); err != nil {
			return nil, formatCUEError(err)
		}
	}

	return p, nil
}

// parseArgs accepts a list of strings or numbers. Numbers keep their
// literal decimal text so 0.1 stays exact.
func parseArgs(v cue.Value) ([]string, error) {
	if !v.Exists() {
		return nil, nil
	}
	list, err := v.List()
	if err != nil {
		return nil, &CompileError{Field: "args", Message: "args must be a list", Pos: v.Pos()}
	}
	var args []string
	for i := 0; list.Next(); i++ {
		elem := list.Value()
		field := fmt.Sprintf("args[%d]", i)
		switch elem.IncompleteKind() {
		case cue.StringKind:
			s, err := elem.String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			args = append(args, s)
		case cue.IntKind, cue.FloatKind, cue.NumberKind:
			b, err := elem.MarshalJSON()
			if err != nil {
				return nil, formatCUEError(err)
			}
			args = append(args, string(b))
		default:
			return nil, &CompileError{
				Field:   field,
				Message: fmt.Sprintf("argument must be a string or number, got %v", elem.IncompleteKind()),
				Pos:     elem.Pos(),
			}
		}
	}
	return args, nil
}

// parseInt reads an integer field. Floats are rejected rather than
// truncated.
func parseInt(field string, v cue.Value) (int, error) {
	if v.IncompleteKind() != cue.IntKind {
		return 0, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("%s must be an integer, got %v", field, v.IncompleteKind()),
			Pos:     v.Pos(),
		}
	}
	n, err := v.Int64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	if n < 0 || n > int64(^uint32(0)>>1) {
		return 0, &CompileError{
			Field:   field,
			Message: field + " out of range: " + strconv.FormatInt(n, 10),
			Pos:     v.Pos(),
		}
	}
	return int(n), nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// First error with a position wins.
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
