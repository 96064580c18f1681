package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/lazyreals/internal/dyadic"
	"github.com/roach88/lazyreals/internal/engine"
	"github.com/roach88/lazyreals/internal/ir"
)

// AssertionError is returned when an expectation fails.
// It includes the pass trace to help debug the failure.
type AssertionError struct {
	Case     string
	Field    string // which expectation failed
	Expected string
	Actual   string
	Passes   []ir.PassRecord
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s: %s\n", e.Case, e.Field)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Passes) > 0 {
		fmt.Fprintf(&buf, "\nPasses:\n")
		for _, p := range e.Passes {
			fmt.Fprintf(&buf, "  [%d] digits=%d depth=%d steps=%d %s", p.Attempt, p.Digits, p.SigmaDepth, p.Steps, p.Rendered)
			if p.ErrorKind != "" {
				fmt.Fprintf(&buf, " (%s)", p.ErrorKind)
			}
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}

// EvaluateExpect checks one case result. It returns every failed
// expectation, not just the first.
func EvaluateExpect(cr CaseResult, expect *Expect) []error {
	if expect == nil {
		expect = &Expect{}
	}
	var errs []error
	fail := func(field, want, got string) {
		errs = append(errs, &AssertionError{
			Case: cr.Name, Field: field, Expected: want, Actual: got, Passes: cr.Passes,
		})
	}

	if cr.ErrorCode != expect.ErrorCode {
		fail("error_code", orNone(expect.ErrorCode), orNone(cr.ErrorCode))
	}

	if expect.Rendered != "" && cr.Rendered != expect.Rendered {
		fail("rendered", expect.Rendered, cr.Rendered)
	}

	for _, s := range expect.Contains {
		v, err := dyadic.Parse(s)
		if err != nil {
			fail("contains", s, fmt.Sprintf("unparseable: %v", err))
			continue
		}
		if !cr.Known {
			fail("contains", s, "no enclosure")
			continue
		}
		if !cr.Bounds.Contains(v) {
			fail("contains", s, cr.Bounds.String())
		}
	}

	if len(expect.Digits) > 0 {
		if got := passInts(cr.Passes, func(p ir.PassRecord) int { return p.Digits }); !slices.Equal(got, expect.Digits) {
			fail("digits", fmt.Sprint(expect.Digits), fmt.Sprint(got))
		}
	}

	if len(expect.SigmaDepths) > 0 {
		if got := passInts(cr.Passes, func(p ir.PassRecord) int { return p.SigmaDepth }); !slices.Equal(got, expect.SigmaDepths) {
			fail("sigma_depths", fmt.Sprint(expect.SigmaDepths), fmt.Sprint(got))
		}
	}

	if len(expect.Outcomes) > 0 {
		got := make([]string, len(cr.Passes))
		for i, p := range cr.Passes {
			got[i] = outcomeOf(p)
		}
		if !slices.Equal(got, expect.Outcomes) {
			fail("outcomes", fmt.Sprint(expect.Outcomes), fmt.Sprint(got))
		}
	}

	return errs
}

// outcomeOf names how a stored pass ended, using the driver's vocabulary.
func outcomeOf(p ir.PassRecord) string {
	if p.ErrorKind == "" {
		return engine.OutcomeOK
	}
	return p.ErrorKind
}

func passInts(passes []ir.PassRecord, f func(ir.PassRecord) int) []int {
	out := make([]int, len(passes))
	for i, p := range passes {
		out[i] = f(p)
	}
	return out
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
