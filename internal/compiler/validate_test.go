package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lazyreals/internal/ir"
)

func codes(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

func TestValidateValid(t *testing.T) {
	p := &ir.Problem{Name: "sqrt2", Real: "sqrt", Args: []string{"2"}, Precision: 10}
	assert.Empty(t, Validate(p))
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		problem ir.Problem
		codes   []string
	}{
		{
			"unknown real",
			ir.Problem{Name: "p", Real: "cbrt", Args: []string{"2"}, Precision: 10},
			[]string{ErrUnknownReal},
		},
		{
			"arity",
			ir.Problem{Name: "p", Real: "sqrt", Precision: 10},
			[]string{ErrArity},
		},
		{
			"bad argument",
			ir.Problem{Name: "p", Real: "sqrt", Args: []string{"-2"}, Precision: 10},
			[]string{ErrInvalidArgument},
		},
		{
			"low precision",
			ir.Problem{Name: "p", Real: "golden", Precision: 1},
			[]string{ErrInvalidPrecision},
		},
		{
			"initial above max",
			ir.Problem{Name: "p", Real: "golden", Precision: 5, InitialDigits: 40, MaxDigits: 20},
			[]string{ErrInvalidLimit},
		},
		{
			"collects all",
			ir.Problem{Real: "cbrt", Precision: 0},
			[]string{ErrEmptyName, ErrInvalidPrecision, ErrUnknownReal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(&tt.problem)
			assert.Equal(t, tt.codes, codes(errs))
		})
	}
}

func TestValidateArgumentMessage(t *testing.T) {
	errs := Validate(&ir.Problem{Name: "p", Real: "reciprocal", Args: []string{"0"}, Precision: 5})
	require.Len(t, errs, 1)
	assert.Equal(t, `[E104] args: reciprocal: argument 1 ("0"): must be positive`, errs[0].Error())
}

func TestValidateAll(t *testing.T) {
	problems := []ir.Problem{
		{Name: "a", Real: "golden", Precision: 5},
		{Name: "a", Real: "golden", Precision: 5},
		{Name: "b", Real: "sqrt", Precision: 5},
	}

	errs := ValidateAll(problems)
	require.Len(t, errs, 2)
	assert.Equal(t, ErrDuplicateName, errs[0].Code)
	assert.Equal(t, "problem.a", errs[0].Field)
	assert.Equal(t, ErrArity, errs[1].Code)
	assert.Equal(t, "problem.b.args", errs[1].Field)
}
