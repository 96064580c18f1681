package catalog

import (
	"fmt"

	"github.com/roach88/lazyreals/internal/dyadic"
	"github.com/roach88/lazyreals/internal/exact"
)

// argCheck validates one parsed argument.
type argCheck func(v dyadic.Value) error

func finite(v dyadic.Value) error {
	if v.IsInf() {
		return errInfinite
	}
	return nil
}

func nonNegative(v dyadic.Value) error {
	if err := finite(v); err != nil {
		return err
	}
	if v.Sign() < 0 {
		return errNegative
	}
	return nil
}

func positive(v dyadic.Value) error {
	if err := finite(v); err != nil {
		return err
	}
	if v.Sign() <= 0 {
		return errPositive
	}
	return nil
}

func unchecked(dyadic.Value) error { return nil }

// Entry is one named recipe.
type Entry struct {
	Name        string
	Usage       string
	Description string

	checks []argCheck
	build  func(args []dyadic.Value) (exact.Real, error)
}

// Arity returns the number of arguments the entry takes.
func (e Entry) Arity() int { return len(e.checks) }

// Build parses args and returns a fresh real.
func (e Entry) Build(args ...string) (exact.Real, error) {
	if len(args) != len(e.checks) {
		return nil, &ArityError{Name: e.Name, Usage: e.Usage, Want: len(e.checks), Got: len(args)}
	}
	vals := make([]dyadic.Value, len(args))
	for i, s := range args {
		v, err := dyadic.Parse(s)
		if err != nil {
			return nil, &ArgumentError{Name: e.Name, Index: i, Value: s, Err: err}
		}
		if err := e.checks[i](v); err != nil {
			return nil, &ArgumentError{Name: e.Name, Index: i, Value: s, Err: err}
		}
		vals[i] = v
	}
	r, err := e.build(vals)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Name, err)
	}
	return r, nil
}

var entries = []Entry{
	{
		Name:        "sqrt",
		Usage:       "sqrt N",
		Description: "square root of N >= 0 as the cut x*x < N",
		checks:      []argCheck{nonNegative},
		build:       func(a []dyadic.Value) (exact.Real, error) { return Sqrt(a[0]) },
	},
	{
		Name:        "nested-sqrt",
		Usage:       "nested-sqrt N C",
		Description: "sqrt(sqrt(N) + C) for N, C >= 0",
		checks:      []argCheck{nonNegative, nonNegative},
		build:       func(a []dyadic.Value) (exact.Real, error) { return NestedSqrt(a[0], a[1]) },
	},
	{
		Name:        "reciprocal",
		Usage:       "reciprocal N",
		Description: "1/N for N > 0 as the cut x*N < 1",
		checks:      []argCheck{positive},
		build:       func(a []dyadic.Value) (exact.Real, error) { return Reciprocal(a[0]) },
	},
	{
		Name:        "golden",
		Usage:       "golden",
		Description: "the golden ratio as the cut x*x < x + 1 over [1, 2]",
		build:       func([]dyadic.Value) (exact.Real, error) { return Golden() },
	},
	{
		Name:        "sqrt-quantified",
		Usage:       "sqrt-quantified N",
		Description: "square root of N >= 0 with quantified lower and upper predicates",
		checks:      []argCheck{nonNegative},
		build:       func(a []dyadic.Value) (exact.Real, error) { return SqrtQuantified(a[0]) },
	},
	{
		Name:        "sum",
		Usage:       "sum A B C D",
		Description: "[A, B] + [C, D]",
		checks:      []argCheck{unchecked, unchecked, unchecked, unchecked},
		build: func(a []dyadic.Value) (exact.Real, error) {
			return pairOp(exact.OpAdd, a)
		},
	},
	{
		Name:        "difference",
		Usage:       "difference A B C D",
		Description: "[A, B] - [C, D]",
		checks:      []argCheck{unchecked, unchecked, unchecked, unchecked},
		build: func(a []dyadic.Value) (exact.Real, error) {
			return pairOp(exact.OpSub, a)
		},
	},
	{
		Name:        "product",
		Usage:       "product A B C D",
		Description: "[A, B] * [C, D]",
		checks:      []argCheck{unchecked, unchecked, unchecked, unchecked},
		build: func(a []dyadic.Value) (exact.Real, error) {
			return pairOp(exact.OpMul, a)
		},
	},
	{
		Name:        "interval",
		Usage:       "interval A B",
		Description: "the constant [A, B]",
		checks:      []argCheck{unchecked, unchecked},
		build: func(a []dyadic.Value) (exact.Real, error) {
			return fixedPair(a[0], a[1])
		},
	},
}

var byName = func() map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.Name] = e
	}
	return m
}()

// Entries returns all entries in a stable order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Lookup finds an entry by name.
func Lookup(name string) (Entry, bool) {
	e, ok := byName[name]
	return e, ok
}

// Build is Lookup followed by Entry.Build.
func Build(name string, args ...string) (exact.Real, error) {
	e, ok := Lookup(name)
	if !ok {
		return nil, &UnknownRealError{Name: name}
	}
	return e.Build(args...)
}
