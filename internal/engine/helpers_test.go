package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/lazyreals/internal/dyadic"
	"github.com/roach88/lazyreals/internal/exact"
	"github.com/roach88/lazyreals/internal/interval"
	"github.com/roach88/lazyreals/internal/ir"
)

var two = exact.Point(dyadic.FromInt64(2))

// sqrt2 is the cut x*x < 2 / 2 < x*x over [0, 2].
func sqrt2(t *testing.T) *exact.Cut {
	t.Helper()
	c, err := exact.NewCut(dyadic.Zero(), dyadic.FromInt64(2),
		func(x exact.Real) exact.Predicate { return exact.Less(exact.Mul(x, x), two) },
		func(x exact.Real) exact.Predicate { return exact.Less(two, exact.Mul(x, x)) },
	)
	require.NoError(t, err)
	return c
}

// stubbornReal stays undecided until it is refined at minDepth or more,
// then collapses to a point.
type stubbornReal struct {
	minDepth int
	value    dyadic.Value
	done     bool
	seen     []dyadic.Context
}

func (s *stubbornReal) Bounds() (interval.Interval, bool) {
	if s.done {
		return interval.Point(s.value), true
	}
	return interval.Interval{Lo: dyadic.Zero(), Hi: dyadic.FromInt64(1)}, true
}

func (s *stubbornReal) RefineOnce(dyadic.Context) error         { return nil }
func (s *stubbornReal) RefineBySteps(int, dyadic.Context) error { return nil }
func (s *stubbornReal) Clone() exact.Real                       { c := *s; return &c }

func (s *stubbornReal) RefineToWidth(_ context.Context, _ dyadic.Value, pc dyadic.Context) (int, error) {
	s.seen = append(s.seen, pc)
	if pc.SigmaDepth < s.minDepth {
		return pc.MaxSteps, &exact.StepsExceededError{Steps: pc.MaxSteps, Limit: pc.MaxSteps, Width: dyadic.FromInt64(1)}
	}
	s.done = true
	return 1, nil
}

// memRecorder keeps recorded runs in memory.
type memRecorder struct {
	runs   []ir.RunRecord
	passes [][]ir.PassRecord
	err    error
}

func (m *memRecorder) RecordRun(_ context.Context, run ir.RunRecord, passes []ir.PassRecord) error {
	if m.err != nil {
		return m.err
	}
	m.runs = append(m.runs, run)
	m.passes = append(m.passes, passes)
	return nil
}

func digitsOf(res *Result) []int {
	out := make([]int, len(res.Passes))
	for i, p := range res.Passes {
		out[i] = p.Digits
	}
	return out
}

func outcomesOf(res *Result) []string {
	out := make([]string, len(res.Passes))
	for i, p := range res.Passes {
		out[i] = p.Outcome()
	}
	return out
}
