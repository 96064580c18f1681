package exact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/lazyreals/internal/dyadic"
	"github.com/roach88/lazyreals/internal/interval"
)

var two = Point(dyadic.FromInt64(2))

// sqrt2 is the cut x*x < 2 / 2 < x*x over [0, 2].
func sqrt2(t *testing.T) *Cut {
	t.Helper()
	c, err := NewCut(dyadic.Zero(), dyadic.FromInt64(2),
		func(x Real) Predicate { return Less(Mul(x, x), two) },
		func(x Real) Predicate { return Less(two, Mul(x, x)) },
	)
	require.NoError(t, err)
	return c
}

func fixed(t *testing.T, lo, hi string) *Fixed {
	t.Helper()
	f, err := NewFixed(dyadic.MustParse(lo), dyadic.MustParse(hi))
	require.NoError(t, err)
	return f
}

func bounds(t *testing.T, r Real) interval.Interval {
	t.Helper()
	iv, ok := r.Bounds()
	require.True(t, ok, "real has no bounds")
	return iv
}

// constPredicate always answers the same value.
type constPredicate Sigma

func (p constPredicate) Refine(int, dyadic.Context) (Sigma, error) { return Sigma(p), nil }

// brokenReal reports an inverted enclosure.
type brokenReal struct{ iv interval.Interval }

func (b *brokenReal) Bounds() (interval.Interval, bool) { return b.iv, true }
func (b *brokenReal) RefineOnce(dyadic.Context) error { return nil }
func (b *brokenReal) RefineBySteps(int, dyadic.Context) error { return nil }
func (b *brokenReal) Clone() Real { return b }
func (b *brokenReal) RefineToWidth(ctx context.Context, target dyadic.Value, pc dyadic.Context) (int, error) {
	return 0, nil
}
