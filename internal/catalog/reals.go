package catalog

import (
	"github.com/roach88/lazyreals/internal/dyadic"
	"github.com/roach88/lazyreals/internal/exact"
)

var (
	one = dyadic.FromInt64(1)

	// bound computes starting enclosures. Rounding up keeps an upper end
	// above the true value whatever the argument's length.
	bound = dyadic.NewRounding(34, dyadic.Up)

	// reciprocalBound only has to land above 1/n.
	reciprocalBound = dyadic.NewRounding(4, dyadic.Up)
)

// squareCut is the cut x*x < y / y < x*x over [0, hi]. y is shared by both
// predicates, so refinement it receives while testing one side carries
// over to the other.
func squareCut(y exact.Real, hi dyadic.Value) (exact.Real, error) {
	return cut(dyadic.Zero(), hi,
		func(x exact.Real) exact.Predicate { return exact.Less(exact.Mul(x, x), y) },
		func(x exact.Real) exact.Predicate { return exact.Less(y, exact.Mul(x, x)) },
	)
}

// cut is exact.NewCut returning the interface, so a failed build is a nil
// Real rather than a typed nil.
func cut(lo, hi dyadic.Value, lower, upper exact.Builder) (exact.Real, error) {
	c, err := exact.NewCut(lo, hi, lower, upper)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Sqrt returns the square root of n >= 0.
func Sqrt(n dyadic.Value) (exact.Real, error) {
	return squareCut(exact.Point(n), dyadic.Max(n, one))
}

// NestedSqrt returns sqrt(sqrt(n) + c) for n, c >= 0.
func NestedSqrt(n, c dyadic.Value) (exact.Real, error) {
	inner, err := Sqrt(n)
	if err != nil {
		return nil, err
	}
	radicand := exact.Add(inner, exact.Point(c))

	// sqrt(n) + c <= max(n, 1) + c, and sqrt(t) <= max(t, 1).
	hi, err := dyadic.Max(n, one).Add(c, bound)
	if err != nil {
		return nil, err
	}
	return squareCut(radicand, dyadic.Max(hi, one))
}

// Reciprocal returns 1/n for n > 0.
func Reciprocal(n dyadic.Value) (exact.Real, error) {
	q, err := one.Quo(n, reciprocalBound)
	if err != nil {
		return nil, err
	}
	nr := exact.Point(n)
	ur := exact.Point(one)
	return cut(dyadic.Zero(), dyadic.Max(dyadic.FromInt64(2), q),
		func(x exact.Real) exact.Predicate { return exact.Less(exact.Mul(x, nr), ur) },
		func(x exact.Real) exact.Predicate { return exact.Less(ur, exact.Mul(x, nr)) },
	)
}

// Golden returns (1 + sqrt 5) / 2, the positive root of x*x = x + 1.
func Golden() (exact.Real, error) {
	ur := exact.Point(one)
	return cut(one, dyadic.FromInt64(2),
		func(x exact.Real) exact.Predicate { return exact.Less(exact.Mul(x, x), exact.Add(x, ur)) },
		func(x exact.Real) exact.Predicate { return exact.Less(exact.Add(x, ur), exact.Mul(x, x)) },
	)
}

// SqrtQuantified returns the square root of n >= 0 with both sides stated
// over a bound variable y in [0, max(n, 1)]:
//
//	lower(x) = exists y. x < y and y*y < n
//	upper(x) = forall y. not(y*y < n) or y < x
//
// It converges to the same value as Sqrt but exercises the quantifiers, and
// its predicates need more sigma depth before they decide.
func SqrtQuantified(n dyadic.Value) (exact.Real, error) {
	hi := dyadic.Max(n, one)
	nr := exact.Point(n)
	below := func(y exact.Real) exact.Predicate { return exact.Less(exact.Mul(y, y), nr) }

	lower := func(x exact.Real) exact.Predicate {
		q, err := exact.Exists(dyadic.Zero(), hi, func(y exact.Real) exact.Predicate {
			return exact.And(exact.Less(x, y), below(y))
		})
		if err != nil {
			return failed{err}
		}
		return q
	}
	upper := func(x exact.Real) exact.Predicate {
		q, err := exact.Forall(dyadic.Zero(), hi, func(y exact.Real) exact.Predicate {
			return exact.Or(exact.Not(below(y)), exact.Less(y, x))
		})
		if err != nil {
			return failed{err}
		}
		return q
	}
	return cut(dyadic.Zero(), hi, lower, upper)
}

// failed is a predicate whose construction went wrong. It reports the
// error on first use.
type failed struct{ err error }

func (f failed) Refine(int, dyadic.Context) (exact.Sigma, error) { return exact.NA, f.err }

func fixedPair(lo, hi dyadic.Value) (exact.Real, error) {
	if hi.Less(lo) {
		return nil, errNotBefore
	}
	f, err := exact.NewFixed(lo, hi)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// pairOp combines [a0, a1] and [a2, a3].
func pairOp(op exact.Op, a []dyadic.Value) (exact.Real, error) {
	x, err := fixedPair(a[0], a[1])
	if err != nil {
		return nil, err
	}
	y, err := fixedPair(a[2], a[3])
	if err != nil {
		return nil, err
	}
	return exact.NewBinary(op, x, y), nil
}
