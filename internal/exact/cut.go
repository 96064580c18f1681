package exact

import (
	"context"

	"github.com/roach88/lazyreals/internal/dyadic"
	"github.com/roach88/lazyreals/internal/interval"
)

// Builder produces a predicate about a candidate point. Builders must be
// pure: each call returns a fresh predicate tree over its argument.
type Builder func(x Real) Predicate

// Cut is the real separating lower and upper. lower(p) asserts p < value,
// upper(p) asserts value < p. The value always lies in [a, b]; a never
// decreases and b never increases.
type Cut struct {
	a, b  dyadic.Value
	lower Builder
	upper Builder
}

// NewCut returns the cut with initial bounds [lo, hi].
func NewCut(lo, hi dyadic.Value, lower, upper Builder) (*Cut, error) {
	if _, err := interval.New(lo, hi); err != nil {
		return nil, err
	}
	return &Cut{a: lo, b: hi, lower: lower, upper: upper}, nil
}

func (c *Cut) Bounds() (interval.Interval, bool) {
	return interval.Interval{Lo: c.a, Hi: c.b}, true
}

// RefineOnce bisects [a, b] and tests the lower predicate at the left
// split point and the upper predicate at the right one. Either, both or
// neither bound may move.
func (c *Cut) RefineOnce(pc dyadic.Context) error {
	aa, bb, err := interval.Split(c.a, c.b, pc)
	if err != nil {
		return err
	}

	lowerTest := c.lower(Point(aa))
	upperTest := c.upper(Point(bb))

	s, err := lowerTest.Refine(pc.SigmaDepth, pc)
	if err != nil {
		return err
	}
	if s == Top {
		c.a = aa
	}

	s, err = upperTest.Refine(pc.SigmaDepth, pc)
	if err != nil {
		return err
	}
	if s == Top {
		c.b = bb
	}
	return nil
}

func (c *Cut) RefineBySteps(n int, pc dyadic.Context) error {
	for i := 0; i < n; i++ {
		if err := c.RefineOnce(pc); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cut) RefineToWidth(ctx context.Context, target dyadic.Value, pc dyadic.Context) (int, error) {
	return refineLoop(ctx, c, target, pc)
}

func (c *Cut) Clone() Real {
	return &Cut{a: c.a, b: c.b, lower: c.lower, upper: c.upper}
}

func (c *Cut) String() string { return Render(c) }
