// Package interval implements directed-rounding interval arithmetic over
// dyadic values, and the bisection step used to narrow Dedekind cuts.
//
// Every operation takes a dyadic.Context and rounds lower bounds with its
// Down discipline and upper bounds with its Up discipline, so the result
// encloses op(x, y) for every x and y inside the operands.
package interval

import (
	"fmt"

	"github.com/roach88/lazyreals/internal/dyadic"
)

// Interval is the closed range [Lo, Hi] with Lo <= Hi.
type Interval struct {
	Lo dyadic.Value
	Hi dyadic.Value
}

// New returns [lo, hi], or an error if hi < lo.
func New(lo, hi dyadic.Value) (Interval, error) {
	if hi.Less(lo) {
		return Interval{}, fmt.Errorf("invalid interval: %s > %s", lo.Text(), hi.Text())
	}
	return Interval{Lo: lo, Hi: hi}, nil
}

// Point returns the degenerate interval [v, v].
func Point(v dyadic.Value) Interval {
	return Interval{Lo: v, Hi: v}
}

// Add returns the enclosure of x + y.
func (x Interval) Add(y Interval, c dyadic.Context) (Interval, error) {
	lo, err := x.Lo.Add(y.Lo, c.Down)
	if err != nil {
		return Interval{}, fmt.Errorf("interval add: %w", err)
	}
	hi, err := x.Hi.Add(y.Hi, c.Up)
	if err != nil {
		return Interval{}, fmt.Errorf("interval add: %w", err)
	}
	return Interval{Lo: lo, Hi: hi}, nil
}

// Sub returns the enclosure of x - y.
func (x Interval) Sub(y Interval, c dyadic.Context) (Interval, error) {
	lo, err := x.Lo.Sub(y.Hi, c.Down)
	if err != nil {
		return Interval{}, fmt.Errorf("interval sub: %w", err)
	}
	hi, err := x.Hi.Sub(y.Lo, c.Up)
	if err != nil {
		return Interval{}, fmt.Errorf("interval sub: %w", err)
	}
	return Interval{Lo: lo, Hi: hi}, nil
}

// Mul returns the enclosure of x * y: the minimum of the four endpoint
// products rounded down and the maximum of the four rounded up. This is
// exact interval multiplication, valid when either operand straddles zero
// or is degenerate.
func (x Interval) Mul(y Interval, c dyadic.Context) (Interval, error) {
	xs := [2]dyadic.Value{x.Lo, x.Hi}
	ys := [2]dyadic.Value{y.Lo, y.Hi}

	var lo, hi dyadic.Value
	first := true
	for _, p := range xs {
		for _, q := range ys {
			d, err := p.Mul(q, c.Down)
			if err != nil {
				return Interval{}, fmt.Errorf("interval mul: %w", err)
			}
			u, err := p.Mul(q, c.Up)
			if err != nil {
				return Interval{}, fmt.Errorf("interval mul: %w", err)
			}
			if first {
				lo, hi, first = d, u, false
				continue
			}
			lo = dyadic.Min(lo, d)
			hi = dyadic.Max(hi, u)
		}
	}
	return Interval{Lo: lo, Hi: hi}, nil
}

// Width returns Hi - Lo rounded up.
func (x Interval) Width(c dyadic.Context) (dyadic.Value, error) {
	return x.Hi.Sub(x.Lo, c.Up)
}

// Contains reports whether Lo <= v <= Hi.
func (x Interval) Contains(v dyadic.Value) bool {
	return x.Lo.Compare(v) <= 0 && v.Compare(x.Hi) <= 0
}

// Intersect returns x ∩ y; ok is false when they are disjoint.
func (x Interval) Intersect(y Interval) (Interval, bool) {
	r := Interval{Lo: dyadic.Max(x.Lo, y.Lo), Hi: dyadic.Min(x.Hi, y.Hi)}
	if r.Hi.Less(r.Lo) {
		return Interval{}, false
	}
	return r, true
}

// IsPoint reports whether Lo == Hi.
func (x Interval) IsPoint() bool { return x.Lo.Equal(x.Hi) }

func (x Interval) String() string {
	return "[" + x.Lo.Text() + ", " + x.Hi.Text() + "]"
}
