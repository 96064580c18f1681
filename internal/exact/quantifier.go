package exact

import (
	"github.com/roach88/lazyreals/internal/dyadic"
	"github.com/roach88/lazyreals/internal/interval"
)

type quantifierKind int8

// MaxPending bounds the sub-domains a quantifier keeps. A quantifier at
// its cap answers NA without bisecting further, so a single refinement
// step stays bounded even where phi can never be decided, such as at an
// exact boundary point.
const MaxPending = 1 << 10

const (
	forall quantifierKind = iota
	exists
)

// Quantifier is Forall or Exists over a bounded domain.
//
// The bound variable is never captured: every round rebuilds phi over a
// fresh Fixed covering one pending sub-domain, and over a fresh Point at
// its midpoint. A sub-domain on which phi is decided for the whole
// interval is dropped; a midpoint that refutes Forall (or witnesses
// Exists) decides the quantifier; anything else is bisected for the next
// round. Once decided, the answer is kept. At most MaxPending sub-domains
// are tracked.
type Quantifier struct {
	kind    quantifierKind
	phi     Builder
	pending []interval.Interval
	decided bool
	value   Sigma
}

// Forall returns "for every x in [lo, hi], phi(x)".
func Forall(lo, hi dyadic.Value, phi Builder) (*Quantifier, error) {
	return newQuantifier(forall, lo, hi, phi)
}

// Exists returns "for some x in [lo, hi], phi(x)".
func Exists(lo, hi dyadic.Value, phi Builder) (*Quantifier, error) {
	return newQuantifier(exists, lo, hi, phi)
}

func newQuantifier(kind quantifierKind, lo, hi dyadic.Value, phi Builder) (*Quantifier, error) {
	d, err := interval.New(lo, hi)
	if err != nil {
		return nil, err
	}
	return &Quantifier{kind: kind, phi: phi, pending: []interval.Interval{d}}, nil
}

// Pending returns the number of sub-domains not yet decided.
func (q *Quantifier) Pending() int { return len(q.pending) }

// Refine runs max(depth, 1) rounds over the pending sub-domains.
func (q *Quantifier) Refine(depth int, pc dyadic.Context) (Sigma, error) {
	if q.decided {
		return q.value, nil
	}

	// win decides the quantifier; drop discards a sub-domain.
	win, drop := Bot, Top
	if q.kind == exists {
		win, drop = Top, Bot
	}

	rounds := max(depth, 1)
	for round := 0; round < rounds; round++ {
		if len(q.pending) >= MaxPending {
			return NA, nil
		}
		var next []interval.Interval
		for _, d := range q.pending {
			s, err := q.phi(FromInterval(d)).Refine(depth, pc)
			if err != nil {
				return NA, err
			}
			if s == drop {
				continue
			}
			if s == win {
				return q.decide(win), nil
			}

			aa, bb, err := interval.Split(d.Lo, d.Hi, pc)
			if err != nil {
				return NA, err
			}
			s, err = q.phi(Point(aa)).Refine(depth, pc)
			if err != nil {
				return NA, err
			}
			if s == win {
				return q.decide(win), nil
			}
			next = append(next,
				interval.Interval{Lo: d.Lo, Hi: bb},
				interval.Interval{Lo: aa, Hi: d.Hi},
			)
		}
		q.pending = next
		if len(next) == 0 {
			return q.decide(drop), nil
		}
	}
	return NA, nil
}

func (q *Quantifier) decide(s Sigma) Sigma {
	q.decided, q.value, q.pending = true, s, nil
	return s
}
