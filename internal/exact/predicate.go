package exact

import (
	"fmt"

	"github.com/roach88/lazyreals/internal/dyadic"
)

// Predicate is a proposition over reals, decided in three-valued logic.
type Predicate interface {
	// Refine spends up to depth refinement steps on each operand and
	// reports what can be decided. Repeated calls only move NA toward Top
	// or Bot.
	Refine(depth int, pc dyadic.Context) (Sigma, error)
}

// LessThan is x < y.
type LessThan struct {
	X, Y Real
}

// Less returns the predicate x < y.
func Less(x, y Real) *LessThan { return &LessThan{X: x, Y: y} }

// Greater returns the predicate x > y.
func Greater(x, y Real) *LessThan { return &LessThan{X: y, Y: x} }

func (p *LessThan) Refine(depth int, pc dyadic.Context) (Sigma, error) {
	if err := p.X.RefineBySteps(depth, pc); err != nil {
		return NA, err
	}
	if err := p.Y.RefineBySteps(depth, pc); err != nil {
		return NA, err
	}
	x, ok := p.X.Bounds()
	if !ok {
		return NA, fmt.Errorf("less than: left %w", errNoBounds)
	}
	y, ok := p.Y.Bounds()
	if !ok {
		return NA, fmt.Errorf("less than: right %w", errNoBounds)
	}
	return FromWitnesses(x.Hi.Less(y.Lo), x.Lo.Less(y.Hi))
}

// AndPredicate is the Kleene conjunction of its terms, evaluated left to
// right and stopping at the first Bot.
type AndPredicate struct {
	Terms []Predicate
}

// And returns the conjunction of ps.
func And(ps ...Predicate) *AndPredicate { return &AndPredicate{Terms: ps} }

func (p *AndPredicate) Refine(depth int, pc dyadic.Context) (Sigma, error) {
	r := Top
	for _, t := range p.Terms {
		s, err := t.Refine(depth, pc)
		if err != nil {
			return NA, err
		}
		if r = r.And(s); r == Bot {
			return Bot, nil
		}
	}
	return r, nil
}

// OrPredicate is the Kleene disjunction of its terms, evaluated left to
// right and stopping at the first Top.
type OrPredicate struct {
	Terms []Predicate
}

// Or returns the disjunction of ps.
func Or(ps ...Predicate) *OrPredicate { return &OrPredicate{Terms: ps} }

func (p *OrPredicate) Refine(depth int, pc dyadic.Context) (Sigma, error) {
	r := Bot
	for _, t := range p.Terms {
		s, err := t.Refine(depth, pc)
		if err != nil {
			return NA, err
		}
		if r = r.Or(s); r == Top {
			return Top, nil
		}
	}
	return r, nil
}

// NotPredicate negates its term.
type NotPredicate struct {
	Term Predicate
}

// Not returns the negation of p.
func Not(p Predicate) *NotPredicate { return &NotPredicate{Term: p} }

func (p *NotPredicate) Refine(depth int, pc dyadic.Context) (Sigma, error) {
	s, err := p.Term.Refine(depth, pc)
	if err != nil {
		return NA, err
	}
	return s.Not(), nil
}
