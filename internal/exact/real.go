package exact

import (
	"context"
	"fmt"

	"github.com/roach88/lazyreals/internal/dyadic"
	"github.com/roach88/lazyreals/internal/interval"
)

// Real is a lazily refined real number.
type Real interface {
	// Bounds returns the current enclosure. ok is false for a BinaryOp
	// that has not been computed yet.
	Bounds() (iv interval.Interval, ok bool)

	// RefineOnce performs one refinement step.
	RefineOnce(pc dyadic.Context) error

	// RefineBySteps performs n refinement steps.
	RefineBySteps(n int, pc dyadic.Context) error

	// RefineToWidth refines until the enclosure is at most target wide and
	// returns the number of steps taken.
	RefineToWidth(ctx context.Context, target dyadic.Value, pc dyadic.Context) (int, error)

	// Clone returns an independent copy carrying the current bounds.
	Clone() Real
}

// Fixed is a constant enclosure.
type Fixed struct {
	iv interval.Interval
}

// NewFixed returns the constant [lo, hi].
func NewFixed(lo, hi dyadic.Value) (*Fixed, error) {
	iv, err := interval.New(lo, hi)
	if err != nil {
		return nil, err
	}
	return &Fixed{iv: iv}, nil
}

// Point returns the constant [v, v].
func Point(v dyadic.Value) *Fixed {
	return &Fixed{iv: interval.Point(v)}
}

// FromInterval wraps an existing interval as a constant.
func FromInterval(iv interval.Interval) *Fixed {
	return &Fixed{iv: iv}
}

func (f *Fixed) Bounds() (interval.Interval, bool) { return f.iv, true }
func (f *Fixed) RefineOnce(dyadic.Context) error { return nil }
func (f *Fixed) RefineBySteps(int, dyadic.Context) error { return nil }
func (f *Fixed) Clone() Real { return &Fixed{iv: f.iv} }
func (f *Fixed) String() string { return f.iv.String() }
func (f *Fixed) RefineToWidth(context.Context, dyadic.Value, dyadic.Context) (int, error) {
	return 0, nil
}

// Width returns the current width of r rounded up, or +Inf when r has no
// bounds yet.
func Width(r Real, pc dyadic.Context) (dyadic.Value, error) {
	iv, ok := r.Bounds()
	if !ok {
		return dyadic.PosInf(), nil
	}
	return iv.Width(pc)
}

// Render formats the current enclosure of r with dyadic.Render.
func Render(r Real) string {
	iv, ok := r.Bounds()
	if !ok {
		return dyadic.Render(nil, nil)
	}
	return dyadic.Render(&iv.Lo, &iv.Hi)
}

// refineLoop calls RefineOnce until r is at most target wide, honouring
// cancellation and pc.MaxSteps.
func refineLoop(ctx context.Context, r Real, target dyadic.Value, pc dyadic.Context) (int, error) {
	steps := 0
	for {
		w, err := Width(r, pc)
		if err != nil {
			return steps, fmt.Errorf("width: %w", err)
		}
		if w.Compare(target) <= 0 {
			return steps, nil
		}
		if err := ctx.Err(); err != nil {
			return steps, err
		}
		if pc.MaxSteps > 0 && steps >= pc.MaxSteps {
			return steps, &StepsExceededError{Steps: steps, Limit: pc.MaxSteps, Width: w}
		}
		if err := r.RefineOnce(pc); err != nil {
			return steps, err
		}
		steps++
	}
}
