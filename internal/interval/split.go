package interval

import (
	"errors"
	"fmt"

	"github.com/roach88/lazyreals/internal/dyadic"
)

var two = dyadic.FromInt64(2)

// PrecisionError reports that the working precision cannot split [A, B]
// into strictly nested halves. It is recoverable by retrying with more
// digits.
type PrecisionError struct {
	A, AA, BB, B dyadic.Value
	Digits       int
}

func (e *PrecisionError) Error() string {
	return fmt.Sprintf("need bigger precision to refine an interval: not %s < %s < %s < %s (digits=%d)",
		e.A.Text(), e.AA.Text(), e.BB.Text(), e.B.Text(), e.Digits)
}

// IsPrecisionError reports whether err wraps a *PrecisionError.
func IsPrecisionError(err error) bool {
	var pe *PrecisionError
	return errors.As(err, &pe)
}

// Split bisects [a, b] into two candidate points with a < aa < bb < b.
//
// aa is the midpoint rounded down and bb the midpoint rounded up. When both
// collapse onto one representable value, bb is moved up by one ulp. If the
// strict ordering still does not hold, Split returns a *PrecisionError
// rather than a pair that would stall or widen the refinement.
func Split(a, b dyadic.Value, c dyadic.Context) (aa, bb dyadic.Value, err error) {
	sumDown, err := a.Add(b, c.Down)
	if err != nil {
		return aa, bb, fmt.Errorf("split: %w", err)
	}
	if aa, err = sumDown.Quo(two, c.Down); err != nil {
		return aa, bb, fmt.Errorf("split: %w", err)
	}
	sumUp, err := a.Add(b, c.Up)
	if err != nil {
		return aa, bb, fmt.Errorf("split: %w", err)
	}
	if bb, err = sumUp.Quo(two, c.Up); err != nil {
		return aa, bb, fmt.Errorf("split: %w", err)
	}

	if aa.Equal(bb) {
		if bb, err = bb.Add(c.ULP, c.Up); err != nil {
			return aa, bb, fmt.Errorf("split: %w", err)
		}
	}

	if !(a.Less(aa) && aa.Less(bb) && bb.Less(b)) {
		return aa, bb, &PrecisionError{A: a, AA: aa, BB: bb, B: b, Digits: c.Digits()}
	}
	return aa, bb, nil
}
