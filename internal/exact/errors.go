package exact

import (
	"errors"
	"fmt"

	"github.com/roach88/lazyreals/internal/dyadic"
)

// StepsExceededError is returned by RefineToWidth when the context's step
// cap is reached before the target width. It usually means predicates
// stayed undecided at the current digits and sigma depth.
type StepsExceededError struct {
	Steps int
	Limit int
	Width dyadic.Value
}

func (e *StepsExceededError) Error() string {
	return fmt.Sprintf("refinement exceeded max steps: %d steps >= %d limit (width %s)",
		e.Steps, e.Limit, e.Width.Text())
}

// IsStepsExceeded reports whether err wraps a *StepsExceededError.
func IsStepsExceeded(err error) bool {
	var se *StepsExceededError
	return errors.As(err, &se)
}

// ContradictionError reports a witness pair claiming x < y for every
// point while also claiming x < y for no point. Sound interval bounds
// cannot produce it, so it signals a broken enclosure.
type ContradictionError struct {
	Lower bool
	Upper bool
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("contradictory sigma witnesses: lower=%t upper=%t", e.Lower, e.Upper)
}

// IsContradiction reports whether err wraps a *ContradictionError.
func IsContradiction(err error) bool {
	var ce *ContradictionError
	return errors.As(err, &ce)
}

var errNoBounds = errors.New("operand has no bounds yet")
