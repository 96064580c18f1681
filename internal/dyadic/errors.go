package dyadic

import (
	"errors"
	"fmt"
)

// IndeterminateError reports an operation whose operands have no
// extended-real result, such as +Inf + -Inf or 0 * Inf.
type IndeterminateError struct {
	Op string // "+", "-", "*", "/"
	X  Value
	Y  Value
}

func (e *IndeterminateError) Error() string {
	return fmt.Sprintf("indeterminate: %s %s %s", e.X.Text(), e.Op, e.Y.Text())
}

// IsIndeterminate reports whether err wraps an *IndeterminateError.
func IsIndeterminate(err error) bool {
	var ie *IndeterminateError
	return errors.As(err, &ie)
}
