package catalog

import (
	"errors"
	"fmt"
)

// UnknownRealError reports a name with no catalog entry.
type UnknownRealError struct {
	Name string
}

func (e *UnknownRealError) Error() string {
	return fmt.Sprintf("unknown real %q", e.Name)
}

// ArityError reports a call with the wrong number of arguments.
type ArityError struct {
	Name  string
	Usage string
	Want  int
	Got   int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s takes %d argument(s), got %d (usage: %s)", e.Name, e.Want, e.Got, e.Usage)
}

// ArgumentError reports an argument that does not parse or is out of
// range for its entry.
type ArgumentError struct {
	Name  string
	Index int
	Value string
	Err   error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: argument %d (%q): %v", e.Name, e.Index+1, e.Value, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }

var (
	errNegative  = errors.New("must not be negative")
	errPositive  = errors.New("must be positive")
	errInfinite  = errors.New("must be finite")
	errNotBefore = errors.New("lower end is above upper end")
)

// IsUsageError reports whether err is an unknown name, arity or argument
// error, as opposed to a failure while refining.
func IsUsageError(err error) bool {
	var ue *UnknownRealError
	var ae *ArityError
	var ge *ArgumentError
	return errors.As(err, &ue) || errors.As(err, &ae) || errors.As(err, &ge) ||
		errors.Is(err, errNotBefore)
}
