package engine

import (
	"errors"
	"fmt"
)

// RuntimeError is a refinement failure that the driver will not, or can no
// longer, recover from by retrying.
//
// Cause holds the error of the last pass when there was one, so
// errors.As still finds the underlying *interval.PrecisionError or
// *exact.StepsExceededError.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// RunID identifies the affected run, when one had started.
	RunID string

	// Details contains additional context such as the digit count reached.
	Details map[string]string

	// Cause is the error that ended the last pass.
	Cause error
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeInvalidPrecision indicates a requested precision below 2.
	ErrCodeInvalidPrecision RuntimeErrorCode = "INVALID_PRECISION"

	// ErrCodePrecisionCeiling indicates the retry loop reached its digit
	// or attempt ceiling without meeting the target width.
	ErrCodePrecisionCeiling RuntimeErrorCode = "PRECISION_CEILING"

	// ErrCodeIndeterminate indicates an undefined operation such as
	// +Inf + -Inf or a division by zero.
	ErrCodeIndeterminate RuntimeErrorCode = "INDETERMINATE"

	// ErrCodeContradiction indicates a predicate produced contradictory
	// witnesses.
	ErrCodeContradiction RuntimeErrorCode = "CONTRADICTION"

	// ErrCodeCancelled indicates the caller's context ended the run.
	ErrCodeCancelled RuntimeErrorCode = "CANCELLED"

	// ErrCodeRefinement covers any other error returned by a real.
	ErrCodeRefinement RuntimeErrorCode = "REFINEMENT_FAILED"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.RunID != "" {
		msg += fmt.Sprintf(" (run=%s)", e.RunID)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *RuntimeError) Unwrap() error { return e.Cause }

// CodeOf returns the RuntimeErrorCode carried by err, or "" when err does
// not wrap a *RuntimeError.
func CodeOf(err error) RuntimeErrorCode {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// IsCeilingError reports whether err is a PRECISION_CEILING error.
func IsCeilingError(err error) bool {
	return CodeOf(err) == ErrCodePrecisionCeiling
}

// IsInvalidPrecision reports whether err is an INVALID_PRECISION error.
func IsInvalidPrecision(err error) bool {
	return CodeOf(err) == ErrCodeInvalidPrecision
}

// NewInvalidPrecisionError rejects a precision below 2.
func NewInvalidPrecisionError(precision int) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeInvalidPrecision,
		Message: fmt.Sprintf("precision must be at least 2, got %d", precision),
		Details: map[string]string{"precision": fmt.Sprintf("%d", precision)},
	}
}

// NewCeilingError reports that the retry loop ran out of room.
func NewCeilingError(runID string, attempts, digits int, cause error) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodePrecisionCeiling,
		Message: fmt.Sprintf("gave up after %d attempts (next pass would need %d digits)", attempts, digits),
		RunID:   runID,
		Details: map[string]string{
			"attempts": fmt.Sprintf("%d", attempts),
			"digits":   fmt.Sprintf("%d", digits),
		},
		Cause: cause,
	}
}

func newPassError(code RuntimeErrorCode, runID string, digits int, cause error) *RuntimeError {
	return &RuntimeError{
		Code:    code,
		Message: fmt.Sprintf("refinement failed at %d digits", digits),
		RunID:   runID,
		Details: map[string]string{"digits": fmt.Sprintf("%d", digits)},
		Cause:   cause,
	}
}
