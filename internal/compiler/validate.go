package compiler

import (
	"fmt"

	"github.com/roach88/lazyreals/internal/catalog"
	"github.com/roach88/lazyreals/internal/ir"
)

// Validation error codes (E100-E199)
const (
	ErrEmptyName        = "E101" // problem name is empty
	ErrUnknownReal      = "E102" // real is not in the catalog
	ErrArity            = "E103" // wrong number of arguments
	ErrInvalidArgument  = "E104" // argument rejected by the catalog entry
	ErrInvalidPrecision = "E105" // precision below 2
	ErrInvalidLimit     = "E106" // negative or inconsistent limit
	ErrDuplicateName    = "E107" // two problems share a name
)

// ValidationError represents a problem validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a compiled problem against the catalog and the driver's
// limits. It returns every error found rather than the first.
func Validate(p *ir.Problem) []ValidationError {
	var errs []ValidationError

	if p.Name == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "name is required", Code: ErrEmptyName})
	}

	if p.Precision < 2 {
		errs = append(errs, ValidationError{
			Field:   "precision",
			Message: fmt.Sprintf("precision must be at least 2, got %d", p.Precision),
			Code:    ErrInvalidPrecision,
		})
	}

	if p.InitialDigits > 0 && p.MaxDigits > 0 && p.InitialDigits > p.MaxDigits {
		errs = append(errs, ValidationError{
			Field:   "initial_digits",
			Message: fmt.Sprintf("initial_digits %d exceeds max_digits %d", p.InitialDigits, p.MaxDigits),
			Code:    ErrInvalidLimit,
		})
	}

	entry, ok := catalog.Lookup(p.Real)
	if !ok {
		errs = append(errs, ValidationError{
			Field:   "real",
			Message: fmt.Sprintf("unknown real %q", p.Real),
			Code:    ErrUnknownReal,
		})
		return errs
	}
	if len(p.Args) != entry.Arity() {
		errs = append(errs, ValidationError{
			Field:   "args",
			Message: fmt.Sprintf("%s takes %d argument(s), got %d (usage: %s)", entry.Name, entry.Arity(), len(p.Args), entry.Usage),
			Code:    ErrArity,
		})
		return errs
	}
	// Building is cheap: nothing is refined until the driver runs.
	if _, err := entry.Build(p.Args...); err != nil {
		errs = append(errs, ValidationError{Field: "args", Message: err.Error(), Code: ErrInvalidArgument})
	}

	return errs
}

// ValidateAll validates each problem and checks that names are unique.
// Field paths are prefixed with the problem name.
func ValidateAll(problems []ir.Problem) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool, len(problems))
	for i := range problems {
		p := &problems[i]
		if seen[p.Name] {
			errs = append(errs, ValidationError{
				Field:   "problem." + p.Name,
				Message: fmt.Sprintf("duplicate problem name: %q", p.Name),
				Code:    ErrDuplicateName,
			})
		}
		seen[p.Name] = true
		for _, e := range Validate(p) {
			e.Field = "problem." + p.Name + "." + e.Field
			errs = append(errs, e)
		}
	}
	return errs
}
