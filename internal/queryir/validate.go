package queryir

import (
	"fmt"
	"regexp"
)

// identifier matches table and column names. Names are interpolated into
// SQL, so anything else is rejected.
var identifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ValidationError describes one problem with a query.
type ValidationError struct {
	Path    string // e.g. "filter.and[1].field"
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Validate checks that a query is inside the supported fragment and that
// every name is a plain identifier. It returns all problems found.
func Validate(q Query) []ValidationError {
	v := &validator{}
	switch sel := q.(type) {
	case Select:
		v.validateSelect(sel)
	case *Select:
		if sel == nil {
			v.add("query", "nil query")
			break
		}
		v.validateSelect(*sel)
	default:
		v.add("query", "unsupported query type %T", q)
	}
	return v.errs
}

type validator struct {
	errs []ValidationError
}

func (v *validator) add(path, format string, args ...any) {
	v.errs = append(v.errs, ValidationError{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) name(path, s string) {
	if !identifier.MatchString(s) {
		v.add(path, "invalid identifier %q", s)
	}
}

func (v *validator) validateSelect(sel Select) {
	v.name("from", sel.From)
	if len(sel.Columns) == 0 {
		v.add("columns", "at least one column is required")
	}
	for i, c := range sel.Columns {
		v.name(fmt.Sprintf("columns[%d]", i), c)
	}
	for i, o := range sel.OrderBy {
		v.name(fmt.Sprintf("order_by[%d]", i), o.Field)
	}
	if sel.Limit < 0 {
		v.add("limit", "limit must not be negative, got %d", sel.Limit)
	}
	if sel.Filter != nil {
		v.validatePredicate("filter", sel.Filter)
	}
}

func (v *validator) validatePredicate(path string, p Predicate) {
	switch pred := p.(type) {
	case Equals:
		v.validateComparison(path, pred.Field, pred.Value)
	case AtLeast:
		v.validateComparison(path, pred.Field, pred.Value)
	case And:
		for i, sub := range pred.Predicates {
			v.validatePredicate(fmt.Sprintf("%s.and[%d]", path, i), sub)
		}
	case nil:
		v.add(path, "nil predicate")
	default:
		v.add(path, "unsupported predicate type %T", p)
	}
}

func (v *validator) validateComparison(path, field string, value Literal) {
	v.name(path+".field", field)
	switch value.(type) {
	case String, Int:
	case nil:
		v.add(path+".value", "value is required")
	default:
		v.add(path+".value", "unsupported literal type %T", value)
	}
}
