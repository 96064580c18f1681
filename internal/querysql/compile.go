// Package querysql compiles queryir queries to parameterized SQLite.
package querysql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/lazyreals/internal/queryir"
)

// Compile converts a query to SQL and its positional parameters.
//
// Names are validated and written into the statement. Literal values and
// the limit are always parameters. Every statement carries an ORDER BY.
func Compile(q queryir.Query) (string, []any, error) {
	if q == nil {
		return "", nil, fmt.Errorf("cannot compile nil query")
	}
	if errs := queryir.Validate(q); len(errs) > 0 {
		joined := make([]error, len(errs))
		for i, e := range errs {
			joined[i] = e
		}
		return "", nil, fmt.Errorf("invalid query: %w", errors.Join(joined...))
	}

	switch query := q.(type) {
	case queryir.Select:
		return compileSelect(query)
	case *queryir.Select:
		return compileSelect(*query)
	default:
		return "", nil, fmt.Errorf("unsupported query type: %T", q)
	}
}

func compileSelect(q queryir.Select) (string, []any, error) {
	var b strings.Builder
	var params []any

	b.WriteString("SELECT ")
	b.WriteString(strings.Join(q.Columns, ", "))
	b.WriteString(" FROM ")
	b.WriteString(q.From)

	if q.Filter != nil {
		where, args, err := compilePredicate(q.Filter)
		if err != nil {
			return "", nil, err
		}
		if where != "" {
			b.WriteString(" WHERE ")
			b.WriteString(where)
			params = append(params, args...)
		}
	}

	b.WriteString(" ORDER BY ")
	b.WriteString(compileOrder(q.OrderBy))

	if q.Limit > 0 {
		b.WriteString(" LIMIT ?")
		params = append(params, q.Limit)
	}
	return b.String(), params, nil
}

func compileOrder(order []queryir.Order) string {
	if len(order) == 0 {
		order = queryir.DefaultOrder
	}
	keys := make([]string, len(order))
	for i, o := range order {
		key := o.Field
		if o.Binary {
			key += " COLLATE BINARY"
		}
		if o.Desc {
			key += " DESC"
		} else {
			key += " ASC"
		}
		keys[i] = key
	}
	return strings.Join(keys, ", ")
}

// compilePredicate returns "" for an empty And.
func compilePredicate(p queryir.Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case queryir.Equals:
		return pred.Field + " = ?", []any{literal(pred.Value)}, nil
	case queryir.AtLeast:
		return pred.Field + " >= ?", []any{literal(pred.Value)}, nil
	case queryir.And:
		var parts []string
		var params []any
		for _, sub := range pred.Predicates {
			sql, args, err := compilePredicate(sub)
			if err != nil {
				return "", nil, err
			}
			if sql == "" {
				continue
			}
			if _, nested := sub.(queryir.And); nested {
				sql = "(" + sql + ")"
			}
			parts = append(parts, sql)
			params = append(params, args...)
		}
		return strings.Join(parts, " AND "), params, nil
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

func literal(v queryir.Literal) any {
	switch lit := v.(type) {
	case queryir.String:
		return string(lit)
	case queryir.Int:
		return int64(lit)
	default:
		return nil
	}
}
