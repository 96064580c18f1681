package queryir

// Query is a read query. Only Select implements it.
type Query interface {
	queryNode()
}

// Predicate is a filter condition. Equals, AtLeast and And implement it.
type Predicate interface {
	predicateNode()
}

// Literal is a value a predicate compares against.
type Literal interface {
	literalNode()
}

// String is a text literal.
type String string

func (String) literalNode() {}

// Int is an integer literal.
type Int int64

func (Int) literalNode() {}

// Select reads Columns from a table.
//
//	Select{
//	  From:    "runs",
//	  Columns: []string{"id", "rendered"},
//	  Filter:  And{Predicates: []Predicate{
//	    Equals{Field: "status", Value: String("ok")},
//	    AtLeast{Field: "precision", Value: Int(20)},
//	  }},
//	  Limit: 10,
//	}
//
// compiles to
//
//	SELECT id, rendered FROM runs
//	WHERE status = ? AND precision >= ?
//	ORDER BY seq ASC, id COLLATE BINARY ASC LIMIT ?
type Select struct {
	From    string
	Columns []string
	Filter  Predicate // nil selects every row
	OrderBy []Order   // empty means DefaultOrder
	Limit   int       // 0 means no limit
}

func (Select) queryNode() {}

// Order is one sort key.
type Order struct {
	Field  string
	Desc   bool
	Binary bool // compare bytes, not the column collation
}

// DefaultOrder sorts by write order with the ID as tiebreaker.
var DefaultOrder = []Order{{Field: "seq"}, {Field: "id", Binary: true}}

// Equals holds when Field equals Value.
type Equals struct {
	Field string
	Value Literal
}

func (Equals) predicateNode() {}

// AtLeast holds when Field is greater than or equal to Value.
type AtLeast struct {
	Field string
	Value Literal
}

func (AtLeast) predicateNode() {}

// And holds when every predicate holds. An empty And always holds.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// All conjoins the non-nil predicates. It returns nil when none are left,
// so callers can build filters from optional options.
func All(preds ...Predicate) Predicate {
	var kept []Predicate
	for _, p := range preds {
		if p != nil {
			kept = append(kept, p)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	default:
		return And{Predicates: kept}
	}
}
