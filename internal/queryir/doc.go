// Package queryir describes read queries over the run store as data.
//
// A query is a Select over one table with an optional filter built from
// Equals, AtLeast and And. Backends compile it; querysql produces
// parameterized SQLite.
//
//	[ListOptions] → [Query IR] → [SQL]
//
// The fragment is deliberately small:
//   - Explicit column lists (no SELECT *)
//   - Literal values are String or Int, never floats or NULL
//   - No joins, OR, subqueries or aggregation
//
// Every query has a total order. A Select without OrderBy is ordered by
// seq then id, the order records were written in.
//
// Query and Predicate are sealed interfaces using the marker method
// pattern, so backends can switch over them exhaustively.
package queryir
