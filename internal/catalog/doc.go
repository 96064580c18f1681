// Package catalog builds named, parameterised reals.
//
// Every entry is a recipe: Build returns a fresh Real each call, so two
// runs of the same entry never share refinement state. Arguments are
// decimal strings and are parsed exactly.
//
//	sqrt N               the cut x*x < N over [0, max(N, 1)]
//	nested-sqrt N C      sqrt(sqrt(N) + C)
//	reciprocal N         the cut x*N < 1
//	golden               the cut x*x < x + 1 over [1, 2]
//	sqrt-quantified N    sqrt N, with both sides written as quantifiers
//	sum A B C D          [A, B] + [C, D]
//	difference A B C D   [A, B] - [C, D]
//	product A B C D      [A, B] * [C, D]
//	interval A B         the constant [A, B]
package catalog
