// Package exact implements lazily refined real numbers.
//
// A Real is an enclosure that narrows on demand. Three kinds exist:
//
//   - Fixed: a constant interval (Point for a single value). Refinement is a no-op.
//   - Cut: the unique point separating a lower and an upper predicate. Each
//     step bisects the current bounds and moves whichever side its predicate
//     confirms.
//   - BinaryOp: x+y, x-y or x*y, recomputed from the operands' bounds after
//     they are refined (pull, not push).
//
// Predicates answer in three-valued logic (Sigma). A predicate that cannot
// decide at the current depth answers NA and the Cut leaves that side alone.
//
// OWNERSHIP:
//
// Refinement mutates nodes in place and only ever narrows them, so a node
// captured by several predicate builders (for example an operand shared
// between the lower and upper test of a Cut) stays sound; the sharing is
// what lets repeated shallow evaluations make progress. Use Clone when a
// sub-expression must evolve independently in two places: the copy keeps
// the progress made so far and is not affected by later refinement of the
// original.
//
// Evaluation is single threaded and deterministic: left operand before
// right, lower predicate before upper.
package exact
