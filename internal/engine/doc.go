// Package engine implements the adaptive-precision refinement driver.
//
// A Driver takes a lazily refined real and a decimal precision p, and
// refines the real until its enclosure is at most 10^-p wide. Refinement
// happens in passes. Each pass works at a fixed number of significant
// digits and a fixed sigma depth:
//
//   - PrecisionError (bisection could not find two distinct points):
//     the next pass doubles the digits.
//   - StepsExceededError (predicates stayed undecided for too long):
//     the next pass doubles the digits and the sigma depth.
//   - Indeterminate arithmetic or contradictory witnesses are not
//     retried; more digits cannot fix them.
//
// Passes resume from the bounds reached so far. The retry loop is bounded
// by a digit ceiling and an attempt ceiling; hitting either is reported
// as a PRECISION_CEILING RuntimeError rather than a generic failure.
//
// Evaluation is single-threaded. A Driver may be reused for many runs;
// its logical clock keeps pass sequence numbers strictly increasing
// across them, which is what the store and trace output order by.
package engine
