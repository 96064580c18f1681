// Package dyadic implements the bound values used by the refinement engine.
//
// A Value is an arbitrary-precision decimal extended with +Inf and -Inf.
// Every arithmetic operation takes a Rounding, which fixes the number of
// significant digits and the direction of rounding:
//
//   - Down never overestimates the exact result (valid lower bound).
//   - Up never underestimates the exact result (valid upper bound).
//
// Interval soundness above this package depends on both directions being
// exact in that sense, so finite arithmetic is delegated to apd, which
// computes the exact result before rounding it once.
//
// Combinations with no extended-real result (Inf-Inf, 0*Inf, Inf/Inf, x/0)
// return an *IndeterminateError instead of a value.
package dyadic
