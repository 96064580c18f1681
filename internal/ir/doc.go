// Package ir holds the plain record types shared between the compiler, the
// refinement driver, the store and the test harness.
//
// ir imports nothing internal. Records carry decimal values as strings so
// that they survive storage and golden files without loss.
//
// Key constraints:
//   - No float types anywhere; numbers are int or decimal strings
//   - All JSON tags use snake_case
//   - Ordering uses logical sequence numbers, never wall-clock time
package ir
