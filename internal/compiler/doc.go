// Package compiler turns CUE problem definitions into ir.Problem values and
// checks them against the catalog.
//
// A problem file declares problems under the top-level "problem" struct:
//
//	problem: sqrt2: {
//		real:      "sqrt"
//		args:      ["2"]
//		precision: 20
//	}
//
// The label is the problem name. Optional integer fields initial_digits,
// max_digits, max_attempts, sigma_depth and max_steps override the driver
// defaults for that problem.
package compiler
