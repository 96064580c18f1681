package dyadic

// Context is the precision context of one refinement attempt: a pair of
// rounding disciplines sharing a digit count, the smallest increment at
// that count, and the recursion bound for predicate evaluation.
type Context struct {
	Down Rounding
	Up   Rounding

	// ULP is 10^-digits. Bisection nudges a collapsed midpoint up by it.
	ULP Value

	// SigmaDepth is the number of refinement steps a predicate may spend
	// on each of its operands before answering.
	SigmaDepth int

	// MaxSteps caps the steps of a single RefineToWidth call. Zero means
	// no cap.
	MaxSteps int
}

// NewContext builds the context for digits significant digits.
func NewContext(sigmaDepth, digits int) Context {
	return Context{
		Down:       NewRounding(digits, Down),
		Up:         NewRounding(digits, Up),
		ULP:        Pow10(-int32(digits)),
		SigmaDepth: sigmaDepth,
	}
}

// Digits returns the working precision.
func (c Context) Digits() int { return c.Down.Digits() }

// Swap returns the context with the two rounding directions exchanged.
func (c Context) Swap() Context {
	c.Down, c.Up = c.Up, c.Down
	return c
}

// WithMaxSteps returns a copy of c with the step cap set to n.
func (c Context) WithMaxSteps(n int) Context {
	c.MaxSteps = n
	return c
}
