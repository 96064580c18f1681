package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/lazyreals/internal/ir"
)

// DriverOptions are the refinement limits shared by commands that run the
// driver. Zero leaves the driver default, or the problem's own value, in
// place.
type DriverOptions struct {
	InitialDigits int
	MaxDigits     int
	MaxAttempts   int
	SigmaDepth    int
	MaxSteps      int
	Timeout       time.Duration
}

func (o *DriverOptions) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVar(&o.InitialDigits, "initial-digits", 0, "working digits of the first pass (default: the precision)")
	fs.IntVar(&o.MaxDigits, "max-digits", 0, "give up once working digits would exceed this (default 16384)")
	fs.IntVar(&o.MaxAttempts, "max-attempts", 0, "give up after this many passes (default 16)")
	fs.IntVar(&o.SigmaDepth, "sigma-depth", 0, "refinement rounds per predicate test on the first pass (default 1)")
	fs.IntVar(&o.MaxSteps, "max-steps", 0, "bisection steps per pass (default 10*precision+100)")
	fs.DurationVar(&o.Timeout, "timeout", 0, "cancel runs after this long (0 for no limit)")
}

// apply fills limits the problem leaves unset. The stored problem then
// carries every limit its run used, so a replay reproduces it.
func (o *DriverOptions) apply(p ir.Problem) ir.Problem {
	fill := func(dst *int, v int) {
		if *dst == 0 {
			*dst = v
		}
	}
	fill(&p.InitialDigits, o.InitialDigits)
	fill(&p.MaxDigits, o.MaxDigits)
	fill(&p.MaxAttempts, o.MaxAttempts)
	fill(&p.SigmaDepth, o.SigmaDepth)
	fill(&p.MaxSteps, o.MaxSteps)
	return p
}

// context derives the context for a run from the command's.
func (o *DriverOptions) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	if o.Timeout > 0 {
		return context.WithTimeout(parent, o.Timeout)
	}
	return context.WithCancel(parent)
}
