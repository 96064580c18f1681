package engine

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/roach88/lazyreals/internal/dyadic"
	"github.com/roach88/lazyreals/internal/exact"
	"github.com/roach88/lazyreals/internal/interval"
	"github.com/roach88/lazyreals/internal/ir"
)

const (
	// DefaultMaxDigits is the largest digit count a pass may use.
	DefaultMaxDigits = 1 << 14

	// DefaultMaxAttempts is the largest number of passes in one run.
	DefaultMaxAttempts = 16
)

// DefaultMaxSteps returns the per-pass refinement step cap used when none
// is configured. Bisection gains roughly a third of a digit per step, so
// the cap leaves room for about three times the needed work.
func DefaultMaxSteps(precision int) int {
	return 10*precision + 100
}

// Pass outcomes, as reported by Pass.Outcome and the metrics.
const (
	OutcomeOK        = "ok"
	OutcomePrecision = "precision"
	OutcomeSteps     = "steps"
	OutcomeError     = "error"
)

// Recorder persists finished runs. Implemented by store.Store.
type Recorder interface {
	RecordRun(ctx context.Context, run ir.RunRecord, passes []ir.PassRecord) error
}

// Option configures a Driver.
type Option func(*Driver)

// WithMaxDigits sets the digit ceiling. Default: DefaultMaxDigits.
func WithMaxDigits(n int) Option {
	return func(d *Driver) { d.maxDigits = n }
}

// WithMaxAttempts sets the attempt ceiling. Default: DefaultMaxAttempts.
func WithMaxAttempts(n int) Option {
	return func(d *Driver) { d.maxAttempts = n }
}

// WithInitialDigits sets the digits of the first pass. Default: the
// requested precision.
func WithInitialDigits(n int) Option {
	return func(d *Driver) { d.initialDigits = n }
}

// WithSigmaDepth sets the sigma depth of the first pass. Default: 1.
func WithSigmaDepth(n int) Option {
	return func(d *Driver) { d.sigmaDepth = n }
}

// WithMaxSteps caps refinement steps per pass. Default: DefaultMaxSteps.
func WithMaxSteps(n int) Option {
	return func(d *Driver) { d.maxSteps = n }
}

// WithLogger sets the logger. Default: zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// WithRecorder persists every finished run.
func WithRecorder(r Recorder) Option {
	return func(d *Driver) { d.recorder = r }
}

// WithMetrics records pass and run counters.
func WithMetrics(m *Metrics) Option {
	return func(d *Driver) { d.metrics = m }
}

// WithRunIDGenerator sets how runs are named. Default: UUIDv7Generator.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(d *Driver) { d.runIDs = g }
}

// WithClock sets the sequence clock, for appending to an existing store.
func WithClock(c *Clock) Option {
	return func(d *Driver) { d.clock = c }
}

// Driver refines reals to a requested decimal precision, escalating digits
// and sigma depth between passes. A Driver is not safe for concurrent use.
type Driver struct {
	maxDigits     int
	maxAttempts   int
	initialDigits int
	sigmaDepth    int
	maxSteps      int

	logger   *zap.Logger
	recorder Recorder
	metrics  *Metrics
	runIDs   RunIDGenerator
	clock    *Clock
}

// New creates a Driver.
func New(opts ...Option) *Driver {
	d := &Driver{
		logger: zap.NewNop(),
		runIDs: UUIDv7Generator{},
		clock:  NewClock(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Pass is one attempt at a fixed digit count and sigma depth.
type Pass struct {
	Seq        int64
	Attempt    int
	Digits     int
	SigmaDepth int
	Steps      int
	Rendered   string
	Err        error
}

// Outcome classifies how the pass ended.
func (p Pass) Outcome() string {
	switch {
	case p.Err == nil:
		return OutcomeOK
	case interval.IsPrecisionError(p.Err):
		return OutcomePrecision
	case exact.IsStepsExceeded(p.Err):
		return OutcomeSteps
	default:
		return OutcomeError
	}
}

// Record converts the pass to its stored form.
func (p Pass) Record(runID string) ir.PassRecord {
	rec := ir.PassRecord{
		RunID:      runID,
		Seq:        p.Seq,
		Attempt:    p.Attempt,
		Digits:     p.Digits,
		SigmaDepth: p.SigmaDepth,
		Steps:      p.Steps,
		Rendered:   p.Rendered,
	}
	if p.Err != nil {
		rec.ErrorKind = p.Outcome()
		rec.Error = p.Err.Error()
	}
	return rec
}

// Result describes a run. Bounds and Rendered reflect the enclosure after
// the last pass, whether or not the run succeeded.
type Result struct {
	RunID     string
	Problem   string
	Precision int
	Passes    []Pass
	Bounds    interval.Interval
	Known     bool
	Rendered  string
}

// FinalDigits returns the digits of the last pass, or 0 before any pass.
func (r *Result) FinalDigits() int {
	if len(r.Passes) == 0 {
		return 0
	}
	return r.Passes[len(r.Passes)-1].Digits
}

// Steps returns the refinement steps summed over all passes.
func (r *Result) Steps() int {
	total := 0
	for _, p := range r.Passes {
		total += p.Steps
	}
	return total
}

// RefineToDecimalPrecision refines r until its enclosure is at most
// 10^-precision wide and returns the rendered result.
func (d *Driver) RefineToDecimalPrecision(ctx context.Context, r exact.Real, precision int) (*Result, error) {
	return d.Solve(ctx, ir.Problem{Precision: precision}, r)
}

// settings merges the problem's limits over the driver's.
type settings struct {
	initialDigits int
	sigmaDepth    int
	maxSteps      int
	maxDigits     int
	maxAttempts   int
}

func (d *Driver) settings(p ir.Problem) settings {
	s := settings{
		initialDigits: firstPositive(p.InitialDigits, d.initialDigits, p.Precision),
		sigmaDepth:    firstPositive(p.SigmaDepth, d.sigmaDepth, 1),
		maxSteps:      firstPositive(p.MaxSteps, d.maxSteps, DefaultMaxSteps(p.Precision)),
		maxDigits:     firstPositive(p.MaxDigits, d.maxDigits, DefaultMaxDigits),
		maxAttempts:   firstPositive(p.MaxAttempts, d.maxAttempts, DefaultMaxAttempts),
	}
	return s
}

func firstPositive(vs ...int) int {
	for _, v := range vs {
		if v > 0 {
			return v
		}
	}
	return 0
}

// Solve refines r to p.Precision using p's limits where set and the
// driver's otherwise.
//
// A precision below 2 fails with INVALID_PRECISION before any work is
// done. When a run fails after starting, Solve returns the partial Result
// together with a *RuntimeError so callers can show the passes taken.
func (d *Driver) Solve(ctx context.Context, p ir.Problem, r exact.Real) (*Result, error) {
	if p.Precision <= 1 {
		return nil, NewInvalidPrecisionError(p.Precision)
	}
	cfg := d.settings(p)
	runID := d.runIDs.Generate()
	log := d.logger.With(
		zap.String("run_id", runID),
		zap.String("problem", p.Name),
		zap.Int("precision", p.Precision),
	)

	target := dyadic.Pow10(int32(-p.Precision))
	quota := NewAttemptQuota(cfg.maxAttempts, cfg.maxDigits)
	res := &Result{RunID: runID, Problem: p.Name, Precision: p.Precision}

	digits, depth := cfg.initialDigits, cfg.sigmaDepth
	var runErr, lastErr error
	for runErr == nil {
		if !quota.Allow(digits) {
			runErr = NewCeilingError(runID, quota.Attempts(), digits, lastErr)
			log.Warn("precision ceiling reached",
				zap.Int("attempts", quota.Attempts()),
				zap.Int("digits", digits),
				zap.Int("max_digits", quota.MaxDigits()),
				zap.Int("max_attempts", quota.MaxAttempts()),
			)
			break
		}

		pc := dyadic.NewContext(depth, digits).WithMaxSteps(cfg.maxSteps)
		steps, err := r.RefineToWidth(ctx, target, pc)
		pass := Pass{
			Seq:        d.clock.Next(),
			Attempt:    quota.Attempts(),
			Digits:     digits,
			SigmaDepth: depth,
			Steps:      steps,
			Rendered:   exact.Render(r),
			Err:        err,
		}
		res.Passes = append(res.Passes, pass)
		outcome := pass.Outcome()
		d.metrics.ObservePass(outcome, steps)
		log.Debug("pass finished",
			zap.Int("attempt", pass.Attempt),
			zap.Int("digits", digits),
			zap.Int("sigma_depth", depth),
			zap.Int("steps", steps),
			zap.String("outcome", outcome),
			zap.String("rendered", pass.Rendered),
		)

		if err == nil {
			break
		}
		lastErr = err
		switch outcome {
		case OutcomePrecision:
			digits *= 2
		case OutcomeSteps:
			digits *= 2
			depth *= 2
		default:
			runErr = classify(runID, digits, err)
			continue
		}
		log.Info("escalating precision",
			zap.Int("from_digits", pass.Digits),
			zap.Int("to_digits", digits),
			zap.Int("sigma_depth", depth),
			zap.String("reason", outcome),
		)
	}

	res.Bounds, res.Known = r.Bounds()
	res.Rendered = exact.Render(r)

	status := OutcomeOK
	if runErr != nil {
		status = string(CodeOf(runErr))
		log.Info("run failed", zap.Int("passes", len(res.Passes)), zap.Error(runErr))
	} else {
		log.Info("run finished",
			zap.Int("passes", len(res.Passes)),
			zap.Int("digits", res.FinalDigits()),
			zap.String("rendered", res.Rendered),
		)
	}
	d.metrics.ObserveRun(status, res.FinalDigits())

	if d.recorder != nil {
		run, passes := d.records(p, res, runErr)
		if err := d.recorder.RecordRun(ctx, run, passes); err != nil {
			log.Error("recording run failed", zap.Error(err))
			return res, errors.Join(runErr, err)
		}
	}
	return res, runErr
}

// classify maps a non-retryable pass error to its RuntimeError.
func classify(runID string, digits int, err error) *RuntimeError {
	code := ErrCodeRefinement
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		code = ErrCodeCancelled
	case dyadic.IsIndeterminate(err):
		code = ErrCodeIndeterminate
	case exact.IsContradiction(err):
		code = ErrCodeContradiction
	}
	return newPassError(code, runID, digits, err)
}

func (d *Driver) records(p ir.Problem, res *Result, runErr error) (ir.RunRecord, []ir.PassRecord) {
	run := ir.RunRecord{
		ID:          res.RunID,
		Problem:     p.Name,
		ProblemHash: ir.MustProblemHash(p),
		Precision:   p.Precision,
		FinalDigits: res.FinalDigits(),
		Rendered:    res.Rendered,
		Status:      ir.RunOK,
		Seq:         d.clock.Next(),
	}
	if res.Known {
		run.Lo = res.Bounds.Lo.Text()
		run.Hi = res.Bounds.Hi.Text()
	}
	if runErr != nil {
		run.Status = ir.RunFailed
		run.ErrorCode = string(CodeOf(runErr))
		run.Error = runErr.Error()
	}

	passes := make([]ir.PassRecord, len(res.Passes))
	for i, pass := range res.Passes {
		passes[i] = pass.Record(res.RunID)
	}
	return run, passes
}
