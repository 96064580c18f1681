package harness

import (
	"context"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"go.uber.org/zap"

	"github.com/roach88/lazyreals/internal/catalog"
	"github.com/roach88/lazyreals/internal/compiler"
	"github.com/roach88/lazyreals/internal/engine"
	"github.com/roach88/lazyreals/internal/ir"
	"github.com/roach88/lazyreals/internal/store"
	"github.com/roach88/lazyreals/internal/testutil"
)

// Harness runs the cases of one scenario against a fresh store.
type Harness struct {
	store    *store.Store
	driver   *engine.Driver
	problems map[string]ir.Problem
	logger   *zap.Logger
}

// Run executes a scenario with logging disabled.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario, zap.NewNop())
}

// RunContext executes a scenario and returns the result.
//
// Execution flow:
//  1. Create fresh in-memory database
//  2. Compile and validate the scenario's CUE problem files
//  3. Run each case through the driver, which records into the store
//  4. Read each run back from the store and check its expectations
//
// An error is returned only when the scenario cannot run at all; failed
// expectations are reported in Result.Errors.
func RunContext(ctx context.Context, scenario *Scenario, logger *zap.Logger) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	problems, err := loadProblems(scenario.Problems)
	if err != nil {
		return nil, err
	}

	h := &Harness{
		store: st,
		driver: engine.New(
			engine.WithRecorder(st),
			engine.WithRunIDGenerator(testutil.NewSequenceGenerator(scenario.RunID)),
			engine.WithLogger(logger),
		),
		problems: problems,
		logger:   logger.With(zap.String("scenario", scenario.Name)),
	}

	result := NewResult()
	for _, c := range scenario.Cases {
		cr, err := h.runCase(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("case %q: %w", c.Name, err)
		}
		result.Cases = append(result.Cases, cr)
		for _, e := range EvaluateExpect(cr, c.Expect) {
			result.AddError(e.Error())
		}
	}

	h.logger.Debug("scenario finished",
		zap.Int("cases", len(result.Cases)),
		zap.Int("failures", len(result.Errors)),
	)
	return result, nil
}

func (h *Harness) runCase(ctx context.Context, c Case) (CaseResult, error) {
	p := c.inlineProblem()
	if c.Problem != "" {
		var ok bool
		if p, ok = h.problems[c.Problem]; !ok {
			return CaseResult{}, fmt.Errorf("unknown problem %q", c.Problem)
		}
	}

	r, err := catalog.Build(p.Real, p.Args...)
	if err != nil {
		return CaseResult{}, err
	}
	if _, err := h.store.WriteProblem(ctx, p); err != nil {
		return CaseResult{}, err
	}

	res, runErr := h.driver.Solve(ctx, p, r)
	cr := CaseResult{
		Name:      c.Name,
		Problem:   p,
		Status:    ir.RunFailed,
		ErrorCode: string(engine.CodeOf(runErr)),
		Passes:    []ir.PassRecord{},
	}
	if runErr != nil && cr.ErrorCode == "" {
		// Not a driver outcome: the store or the context failed.
		return CaseResult{}, runErr
	}
	if res == nil {
		return cr, nil
	}

	trace, err := h.store.ReadTrace(ctx, res.RunID)
	if err != nil {
		return CaseResult{}, err
	}
	cr.RunID = trace.Run.ID
	cr.Rendered = trace.Run.Rendered
	cr.Status = trace.Run.Status
	cr.Passes = trace.Passes
	cr.Bounds, cr.Known = res.Bounds, res.Known
	return cr, nil
}

// loadProblems compiles CUE problem files into a map by name. Problems
// must pass compiler.ValidateAll across all files.
func loadProblems(paths []string) (map[string]ir.Problem, error) {
	problems := make(map[string]ir.Problem)
	if len(paths) == 0 {
		return problems, nil
	}

	ctx := cuecontext.New()
	var all []ir.Problem
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read problem file: %w", err)
		}
		v := ctx.CompileBytes(data, cue.Filename(path))
		ps, err := compiler.CompileProblems(v)
		if err != nil {
			return nil, fmt.Errorf("compile %s: %w", path, err)
		}
		all = append(all, ps...)
	}

	if errs := compiler.ValidateAll(all); len(errs) > 0 {
		return nil, fmt.Errorf("invalid problems: %w", errs[0])
	}
	for _, p := range all {
		problems[p.Name] = p
	}
	return problems, nil
}
