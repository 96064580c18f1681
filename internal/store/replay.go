package store

import (
	"context"
	"fmt"

	"github.com/roach88/lazyreals/internal/ir"
)

// RunTrace is everything stored about one run: enough to evaluate the
// problem again and compare pass by pass.
type RunTrace struct {
	Run     ir.RunRecord
	Problem ir.Problem
	Passes  []ir.PassRecord
}

// ReadTrace loads a run, its problem definition and its passes.
func (s *Store) ReadTrace(ctx context.Context, runID string) (RunTrace, error) {
	run, err := s.ReadRun(ctx, runID)
	if err != nil {
		return RunTrace{}, fmt.Errorf("read trace: %w", err)
	}
	problem, err := s.ReadProblem(ctx, run.ProblemHash)
	if err != nil {
		return RunTrace{}, fmt.Errorf("read trace: %w", err)
	}
	passes, err := s.ReadPasses(ctx, runID)
	if err != nil {
		return RunTrace{}, fmt.Errorf("read trace: %w", err)
	}
	return RunTrace{Run: run, Problem: problem, Passes: passes}, nil
}

// Mismatch is the first difference between a stored trace and a new
// evaluation of the same problem.
type Mismatch struct {
	Attempt int
	Stored  string
	Got     string
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("attempt %d: stored %s, got %s", m.Attempt, m.Stored, m.Got)
}

// ComparePasses compares two pass lists by their canonical form, ignoring
// run IDs and seq numbers. It returns nil when they agree.
func ComparePasses(stored, got []ir.PassRecord) (*Mismatch, error) {
	n := max(len(stored), len(got))
	for i := 0; i < n; i++ {
		var a, b string
		var err error
		if i < len(stored) {
			if a, err = canonicalPass(stored[i]); err != nil {
				return nil, err
			}
		}
		if i < len(got) {
			if b, err = canonicalPass(got[i]); err != nil {
				return nil, err
			}
		}
		if a != b {
			return &Mismatch{Attempt: i + 1, Stored: orMissing(a), Got: orMissing(b)}, nil
		}
	}
	return nil, nil
}

func canonicalPass(p ir.PassRecord) (string, error) {
	data, err := ir.MarshalCanonical(p.Canonical())
	if err != nil {
		return "", fmt.Errorf("marshal pass: %w", err)
	}
	return string(data), nil
}

func orMissing(s string) string {
	if s == "" {
		return "(missing)"
	}
	return s
}
