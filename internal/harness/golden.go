package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/lazyreals/internal/ir"
)

// TraceSnapshot is the part of a scenario result that golden files pin:
// every case's status, final rendering and pass trace.
type TraceSnapshot struct {
	ScenarioName string
	Cases        []CaseResult
}

// toCanonicalMap converts a TraceSnapshot to a map[string]any for canonical
// JSON serialization. Seq numbers and error text are left out; the pass
// canonical form already drops them.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	cases := make([]any, len(s.Cases))
	for i, c := range s.Cases {
		passes := make([]any, len(c.Passes))
		for j, p := range c.Passes {
			passes[j] = p.Canonical()
		}
		m := map[string]any{
			"name":   c.Name,
			"status": string(c.Status),
			"passes": passes,
		}
		if c.RunID != "" {
			m["run_id"] = c.RunID
		}
		if c.Rendered != "" {
			m["rendered"] = c.Rendered
		}
		if c.ErrorCode != "" {
			m["error_code"] = c.ErrorCode
		}
		cases[i] = m
	}
	return map[string]any{
		"scenario_name": s.ScenarioName,
		"cases":         cases,
	}
}

// MarshalTrace returns the canonical JSON golden files hold for a result.
func MarshalTrace(scenarioName string, result *Result) ([]byte, error) {
	snapshot := TraceSnapshot{ScenarioName: scenarioName, Cases: result.Cases}
	return ir.MarshalCanonical(snapshot.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result's trace against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	traceJSON, err := MarshalTrace(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)

	return nil
}
