package harness

import (
	"github.com/roach88/lazyreals/internal/interval"
	"github.com/roach88/lazyreals/internal/ir"
)

// CaseResult is what one case produced, as read back from the store.
type CaseResult struct {
	Name      string          `json:"name"`
	Problem   ir.Problem      `json:"problem"`
	RunID     string          `json:"run_id,omitempty"`
	Rendered  string          `json:"rendered"`
	Status    ir.RunStatus    `json:"status"`
	ErrorCode string          `json:"error_code,omitempty"`
	Passes    []ir.PassRecord `json:"passes"`

	// Bounds is the final enclosure; Known is false when the run never
	// produced one.
	Bounds interval.Interval `json:"-"`
	Known  bool              `json:"-"`
}

// Result is the outcome of a scenario.
type Result struct {
	// Pass is true when every expectation held.
	Pass bool `json:"pass"`

	// Cases are in scenario order.
	Cases []CaseResult `json:"cases"`

	// Errors contains failed expectations. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Cases:  []CaseResult{},
		Errors: []string{},
	}
}

// AddError adds a failed expectation and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Case returns the result of the named case.
func (r *Result) Case(name string) (CaseResult, bool) {
	for _, c := range r.Cases {
		if c.Name == name {
			return c, true
		}
	}
	return CaseResult{}, false
}
