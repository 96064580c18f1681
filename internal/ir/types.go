package ir

// Problem names a catalog real, its arguments, and the precision it should
// be rendered at. Zero-valued limits mean "use the driver default".
type Problem struct {
	Name          string   `json:"name"`
	Real          string   `json:"real"`
	Args          []string `json:"args,omitempty"`
	Precision     int      `json:"precision"`
	InitialDigits int      `json:"initial_digits,omitempty"`
	MaxDigits     int      `json:"max_digits,omitempty"`
	MaxAttempts   int      `json:"max_attempts,omitempty"`
	SigmaDepth    int      `json:"sigma_depth,omitempty"`
	MaxSteps      int      `json:"max_steps,omitempty"`
	Description   string   `json:"description,omitempty"`
}

// Canonical returns the problem as a canonical-JSON-ready object.
// Optional fields are omitted when zero so the hash is stable.
func (p Problem) Canonical() map[string]any {
	obj := map[string]any{
		"name":      p.Name,
		"real":      p.Real,
		"precision": p.Precision,
	}
	if len(p.Args) > 0 {
		args := make([]any, len(p.Args))
		for i, a := range p.Args {
			args[i] = a
		}
		obj["args"] = args
	}
	putInt(obj, "initial_digits", p.InitialDigits)
	putInt(obj, "max_digits", p.MaxDigits)
	putInt(obj, "max_attempts", p.MaxAttempts)
	putInt(obj, "sigma_depth", p.SigmaDepth)
	putInt(obj, "max_steps", p.MaxSteps)
	return obj
}

func putInt(obj map[string]any, key string, v int) {
	if v != 0 {
		obj[key] = v
	}
}

// RunStatus is the outcome of a refinement run.
type RunStatus string

const (
	RunOK     RunStatus = "ok"
	RunFailed RunStatus = "failed"
)

// RunRecord is one call of the refinement driver.
type RunRecord struct {
	ID          string    `json:"id"`
	Problem     string    `json:"problem"`
	ProblemHash string    `json:"problem_hash,omitempty"`
	Precision   int       `json:"precision"`
	FinalDigits int       `json:"final_digits"`
	Lo          string    `json:"lo,omitempty"`
	Hi          string    `json:"hi,omitempty"`
	Rendered    string    `json:"rendered"`
	Status      RunStatus `json:"status"`
	ErrorCode   string    `json:"error_code,omitempty"`
	Error       string    `json:"error,omitempty"`
	Seq         int64     `json:"seq"`
}

// PassRecord is one attempt inside a run, at a fixed digit count and
// sigma depth.
type PassRecord struct {
	RunID      string `json:"run_id"`
	Seq        int64  `json:"seq"`
	Attempt    int    `json:"attempt"`
	Digits     int    `json:"digits"`
	SigmaDepth int    `json:"sigma_depth"`
	Steps      int    `json:"steps"`
	Rendered   string `json:"rendered"`
	ErrorKind  string `json:"error_kind,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Canonical returns the pass without its run ID and sequence number, which
// vary between executions of the same problem.
func (p PassRecord) Canonical() map[string]any {
	obj := map[string]any{
		"attempt":     p.Attempt,
		"digits":      p.Digits,
		"sigma_depth": p.SigmaDepth,
		"steps":       p.Steps,
		"rendered":    p.Rendered,
	}
	if p.ErrorKind != "" {
		obj["error_kind"] = p.ErrorKind
	}
	return obj
}
