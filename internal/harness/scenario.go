package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/lazyreals/internal/ir"
)

// Scenario is a list of refinement cases run against one store.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// RunID is the prefix for run IDs. Empty means testutil.DefaultRunPrefix.
	RunID string `yaml:"run_id,omitempty"`

	// Problems lists CUE problem files that cases may refer to by name.
	// Paths are relative to the scenario file.
	Problems []string `yaml:"problems,omitempty"`

	// Cases run in order.
	Cases []Case `yaml:"cases"`
}

// Case is one driver run.
type Case struct {
	Name string `yaml:"name"`

	// Problem names a problem from the scenario's CUE files.
	Problem string `yaml:"problem,omitempty"`

	// Inline problem, used when Problem is empty.
	Real          string   `yaml:"real,omitempty"`
	Args          []string `yaml:"args,omitempty"`
	Precision     int      `yaml:"precision,omitempty"`
	InitialDigits int      `yaml:"initial_digits,omitempty"`
	MaxDigits     int      `yaml:"max_digits,omitempty"`
	MaxAttempts   int      `yaml:"max_attempts,omitempty"`
	SigmaDepth    int      `yaml:"sigma_depth,omitempty"`
	MaxSteps      int      `yaml:"max_steps,omitempty"`

	// Expect is checked against the stored run. Nil checks only that the
	// run succeeded.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect lists what a case's run must look like. Empty fields are not
// checked.
type Expect struct {
	Rendered    string   `yaml:"rendered,omitempty"`
	Contains    []string `yaml:"contains,omitempty"`
	Digits      []int    `yaml:"digits,omitempty"`
	SigmaDepths []int    `yaml:"sigma_depths,omitempty"`
	Outcomes    []string `yaml:"outcomes,omitempty"`
	ErrorCode   string   `yaml:"error_code,omitempty"`
}

// inlineProblem returns the problem an inline case describes.
func (c Case) inlineProblem() ir.Problem {
	return ir.Problem{
		Name:          c.Name,
		Real:          c.Real,
		Args:          c.Args,
		Precision:     c.Precision,
		InitialDigits: c.InitialDigits,
		MaxDigits:     c.MaxDigits,
		MaxAttempts:   c.MaxAttempts,
		SigmaDepth:    c.SigmaDepth,
		MaxSteps:      c.MaxSteps,
	}
}

func (c Case) hasInline() bool {
	return c.Real != "" || len(c.Args) > 0 || c.Precision != 0 ||
		c.InitialDigits != 0 || c.MaxDigits != 0 || c.MaxAttempts != 0 ||
		c.SigmaDepth != 0 || c.MaxSteps != 0
}

// LoadScenario reads and parses a scenario YAML file. Problem file paths
// are resolved against the scenario's directory.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "case:" vs "cases:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	base := filepath.Dir(path)
	for i, p := range scenario.Problems {
		if !filepath.IsAbs(p) {
			scenario.Problems[i] = filepath.Join(base, p)
		}
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	for _, path := range s.Problems {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("problem file not found: %s", path)
		}
	}

	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate case name %q", i, c.Name)
		}
		seen[c.Name] = true

		switch {
		case c.Problem != "" && c.hasInline():
			return fmt.Errorf("cases[%d]: problem and inline fields are mutually exclusive", i)
		case c.Problem != "" && len(s.Problems) == 0:
			return fmt.Errorf("cases[%d]: problem %q needs a problems file", i, c.Problem)
		case c.Problem == "" && c.Real == "":
			return fmt.Errorf("cases[%d]: real or problem is required", i)
		case c.Problem == "" && c.Precision == 0:
			return fmt.Errorf("cases[%d]: precision is required", i)
		}
	}

	return nil
}
