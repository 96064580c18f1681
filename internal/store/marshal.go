package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/lazyreals/internal/ir"
)

// marshalProblem converts a problem to canonical JSON TEXT for storage.
// The bytes are the ones ir.ProblemHash hashes.
func marshalProblem(p ir.Problem) (string, error) {
	data, err := ir.MarshalCanonical(p.Canonical())
	if err != nil {
		return "", fmt.Errorf("marshal problem: %w", err)
	}
	return string(data), nil
}

// unmarshalProblem parses a stored definition. Unknown fields are an error
// so a definition written by a newer schema is not silently truncated.
func unmarshalProblem(data string) (ir.Problem, error) {
	var p ir.Problem
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return ir.Problem{}, fmt.Errorf("unmarshal problem: %w", err)
	}
	return p, nil
}
