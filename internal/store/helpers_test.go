package store

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/roach88/lazyreals/internal/ir"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testProblem(name string) ir.Problem {
	return ir.Problem{Name: name, Real: "sqrt", Args: []string{"2"}, Precision: 10}
}

// createTestRun builds a successful run with the given number of passes.
// Seqs count up from seq: passes first, then the run.
func createTestRun(id string, p ir.Problem, seq int64, passes int) (ir.RunRecord, []ir.PassRecord) {
	recs := make([]ir.PassRecord, passes)
	for i := range recs {
		recs[i] = ir.PassRecord{
			RunID:      id,
			Seq:        seq + int64(i),
			Attempt:    i + 1,
			Digits:     10 << i,
			SigmaDepth: 1,
			Steps:      31,
			Rendered:   fmt.Sprintf("pass-%d", i+1),
		}
	}
	run := ir.RunRecord{
		ID:          id,
		Problem:     p.Name,
		ProblemHash: ir.MustProblemHash(p),
		Precision:   p.Precision,
		FinalDigits: 10 << max(passes-1, 0),
		Lo:          "1.41421356237",
		Hi:          "1.41421356238",
		Rendered:    "1.4142135623[7,8]",
		Status:      ir.RunOK,
		Seq:         seq + int64(passes),
	}
	return run, recs
}
