package store

import (
	"context"
	"fmt"

	"github.com/roach88/lazyreals/internal/engine"
	"github.com/roach88/lazyreals/internal/ir"
)

var _ engine.Recorder = (*Store)(nil)

// WriteProblem stores a problem definition and returns its hash.
// Uses ON CONFLICT(hash) DO NOTHING: a definition is written once.
func (s *Store) WriteProblem(ctx context.Context, p ir.Problem) (string, error) {
	hash, err := ir.ProblemHash(p)
	if err != nil {
		return "", fmt.Errorf("write problem: %w", err)
	}
	def, err := marshalProblem(p)
	if err != nil {
		return "", fmt.Errorf("write problem: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO problems (hash, name, definition)
		VALUES (?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`, hash, p.Name, def)
	if err != nil {
		return "", fmt.Errorf("write problem: %w", err)
	}
	return hash, nil
}

// RecordRun writes a run and its passes in a single transaction, so a
// reader never sees a run without its passes. Duplicate run IDs and
// duplicate (run_id, attempt) pairs are silently ignored.
func (s *Store) RecordRun(ctx context.Context, run ir.RunRecord, passes []ir.PassRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, problem, problem_hash, precision, final_digits, lo, hi, rendered,
		 status, error_code, error, seq, engine_version, ir_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.Problem,
		run.ProblemHash,
		run.Precision,
		run.FinalDigits,
		run.Lo,
		run.Hi,
		run.Rendered,
		string(run.Status),
		run.ErrorCode,
		run.Error,
		run.Seq,
		ir.EngineVersion,
		ir.SchemaVersion,
	)
	if err != nil {
		return fmt.Errorf("record run: insert run: %w", err)
	}

	for _, p := range passes {
		if p.RunID != run.ID {
			return fmt.Errorf("record run: pass %d belongs to run %q, not %q", p.Attempt, p.RunID, run.ID)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO passes
			(run_id, seq, attempt, digits, sigma_depth, steps, rendered, error_kind, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(run_id, attempt) DO NOTHING
		`,
			p.RunID,
			p.Seq,
			p.Attempt,
			p.Digits,
			p.SigmaDepth,
			p.Steps,
			p.Rendered,
			p.ErrorKind,
			p.Error,
		)
		if err != nil {
			return fmt.Errorf("record run: insert pass %d: %w", p.Attempt, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record run: commit: %w", err)
	}
	return nil
}
