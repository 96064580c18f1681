package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/roach88/lazyreals/internal/ir"
	"github.com/roach88/lazyreals/internal/queryir"
	"github.com/roach88/lazyreals/internal/querysql"
)

var runColumns = []string{
	"id", "problem", "problem_hash", "precision", "final_digits", "lo", "hi", "rendered",
	"status", "error_code", "error", "seq",
}

// ListOptions filters ListRuns. Zero values select everything.
type ListOptions struct {
	Problem      string // problem name
	Status       ir.RunStatus
	MinPrecision int
	Limit        int
}

func (o ListOptions) query() queryir.Select {
	var filters []queryir.Predicate
	if o.Problem != "" {
		filters = append(filters, queryir.Equals{Field: "problem", Value: queryir.String(o.Problem)})
	}
	if o.Status != "" {
		filters = append(filters, queryir.Equals{Field: "status", Value: queryir.String(o.Status)})
	}
	if o.MinPrecision > 0 {
		filters = append(filters, queryir.AtLeast{Field: "precision", Value: queryir.Int(o.MinPrecision)})
	}
	return queryir.Select{
		From:    "runs",
		Columns: runColumns,
		Filter:  queryir.All(filters...),
		Limit:   o.Limit,
	}
}

// ListRuns returns runs ordered by seq ASC, id ASC COLLATE BINARY.
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) ListRuns(ctx context.Context, opts ListOptions) ([]ir.RunRecord, error) {
	if opts.Limit < 0 {
		opts.Limit = 0
	}
	query, args, err := querysql.Compile(opts.query())
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []ir.RunRecord{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun retrieves a single run by ID.
// Returns an error wrapping sql.ErrNoRows if not found.
func (s *Store) ReadRun(ctx context.Context, id string) (ir.RunRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+strings.Join(runColumns, ", ")+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		return ir.RunRecord{}, fmt.Errorf("read run %q: %w", id, err)
	}
	return run, nil
}

// ReadPasses returns the passes of a run ordered by seq, then attempt.
func (s *Store) ReadPasses(ctx context.Context, runID string) ([]ir.PassRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, seq, attempt, digits, sigma_depth, steps, rendered, error_kind, error
		FROM passes
		WHERE run_id = ?
		ORDER BY seq ASC, attempt ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query passes: %w", err)
	}
	defer rows.Close()

	passes := []ir.PassRecord{}
	for rows.Next() {
		var p ir.PassRecord
		if err := rows.Scan(&p.RunID, &p.Seq, &p.Attempt, &p.Digits, &p.SigmaDepth,
			&p.Steps, &p.Rendered, &p.ErrorKind, &p.Error); err != nil {
			return nil, fmt.Errorf("scan pass: %w", err)
		}
		passes = append(passes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate passes: %w", err)
	}
	return passes, nil
}

// ReadProblem retrieves a stored problem definition by hash.
// Description is not stored and comes back empty.
func (s *Store) ReadProblem(ctx context.Context, hash string) (ir.Problem, error) {
	var def string
	err := s.db.QueryRowContext(ctx, `SELECT definition FROM problems WHERE hash = ?`, hash).Scan(&def)
	if err != nil {
		return ir.Problem{}, fmt.Errorf("read problem %s: %w", hash, err)
	}
	return unmarshalProblem(def)
}

// MaxSeq returns the largest seq stored in runs or passes, or 0 for an
// empty store. A driver clock started at MaxSeq keeps seq increasing
// across invocations.
func (s *Store) MaxSeq(ctx context.Context) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(
			COALESCE((SELECT MAX(seq) FROM runs), 0),
			COALESCE((SELECT MAX(seq) FROM passes), 0)
		)
	`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("max seq: %w", err)
	}
	return seq, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (ir.RunRecord, error) {
	var run ir.RunRecord
	var status string
	err := row.Scan(&run.ID, &run.Problem, &run.ProblemHash, &run.Precision, &run.FinalDigits,
		&run.Lo, &run.Hi, &run.Rendered, &status, &run.ErrorCode, &run.Error, &run.Seq)
	if err != nil {
		if err == sql.ErrNoRows {
			return ir.RunRecord{}, err
		}
		return ir.RunRecord{}, fmt.Errorf("scan run: %w", err)
	}
	run.Status = ir.RunStatus(status)
	return run, nil
}
