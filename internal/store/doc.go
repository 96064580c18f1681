// Package store provides SQLite-backed storage for refinement runs.
//
// Three tables are kept:
//   - problems: problem definitions as canonical JSON, keyed by ir.ProblemHash
//   - runs: one row per driver run, with the final enclosure and status
//   - passes: one row per attempt inside a run
//
// Writes are idempotent: a run or problem written twice is stored once.
// Reads order by seq, then by id in binary collation, so listings are the
// same however the rows were inserted. Run listings are built as
// queryir queries and compiled by querysql.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
