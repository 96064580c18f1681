package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/roach88/lazyreals/internal/catalog"
	"github.com/roach88/lazyreals/internal/engine"
	"github.com/roach88/lazyreals/internal/ir"
	"github.com/roach88/lazyreals/internal/store"
)

// session is a driver wired to an optional store and a private metrics
// registry, shared by the commands that evaluate problems.
type session struct {
	store    *store.Store
	driver   *engine.Driver
	registry *prometheus.Registry
	logger   *zap.Logger
}

type sessionConfig struct {
	database string                // empty for no persistence
	runIDs   engine.RunIDGenerator // nil for UUIDv7
	logger   *zap.Logger
}

// openSession opens the store when one is configured and continues its
// sequence numbers, so new passes sort after everything already stored.
func openSession(ctx context.Context, cfg sessionConfig) (*session, error) {
	s := &session{
		registry: prometheus.NewRegistry(),
		logger:   cfg.logger,
	}
	opts := []engine.Option{
		engine.WithLogger(cfg.logger),
		engine.WithMetrics(engine.NewMetrics(s.registry)),
	}
	if cfg.runIDs != nil {
		opts = append(opts, engine.WithRunIDGenerator(cfg.runIDs))
	}

	if cfg.database != "" {
		st, err := store.Open(cfg.database)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		seq, err := st.MaxSeq(ctx)
		if err != nil {
			st.Close()
			return nil, err
		}
		s.store = st
		opts = append(opts, engine.WithRecorder(st), engine.WithClock(engine.NewClockAt(seq)))
		cfg.logger.Debug("database ready", zap.String("path", cfg.database), zap.Int64("seq", seq))
	}

	s.driver = engine.New(opts...)
	return s, nil
}

// solve builds the problem's real and runs it. Catalog errors come back
// unchanged so callers can tell usage errors from failed runs.
func (s *session) solve(ctx context.Context, p ir.Problem) (*engine.Result, error) {
	r, err := catalog.Build(p.Real, p.Args...)
	if err != nil {
		return nil, err
	}
	if s.store != nil {
		if _, err := s.store.WriteProblem(ctx, p); err != nil {
			return nil, err
		}
	}
	return s.driver.Solve(ctx, p, r)
}

// writeMetrics writes the session's counters in the Prometheus text format.
func (s *session) writeMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, s.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	s.logger.Debug("metrics written", zap.String("path", path))
	return nil
}

func (s *session) close() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error("error closing database", zap.Error(err))
	}
}
