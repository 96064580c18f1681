// Package testutil holds deterministic helpers shared by the harness and
// package tests.
package testutil

import (
	"fmt"
	"sync"
)

// DefaultRunPrefix is used when a scenario does not name its runs.
const DefaultRunPrefix = "test-run"

// SequenceGenerator names runs prefix-0001, prefix-0002, and so on.
//
// Unlike engine.FixedGenerator it never runs out, and it can be reset so
// the same scenario run twice produces identical run IDs.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequenceGenerator creates a generator. An empty prefix becomes
// DefaultRunPrefix.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	if prefix == "" {
		prefix = DefaultRunPrefix
	}
	return &SequenceGenerator{prefix: prefix}
}

// Generate implements engine.RunIDGenerator.
func (g *SequenceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}

// Reset makes the next Generate return prefix-0001 again.
func (g *SequenceGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n = 0
}
