package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTrace(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	p := testProblem("sqrt2")
	_, err := s.WriteProblem(ctx, p)
	require.NoError(t, err)
	run, passes := createTestRun("run-1", p, 1, 2)
	require.NoError(t, s.RecordRun(ctx, run, passes))

	trace, err := s.ReadTrace(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run, trace.Run)
	assert.Equal(t, p, trace.Problem)
	assert.Equal(t, passes, trace.Passes)
}

func TestReadTraceMissingProblem(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run, passes := createTestRun("run-1", testProblem("sqrt2"), 1, 1)
	require.NoError(t, s.RecordRun(ctx, run, passes))

	_, err := s.ReadTrace(ctx, "run-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read problem")
}

func TestComparePasses(t *testing.T) {
	_, stored := createTestRun("run-1", testProblem("sqrt2"), 1, 2)
	_, again := createTestRun("run-2", testProblem("sqrt2"), 50, 2)

	m, err := ComparePasses(stored, again)
	require.NoError(t, err)
	assert.Nil(t, m, "run IDs and seqs do not take part")

	again[1].Steps = 4
	m, err = ComparePasses(stored, again)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 2, m.Attempt)
	assert.Contains(t, m.Error(), `"steps":4`)

	m, err = ComparePasses(stored, again[:1])
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "(missing)", m.Got)
}
