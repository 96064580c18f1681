package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lazyreals/internal/store"
)

func TestReplay_Matches(t *testing.T) {
	db := recordedDB(t)

	for _, id := range []string{"r1", "r2", "r3"} {
		t.Run(id, func(t *testing.T) {
			out, err := execute(NewReplayCommand(testRoot("text")), "--db", db, id)
			require.NoError(t, err)
			assert.Contains(t, out, "✓ Replay matches: "+id)
		})
	}
}

func TestReplay_JSON(t *testing.T) {
	db := recordedDB(t)

	out, err := execute(NewReplayCommand(testRoot("json")), "--db", db, "r1")
	require.NoError(t, err)

	var res ReplayResult
	decodeData(t, out, &res)
	assert.True(t, res.Deterministic)
	assert.Equal(t, "sqrt2", res.Problem)
	assert.Equal(t, 2, res.Passes)
	assert.Equal(t, "1.4142135623[1,8]", res.Rendered)
	assert.Nil(t, res.Mismatch)
}

func TestReplay_DetectsTampering(t *testing.T) {
	db := recordedDB(t)

	st, err := store.Open(db)
	require.NoError(t, err)
	_, err = st.DB().ExecContext(context.Background(),
		`UPDATE passes SET steps = 99 WHERE run_id = 'r1' AND attempt = 1`)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err := execute(NewReplayCommand(testRoot("text")), "--db", db, "r1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Replay diverged: r1 (sqrt2)")
	assert.Contains(t, out, "attempt 1: stored")
	assert.Contains(t, out, `"steps":99`)
}

func TestReplay_UnknownRun(t *testing.T) {
	db := recordedDB(t)

	out, err := execute(NewReplayCommand(testRoot("text")), "--db", db, "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "run not found: nope")
}
