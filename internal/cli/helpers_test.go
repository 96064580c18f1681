package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/roach88/lazyreals/internal/store"
)

// validProblems defines two problems whose traces are known: each needs a
// second pass at doubled digits.
const validProblems = `package reals

problem: sqrt2: {
	real:        "sqrt"
	args:        ["2"]
	precision:   10
	description: "square root of two"
}

problem: golden: {
	real:      "golden"
	precision: 10
}
`

// cappedProblem cannot reach its precision before the digit ceiling.
const cappedProblem = `package reals

problem: capped: {
	real:       "sqrt"
	args:       ["2"]
	precision:  10
	max_digits: 15
}
`

func testRoot(format string) *RootOptions {
	return &RootOptions{Format: format, Logger: zap.NewNop()}
}

// writeProblems writes content as problems.cue in a fresh directory.
func writeProblems(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "problems.cue"), []byte(content), 0o644))
	return dir
}

// execute runs cmd with args and returns everything it wrote.
func execute(cmd *cobra.Command, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// decodeData unmarshals the data of a JSON CLIResponse into v.
func decodeData(t *testing.T, out string, v any) {
	t.Helper()
	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status, out)
	require.NoError(t, json.Unmarshal(resp.Data, v))
}

func openStore(t *testing.T, path string) *store.Store {
	t.Helper()
	st, err := store.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}
