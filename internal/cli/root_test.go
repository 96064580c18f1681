package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	want := []string{"compute", "list", "compile", "validate", "run", "trace", "replay", "test"}
	var got []string
	for _, c := range cmd.Commands() {
		got = append(got, c.Name())
	}
	assert.ElementsMatch(t, want, got)
}

func TestRootFlags(t *testing.T) {
	cmd := NewRootCommand()

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
}

func TestDriverFlags(t *testing.T) {
	root := NewRootCommand()
	for _, name := range []string{"compute", "run"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		for _, flag := range []string{"initial-digits", "max-digits", "max-attempts", "sigma-depth", "max-steps", "timeout", "db"} {
			assert.NotNil(t, cmd.Flags().Lookup(flag), "%s --%s", name, flag)
		}
	}
}

func TestRoot_InvalidFormat(t *testing.T) {
	cmd := newRootCommand(&RootOptions{Logger: zap.NewNop()})
	_, err := execute(cmd, "--format", "xml", "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestRoot_ComputeThroughRoot(t *testing.T) {
	cmd := newRootCommand(&RootOptions{Logger: zap.NewNop()})
	out, err := execute(cmd, "compute", "sqrt", "2", "--precision", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "sqrt(2) = 1.4142135623[1,8]")
}

func TestRoot_BuildsLogger(t *testing.T) {
	opts := &RootOptions{}
	cmd := newRootCommand(opts)
	_, err := execute(cmd, "list")
	require.NoError(t, err)
	require.NotNil(t, opts.Logger)
	assert.False(t, opts.Logger.Core().Enabled(zap.InfoLevel))

	opts = &RootOptions{}
	_, err = execute(newRootCommand(opts), "--verbose", "list")
	require.NoError(t, err)
	assert.True(t, opts.Logger.Core().Enabled(zap.DebugLevel))
}

func TestRootOptions_NilLogger(t *testing.T) {
	assert.NotNil(t, (&RootOptions{}).logger())
}
