package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lazyreals/internal/compiler"
)

func TestValidate_Valid(t *testing.T) {
	dir := writeProblems(t, validProblems)

	out, err := execute(NewValidateCommand(testRoot("text")), dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ All problems valid (2 problem(s) in 1 file(s))")
}

func TestValidate_ValidJSON(t *testing.T) {
	dir := writeProblems(t, validProblems)

	out, err := execute(NewValidateCommand(testRoot("json")), dir)
	require.NoError(t, err)

	var res ValidationResult
	decodeData(t, out, &res)
	assert.True(t, res.Valid)
	assert.Equal(t, 1, res.Files)
	assert.Equal(t, []string{"sqrt2", "golden"}, res.Problems)
	assert.Empty(t, res.Errors)
}

func TestValidate_SemanticErrors(t *testing.T) {
	dir := writeProblems(t, `package reals

problem: cube: {
	real:      "cbrt"
	args:      ["2"]
	precision: 10
}

problem: tiny: {
	real:      "reciprocal"
	args:      ["0"]
	precision: 1
}
`)

	out, err := execute(NewValidateCommand(testRoot("text")), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Validation failed with 3 error(s):")
	assert.Contains(t, out, `[E102] problem.cube.real: unknown real "cbrt"`)
	assert.Contains(t, out, "[E105] problem.tiny.precision: precision must be at least 2, got 1")
	assert.Contains(t, out, `[E104] problem.tiny.args: reciprocal: argument 1 ("0"): must be positive`)
}

func TestValidate_SemanticErrorsJSON(t *testing.T) {
	dir := writeProblems(t, `package reals

problem: cube: {
	real:      "cbrt"
	precision: 10
}
`)

	out, err := execute(NewValidateCommand(testRoot("json")), dir)
	require.Error(t, err)

	var res ValidationResult
	decodeData(t, out, &res)
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, compiler.ErrUnknownReal, res.Errors[0].Code)
	assert.Equal(t, "problem.cube.real", res.Errors[0].Field)
}

func TestValidate_LoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T) string
		exitCode int
		want     string
	}{
		{
			name:     "missing directory",
			setup:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope") },
			exitCode: ExitCommandError,
			want:     "Error [E005]: problems directory not found",
		},
		{
			name:     "no cue files",
			setup:    func(t *testing.T) string { return t.TempDir() },
			exitCode: ExitCommandError,
			want:     "Error [E003]: no CUE files found",
		},
		{
			name: "no problems",
			setup: func(t *testing.T) string {
				return writeProblems(t, "package reals\n\nother: 1\n")
			},
			exitCode: ExitFailure,
			want:     "Error [E008]: no problems found",
		},
		{
			name: "missing precision",
			setup: func(t *testing.T) string {
				return writeProblems(t, "package reals\n\nproblem: x: {\n\treal: \"sqrt\"\n\targs: [\"2\"]\n}\n")
			},
			exitCode: ExitFailure,
			want:     "Error [E105]: precision: precision is required",
		},
		{
			name: "bad args",
			setup: func(t *testing.T) string {
				return writeProblems(t, "package reals\n\nproblem: x: {\n\treal: \"sqrt\"\n\targs: \"2\"\n\tprecision: 10\n}\n")
			},
			exitCode: ExitFailure,
			want:     "Error [E009]: args:",
		},
		{
			name: "negative limit",
			setup: func(t *testing.T) string {
				return writeProblems(t, "package reals\n\nproblem: x: {\n\treal: \"golden\"\n\tprecision: 10\n\tmax_digits: -1\n}\n")
			},
			exitCode: ExitFailure,
			want:     "Error [E106]: max_digits:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(NewValidateCommand(testRoot("text")), tt.setup(t))
			require.Error(t, err)
			assert.Equal(t, tt.exitCode, GetExitCode(err))
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestFindCUEFiles(t *testing.T) {
	dir := writeProblems(t, validProblems)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "more.cue"), []byte("package sub"), 0o644))

	files, err := FindCUEFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "problems.cue")}, files)
}

func TestMapFieldToErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeBuildFailed, MapFieldToErrorCode("cue"))
	assert.Equal(t, compiler.ErrInvalidPrecision, MapFieldToErrorCode("precision"))
	assert.Equal(t, compiler.ErrInvalidLimit, MapFieldToErrorCode("sigma_depth"))
	assert.Equal(t, ErrCodeMalformed, MapFieldToErrorCode("args[0]"))
	assert.Equal(t, ErrCodeGeneric, MapFieldToErrorCode(""))
}
