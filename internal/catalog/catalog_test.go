package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lazyreals/internal/dyadic"
	"github.com/roach88/lazyreals/internal/engine"
)

func refine(t *testing.T, name string, precision int, args ...string) *engine.Result {
	t.Helper()
	r, err := Build(name, args...)
	require.NoError(t, err)
	res, err := engine.New().RefineToDecimalPrecision(context.Background(), r, precision)
	require.NoError(t, err)
	return res
}

func digitsOf(res *engine.Result) []int {
	out := make([]int, len(res.Passes))
	for i, p := range res.Passes {
		out[i] = p.Digits
	}
	return out
}

func TestBuild_Values(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		precision int
		rendered  string
		digits    []int
		contains  string
	}{
		{"sqrt", []string{"2"}, 10, "1.4142135623[1,8]", []int{10, 20}, "1.41421356237309504880"},
		{"sqrt", []string{"3"}, 10, "1.732050807[56,63]", []int{10, 20}, "1.73205080756887729352"},
		{"nested-sqrt", []string{"2", "2"}, 10, "1.8477590650[0,7]", []int{10, 20, 40}, "1.84775906502257351225"},
		{"reciprocal", []string{"7"}, 20, "0.14285714285714285714[,51]", []int{20, 40}, "0.142857142857142857142857"},
		{"reciprocal", []string{"0.25"}, 5, "[3.999993,4]", []int{5, 10}, "4"},
		{"golden", nil, 10, "1.618033988[68,76]", []int{10, 20}, "1.61803398874989484820"},
		{"sum", []string{"0", "1", "5", "6"}, 5, "[5,7]", []int{5}, "6"},
		{"difference", []string{"1", "2", "0.5", "0.5"}, 5, "[0.5,2]", []int{5}, "1"},
		{"product", []string{"-2", "3", "1", "2"}, 5, "[-4,6]", []int{5}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := refine(t, tt.name, tt.precision, tt.args...)
			assert.Equal(t, tt.rendered, res.Rendered)
			assert.Equal(t, tt.digits, digitsOf(res))
			assert.True(t, res.Bounds.Contains(dyadic.MustParse(tt.contains)),
				"%s does not contain %s", res.Bounds, tt.contains)
		})
	}
}

// TestSqrt_ExactRootStallsThenRecovers tests that a root hit exactly by
// bisection leaves both predicates false until the digits change.
func TestSqrt_ExactRootStallsThenRecovers(t *testing.T) {
	res := refine(t, "sqrt", 5, "0.25")
	require.Len(t, res.Passes, 2)
	assert.Equal(t, engine.OutcomeSteps, res.Passes[0].Outcome())
	assert.Equal(t, engine.DefaultMaxSteps(5), res.Passes[0].Steps)
	assert.Equal(t, 2, res.Passes[1].SigmaDepth)
	assert.Equal(t, "0.[4999950,5000001]", res.Rendered)
}

// TestSqrtQuantified tests that the quantified form needs sigma depth to
// escalate before it converges on sqrt(2).
func TestSqrtQuantified(t *testing.T) {
	res := refine(t, "sqrt-quantified", 3, "2")

	assert.Equal(t, []int{3, 6, 12, 24, 48}, digitsOf(res))
	depths := make([]int, len(res.Passes))
	for i, p := range res.Passes {
		depths[i] = p.SigmaDepth
	}
	assert.Equal(t, []int{1, 2, 4, 8, 16}, depths)
	for _, p := range res.Passes[:4] {
		assert.Equal(t, engine.OutcomeSteps, p.Outcome())
	}
	assert.Equal(t, "1.41[4,6]", res.Rendered)
	assert.True(t, res.Bounds.Contains(dyadic.MustParse("1.41421356")))
}

func TestBuild_Fresh(t *testing.T) {
	a, err := Build("sqrt", "2")
	require.NoError(t, err)
	b, err := Build("sqrt", "2")
	require.NoError(t, err)

	_, err = engine.New().RefineToDecimalPrecision(context.Background(), a, 5)
	require.NoError(t, err)

	iv, ok := b.Bounds()
	require.True(t, ok)
	assert.Equal(t, "[0, 2]", iv.String(), "refining one build must not move another")
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		real string
		args []string
		msg  string
	}{
		{"unknown", "cbrt", []string{"2"}, `unknown real "cbrt"`},
		{"arity", "sqrt", nil, "sqrt takes 1 argument(s), got 0 (usage: sqrt N)"},
		{"arity golden", "golden", []string{"1"}, "golden takes 0 argument(s), got 1 (usage: golden)"},
		{"not a number", "sqrt", []string{"two"}, `sqrt: argument 1 ("two")`},
		{"negative", "sqrt", []string{"-2"}, `sqrt: argument 1 ("-2"): must not be negative`},
		{"infinite", "sqrt", []string{"inf"}, `sqrt: argument 1 ("inf"): must be finite`},
		{"zero reciprocal", "reciprocal", []string{"0"}, `reciprocal: argument 1 ("0"): must be positive`},
		{"negative offset", "nested-sqrt", []string{"2", "-1"}, `nested-sqrt: argument 2 ("-1"): must not be negative`},
		{"inverted", "sum", []string{"2", "1", "0", "0"}, "sum: lower end is above upper end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Build(tt.real, tt.args...)
			require.Error(t, err)
			assert.Nil(t, r)
			assert.Contains(t, err.Error(), tt.msg)
			assert.True(t, IsUsageError(err))
		})
	}
}

func TestEntries(t *testing.T) {
	names := make([]string, 0)
	for _, e := range Entries() {
		names = append(names, e.Name)
		got, ok := Lookup(e.Name)
		require.True(t, ok)
		assert.Equal(t, e.Usage, got.Usage)
	}
	assert.Equal(t, []string{
		"sqrt", "nested-sqrt", "reciprocal", "golden", "sqrt-quantified",
		"sum", "difference", "product", "interval",
	}, names)

	e, ok := Lookup("product")
	require.True(t, ok)
	assert.Equal(t, 4, e.Arity())

	_, ok = Lookup("cbrt")
	assert.False(t, ok)
}

func TestInterval(t *testing.T) {
	r, err := Build("interval", "1.5", "2.5")
	require.NoError(t, err)
	iv, ok := r.Bounds()
	require.True(t, ok)
	assert.Equal(t, "[1.5, 2.5]", iv.String())
}
