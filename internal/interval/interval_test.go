package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lazyreals/internal/dyadic"
)

func iv(t *testing.T, lo, hi string) Interval {
	t.Helper()
	x, err := New(dyadic.MustParse(lo), dyadic.MustParse(hi))
	require.NoError(t, err)
	return x
}

func assertIn(t *testing.T, v dyadic.Value, x Interval) {
	t.Helper()
	assert.True(t, x.Contains(v), "%s not in %s", v, x)
}

func assertOut(t *testing.T, v dyadic.Value, x Interval) {
	t.Helper()
	assert.False(t, x.Contains(v), "%s in %s", v, x)
}

func TestNew_RejectsInverted(t *testing.T) {
	_, err := New(dyadic.FromInt64(2), dyadic.FromInt64(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid interval")

	p, err := New(dyadic.FromInt64(1), dyadic.FromInt64(1))
	require.NoError(t, err)
	assert.True(t, p.IsPoint())
}

// TestAdd_Enclosure adds [0,1] and [5,6] under a 10-digit context.
func TestAdd_Enclosure(t *testing.T) {
	c := dyadic.NewContext(0, 10)
	a, b := iv(t, "0", "1"), iv(t, "5", "6")

	sum, err := a.Add(b, c)
	require.NoError(t, err)

	assertIn(t, dyadic.FromInt64(5), sum)
	assertIn(t, dyadic.FromInt64(7), sum)
	assertIn(t, dyadic.MustParse("6"), sum)
	assertOut(t, dyadic.MustParse("4.999999999"), sum)
	assertOut(t, dyadic.MustParse("7.000000001"), sum)
	assertOut(t, dyadic.FromInt64(4), sum)
	assertOut(t, dyadic.FromInt64(8), sum)
}

func TestSub(t *testing.T) {
	c := dyadic.NewContext(0, 10)
	d, err := iv(t, "5", "6").Sub(iv(t, "0", "1"), c)
	require.NoError(t, err)
	assert.Equal(t, "[4, 6]", d.String())
}

func TestMul_Signs(t *testing.T) {
	c := dyadic.NewContext(0, 10)
	tests := []struct {
		name string
		x, y Interval
		want string
	}{
		{"positive", iv(t, "1", "2"), iv(t, "3", "4"), "[3, 8]"},
		{"negative times positive", iv(t, "-2", "-1"), iv(t, "3", "4"), "[-8, -3]"},
		{"both negative", iv(t, "-2", "-1"), iv(t, "-4", "-3"), "[3, 8]"},
		{"straddles zero", iv(t, "-2", "3"), iv(t, "-1", "4"), "[-8, 12]"},
		{"both straddle", iv(t, "-2", "3"), iv(t, "-5", "1"), "[-15, 10]"},
		{"degenerate", Point(dyadic.MustParse("1.5")), Point(dyadic.MustParse("1.5")), "[2.25, 2.25]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.x.Mul(tt.y, c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestMul_ZeroPoint(t *testing.T) {
	c := dyadic.NewContext(0, 10)
	got, err := Point(dyadic.Zero()).Mul(iv(t, "-7", "9"), c)
	require.NoError(t, err)
	assert.True(t, got.Lo.IsZero())
	assert.True(t, got.Hi.IsZero())
}

func TestMul_RoundsOutward(t *testing.T) {
	c := dyadic.NewContext(0, 3)
	x := Point(dyadic.MustParse("1.41"))
	sq, err := x.Mul(x, c)
	require.NoError(t, err)
	// 1.41^2 = 1.9881
	assert.Equal(t, "[1.98, 1.99]", sq.String())
}

func TestMul_InfiniteTimesZeroIsIndeterminate(t *testing.T) {
	c := dyadic.NewContext(0, 5)
	x := Interval{Lo: dyadic.Zero(), Hi: dyadic.FromInt64(1)}
	y := Interval{Lo: dyadic.FromInt64(1), Hi: dyadic.PosInf()}
	_, err := x.Mul(y, c)
	require.Error(t, err)
	assert.True(t, dyadic.IsIndeterminate(err))
}

// TestSoundness samples points inside both operands and checks that the
// exact results fall inside the low-precision enclosures.
func TestSoundness(t *testing.T) {
	c := dyadic.NewContext(0, 3)
	exact := dyadic.NewContext(0, 60)

	pairs := []struct{ x, y Interval }{
		{iv(t, "0.123", "0.987"), iv(t, "5.55", "6.01")},
		{iv(t, "-1.17", "2.03"), iv(t, "-3.3", "-0.7")},
		{iv(t, "-9.99", "-0.001"), iv(t, "-4.4", "8.8")},
		{iv(t, "1.414", "1.415"), iv(t, "1.414", "1.415")},
	}
	fractions := []string{"0", "0.1", "0.25", "0.333", "0.5", "0.71", "0.9", "1"}

	sample := func(x Interval, f string) dyadic.Value {
		w, err := x.Hi.Sub(x.Lo, exact.Up)
		require.NoError(t, err)
		off, err := w.Mul(dyadic.MustParse(f), exact.Up)
		require.NoError(t, err)
		v, err := x.Lo.Add(off, exact.Up)
		require.NoError(t, err)
		return v
	}

	for _, p := range pairs {
		sum, err := p.x.Add(p.y, c)
		require.NoError(t, err)
		diff, err := p.x.Sub(p.y, c)
		require.NoError(t, err)
		prod, err := p.x.Mul(p.y, c)
		require.NoError(t, err)

		for _, fx := range fractions {
			for _, fy := range fractions {
				x, y := sample(p.x, fx), sample(p.y, fy)

				s, err := x.Add(y, exact.Up)
				require.NoError(t, err)
				assertIn(t, s, sum)

				d, err := x.Sub(y, exact.Up)
				require.NoError(t, err)
				assertIn(t, d, diff)

				m, err := x.Mul(y, exact.Up)
				require.NoError(t, err)
				assertIn(t, m, prod)
			}
		}
	}
}

func TestWidthAndIntersect(t *testing.T) {
	c := dyadic.NewContext(0, 10)
	w, err := iv(t, "1.25", "2").Width(c)
	require.NoError(t, err)
	assert.Equal(t, "0.75", w.Text())

	x, ok := iv(t, "0", "2").Intersect(iv(t, "1", "3"))
	require.True(t, ok)
	assert.Equal(t, "[1, 2]", x.String())

	_, ok = iv(t, "0", "1").Intersect(iv(t, "2", "3"))
	assert.False(t, ok)
}
