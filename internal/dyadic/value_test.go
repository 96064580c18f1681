package dyadic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"1.414", "1.414"},
		{"-2.50", "-2.50"},
		{"1E-3", "0.001"},
		{"Inf", "+Inf"},
		{"+inf", "+Inf"},
		{"-Infinity", "-Inf"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Text())
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{"", "abc", "NaN", "1.2.3"} {
		_, err := Parse(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestZeroValueIsZero(t *testing.T) {
	var v Value
	assert.True(t, v.IsZero())
	assert.Equal(t, 0, v.Sign())
	assert.Equal(t, "0", v.Text())
	assert.True(t, v.Equal(FromInt64(0)))
}

// TestCompare_TotalOrder checks -Inf < finite < +Inf and numeric equality.
func TestCompare_TotalOrder(t *testing.T) {
	ordered := []Value{
		NegInf(),
		MustParse("-1000000000000000000000"),
		FromInt64(-1),
		Zero(),
		MustParse("0.0000000001"),
		FromInt64(1),
		MustParse("1e30"),
		PosInf(),
	}
	for i := range ordered {
		for j := range ordered {
			got := ordered[i].Compare(ordered[j])
			switch {
			case i < j:
				assert.Negative(t, got, "%s vs %s", ordered[i], ordered[j])
			case i > j:
				assert.Positive(t, got, "%s vs %s", ordered[i], ordered[j])
			default:
				assert.Zero(t, got)
			}
		}
	}

	assert.True(t, MustParse("1.0").Equal(FromInt64(1)))
	assert.True(t, PosInf().Equal(PosInf()))
	assert.False(t, PosInf().Equal(NegInf()))
}

func TestMinMaxNeg(t *testing.T) {
	a, b := FromInt64(-3), MustParse("2.5")
	assert.Equal(t, "-3", Min(a, b).Text())
	assert.Equal(t, "2.5", Max(a, b).Text())
	assert.Equal(t, "3", a.Neg().Text())
	assert.True(t, PosInf().Neg().IsNegInf())
	assert.True(t, NegInf().Neg().IsPosInf())
	assert.Equal(t, "-Inf", Min(NegInf(), a).Text())
	assert.Equal(t, "+Inf", Max(PosInf(), b).Text())
}

func TestPow10(t *testing.T) {
	assert.Equal(t, "0.0000000001", Pow10(-10).Text())
	assert.Equal(t, "1000", Pow10(3).Text())
}
