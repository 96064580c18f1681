package dyadic

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kind int

const (
	wantValue kind = iota
	wantPosInf
	wantNegInf
	wantNaN
)

// TestExtendedLimits covers the infinity table for every operation.
func TestExtendedLimits(t *testing.T) {
	up := NewRounding(10, Up)
	inf, ninf, zero, one, mone := PosInf(), NegInf(), Zero(), FromInt64(1), FromInt64(-1)

	type op func(x, y Value) (Value, error)
	ops := map[string]op{
		"+": func(x, y Value) (Value, error) { return x.Add(y, up) },
		"-": func(x, y Value) (Value, error) { return x.Sub(y, up) },
		"*": func(x, y Value) (Value, error) { return x.Mul(y, up) },
		"/": func(x, y Value) (Value, error) { return x.Quo(y, up) },
	}

	tests := []struct {
		x, y Value
		op   string
		want kind
	}{
		{inf, inf, "+", wantPosInf},
		{inf, ninf, "+", wantNaN},
		{ninf, inf, "+", wantNaN},
		{ninf, ninf, "+", wantNegInf},
		{inf, one, "+", wantPosInf},
		{mone, ninf, "+", wantNegInf},
		{one, mone, "+", wantValue},

		{inf, inf, "-", wantNaN},
		{ninf, ninf, "-", wantNaN},
		{inf, ninf, "-", wantPosInf},
		{ninf, inf, "-", wantNegInf},
		{zero, inf, "-", wantNegInf},
		{one, ninf, "-", wantPosInf},

		{inf, zero, "*", wantNaN},
		{zero, ninf, "*", wantNaN},
		{inf, mone, "*", wantNegInf},
		{ninf, mone, "*", wantPosInf},
		{ninf, inf, "*", wantNegInf},
		{one, mone, "*", wantValue},

		{inf, inf, "/", wantNaN},
		{zero, zero, "/", wantNaN},
		{one, zero, "/", wantNaN},
		{inf, mone, "/", wantNegInf},
		{ninf, mone, "/", wantPosInf},
		{one, inf, "/", wantValue},
		{mone, one, "/", wantValue},
	}

	for _, tt := range tests {
		name := fmt.Sprintf("%s %s %s", tt.x, tt.op, tt.y)
		t.Run(name, func(t *testing.T) {
			got, err := ops[tt.op](tt.x, tt.y)
			if tt.want == wantNaN {
				require.Error(t, err)
				assert.True(t, IsIndeterminate(err))
				return
			}
			require.NoError(t, err)
			switch tt.want {
			case wantPosInf:
				assert.True(t, got.IsPosInf(), "got %s", got)
			case wantNegInf:
				assert.True(t, got.IsNegInf(), "got %s", got)
			default:
				assert.False(t, got.IsInf(), "got %s", got)
			}
		})
	}
}

// TestDirectedRounding checks that Down never overshoots and Up never
// undershoots the exact result.
func TestDirectedRounding(t *testing.T) {
	down, up := NewRounding(5, Down), NewRounding(5, Up)
	one, three := FromInt64(1), FromInt64(3)

	lo, err := one.Quo(three, down)
	require.NoError(t, err)
	hi, err := one.Quo(three, up)
	require.NoError(t, err)
	assert.Equal(t, "0.33333", lo.Text())
	assert.Equal(t, "0.33334", hi.Text())

	nlo, err := one.Neg().Quo(three, down)
	require.NoError(t, err)
	nhi, err := one.Neg().Quo(three, up)
	require.NoError(t, err)
	assert.Equal(t, "-0.33334", nlo.Text())
	assert.Equal(t, "-0.33333", nhi.Text())

	x := MustParse("1.23456789")
	y := MustParse("9.87654321")
	exactSum := MustParse("11.11111110")
	s, err := x.Add(y, down)
	require.NoError(t, err)
	assert.True(t, s.Compare(exactSum) <= 0)
	s, err = x.Add(y, up)
	require.NoError(t, err)
	assert.True(t, s.Compare(exactSum) >= 0)

	exactProd := MustParse("12.1932631112635269")
	p, err := x.Mul(y, down)
	require.NoError(t, err)
	assert.Equal(t, "12.193", p.Text())
	assert.True(t, p.Compare(exactProd) <= 0)
	p, err = x.Mul(y, up)
	require.NoError(t, err)
	assert.Equal(t, "12.194", p.Text())
	assert.True(t, p.Compare(exactProd) >= 0)
}

func TestExactWhenRepresentable(t *testing.T) {
	down := NewRounding(10, Down)
	v, err := FromInt64(2).Quo(FromInt64(2), down)
	require.NoError(t, err)
	assert.Equal(t, "1", v.Text())

	v, err = MustParse("0.5").Sub(MustParse("0.25"), down)
	require.NoError(t, err)
	assert.Equal(t, "0.25", v.Text())
}

func TestRounding_Accessors(t *testing.T) {
	r := NewRounding(7, Up)
	assert.Equal(t, 7, r.Digits())
	assert.Equal(t, Up, r.Direction())
	assert.Equal(t, Down, r.Opposite().Direction())
	assert.Equal(t, 7, r.Opposite().Digits())
	assert.Equal(t, "up", Up.String())
	assert.Panics(t, func() { NewRounding(0, Down) })
}

func TestRound(t *testing.T) {
	v := MustParse("1.41421356")
	lo, err := v.Round(NewRounding(3, Down))
	require.NoError(t, err)
	hi, err := v.Round(NewRounding(3, Up))
	require.NoError(t, err)
	assert.Equal(t, "1.41", lo.Text())
	assert.Equal(t, "1.42", hi.Text())

	inf, err := PosInf().Round(NewRounding(3, Down))
	require.NoError(t, err)
	assert.True(t, inf.IsPosInf())
}

func TestIndeterminateError_Message(t *testing.T) {
	_, err := PosInf().Add(NegInf(), NewRounding(3, Down))
	require.Error(t, err)
	assert.Equal(t, "indeterminate: +Inf + -Inf", err.Error())
	assert.True(t, IsIndeterminate(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsIndeterminate(fmt.Errorf("other")))
}
