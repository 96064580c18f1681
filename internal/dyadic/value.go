package dyadic

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

type form int8

const (
	finite form = iota
	posInf
	negInf
)

// Value is an immutable extended decimal. The zero Value is 0.
type Value struct {
	form form
	d    *apd.Decimal // nil means zero; never mutated after construction
}

var decZero apd.Decimal

// Zero returns 0.
func Zero() Value { return Value{} }

// PosInf returns +Inf.
func PosInf() Value { return Value{form: posInf} }

// NegInf returns -Inf.
func NegInf() Value { return Value{form: negInf} }

// FromInt64 returns the exact value x.
func FromInt64(x int64) Value {
	return Value{d: apd.New(x, 0)}
}

// New returns coeff * 10^exponent.
func New(coeff int64, exponent int32) Value {
	return Value{d: apd.New(coeff, exponent)}
}

// Pow10 returns 10^e.
func Pow10(e int32) Value {
	return New(1, e)
}

// Parse reads a decimal literal or one of "Inf", "+Inf", "-Inf"
// (case-insensitive, "Infinity" also accepted).
func Parse(s string) (Value, error) {
	t := strings.TrimSpace(s)
	switch strings.ToLower(t) {
	case "inf", "+inf", "infinity", "+infinity":
		return PosInf(), nil
	case "-inf", "-infinity":
		return NegInf(), nil
	}
	d, _, err := apd.NewFromString(t)
	if err != nil {
		return Value{}, fmt.Errorf("parse %q: %w", s, err)
	}
	if d.Form != apd.Finite {
		return Value{}, fmt.Errorf("parse %q: not a finite decimal", s)
	}
	return Value{d: d}, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func fromDecimal(d *apd.Decimal) Value {
	switch {
	case d.Form == apd.Infinite && d.Negative:
		return NegInf()
	case d.Form == apd.Infinite:
		return PosInf()
	}
	return Value{d: d}
}

func (v Value) dec() *apd.Decimal {
	if v.d == nil {
		return &decZero
	}
	return v.d
}

// IsInf reports whether v is +Inf or -Inf.
func (v Value) IsInf() bool { return v.form != finite }

// IsPosInf reports whether v is +Inf.
func (v Value) IsPosInf() bool { return v.form == posInf }

// IsNegInf reports whether v is -Inf.
func (v Value) IsNegInf() bool { return v.form == negInf }

// IsZero reports whether v is a finite zero.
func (v Value) IsZero() bool { return v.form == finite && v.dec().IsZero() }

// Sign returns -1, 0 or +1.
func (v Value) Sign() int {
	switch v.form {
	case posInf:
		return 1
	case negInf:
		return -1
	}
	return v.dec().Sign()
}

// Compare totally orders values: -Inf < every finite value < +Inf.
func (v Value) Compare(o Value) int {
	if v.form != finite || o.form != finite {
		return rank(v) - rank(o)
	}
	return v.dec().Cmp(o.dec())
}

func rank(v Value) int {
	switch v.form {
	case negInf:
		return -1
	case posInf:
		return 1
	}
	return 0
}

// Less reports v < o.
func (v Value) Less(o Value) bool { return v.Compare(o) < 0 }

// Equal reports numeric equality (1.0 equals 1).
func (v Value) Equal(o Value) bool { return v.Compare(o) == 0 }

// Neg returns -v. Negation is exact.
func (v Value) Neg() Value {
	switch v.form {
	case posInf:
		return NegInf()
	case negInf:
		return PosInf()
	}
	d := new(apd.Decimal).Neg(v.dec())
	return Value{d: d}
}

// Min returns the smaller of a and b.
func Min(a, b Value) Value {
	if b.Less(a) {
		return b
	}
	return a
}

// Max returns the larger of a and b.
func Max(a, b Value) Value {
	if a.Less(b) {
		return b
	}
	return a
}

// Text renders v in plain (non-scientific) notation, or "+Inf"/"-Inf".
func (v Value) Text() string {
	switch v.form {
	case posInf:
		return "+Inf"
	case negInf:
		return "-Inf"
	}
	return v.dec().Text('f')
}

func (v Value) String() string { return v.Text() }
