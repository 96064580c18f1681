package dyadic

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// Direction selects which way inexact results are rounded.
type Direction int8

const (
	// Down rounds toward -Inf.
	Down Direction = iota
	// Up rounds toward +Inf.
	Up
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// Rounding is a rounding discipline: a digit count and a Direction.
type Rounding struct {
	dir Direction
	ctx *apd.Context
}

// NewRounding returns a discipline rounding to digits significant digits.
// digits must be positive.
func NewRounding(digits int, dir Direction) Rounding {
	if digits < 1 {
		panic(fmt.Sprintf("dyadic: digits must be positive, got %d", digits))
	}
	ctx := apd.BaseContext.WithPrecision(uint32(digits))
	if dir == Up {
		ctx.Rounding = apd.RoundCeiling
	} else {
		ctx.Rounding = apd.RoundFloor
	}
	return Rounding{dir: dir, ctx: ctx}
}

// Digits returns the number of significant digits kept.
func (r Rounding) Digits() int { return int(r.ctx.Precision) }

// Direction returns the rounding direction.
func (r Rounding) Direction() Direction { return r.dir }

// Opposite returns the discipline with the same digits rounding the other way.
func (r Rounding) Opposite() Rounding {
	if r.dir == Up {
		return NewRounding(r.Digits(), Down)
	}
	return NewRounding(r.Digits(), Up)
}

// Round rounds v to r's digits in r's direction. Infinities are unchanged.
func (v Value) Round(r Rounding) (Value, error) {
	if v.IsInf() {
		return v, nil
	}
	d := new(apd.Decimal)
	if _, err := r.ctx.Round(d, v.dec()); err != nil {
		return Value{}, fmt.Errorf("round %s: %w", v.Text(), err)
	}
	return Value{d: d}, nil
}

type decOp func(ctx *apd.Context, d, x, y *apd.Decimal) (apd.Condition, error)

func (r Rounding) apply(op string, f decOp, x, y Value) (Value, error) {
	d := new(apd.Decimal)
	if _, err := f(r.ctx, d, x.dec(), y.dec()); err != nil {
		return Value{}, fmt.Errorf("%s %s %s: %w", x.Text(), op, y.Text(), err)
	}
	return fromDecimal(d), nil
}

// Add returns v + o rounded by r.
func (v Value) Add(o Value, r Rounding) (Value, error) {
	switch {
	case v.IsInf() && o.IsInf():
		if v.form != o.form {
			return Value{}, &IndeterminateError{Op: "+", X: v, Y: o}
		}
		return v, nil
	case v.IsInf():
		return v, nil
	case o.IsInf():
		return o, nil
	}
	return r.apply("+", (*apd.Context).Add, v, o)
}

// Sub returns v - o rounded by r.
func (v Value) Sub(o Value, r Rounding) (Value, error) {
	if v.IsInf() && o.IsInf() && v.form == o.form {
		return Value{}, &IndeterminateError{Op: "-", X: v, Y: o}
	}
	if v.IsInf() || o.IsInf() {
		return v.Add(o.Neg(), r)
	}
	return r.apply("-", (*apd.Context).Sub, v, o)
}

// Mul returns v * o rounded by r.
func (v Value) Mul(o Value, r Rounding) (Value, error) {
	if v.IsInf() || o.IsInf() {
		s := v.Sign() * o.Sign()
		if s == 0 {
			return Value{}, &IndeterminateError{Op: "*", X: v, Y: o}
		}
		return signedInf(s), nil
	}
	return r.apply("*", (*apd.Context).Mul, v, o)
}

// Quo returns v / o rounded by r.
func (v Value) Quo(o Value, r Rounding) (Value, error) {
	switch {
	case o.IsZero():
		return Value{}, &IndeterminateError{Op: "/", X: v, Y: o}
	case v.IsInf() && o.IsInf():
		return Value{}, &IndeterminateError{Op: "/", X: v, Y: o}
	case v.IsInf():
		return signedInf(v.Sign() * o.Sign()), nil
	case o.IsInf():
		return Zero(), nil
	}
	return r.apply("/", (*apd.Context).Quo, v, o)
}

func signedInf(sign int) Value {
	if sign < 0 {
		return NegInf()
	}
	return PosInf()
}
