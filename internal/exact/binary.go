package exact

import (
	"context"
	"fmt"

	"github.com/roach88/lazyreals/internal/dyadic"
	"github.com/roach88/lazyreals/internal/interval"
)

// Op is an arithmetic combinator.
type Op int8

const (
	OpAdd Op = iota
	OpSub
	OpMul
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	}
	return fmt.Sprintf("Op(%d)", int8(o))
}

var tenth = dyadic.Pow10(-1)

// BinaryOp is x op y. Its bounds are unknown until first computed.
type BinaryOp struct {
	op    Op
	x, y  Real
	iv    interval.Interval
	known bool
}

// NewBinary returns x op y.
func NewBinary(op Op, x, y Real) *BinaryOp {
	return &BinaryOp{op: op, x: x, y: y}
}

// Add returns x + y.
func Add(x, y Real) *BinaryOp { return NewBinary(OpAdd, x, y) }

// Sub returns x - y.
func Sub(x, y Real) *BinaryOp { return NewBinary(OpSub, x, y) }

// Mul returns x * y.
func Mul(x, y Real) *BinaryOp { return NewBinary(OpMul, x, y) }

func (b *BinaryOp) Bounds() (interval.Interval, bool) { return b.iv, b.known }

// compute derives the bounds from the operands. The result is intersected
// with the previous bounds so the node only narrows, even when an operand
// was refined elsewhere or a later context rounds more coarsely.
func (b *BinaryOp) compute(pc dyadic.Context) error {
	xi, ok := b.x.Bounds()
	if !ok {
		return fmt.Errorf("%s: left %w", b.op, errNoBounds)
	}
	yi, ok := b.y.Bounds()
	if !ok {
		return fmt.Errorf("%s: right %w", b.op, errNoBounds)
	}

	var (
		r   interval.Interval
		err error
	)
	switch b.op {
	case OpAdd:
		r, err = xi.Add(yi, pc)
	case OpSub:
		r, err = xi.Sub(yi, pc)
	case OpMul:
		r, err = xi.Mul(yi, pc)
	default:
		return fmt.Errorf("unknown operator %s", b.op)
	}
	if err != nil {
		return err
	}

	if b.known {
		if narrowed, ok := r.Intersect(b.iv); ok {
			r = narrowed
		}
	}
	b.iv, b.known = r, true
	return nil
}

func (b *BinaryOp) RefineOnce(pc dyadic.Context) error {
	if err := b.x.RefineOnce(pc); err != nil {
		return err
	}
	if err := b.y.RefineOnce(pc); err != nil {
		return err
	}
	return b.compute(pc)
}

// RefineBySteps refines both operands n steps and recomputes once.
func (b *BinaryOp) RefineBySteps(n int, pc dyadic.Context) error {
	if err := b.x.RefineBySteps(n, pc); err != nil {
		return err
	}
	if err := b.y.RefineBySteps(n, pc); err != nil {
		return err
	}
	return b.compute(pc)
}

// RefineToWidth asks both operands for a width one digit tighter than
// target. That suffices for addition; for multiplication the operand
// target keeps tightening until the product is narrow enough or the
// operands stop moving.
func (b *BinaryOp) RefineToWidth(ctx context.Context, target dyadic.Value, pc dyadic.Context) (int, error) {
	total := 0
	t := target
	for {
		var err error
		if t, err = t.Mul(tenth, pc.Down); err != nil {
			return total, err
		}
		sx, err := b.x.RefineToWidth(ctx, t, pc)
		total += sx
		if err != nil {
			return total, err
		}
		sy, err := b.y.RefineToWidth(ctx, t, pc)
		total += sy
		if err != nil {
			return total, err
		}
		if err := b.compute(pc); err != nil {
			return total, err
		}

		w, err := Width(b, pc)
		if err != nil {
			return total, err
		}
		if w.Compare(target) <= 0 || sx+sy == 0 {
			return total, nil
		}
	}
}

func (b *BinaryOp) Clone() Real {
	return &BinaryOp{op: b.op, x: b.x.Clone(), y: b.y.Clone(), iv: b.iv, known: b.known}
}

func (b *BinaryOp) String() string { return Render(b) }
