package dyadic

import (
	"github.com/cockroachdb/apd/v3"
)

var (
	diffCtx = &apd.Context{
		Precision:   1,
		MaxExponent: apd.MaxExponent,
		MinExponent: apd.MinExponent,
		Traps:       apd.DefaultTraps,
		Rounding:    apd.RoundUp,
	}
)

// Render formats the enclosure [lo, hi] compactly: the shared leading
// digits followed by the differing suffixes in brackets, as in
// "1.4142135623[1,8]". A nil bound renders as "NaN" and a degenerate
// interval as its single value.
//
// Both bounds are first rounded outward to one digit past the leading
// digit of their difference, so the rendering still encloses [lo, hi].
func Render(lo, hi *Value) string {
	if lo == nil || hi == nil {
		return "NaN"
	}
	if lo.IsInf() || hi.IsInf() {
		if lo.Equal(*hi) {
			return lo.Text()
		}
		return "[" + lo.Text() + "," + hi.Text() + "]"
	}

	diff := new(apd.Decimal)
	if _, err := diffCtx.Sub(diff, lo.dec(), hi.dec()); err != nil {
		return "[" + lo.Text() + "," + hi.Text() + "]"
	}
	if diff.IsZero() {
		return lo.Text()
	}

	digits := int(-diff.Exponent) + 1
	if digits < 1 {
		digits = 1
	}
	a, errA := lo.Round(NewRounding(digits, Down))
	b, errB := hi.Round(NewRounding(digits, Up))
	if errA != nil || errB != nil {
		return "[" + lo.Text() + "," + hi.Text() + "]"
	}

	strA, strB := a.Text(), b.Text()
	s := 0
	for s < len(strA) && s < len(strB) && strA[s] == strB[s] {
		s++
	}
	return strA[:s] + "[" + strA[s:] + "," + strB[s:] + "]"
}
