package dyadic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi string
		want   string
	}{
		{"sqrt2 at 1e-10", "1.4142135623125000000", "1.4142135623750000001", "1.4142135623[1,8]"},
		{"sqrt2 coarse", "1.413", "1.420", "1.4[13,20]"},
		{"sqrt2 at 1e-5", "1.414212500", "1.414218751", "1.41421[2,9]"},
		{"integers", "5", "7", "[5,7]"},
		{"one seventh", "0.14285714285714285714", "0.1428571428571428571450000000000000000001", "0.14285714285714285714[,51]"},
		{"degenerate", "2.5", "2.50", "2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := MustParse(tt.lo), MustParse(tt.hi)
			assert.Equal(t, tt.want, Render(&lo, &hi))
		})
	}
}

func TestRender_Missing(t *testing.T) {
	v := FromInt64(1)
	assert.Equal(t, "NaN", Render(nil, &v))
	assert.Equal(t, "NaN", Render(&v, nil))
	assert.Equal(t, "NaN", Render(nil, nil))
}

func TestRender_Infinite(t *testing.T) {
	lo, hi := NegInf(), FromInt64(3)
	assert.Equal(t, "[-Inf,3]", Render(&lo, &hi))
	p := PosInf()
	assert.Equal(t, "+Inf", Render(&p, &p))
}
