package dyadic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContext(t *testing.T) {
	c := NewContext(1, 10)
	assert.Equal(t, 10, c.Digits())
	assert.Equal(t, 1, c.SigmaDepth)
	assert.Equal(t, Down, c.Down.Direction())
	assert.Equal(t, Up, c.Up.Direction())
	assert.Equal(t, c.Down.Digits(), c.Up.Digits())
	assert.Equal(t, "0.0000000001", c.ULP.Text())
	assert.Zero(t, c.MaxSteps)
}

func TestContext_SwapAndSteps(t *testing.T) {
	c := NewContext(2, 4)
	s := c.Swap()
	assert.Equal(t, Up, s.Down.Direction())
	assert.Equal(t, Down, s.Up.Direction())
	assert.Equal(t, Down, c.Down.Direction(), "original untouched")

	limited := c.WithMaxSteps(50)
	assert.Equal(t, 50, limited.MaxSteps)
	assert.Zero(t, c.MaxSteps)
}
