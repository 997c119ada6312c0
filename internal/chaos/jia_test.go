package chaos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJiaLength(t *testing.T) {
	out := Jia(JiaParams{X0: 0.1, Y0: 0.2, Z0: 0.3, W0: 0.4, BurnIn: 10}, 50)
	require.GreaterOrEqual(t, len(out), 50)
	assert.Len(t, out, 50)
}

func TestJiaZeroLengthReturnsNil(t *testing.T) {
	assert.Nil(t, Jia(JiaParams{}, 0))
}

func TestJiaValuesAreNonNegative(t *testing.T) {
	out := Jia(JiaParams{X0: 0.1, Y0: 0.2, Z0: 0.3, W0: 0.4, BurnIn: 10}, 40)
	for _, v := range out {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestJiaDeterministic(t *testing.T) {
	p := JiaParams{X0: 1.0, Y0: 1.0, Z0: 1.0, W0: 1.0, BurnIn: 3}
	a := Jia(p, 20)
	b := Jia(p, 20)
	assert.Equal(t, a, b)
}
