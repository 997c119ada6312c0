package chaos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogisticLengthAndRange(t *testing.T) {
	out := Logistic(LogisticParams{X0: 0.678, R: 4.0, BurnIn: 10}, 100)
	require.Len(t, out, 100)
	for _, v := range out {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestLogisticZeroLengthReturnsNil(t *testing.T) {
	assert.Nil(t, Logistic(LogisticParams{X0: 0.5, R: 3.9}, 0))
}

func TestLogisticFixedPointNudgeEscapesDegeneracy(t *testing.T) {
	// Under r=2, x=0.5 is an exact fixed point (2*0.5*0.5 = 0.5): without the
	// nudge the stream would collapse to a constant 0.5 forever.
	out := Logistic(LogisticParams{X0: 0.5, R: 2.0, BurnIn: 0}, 5)
	for _, v := range out {
		assert.NotEqual(t, 0.5, v)
		assert.InDelta(t, 0.5, v, 1e-9)
	}
}

func TestIterateLogisticNudgesKnownFixedPoints(t *testing.T) {
	got := iterateLogistic(0.5, 2.0) // 2*0.5*0.5 = 0.5, a fixed point of r=2
	assert.NotEqual(t, 0.5, got)
	assert.InDelta(t, 0.5, got, 1e-10)
}
