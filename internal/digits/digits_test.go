package digits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSignificantWorkedExample(t *testing.T) {
	assert.Equal(t, uint64(3141), ExtractSignificant(3.14159265, 4))
}

func TestExtractSignificantDegenerateInputs(t *testing.T) {
	cases := []struct {
		value float64
		alpha int
	}{
		{0, 5},
		{-1.5, 5},
		{1.5, 0},
		{1.5, 18},
	}
	for _, c := range cases {
		assert.Zerof(t, ExtractSignificant(c.value, c.alpha), "value=%v alpha=%d", c.value, c.alpha)
	}
}

func TestExtractSignificantSingleDigit(t *testing.T) {
	assert.Equal(t, uint64(7), ExtractSignificant(7.9, 1))
}

func TestExtractSignificantMaxAlpha(t *testing.T) {
	assert.NotZero(t, ExtractSignificant(1.0, MaxAlpha))
}
