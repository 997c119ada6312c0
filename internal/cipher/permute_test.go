package cipher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermuteForwardReverseRoundTrip(t *testing.T) {
	s := []int{10, 20, 30, 40, 50, 60}
	key := []int{0, 3, 2, 4}
	original := append([]int{}, s...)

	permuteForward(s, key)
	assert.NotEqual(t, original, s)

	permuteReverse(s, key)
	assert.Equal(t, original, s)
}

func TestPermuteForwardReverseRoundTripBlocks(t *testing.T) {
	blocks := [][]int{{1}, {2}, {3}, {4}}
	original := append([][]int{}, blocks...)
	key := []int{0, 2, 1}

	permuteForward(blocks, key)
	permuteReverse(blocks, key)
	assert.Equal(t, original, blocks)
}

func TestBuildSwapKeyWithinBounds(t *testing.T) {
	ks := []float64{0.1234, 0.5678, 0.9012, 0.3456}
	key := buildSwapKey(ks, 6, 4, 4)
	require.Len(t, key, 4)
	for m, v := range key {
		assert.GreaterOrEqual(t, v, m)
		assert.Less(t, v, 6)
	}
}

func TestBuildSwapKeyZeroSwapsReturnsNil(t *testing.T) {
	assert.Nil(t, buildSwapKey(nil, 5, 0, 4))
}

func TestAbsf(t *testing.T) {
	assert.Equal(t, 1.5, absf(-1.5))
	assert.Equal(t, 1.5, absf(1.5))
	assert.Equal(t, 0.0, absf(0))
}
