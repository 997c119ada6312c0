package cipher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ac63(nonzero map[int]int) []int {
	ac := make([]int, 63)
	for i, v := range nonzero {
		ac[i] = v
	}
	return ac
}

func TestDecomposeGroupsWorkedExample(t *testing.T) {
	ac := ac63(map[int]int{0: 5, 3: 3, 43: 7})
	// indices: 0=5 (group [5], len1), 1,2=0,3=3 (group [0,0,3], len3),
	// 4..42 = 39 zeros -> two ZRL groups (16+16) + 7 leftover zeros joining
	// coefficient 43's group, 43=7 (group of 7 zeros + 7, len8),
	// 44..62 = 19 trailing zeros -> one ZRL group (16) + a 3-zero remainder.
	groups := decomposeGroups(ac)

	total := 0
	for _, g := range groups {
		total += len(g.values)
	}
	require.Equal(t, 63, total)

	flat := flattenGroups(groups)
	assert.Equal(t, ac, flat)
}

func TestDecomposeGroupsAllZero(t *testing.T) {
	ac := make([]int, 63)
	groups := decomposeGroups(ac)
	// 63 zeros: three ZRL groups of 16, then a 15-zero remainder.
	require.Len(t, groups, 4)
	for _, g := range groups {
		assert.True(t, g.zero)
	}
	assert.Len(t, groups[0].values, 16)
	assert.Len(t, groups[3].values, 15)
}

func TestDecomposeGroupsZRLCappedAtSixteen(t *testing.T) {
	ac := ac63(map[int]int{20: 1})
	groups := decomposeGroups(ac)
	// first 20 zeros split into one ZRL(16) group and a 4-zero lead-in to
	// the terminating non-zero group.
	require.True(t, len(groups) >= 2)
	assert.Equal(t, 16, len(groups[0].values))
	assert.True(t, groups[0].zero)
}

func TestSplitNonZeroAndReinsertRoundTrip(t *testing.T) {
	ac := ac63(map[int]int{0: 5, 3: 3, 43: 7})
	groups := decomposeGroups(ac)
	nz, zeroSlots := splitNonZero(groups)

	zeroValues := make([]acGroup, len(zeroSlots))
	for i, slot := range zeroSlots {
		zeroValues[i] = groups[slot]
	}

	rebuilt := reinsertZero(nz, zeroSlots, zeroValues)
	assert.Equal(t, groups, rebuilt)
}
