package coeff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeImage is a minimal in-memory Image for exercising the access layer
// without a real JPEG codec.
type fakeImage struct {
	components [][][64]int32
}

func newFakeImage(numComponents, blocksPerComponent int) *fakeImage {
	img := &fakeImage{components: make([][][64]int32, numComponents)}
	for c := 0; c < numComponents; c++ {
		img.components[c] = make([][64]int32, blocksPerComponent)
	}
	return img
}

func (f *fakeImage) NumComponents() int                    { return len(f.components) }
func (f *fakeImage) Blocks(idx int) [][64]int32             { return f.components[idx] }
func (f *fakeImage) SetBlocks(idx int, blocks [][64]int32)  { f.components[idx] = blocks }

func TestComponentsForLumaAndChroma(t *testing.T) {
	img := newFakeImage(3, 2)
	assert.Equal(t, []int{0}, componentsFor(img, Luma))
	assert.Equal(t, []int{1, 2}, componentsFor(img, Chroma))
}

func TestComponentsForGrayscaleHasNoChroma(t *testing.T) {
	img := newFakeImage(1, 4)
	assert.Equal(t, []int{0}, componentsFor(img, Luma))
	assert.Empty(t, componentsFor(img, Chroma))
}

func TestExtractApplyDCRoundTrip(t *testing.T) {
	img := newFakeImage(3, 4)
	for c := 0; c < 3; c++ {
		blocks := img.Blocks(c)
		for i := range blocks {
			blocks[i][0] = int32(100*c + i)
		}
		img.SetBlocks(c, blocks)
	}

	dc := ExtractDC(img, Chroma)
	require.Len(t, dc, 8) // 2 chroma components * 4 blocks

	for i := range dc {
		dc[i] = -dc[i]
	}
	ApplyDC(img, Chroma, dc)

	got := ExtractDC(img, Chroma)
	for i, v := range got {
		assert.Equal(t, dc[i], v)
	}
	// luma untouched
	lumaDC := ExtractDC(img, Luma)
	for i, v := range lumaDC {
		assert.Equal(t, i, v)
	}
}

func TestExtractApplyACRoundTrip(t *testing.T) {
	img := newFakeImage(1, 2)
	blocks := img.Blocks(0)
	for k := 1; k < 64; k++ {
		blocks[0][k] = int32(k)
		blocks[1][k] = int32(-k)
	}
	img.SetBlocks(0, blocks)

	ac := ExtractAC(img, Luma)
	require.Len(t, ac, 2)
	require.Len(t, ac[0], 63)
	assert.Equal(t, 1, ac[0][0])
	assert.Equal(t, -1, ac[1][0])

	for i := range ac {
		for k := range ac[i] {
			ac[i][k] = 0
		}
	}
	ApplyAC(img, Luma, ac)

	for _, b := range img.Blocks(0) {
		for k := 1; k < 64; k++ {
			assert.Equal(t, int32(0), b[k])
		}
	}
}
