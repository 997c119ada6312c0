package jpegcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSOF0BasicGeometry(t *testing.T) {
	// precision=8, height=20, width=18, 3 components:
	// Y: id1 h2v2 q0, Cb: id2 h1v1 q1, Cr: id3 h1v1 q1.
	payload := []byte{
		8,
		0, 20,
		0, 18,
		3,
		1, 0x22, 0,
		2, 0x11, 1,
		3, 0x11, 1,
	}
	f, err := parseSOF0(payload)
	require.NoError(t, err)
	assert.Equal(t, 20, f.height)
	assert.Equal(t, 18, f.width)
	require.Len(t, f.components, 3)

	// mcusPerLine = ceil(18/(8*2)) = 2, mcusPerCol = ceil(20/(8*2)) = 2
	assert.Equal(t, 2*2, f.components[0].blocksPerLine) // h=2
	assert.Equal(t, 2*2, f.components[0].blocksPerCol)   // v=2
	assert.Equal(t, 2*1, f.components[1].blocksPerLine)  // h=1
	assert.Equal(t, 2*1, f.components[1].blocksPerCol)   // v=1
}

func TestParseSOF0RejectsNonBaselinePrecision(t *testing.T) {
	payload := []byte{12, 0, 8, 0, 8, 1, 1, 0x11, 0}
	_, err := parseSOF0(payload)
	assert.Error(t, err)
}

func TestFrameHeaderIndexOf(t *testing.T) {
	f := &frameHeader{components: []frameComponent{{id: 1}, {id: 2}, {id: 3}}}
	assert.Equal(t, 0, f.indexOf(1))
	assert.Equal(t, 2, f.indexOf(3))
	assert.Equal(t, -1, f.indexOf(9))
}

func TestParseDQT8Bit(t *testing.T) {
	payload := make([]byte, 1+64)
	payload[0] = 0x00 // precision 0, id 0
	for i := 0; i < 64; i++ {
		payload[1+i] = byte(i + 1)
	}
	f := &frameHeader{}
	require.NoError(t, parseDQT(payload, f))
	require.NotNil(t, f.quant[0])
	assert.Equal(t, uint16(1), f.quant[0][0])
	assert.Equal(t, uint16(64), f.quant[0][63])
}

func TestParseDHTBuildsTable(t *testing.T) {
	var payload []byte
	payload = append(payload, 0x00) // class 0 (DC), id 0
	bits := make([]byte, 16)
	bits[0] = 2
	payload = append(payload, bits...)
	payload = append(payload, 0x00, 0x01)

	f := &frameHeader{}
	require.NoError(t, parseDHT(payload, f))
	require.NotNil(t, f.huffDC[0])
	assert.Nil(t, f.huffAC[0])
}

func TestParseDRI(t *testing.T) {
	ri, err := parseDRI([]byte{0x00, 0x14})
	require.NoError(t, err)
	assert.Equal(t, 20, ri)

	_, err = parseDRI([]byte{0x00})
	assert.Error(t, err)
}

func TestParseSOSBasicComponents(t *testing.T) {
	payload := []byte{
		3,
		1, 0x10,
		2, 0x11,
		3, 0x11,
		0, 63, 0,
	}
	s, err := parseSOS(payload)
	require.NoError(t, err)
	require.Len(t, s.components, 3)
	assert.Equal(t, uint8(1), s.components[0].dcTable)
	assert.Equal(t, uint8(0), s.components[0].acTable)
}

func TestParseSOSRejectsNonBaselineSpectralSelection(t *testing.T) {
	payload := []byte{1, 1, 0x00, 0, 10, 0}
	_, err := parseSOS(payload)
	assert.Error(t, err)
}
