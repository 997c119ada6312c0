package jpegcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a tiny canonical table: one symbol of length 1, one of length 2 and two of
// length 3, giving the codes 0, 10, 110, 111.
func sampleBitsAndVals() ([16]uint8, []uint8) {
	var bits [16]uint8
	bits[0] = 1 // one code of length 1
	bits[1] = 1 // one code of length 2
	bits[2] = 2 // two codes of length 3
	return bits, []uint8{0x00, 0x01, 0x02, 0x03}
}

func TestBuildHuffTableAssignsCanonicalCodes(t *testing.T) {
	bits, vals := sampleBitsAndVals()
	tbl, err := buildHuffTable(bits, vals)
	require.NoError(t, err)

	assert.Equal(t, huffCode{code: 0b0, size: 1}, tbl.encode[0x00])
	assert.Equal(t, huffCode{code: 0b10, size: 2}, tbl.encode[0x01])
	assert.Equal(t, huffCode{code: 0b110, size: 3}, tbl.encode[0x02])
	assert.Equal(t, huffCode{code: 0b111, size: 3}, tbl.encode[0x03])
}

func TestBuildHuffTableRejectsSizeMismatch(t *testing.T) {
	bits, _ := sampleBitsAndVals()
	_, err := buildHuffTable(bits, []uint8{0x00, 0x01}) // too few values
	assert.Error(t, err)
}

func TestHuffTableEncodeDecodeRoundTrip(t *testing.T) {
	bits, vals := sampleBitsAndVals()
	tbl, err := buildHuffTable(bits, vals)
	require.NoError(t, err)

	var buf writerBuf
	bw := newBitWriter(&buf)
	for _, sym := range vals {
		writeHuff(bw, tbl, sym)
	}
	require.NoError(t, bw.flush())

	br := newBitReader(buf.bytes, 0)
	for _, want := range vals {
		got, err := tbl.decode(br)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

// writerBuf is a trivial io.Writer collecting bytes, used instead of
// bytes.Buffer to keep this test file import-light.
type writerBuf struct{ bytes []byte }

func (w *writerBuf) Write(p []byte) (int, error) {
	w.bytes = append(w.bytes, p...)
	return len(p), nil
}
