// Package jpegcodec implements the baseline-JPEG coefficient codec external
// collaborator spec.md §1(a)/§6 describes: it loads a baseline, Huffman-coded
// JPEG, exposes its quantized DCT coefficients as a per-component grid of
// 64-length zig-zag-ordered blocks, and re-encodes a (possibly mutated) grid
// back into a standards-compliant JPEG with the same quantization tables,
// Huffman tables and block structure. It is grounded on the teacher's
// (github.com/jrm-1535/jpeg) marker-parsing architecture: the same marker
// constants and Desc-centric single-owner parsing state, adapted from
// pixel-reconstruction to coefficient read/modify/write.
package jpegcodec

// Marker values, ISO/IEC 10918-1 Table B.1, reused from the teacher's jpeg.go.
const (
	markerSOI  = 0xffd8 // Start Of Image
	markerEOI  = 0xffd9 // End Of Image
	markerSOF0 = 0xffc0 // Baseline DCT
	markerDHT  = 0xffc4 // Define Huffman Table
	markerDQT  = 0xffdb // Define Quantization Table
	markerDRI  = 0xffdd // Define Restart Interval
	markerSOS  = 0xffda // Start Of Scan
	markerRST0 = 0xffd0 // first of the 8 restart markers
	markerRST7 = 0xffd7
	markerCOM  = 0xfffe
	markerAPP0 = 0xffe0
	markerAPPf = 0xffef
)

func isRestart(marker int) bool {
	return marker >= markerRST0 && marker <= markerRST7
}

// rawSegment is an opaque marker segment this codec does not interpret
// (APPn, COM, or any other table it has no use for), copied through
// byte-for-byte on write so metadata such as EXIF or JFIF density survives
// untouched, per SPEC_FULL.md's metadata non-goal.
type rawSegment struct {
	marker  uint16
	payload []byte // segment payload, excluding the 2-byte length field
}
