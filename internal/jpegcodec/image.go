package jpegcodec

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Image is a parsed baseline JPEG: its frame/scan headers and quantization
// and Huffman tables as declared by the source file, plus the decoded
// per-component coefficient block grids. It implements internal/coeff.Image,
// so the cipher pipelines never see JPEG marker structure at all.
//
// WriteTo re-encodes only the entropy-coded scan; every other segment
// (SOI, DQT, DHT, SOF0, SOS header, APPn/COM, EOI) is copied through from
// the source bytes untouched, since this codec never changes quantization,
// sampling, or table selection — only coefficient values.
type Image struct {
	frame  *frameHeader
	scan   *scanHeader
	restartInterval int

	blocks [][][64]int32

	raw           []byte // original file bytes
	scanDataStart int    // offset of the first entropy-coded byte
	scanDataEnd   int    // offset of the marker terminating the scan
}

// Load reads and fully parses a baseline JPEG file, decoding its quantized
// coefficients into block grids ready for internal/coeff access.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "jpegcodec: read file")
	}
	return Decode(data)
}

// Decode parses a baseline JPEG already held in memory.
func Decode(data []byte) (*Image, error) {
	if len(data) < 4 || data[0] != 0xff || data[1] != 0xd8 {
		return nil, errors.New("jpegcodec: missing SOI marker")
	}

	img := &Image{raw: data}
	var scan *scanHeader
	restartInterval := 0

	pos := 2
	for pos < len(data) {
		if data[pos] != 0xff {
			return nil, errors.Errorf("jpegcodec: expected marker at offset %d", pos)
		}
		marker := int(data[pos])<<8 | int(data[pos+1])
		pos += 2

		if marker == markerEOI {
			break
		}
		if isRestart(marker) {
			continue
		}

		if pos+2 > len(data) {
			return nil, errors.New("jpegcodec: truncated segment length")
		}
		length := int(data[pos])<<8 | int(data[pos+1])
		if length < 2 || pos+length > len(data) {
			return nil, errors.New("jpegcodec: invalid segment length")
		}
		payload := data[pos+2 : pos+length]
		pos += length

		switch marker {
		case markerSOF0:
			frame, err := parseSOF0(payload)
			if err != nil {
				return nil, err
			}
			img.frame = frame
		case 0xffc1, 0xffc2, 0xffc3, 0xffc5, 0xffc6, 0xffc7, 0xffc9, 0xffca, 0xffcb, 0xffcd, 0xffce, 0xffcf:
			return nil, errors.New("jpegcodec: only baseline (SOF0) frames are supported")
		case markerDQT:
			if img.frame == nil {
				return nil, errors.New("jpegcodec: DQT before SOF0")
			}
			if err := parseDQT(payload, img.frame); err != nil {
				return nil, err
			}
		case markerDHT:
			if img.frame == nil {
				return nil, errors.New("jpegcodec: DHT before SOF0")
			}
			if err := parseDHT(payload, img.frame); err != nil {
				return nil, err
			}
		case markerDRI:
			ri, err := parseDRI(payload)
			if err != nil {
				return nil, err
			}
			restartInterval = ri
		case markerSOS:
			if img.frame == nil {
				return nil, errors.New("jpegcodec: SOS before SOF0")
			}
			s, err := parseSOS(payload)
			if err != nil {
				return nil, err
			}
			scan = s

			blocks, endPos, err := decodeScan(data, pos, img.frame, scan, restartInterval)
			if err != nil {
				return nil, errors.Wrap(err, "jpegcodec: decode scan")
			}
			img.scan = scan
			img.blocks = blocks
			img.restartInterval = restartInterval
			img.scanDataStart = pos
			img.scanDataEnd = endPos
			pos = endPos
		default:
			// APPn, COM, and any other segment this codec does not
			// interpret: left untouched in img.raw for passthrough.
		}
	}

	if img.frame == nil || img.scan == nil {
		return nil, errors.New("jpegcodec: missing SOF0 or SOS segment")
	}
	return img, nil
}

// NumComponents implements internal/coeff.Image.
func (img *Image) NumComponents() int { return len(img.frame.components) }

// Blocks implements internal/coeff.Image. The returned slice aliases the
// image's own storage; callers that want to mutate in place may do so, but
// SetBlocks is the supported way to write a new grid back.
func (img *Image) Blocks(idx int) [][64]int32 { return img.blocks[idx] }

// SetBlocks implements internal/coeff.Image.
func (img *Image) SetBlocks(idx int, blocks [][64]int32) { img.blocks[idx] = blocks }

// WriteTo serializes the image, re-encoding the entropy-coded scan from the
// current (possibly cipher-mutated) block grids and copying every other byte
// range from the source file unchanged.
func (img *Image) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if _, err := cw.Write(img.raw[:img.scanDataStart]); err != nil {
		return cw.n, errors.Wrap(err, "jpegcodec: write header segments")
	}
	if err := encodeScan(cw, img.frame, img.scan, img.blocks, img.restartInterval); err != nil {
		return cw.n, errors.Wrap(err, "jpegcodec: encode scan")
	}
	if _, err := cw.Write(img.raw[img.scanDataEnd:]); err != nil {
		return cw.n, errors.Wrap(err, "jpegcodec: write trailer")
	}
	return cw.n, nil
}

// Save writes the image to path, per WriteTo.
func (img *Image) Save(path string) error {
	var buf bytes.Buffer
	if _, err := img.WriteTo(&buf); err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(path, buf.Bytes(), 0o644), "jpegcodec: write file")
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
