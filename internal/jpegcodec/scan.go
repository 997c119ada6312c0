package jpegcodec

import (
	"io"

	"github.com/pkg/errors"
)

// categorySize returns the JPEG coefficient category (bit length) of v: the
// number of bits needed to represent |v|, 0 for v==0.
func categorySize(v int) uint8 {
	if v < 0 {
		v = -v
	}
	size := uint8(0)
	for v > 0 {
		v >>= 1
		size++
	}
	return size
}

// extend recovers a signed magnitude from size raw bits, the JPEG DC/AC
// "EXTEND" procedure (Annex F.2.2.1 of ISO/IEC 10918-1).
func extend(bits uint32, size uint8) int {
	if size == 0 {
		return 0
	}
	vt := int32(1) << (size - 1)
	if int32(bits) < vt {
		return int(bits) - (1<<size - 1)
	}
	return int(bits)
}

// encodeBits is the inverse of extend: the raw size-bit pattern for v.
func encodeBits(v int, size uint8) uint32 {
	if v < 0 {
		v += (1 << size) - 1
	}
	return uint32(v) & ((1 << size) - 1)
}

func decodeBlock(br *bitReader, dc, ac *huffTable, predictor int32) ([64]int32, int32, error) {
	var block [64]int32

	sym, err := dc.decode(br)
	if err != nil {
		return block, predictor, errors.Wrap(err, "decode DC symbol")
	}
	var diff int
	if sym > 0 {
		bits, err := br.readBits(uint(sym))
		if err != nil {
			return block, predictor, errors.Wrap(err, "decode DC bits")
		}
		diff = extend(bits, sym)
	}
	dcVal := predictor + int32(diff)
	block[0] = dcVal
	predictor = dcVal

	k := 1
	for k < 64 {
		rs, err := ac.decode(br)
		if err != nil {
			return block, predictor, errors.Wrap(err, "decode AC symbol")
		}
		if rs == 0x00 { // EOB
			break
		}
		if rs == 0xf0 { // ZRL: 16 zeros
			k += 16
			continue
		}
		run := int(rs >> 4)
		size := rs & 0x0f
		k += run
		if k >= 64 {
			return block, predictor, errors.New("decode AC: run overflow")
		}
		bits, err := br.readBits(uint(size))
		if err != nil {
			return block, predictor, errors.Wrap(err, "decode AC bits")
		}
		block[k] = int32(extend(bits, size))
		k++
	}
	return block, predictor, nil
}

func writeHuff(bw *bitWriter, t *huffTable, symbol uint8) {
	hc := t.encode[symbol]
	bw.writeBits(uint32(hc.code), uint(hc.size))
}

func encodeBlock(bw *bitWriter, dc, ac *huffTable, block [64]int32, predictor int32) int32 {
	diff := int(block[0] - predictor)
	size := categorySize(diff)
	writeHuff(bw, dc, size)
	if size > 0 {
		bw.writeBits(encodeBits(diff, size), uint(size))
	}
	predictor = block[0]

	run := 0
	for k := 1; k < 64; k++ {
		v := int(block[k])
		if v == 0 {
			run++
			continue
		}
		for run >= 16 {
			writeHuff(bw, ac, 0xf0)
			run -= 16
		}
		size := categorySize(v)
		writeHuff(bw, ac, uint8(run<<4)|size)
		bw.writeBits(encodeBits(v, size), uint(size))
		run = 0
	}
	if run > 0 {
		writeHuff(bw, ac, 0x00)
	}
	return predictor
}

// mcuGeometry describes how a baseline scan's minimum coded units tile the
// frame, per the teacher's doc comment in segment.go on MCU layout.
type mcuGeometry struct {
	mcusPerLine, mcusPerCol int
}

func computeMCUGeometry(f *frameHeader) mcuGeometry {
	maxH, maxV := 1, 1
	for _, c := range f.components {
		if int(c.h) > maxH {
			maxH = int(c.h)
		}
		if int(c.v) > maxV {
			maxV = int(c.v)
		}
	}
	mcuW, mcuH := 8*maxH, 8*maxV
	return mcuGeometry{
		mcusPerLine: ceilDiv(int(f.width), mcuW),
		mcusPerCol:  ceilDiv(int(f.height), mcuH),
	}
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

// decodeScan entropy-decodes one baseline scan into per-component block
// grids, resynchronizing at restart markers when restartInterval > 0.
func decodeScan(data []byte, pos int, f *frameHeader, s *scanHeader, restartInterval int) ([][][64]int32, int, error) {
	geo := computeMCUGeometry(f)
	blocks := make([][][64]int32, len(f.components))
	for i, c := range f.components {
		blocks[i] = make([][64]int32, c.blocksPerLine*c.blocksPerCol)
	}

	predictors := make([]int32, len(f.components))
	br := newBitReader(data, pos)

	totalMCUs := geo.mcusPerLine * geo.mcusPerCol
	mcusSinceRestart := 0
	for mcu := 0; mcu < totalMCUs; mcu++ {
		row, col := mcu/geo.mcusPerLine, mcu%geo.mcusPerLine

		for _, sc := range s.components {
			ci := f.indexOf(sc.componentID)
			if ci < 0 {
				return nil, 0, errors.Errorf("decodeScan: unknown scan component %d", sc.componentID)
			}
			c := f.components[ci]
			dcT, acT := f.huffDC[sc.dcTable], f.huffAC[sc.acTable]
			if dcT == nil || acT == nil {
				return nil, 0, errors.Errorf("decodeScan: missing huffman table for component %d", sc.componentID)
			}
			for dv := 0; dv < int(c.v); dv++ {
				for dh := 0; dh < int(c.h); dh++ {
					br0, bc0 := row*int(c.v)+dv, col*int(c.h)+dh
					idx := br0*c.blocksPerLine + bc0
					blk, pred, err := decodeBlock(br, dcT, acT, predictors[ci])
					if err != nil {
						return nil, 0, errors.Wrapf(err, "decodeScan: MCU %d component %d", mcu, sc.componentID)
					}
					predictors[ci] = pred
					blocks[ci][idx] = blk
				}
			}
		}

		mcusSinceRestart++
		if restartInterval > 0 && mcusSinceRestart == restartInterval && mcu != totalMCUs-1 {
			p := br.byteAlign()
			if p+1 >= len(data) || data[p] != 0xff || !isRestart(int(data[p])<<8|int(data[p+1])) {
				return nil, 0, errors.Errorf("decodeScan: expected restart marker at offset %d", p)
			}
			p += 2
			br = newBitReader(data, p)
			for i := range predictors {
				predictors[i] = 0
			}
			mcusSinceRestart = 0
		}
	}
	return blocks, br.byteAlign(), nil
}

// encodeScan re-entropy-encodes block grids into w, inserting restart
// markers at the same MCU cadence decodeScan would expect, so the output's
// structure matches the input byte-for-byte apart from coefficient values.
func encodeScan(w io.Writer, f *frameHeader, s *scanHeader, blocks [][][64]int32, restartInterval int) error {
	geo := computeMCUGeometry(f)
	predictors := make([]int32, len(f.components))
	bw := newBitWriter(w)

	totalMCUs := geo.mcusPerLine * geo.mcusPerCol
	mcusSinceRestart := 0
	rst := 0
	for mcu := 0; mcu < totalMCUs; mcu++ {
		row, col := mcu/geo.mcusPerLine, mcu%geo.mcusPerLine

		for _, sc := range s.components {
			ci := f.indexOf(sc.componentID)
			c := f.components[ci]
			dcT, acT := f.huffDC[sc.dcTable], f.huffAC[sc.acTable]
			for dv := 0; dv < int(c.v); dv++ {
				for dh := 0; dh < int(c.h); dh++ {
					br0, bc0 := row*int(c.v)+dv, col*int(c.h)+dh
					idx := br0*c.blocksPerLine + bc0
					predictors[ci] = encodeBlock(bw, dcT, acT, blocks[ci][idx], predictors[ci])
				}
			}
		}

		mcusSinceRestart++
		if restartInterval > 0 && mcusSinceRestart == restartInterval && mcu != totalMCUs-1 {
			if err := bw.flush(); err != nil {
				return errors.Wrap(err, "encodeScan: flush before restart")
			}
			marker := markerRST0 + rst%8
			if _, err := w.Write([]byte{0xff, byte(marker)}); err != nil {
				return errors.Wrap(err, "encodeScan: write restart marker")
			}
			rst++
			for i := range predictors {
				predictors[i] = 0
			}
			mcusSinceRestart = 0
		}
	}
	return bw.flush()
}
