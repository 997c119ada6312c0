package jpegcodec

import "github.com/pkg/errors"

// frameComponent mirrors one SOF0 component specifier: its sampling factors
// and the quantization table it uses, plus the block-grid dimensions derived
// from the frame size (rounded up to whole MCUs, as every baseline decoder
// allocates).
type frameComponent struct {
	id            uint8
	h, v          uint8
	quantTableID  uint8
	blocksPerLine int
	blocksPerCol  int
}

// frameHeader holds everything this codec needs to interpret a scan's
// entropy-coded data: frame geometry, per-component sampling, and the
// quantization/Huffman tables in force when the scan starts.
type frameHeader struct {
	precision  uint8
	width      int
	height     int
	components []frameComponent

	quant  [4]*[64]uint16
	huffDC [4]*huffTable
	huffAC [4]*huffTable
}

func (f *frameHeader) indexOf(id uint8) int {
	for i, c := range f.components {
		if c.id == id {
			return i
		}
	}
	return -1
}

func parseSOF0(payload []byte) (*frameHeader, error) {
	if len(payload) < 6 {
		return nil, errors.New("jpegcodec: SOF0 segment too short")
	}
	f := &frameHeader{
		precision: payload[0],
		height:    int(payload[1])<<8 | int(payload[2]),
		width:     int(payload[3])<<8 | int(payload[4]),
	}
	if f.precision != 8 {
		return nil, errors.Errorf("jpegcodec: unsupported sample precision %d", f.precision)
	}
	numComp := int(payload[5])
	if len(payload) < 6+numComp*3 {
		return nil, errors.New("jpegcodec: SOF0 component list truncated")
	}
	for i := 0; i < numComp; i++ {
		o := 6 + i*3
		f.components = append(f.components, frameComponent{
			id:           payload[o],
			h:            payload[o+1] >> 4,
			v:            payload[o+1] & 0x0f,
			quantTableID: payload[o+2],
		})
	}

	maxH, maxV := 1, 1
	for _, c := range f.components {
		if int(c.h) > maxH {
			maxH = int(c.h)
		}
		if int(c.v) > maxV {
			maxV = int(c.v)
		}
	}
	mcusPerLine := ceilDiv(f.width, 8*maxH)
	mcusPerCol := ceilDiv(f.height, 8*maxV)
	for i := range f.components {
		f.components[i].blocksPerLine = mcusPerLine * int(f.components[i].h)
		f.components[i].blocksPerCol = mcusPerCol * int(f.components[i].v)
	}
	return f, nil
}

func parseDQT(payload []byte, f *frameHeader) error {
	for p := 0; p < len(payload); {
		precAndID := payload[p]
		id := precAndID & 0x0f
		prec := precAndID >> 4
		p++
		var table [64]uint16
		if prec == 0 {
			if p+64 > len(payload) {
				return errors.New("jpegcodec: DQT segment truncated")
			}
			for i := 0; i < 64; i++ {
				table[i] = uint16(payload[p+i])
			}
			p += 64
		} else {
			if p+128 > len(payload) {
				return errors.New("jpegcodec: DQT segment truncated")
			}
			for i := 0; i < 64; i++ {
				table[i] = uint16(payload[p+2*i])<<8 | uint16(payload[p+2*i+1])
			}
			p += 128
		}
		if id > 3 {
			return errors.Errorf("jpegcodec: DQT table id %d out of range", id)
		}
		f.quant[id] = &table
	}
	return nil
}

func parseDHT(payload []byte, f *frameHeader) error {
	for p := 0; p < len(payload); {
		classAndID := payload[p]
		class := classAndID >> 4
		id := classAndID & 0x0f
		p++
		if p+16 > len(payload) {
			return errors.New("jpegcodec: DHT segment truncated")
		}
		var bits [16]uint8
		total := 0
		for i := 0; i < 16; i++ {
			bits[i] = payload[p+i]
			total += int(bits[i])
		}
		p += 16
		if p+total > len(payload) {
			return errors.New("jpegcodec: DHT symbol list truncated")
		}
		huffval := append([]uint8(nil), payload[p:p+total]...)
		p += total

		t, err := buildHuffTable(bits, huffval)
		if err != nil {
			return err
		}
		if id > 3 {
			return errors.Errorf("jpegcodec: DHT table id %d out of range", id)
		}
		if class == 0 {
			f.huffDC[id] = t
		} else {
			f.huffAC[id] = t
		}
	}
	return nil
}

func parseDRI(payload []byte) (int, error) {
	if len(payload) != 2 {
		return 0, errors.New("jpegcodec: malformed DRI segment")
	}
	return int(payload[0])<<8 | int(payload[1]), nil
}

// scanComponent mirrors one SOS component specifier.
type scanComponent struct {
	componentID uint8
	dcTable     uint8
	acTable     uint8
}

type scanHeader struct {
	components []scanComponent
}

func parseSOS(payload []byte) (*scanHeader, error) {
	if len(payload) < 1 {
		return nil, errors.New("jpegcodec: SOS segment too short")
	}
	numComp := int(payload[0])
	if len(payload) < 1+numComp*2+3 {
		return nil, errors.New("jpegcodec: SOS segment truncated")
	}
	s := &scanHeader{}
	for i := 0; i < numComp; i++ {
		o := 1 + i*2
		s.components = append(s.components, scanComponent{
			componentID: payload[o],
			dcTable:     payload[o+1] >> 4,
			acTable:     payload[o+1] & 0x0f,
		})
	}
	ss, se, ahal := payload[1+numComp*2], payload[1+numComp*2+1], payload[1+numComp*2+2]
	if ss != 0 || se != 63 || ahal != 0 {
		return nil, errors.New("jpegcodec: non-baseline spectral selection in SOS")
	}
	return s, nil
}
