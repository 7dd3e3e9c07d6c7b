package doc

import (
	"encoding/binary"
	"fmt"
)

const (
	clxSectionGrpprl = 0x01
	clxSectionPlc    = 0x02

	// Bit 30 of a piece descriptor's fc field marks the piece as
	// single-byte (compressed) text.
	pieceCompressedBit = 0x40000000

	pcdSize = 8
)

// piece maps a contiguous range of character positions to a byte range in
// the WordDocument stream.
type piece struct {
	// startCP and endCP bound the logical character range.
	startCP, endCP uint32
	// fileOffset is the byte position of the first character.
	fileOffset uint32
	// singleByte marks Windows-1252 text; otherwise UTF-16LE.
	singleByte bool
}

// charCount reports the number of characters the piece covers.
func (p piece) charCount() uint32 {
	if p.endCP <= p.startCP {
		return 0
	}
	return p.endCP - p.startCP
}

// byteLen reports the piece's span in the main stream.
func (p piece) byteLen() uint32 {
	n := p.charCount()
	if p.singleByte {
		return n
	}
	return n * 2
}

// parsePieceTable locates the PlcPcd inside a CLX blob and decodes the
// piece descriptors. The CLX is a sequence of typed sections: grpprl
// sections (type 0x01, 16-bit length) that this decoder skips, terminated
// by a single piece-table section (type 0x02, 32-bit length).
func parsePieceTable(clx []byte) ([]piece, error) {
	pos := 0
	for pos < len(clx) {
		switch clx[pos] {
		case clxSectionGrpprl:
			if pos+3 > len(clx) {
				return nil, fmt.Errorf("%w: truncated CLX grpprl header", ErrCorrupted)
			}
			n := int(binary.LittleEndian.Uint16(clx[pos+1 : pos+3]))
			pos += 3 + n
			if pos > len(clx) {
				return nil, fmt.Errorf("%w: CLX grpprl overruns section", ErrCorrupted)
			}
		case clxSectionPlc:
			if pos+5 > len(clx) {
				return nil, fmt.Errorf("%w: truncated CLX piece-table header", ErrCorrupted)
			}
			lcb := binary.LittleEndian.Uint32(clx[pos+1 : pos+5])
			pos += 5
			if uint32(len(clx)-pos) < lcb {
				return nil, fmt.Errorf("%w: CLX piece table overruns section", ErrCorrupted)
			}
			return parsePlcPcd(clx[pos : pos+int(lcb)])
		default:
			return nil, fmt.Errorf("%w: unknown CLX section type 0x%02X", ErrInvalidFormat, clx[pos])
		}
	}
	return nil, fmt.Errorf("%w: CLX has no piece table", ErrInvalidFormat)
}

// parsePlcPcd decodes the piece-table PLC: n+1 character positions followed
// by n eight-byte piece descriptors.
func parsePlcPcd(plc []byte) ([]piece, error) {
	if len(plc) < 4 {
		return nil, fmt.Errorf("%w: piece table too short (%d bytes)", ErrCorrupted, len(plc))
	}
	n := (len(plc) - 4) / (4 + pcdSize)
	if n == 0 {
		return nil, nil
	}
	if (n+1)*4+n*pcdSize > len(plc) {
		return nil, fmt.Errorf("%w: piece table length mismatch", ErrCorrupted)
	}

	pieces := make([]piece, 0, n)
	descBase := (n + 1) * 4
	for i := 0; i < n; i++ {
		start := binary.LittleEndian.Uint32(plc[i*4:])
		end := binary.LittleEndian.Uint32(plc[(i+1)*4:])

		// The fc sits after two reserved bytes inside the descriptor.
		fc := binary.LittleEndian.Uint32(plc[descBase+i*pcdSize+2:])
		p := piece{startCP: start, endCP: end}
		if fc&pieceCompressedBit != 0 {
			p.singleByte = true
			p.fileOffset = (fc &^ pieceCompressedBit) / 2
		} else {
			p.fileOffset = fc
		}
		pieces = append(pieces, p)
	}
	return pieces, nil
}

// cpToFC translates a character position into a byte offset in the main
// stream using the piece table, along with the encoding of the piece that
// holds it. ok is false when cp falls outside every piece.
func cpToFC(pieces []piece, cp uint32) (fc uint32, singleByte bool, ok bool) {
	for _, p := range pieces {
		if cp < p.startCP || cp > p.endCP {
			continue
		}
		delta := cp - p.startCP
		if p.singleByte {
			return p.fileOffset + delta, true, true
		}
		return p.fileOffset + delta*2, false, true
	}
	return 0, false, false
}

// fcToCP translates a byte offset in the main stream back into a character
// position. Used to bound formatting runs, which the binary tables address
// by file offset.
func fcToCP(pieces []piece, fc uint32) (cp uint32, ok bool) {
	for _, p := range pieces {
		end := p.fileOffset + p.byteLen()
		if fc < p.fileOffset || fc > end {
			continue
		}
		delta := fc - p.fileOffset
		if !p.singleByte {
			delta /= 2
		}
		return p.startCP + delta, true
	}
	return 0, false
}
