package doc

import "encoding/binary"

// sprm is a single property modifier: a 16-bit opcode followed by an
// operand whose width is a function of the opcode.
type sprm struct {
	opcode  uint16
	operand []byte
}

// operandSize reports the operand width in bytes for an opcode, or -1 when
// the operand is variable length (first operand byte is the size, except
// for the table-definition opcode which uses a 16-bit size).
func operandSize(opcode uint16) int {
	switch opcode {
	// Explicitly sized opcodes the decoders below consume.
	case sprmCFRMarkDel, sprmCFBold, sprmCFItalic, sprmCFStrike,
		sprmCFSmallCaps, sprmCFCaps, sprmCFVanish, sprmCFObj,
		sprmPFInTable, sprmPFTtp, sprmTFHeader, sprmTFCantSplit:
		return 1
	case sprmCKul, sprmCIss, sprmCIco, sprmCHighlight, sprmPJc:
		return 1
	case sprmCHps, sprmCRgFtc0, sprmPDxaLeft, sprmPDxaRight,
		sprmTDyaRowHeight, sprmTDxaLeft, sprmTJc:
		return 2
	case sprmCCv, sprmCObjLocation, sprmCPicLocation, sprmPItap:
		return 4
	case sprmTDefTable:
		return -1
	}
	// Unknown opcode: the low three bits of the opcode encode the operand
	// class, which is enough to step over it. Class 6 is variable length;
	// one byte is a conservative guess for operands nothing consumes.
	switch opcode & 0x07 {
	case 2, 4, 5:
		return 2
	case 3:
		return 4
	case 7:
		return 3
	default:
		return 1
	}
}

// parseSprms walks a grpprl (a packed run of SPRMs) and returns the records
// in order. A record whose declared operand runs past the end of the buffer
// terminates the walk; records decoded before the truncation are kept.
func parseSprms(grpprl []byte) []sprm {
	var out []sprm
	pos := 0
	for pos+2 <= len(grpprl) {
		opcode := binary.LittleEndian.Uint16(grpprl[pos : pos+2])
		pos += 2

		size := operandSize(opcode)
		if size < 0 {
			// sprmTDefTable carries a 16-bit size covering itself
			// plus the payload.
			if pos+2 > len(grpprl) {
				break
			}
			size = int(binary.LittleEndian.Uint16(grpprl[pos:pos+2])) - 1
			pos += 2
		}
		if size < 0 || pos+size > len(grpprl) {
			break
		}
		out = append(out, sprm{opcode: opcode, operand: grpprl[pos : pos+size]})
		pos += size
	}
	return out
}

// uint16Operand reads a little-endian uint16 operand, zero when truncated.
func (s sprm) uint16Operand() uint16 {
	if len(s.operand) < 2 {
		return 0
	}
	return binary.LittleEndian.Uint16(s.operand)
}

// uint32Operand reads a little-endian uint32 operand, zero when truncated.
func (s sprm) uint32Operand() uint32 {
	if len(s.operand) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(s.operand)
}

// byteOperand reads a single-byte operand, zero when absent.
func (s sprm) byteOperand() byte {
	if len(s.operand) < 1 {
		return 0
	}
	return s.operand[0]
}

// int16Operand reads a little-endian int16 operand, zero when truncated.
func (s sprm) int16Operand() int16 {
	return int16(s.uint16Operand())
}
