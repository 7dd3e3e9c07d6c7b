package doc

import (
	"encoding/binary"
	"fmt"
)

// FIB magic values. Word 97 and later write 0xA5EC; a few late Word 95
// beta builds used 0xA5DC with the same fixed header layout.
const (
	fibMagicWord97 = 0xA5EC
	fibMagicOld    = 0xA5DC
)

const (
	fibFlagEncrypted   = 0x0100
	fibFlagWhichTblStm = 0x0200

	// The variable-length pointer table (FibRgFcLcb) starts at a fixed
	// offset in every nFib revision this package handles. Each entry is
	// an offset/length pair of little-endian uint32s.
	fibPointerBase = 154
	fibPointerSize = 8

	// Character counts for the document's subranges (main text, footnotes,
	// headers, and so on) sit in a block of uint32s after the csw section.
	fibCcpBase = 64 + 0x0C
)

// Pointer-table indexes used by the decoder. The table describes where each
// auxiliary structure lives in the table stream.
const (
	fibPtrPlcfBteChpx = 12
	fibPtrPlcfBtePapx = 13
	fibPtrClx         = 33
)

// fib is the File Information Block at the start of the WordDocument
// stream. It is kept as a slice over the stream rather than decoded into a
// struct because nearly every field is consumed exactly once, by offset.
type fib struct {
	raw []byte
}

// parseFIB validates the header signature and returns a navigator over the
// main stream. The caller retains ownership of data.
func parseFIB(data []byte) (*fib, error) {
	if len(data) < fibPointerBase {
		return nil, fmt.Errorf("%w: main stream too short for FIB (%d bytes)", ErrCorrupted, len(data))
	}
	magic := binary.LittleEndian.Uint16(data[0:2])
	if magic != fibMagicWord97 && magic != fibMagicOld {
		return nil, fmt.Errorf("%w: bad FIB magic 0x%04X", ErrInvalidFormat, magic)
	}
	return &fib{raw: data}, nil
}

// Version reports the nFib format revision.
func (f *fib) Version() uint16 {
	return binary.LittleEndian.Uint16(f.raw[2:4])
}

// Language reports the lid language identifier the document was saved with.
func (f *fib) Language() uint16 {
	return binary.LittleEndian.Uint16(f.raw[6:8])
}

func (f *fib) flags() uint16 {
	return binary.LittleEndian.Uint16(f.raw[0x0A : 0x0A+2])
}

// Encrypted reports whether the document content is password protected.
func (f *fib) Encrypted() bool {
	return f.flags()&fibFlagEncrypted != 0
}

// TableStreamName reports which of the two possible table streams holds the
// auxiliary structures for this save of the document.
func (f *fib) TableStreamName() string {
	if f.flags()&fibFlagWhichTblStm != 0 {
		return "1Table"
	}
	return "0Table"
}

// Pointer returns the offset/length pair at the given pointer-table index.
// An index past the end of the stored table reads as (0, 0), which callers
// treat as "structure absent"; older nFib revisions simply wrote fewer
// entries.
func (f *fib) Pointer(index int) (offset, length uint32) {
	pos := fibPointerBase + index*fibPointerSize
	if pos+fibPointerSize > len(f.raw) {
		return 0, 0
	}
	offset = binary.LittleEndian.Uint32(f.raw[pos : pos+4])
	length = binary.LittleEndian.Uint32(f.raw[pos+4 : pos+8])
	return offset, length
}

// Ccp returns the character count for subdocument range i (0 is the main
// document text). Missing entries read as zero.
func (f *fib) Ccp(i int) uint32 {
	pos := fibCcpBase + 4*i
	if pos+4 > len(f.raw) {
		return 0
	}
	return binary.LittleEndian.Uint32(f.raw[pos : pos+4])
}
