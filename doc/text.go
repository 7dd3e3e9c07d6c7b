package doc

import (
	"bytes"
	"encoding/binary"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

// fallbackTextOffset is where Word 6/95 era files without a piece table
// start their flat text block.
const fallbackTextOffset = 0x200

// docChar is one decoded character tagged with the logical character
// position it came from. Positions are carried per character because the
// decoders drop undecodable input, which would otherwise desynchronize
// string indexes from the CP space the formatting tables address.
type docChar struct {
	r  rune
	cp uint32
}

// decodeSingleByteChars decodes Windows-1252 bytes, one character per byte.
// Code points 0x80..0x9F that the code page leaves unassigned are dropped
// rather than passed through.
func decodeSingleByteChars(data []byte, startCP uint32) []docChar {
	out := make([]docChar, 0, len(data))
	for i, c := range data {
		r := charmap.Windows1252.DecodeByte(c)
		if c >= 0x80 && c <= 0x9F && r == rune(c) {
			// Unassigned slot decoded to its raw value.
			continue
		}
		out = append(out, docChar{r: r, cp: startCP + uint32(i)})
	}
	return out
}

// decodeUTF16Chars decodes little-endian UTF-16 one unit at a time, each
// unit advancing the character position. A trailing odd byte is truncated
// and unpaired surrogates are dropped rather than replaced, so corrupt
// pieces degrade to missing characters instead of replacement-rune noise.
func decodeUTF16Chars(data []byte, startCP uint32) []docChar {
	out := make([]docChar, 0, len(data)/2)
	for i := 0; i+2 <= len(data); i += 2 {
		cp := startCP + uint32(i/2)
		u := binary.LittleEndian.Uint16(data[i:])
		if utf16.IsSurrogate(rune(u)) {
			if i+4 <= len(data) {
				lo := binary.LittleEndian.Uint16(data[i+2:])
				r := utf16.DecodeRune(rune(u), rune(lo))
				if r != '�' {
					out = append(out, docChar{r: r, cp: cp})
					i += 2
					continue
				}
			}
			continue
		}
		out = append(out, docChar{r: rune(u), cp: cp})
	}
	return out
}

// pieceChars decodes the text of a single piece from the main stream,
// clamping the read to the stream's bounds.
func pieceChars(main []byte, p piece) []docChar {
	start := int(p.fileOffset)
	if start >= len(main) {
		return nil
	}
	end := start + int(p.byteLen())
	if end > len(main) {
		end = len(main)
	}
	if p.singleByte {
		return decodeSingleByteChars(main[start:end], p.startCP)
	}
	return decodeUTF16Chars(main[start:end], p.startCP)
}

// reconstructChars concatenates the decoded text of every piece in piece
// order. An empty piece table falls back to scanning the legacy flat text
// block for a NUL terminator.
func reconstructChars(main []byte, pieces []piece) []docChar {
	if len(pieces) == 0 {
		return fallbackChars(main)
	}
	var out []docChar
	for _, p := range pieces {
		out = append(out, pieceChars(main, p)...)
	}
	return out
}

// fallbackChars extracts single-byte text starting at the fixed legacy
// offset, stopping at the first NUL or the end of the stream.
func fallbackChars(main []byte) []docChar {
	if len(main) <= fallbackTextOffset {
		return nil
	}
	block := main[fallbackTextOffset:]
	if i := bytes.IndexByte(block, 0); i >= 0 {
		block = block[:i]
	}
	return decodeSingleByteChars(block, 0)
}

// charsString flattens decoded characters back into a string.
func charsString(chars []docChar) string {
	var b strings.Builder
	b.Grow(len(chars))
	for _, c := range chars {
		b.WriteRune(c.r)
	}
	return b.String()
}

// reconstructText is the plain-text view of reconstructChars.
func reconstructText(main []byte, pieces []piece) string {
	return charsString(reconstructChars(main, pieces))
}
