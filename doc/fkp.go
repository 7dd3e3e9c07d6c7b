package doc

import "encoding/binary"

// Formatted-disk pages (FKPs) are the 512-byte pages in the main stream
// that carry run-level formatting. Both variants share a layout: a count
// byte at offset 511, count+1 file offsets from the page start, then count
// small index entries pointing at grpprls packed from the back of the page.

const (
	fkpPageSize = 512
	fkpMaxRuns  = 101
)

// fkpRun is one formatting run, addressed by file offset. grpprl is nil
// for runs that carry no property modifiers.
type fkpRun struct {
	startFC, endFC uint32
	grpprl         []byte
}

// parseCHPXPage decodes a character-formatting page. Each index entry is a
// single byte giving the grpprl position in words; zero means the run has
// default properties. Pages with an out-of-range run count are ignored.
func parseCHPXPage(page []byte) []fkpRun {
	if len(page) < fkpPageSize {
		return nil
	}
	crun := int(page[fkpPageSize-1])
	if crun < 1 || crun > fkpMaxRuns {
		return nil
	}
	runs := make([]fkpRun, 0, crun)
	bxBase := (crun + 1) * 4
	for i := 0; i < crun; i++ {
		r := fkpRun{
			startFC: binary.LittleEndian.Uint32(page[i*4:]),
			endFC:   binary.LittleEndian.Uint32(page[(i+1)*4:]),
		}
		if bx := int(page[bxBase+i]); bx != 0 {
			r.grpprl = chpxGrpprl(page, bx*2)
		}
		runs = append(runs, r)
	}
	return runs
}

// chpxGrpprl reads a length-prefixed grpprl at the given page offset.
func chpxGrpprl(page []byte, off int) []byte {
	if off < 1 || off >= len(page) {
		return nil
	}
	cb := int(page[off])
	if off+1+cb > len(page) {
		return nil
	}
	return page[off+1 : off+1+cb]
}

// parsePAPXPage decodes a paragraph-formatting page. Each index entry is 13
// bytes: a word offset to the grpprl followed by a height descriptor this
// decoder skips. The grpprl itself is prefixed by a size in words (with an
// escape to a second size byte) and a two-byte style index that is stripped
// before the property modifiers begin.
func parsePAPXPage(page []byte) []fkpRun {
	if len(page) < fkpPageSize {
		return nil
	}
	cpara := int(page[fkpPageSize-1])
	if cpara < 1 || cpara > fkpMaxRuns {
		return nil
	}
	runs := make([]fkpRun, 0, cpara)
	bxBase := (cpara + 1) * 4
	for i := 0; i < cpara; i++ {
		r := fkpRun{
			startFC: binary.LittleEndian.Uint32(page[i*4:]),
			endFC:   binary.LittleEndian.Uint32(page[(i+1)*4:]),
		}
		if bx := int(page[bxBase+i*13]); bx != 0 {
			r.grpprl = papxGrpprl(page, bx*2)
		}
		runs = append(runs, r)
	}
	return runs
}

// papxGrpprl reads a PAPX grpprl at the given page offset and strips the
// leading style index.
func papxGrpprl(page []byte, off int) []byte {
	if off < 0 || off >= len(page) {
		return nil
	}
	cb := int(page[off])
	var body []byte
	if cb == 0 {
		// Size escaped to the next byte, counted in words from the
		// byte after it.
		if off+2 > len(page) {
			return nil
		}
		cw := int(page[off+1])
		if off+2+cw*2 > len(page) {
			return nil
		}
		body = page[off+2 : off+2+cw*2]
	} else {
		n := (cb - 1) * 2
		if off+1+n > len(page) {
			return nil
		}
		body = page[off+1 : off+1+n]
	}
	if len(body) < 2 {
		return nil
	}
	// Drop the istd style index; only direct formatting is interpreted.
	return body[2:]
}
