package doc

import (
	"encoding/binary"
	"sort"
)

// A bin table (PlcfBte) lives in the table stream and maps file-offset
// ranges of the main stream to the FKP pages that format them. Entries are
// a PLC: n+1 file offsets followed by n four-byte page descriptors whose
// low 22 bits are the page number.

const (
	bteSize   = 4
	pnMask    = 0x3FFFFF
	plcfBteHd = 4 // minimum size: one offset, no entries
)

type binTableEntry struct {
	startFC, endFC uint32
	pn             uint32
}

// parseBinTable decodes a PlcfBte blob. Malformed tables yield no entries;
// formatting then falls back to defaults rather than failing the document.
func parseBinTable(plc []byte) []binTableEntry {
	if len(plc) < plcfBteHd {
		return nil
	}
	n := (len(plc) - 4) / (4 + bteSize)
	if n <= 0 || (n+1)*4+n*bteSize > len(plc) {
		return nil
	}
	entries := make([]binTableEntry, 0, n)
	descBase := (n + 1) * 4
	for i := 0; i < n; i++ {
		entries = append(entries, binTableEntry{
			startFC: binary.LittleEndian.Uint32(plc[i*4:]),
			endFC:   binary.LittleEndian.Uint32(plc[(i+1)*4:]),
			pn:      binary.LittleEndian.Uint32(plc[descBase+i*bteSize:]) & pnMask,
		})
	}
	return entries
}

// cpRun is a formatting run resolved into character-position space.
type cpRun struct {
	startCP, endCP uint32
	grpprl         []byte
}

// resolveRuns walks a bin table, parses each referenced FKP page out of the
// main stream, and translates the page's file-offset runs into character
// positions via the piece table. Runs that map to no piece are dropped;
// the result is sorted by start and clamped so runs never overlap.
func resolveRuns(main []byte, bte []binTableEntry, pieces []piece, parsePage func([]byte) []fkpRun) []cpRun {
	var out []cpRun
	for _, e := range bte {
		off := int(e.pn) * fkpPageSize
		if off < 0 || off+fkpPageSize > len(main) {
			continue
		}
		for _, r := range parsePage(main[off : off+fkpPageSize]) {
			start, ok1 := fcToCP(pieces, r.startFC)
			end, ok2 := fcToCP(pieces, r.endFC)
			if !ok1 || !ok2 || end <= start {
				continue
			}
			out = append(out, cpRun{startCP: start, endCP: end, grpprl: r.grpprl})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].startCP < out[j].startCP })
	for i := 1; i < len(out); i++ {
		if out[i].startCP < out[i-1].endCP {
			out[i].startCP = out[i-1].endCP
			if out[i].endCP < out[i].startCP {
				out[i].endCP = out[i].startCP
			}
		}
	}
	return out
}

// runAt returns the grpprl of the run covering cp, or nil when no run does.
func runAt(runs []cpRun, cp uint32) []byte {
	i := sort.Search(len(runs), func(i int) bool { return runs[i].endCP > cp })
	if i < len(runs) && runs[i].startCP <= cp {
		return runs[i].grpprl
	}
	return nil
}
