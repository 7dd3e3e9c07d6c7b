package doc

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildBinTable assembles a PlcfBte from FC boundaries and page numbers.
func buildBinTable(t *testing.T, fcs []uint32, pns []uint32) []byte {
	t.Helper()
	if len(fcs) != len(pns)+1 {
		t.Fatalf("need %d FCs for %d entries", len(pns)+1, len(pns))
	}
	var b bytes.Buffer
	for _, fc := range fcs {
		var tmp [4]byte
		binary.LittleEndian.PutUint32(tmp[:], fc)
		b.Write(tmp[:])
	}
	for _, pn := range pns {
		var tmp [4]byte
		binary.LittleEndian.PutUint32(tmp[:], pn)
		b.Write(tmp[:])
	}
	return b.Bytes()
}

func TestParseBinTable(t *testing.T) {
	plc := buildBinTable(t, []uint32{0x400, 0x800, 0xC00}, []uint32{2, 3})
	entries := parseBinTable(plc)
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].startFC != 0x400 || entries[0].endFC != 0x800 || entries[0].pn != 2 {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1].pn != 3 {
		t.Errorf("entry 1 pn = %d, want 3", entries[1].pn)
	}
}

func TestParseBinTableMasksPageNumber(t *testing.T) {
	// Only the low 22 bits are the page number.
	plc := buildBinTable(t, []uint32{0, 1}, []uint32{0xFFC00005})
	entries := parseBinTable(plc)
	if len(entries) != 1 || entries[0].pn != 5 {
		t.Errorf("entries = %+v, want one entry with pn 5", entries)
	}
}

func TestParseBinTableMalformed(t *testing.T) {
	if entries := parseBinTable(nil); entries != nil {
		t.Errorf("parseBinTable(nil) = %v, want nil", entries)
	}
	if entries := parseBinTable([]byte{1, 2, 3, 4}); entries != nil {
		t.Errorf("parseBinTable(no entries) = %v, want nil", entries)
	}
}

func TestResolveRuns(t *testing.T) {
	// Single-byte text at fc 0x400, covered by one FKP page at page 2.
	pieces := []piece{{startCP: 0, endCP: 0x20, fileOffset: 0x400, singleByte: true}}
	bold := grpprl(t, uint16(sprmCFBold), byte(1))
	page := buildCHPXPage(t, []uint32{0x400, 0x410, 0x420}, [][]byte{bold, nil})

	main := make([]byte, 3*fkpPageSize)
	copy(main[2*fkpPageSize:], page)

	bte := []binTableEntry{{startFC: 0x400, endFC: 0x420, pn: 2}}
	runs := resolveRuns(main, bte, pieces, parseCHPXPage)
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if runs[0].startCP != 0 || runs[0].endCP != 0x10 {
		t.Errorf("run 0 = [%d,%d), want [0,16)", runs[0].startCP, runs[0].endCP)
	}
	if !bytes.Equal(runs[0].grpprl, bold) {
		t.Errorf("run 0 grpprl = %x, want bold", runs[0].grpprl)
	}
	if runs[1].startCP != 0x10 || runs[1].endCP != 0x20 {
		t.Errorf("run 1 = [%d,%d), want [16,32)", runs[1].startCP, runs[1].endCP)
	}
}

func TestResolveRunsSkipsBadPages(t *testing.T) {
	pieces := []piece{{startCP: 0, endCP: 0x20, fileOffset: 0x400, singleByte: true}}
	bte := []binTableEntry{{startFC: 0x400, endFC: 0x420, pn: 9000}}
	if runs := resolveRuns(make([]byte, fkpPageSize), bte, pieces, parseCHPXPage); runs != nil {
		t.Errorf("runs = %v, want nil for out-of-range page", runs)
	}
}

func TestResolveRunsClampsOverlaps(t *testing.T) {
	pieces := []piece{{startCP: 0, endCP: 0x40, fileOffset: 0x400, singleByte: true}}
	pageA := buildCHPXPage(t, []uint32{0x400, 0x420}, [][]byte{nil})
	pageB := buildCHPXPage(t, []uint32{0x410, 0x430}, [][]byte{nil})

	main := make([]byte, 4*fkpPageSize)
	copy(main[2*fkpPageSize:], pageA)
	copy(main[3*fkpPageSize:], pageB)

	bte := []binTableEntry{
		{startFC: 0x400, endFC: 0x420, pn: 2},
		{startFC: 0x410, endFC: 0x430, pn: 3},
	}
	runs := resolveRuns(main, bte, pieces, parseCHPXPage)
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	// The second run starts where the first ends instead of overlapping.
	if runs[1].startCP != runs[0].endCP {
		t.Errorf("run 1 starts at %d, want %d", runs[1].startCP, runs[0].endCP)
	}
}

func TestRunAt(t *testing.T) {
	runs := []cpRun{
		{startCP: 0, endCP: 10, grpprl: []byte{1}},
		{startCP: 10, endCP: 20, grpprl: []byte{2}},
	}
	if g := runAt(runs, 5); !bytes.Equal(g, []byte{1}) {
		t.Errorf("runAt(5) = %x, want 01", g)
	}
	if g := runAt(runs, 10); !bytes.Equal(g, []byte{2}) {
		t.Errorf("runAt(10) = %x, want 02", g)
	}
	if g := runAt(runs, 50); g != nil {
		t.Errorf("runAt(50) = %x, want nil", g)
	}
}
