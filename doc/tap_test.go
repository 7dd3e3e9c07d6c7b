package doc

import "testing"

// tableDefOperand builds a table-definition operand for the given twip
// boundaries.
func tableDefOperand(t *testing.T, bounds ...int16) []byte {
	t.Helper()
	if len(bounds) < 2 {
		t.Fatal("need at least two boundaries")
	}
	out := []byte{byte(len(bounds) - 1)}
	for _, b := range bounds {
		out = append(out, byte(b), byte(b>>8))
	}
	return out
}

func TestApplyTAPTableDef(t *testing.T) {
	operand := tableDefOperand(t, 0, 1440, 4320)
	g := grpprl(t, uint16(sprmTDefTable), uint16(len(operand)+1), operand)

	f := defaultRowFormat()
	f.applyTAP(g)
	if len(f.Cells) != 2 {
		t.Fatalf("cells = %d, want 2", len(f.Cells))
	}
	if f.Cells[0].Left != 0 || f.Cells[0].Right != 1440 {
		t.Errorf("cell 0 = %+v, want [0,1440)", f.Cells[0])
	}
	if f.Cells[1].Width() != 2880 {
		t.Errorf("cell 1 width = %d, want 2880", f.Cells[1].Width())
	}
}

func TestApplyTAPRowProperties(t *testing.T) {
	f := defaultRowFormat()
	f.applyTAP(grpprl(t,
		uint16(sprmTJc), uint16(1),
		uint16(sprmTDyaRowHeight), uint16(0xFE0C), // -500 exact height
		uint16(sprmTDxaLeft), uint16(720),
		uint16(sprmTFHeader), byte(1),
		uint16(sprmTFCantSplit), byte(1),
	))
	if f.Justification != JustifyCenter {
		t.Errorf("Justification = %v, want center", f.Justification)
	}
	if f.HeightTwips != -500 {
		t.Errorf("HeightTwips = %d, want -500", f.HeightTwips)
	}
	if f.LeftTwips != 720 {
		t.Errorf("LeftTwips = %d, want 720", f.LeftTwips)
	}
	if !f.Header {
		t.Error("Header = false, want true")
	}
	if f.AllowBreak {
		t.Error("AllowBreak = true, want false after can't-split")
	}
}

func TestApplyTAPRowFlagOpcodes(t *testing.T) {
	// Raw grpprl bytes: 0x3403 is can't-split, 0x3404 is table header.
	f := defaultRowFormat()
	f.applyTAP([]byte{0x03, 0x34, 0x01})
	if f.AllowBreak {
		t.Error("AllowBreak = true after 0x3403, want false")
	}
	if f.Header {
		t.Error("Header = true after 0x3403, want false")
	}

	f = defaultRowFormat()
	f.applyTAP([]byte{0x04, 0x34, 0x01})
	if !f.Header {
		t.Error("Header = false after 0x3404, want true")
	}
	if !f.AllowBreak {
		t.Error("AllowBreak = false after 0x3404, want true")
	}
}

func TestDefaultRowFormatAllowsBreaks(t *testing.T) {
	if !defaultRowFormat().AllowBreak {
		t.Error("default AllowBreak = false, want true")
	}
}

func TestParseTableDefMalformed(t *testing.T) {
	if cells := parseTableDef(nil); cells != nil {
		t.Errorf("parseTableDef(nil) = %v, want nil", cells)
	}
	if cells := parseTableDef([]byte{0}); cells != nil {
		t.Errorf("parseTableDef(zero cells) = %v, want nil", cells)
	}
	// Declares 3 cells but carries only two boundaries.
	if cells := parseTableDef([]byte{3, 0x00, 0x00, 0xA0, 0x05}); cells != nil {
		t.Errorf("parseTableDef(truncated) = %v, want nil", cells)
	}
}
