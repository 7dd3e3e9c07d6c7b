package doc

import "encoding/binary"

// Table property opcodes.
const (
	sprmTJc           = 0x5400
	sprmTDxaLeft      = 0x9601
	sprmTDyaRowHeight = 0x9407
	sprmTFCantSplit   = 0x3403
	sprmTFHeader      = 0x3404
	sprmTDefTable     = 0xD608
)

// Justification values shared by paragraphs and table rows.
type Justification uint8

const (
	JustifyLeft Justification = iota
	JustifyCenter
	JustifyRight
	JustifyBoth
)

func justificationFrom(b byte) Justification {
	switch b {
	case 1:
		return JustifyCenter
	case 2:
		return JustifyRight
	case 3, 4, 5:
		return JustifyBoth
	default:
		return JustifyLeft
	}
}

// CellFormat holds per-cell properties from a row's table definition.
// The definition reserves room for borders and shading that this decoder
// does not interpret; the struct keeps only the resolved geometry.
type CellFormat struct {
	// Left and Right are the cell's boundary positions in twips.
	Left, Right int16
}

// Width reports the cell width in twips.
func (c CellFormat) Width() int16 { return c.Right - c.Left }

// RowFormat holds the table-row properties folded out of a row-end
// paragraph's grpprl.
type RowFormat struct {
	Justification Justification
	// HeightTwips is the row height; negative means exact, positive
	// means at-least, zero means auto.
	HeightTwips int16
	// LeftTwips is the row's indent from the left margin.
	LeftTwips int16
	// Header marks the row as repeating at the top of each page.
	Header bool
	// AllowBreak permits a page break inside the row.
	AllowBreak bool
	// Cells is the per-cell geometry from the table definition; empty
	// when no definition SPRM was present.
	Cells []CellFormat
}

// defaultRowFormat mirrors Word's defaults: rows may break across pages.
func defaultRowFormat() RowFormat {
	return RowFormat{AllowBreak: true}
}

// applyTAP folds a grpprl of table SPRMs into f.
func (f *RowFormat) applyTAP(grpprl []byte) {
	for _, s := range parseSprms(grpprl) {
		switch s.opcode {
		case sprmTJc:
			f.Justification = justificationFrom(s.byteOperand())
		case sprmTDyaRowHeight:
			f.HeightTwips = s.int16Operand()
		case sprmTDxaLeft:
			f.LeftTwips = s.int16Operand()
		case sprmTFHeader:
			f.Header = s.byteOperand() != 0
		case sprmTFCantSplit:
			// Stored as "can't split"; kept as the positive form.
			f.AllowBreak = s.byteOperand() == 0
		case sprmTDefTable:
			f.Cells = parseTableDef(s.operand)
		}
	}
}

// parseTableDef decodes a table-definition operand: a cell count followed
// by count+1 boundary positions in twips, then per-cell descriptors this
// decoder skips. Malformed definitions yield no cells.
func parseTableDef(operand []byte) []CellFormat {
	if len(operand) < 1 {
		return nil
	}
	count := int(operand[0])
	if count == 0 || 1+(count+1)*2 > len(operand) {
		return nil
	}
	bounds := make([]int16, count+1)
	for i := range bounds {
		bounds[i] = int16(binary.LittleEndian.Uint16(operand[1+i*2:]))
	}
	cells := make([]CellFormat, count)
	for i := range cells {
		cells[i] = CellFormat{Left: bounds[i], Right: bounds[i+1]}
	}
	return cells
}
