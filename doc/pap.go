package doc

// Paragraph property opcodes.
const (
	sprmPJc       = 0x2403
	sprmPFInTable = 0x2416
	sprmPFTtp     = 0x2417
	sprmPDxaLeft  = 0x840F
	sprmPDxaRight = 0x8411
	sprmPItap     = 0x6649
)

// ParaFormat holds the paragraph-level properties the decoder interprets.
type ParaFormat struct {
	Justification Justification
	// LeftTwips and RightTwips are the paragraph indents.
	LeftTwips, RightTwips int16

	// InTable marks the paragraph as part of a table cell.
	InTable bool
	// RowEnd marks the paragraph as a table row terminator.
	RowEnd bool
	// Itap is the table nesting depth. A paragraph with InTable set and
	// Itap zero is treated as depth one, matching how Word 97 files omit
	// the depth for non-nested tables.
	Itap int32
}

// TableDepth reports the effective nesting depth of the paragraph:
// zero outside any table.
func (f ParaFormat) TableDepth() int32 {
	if f.Itap > 0 {
		return f.Itap
	}
	if f.InTable || f.RowEnd {
		return 1
	}
	return 0
}

// applyPAP folds a grpprl of paragraph SPRMs into f. The same grpprl can
// also carry table SPRMs for row-end paragraphs; those are handled
// separately by applyTAP.
func (f *ParaFormat) applyPAP(grpprl []byte) {
	for _, s := range parseSprms(grpprl) {
		switch s.opcode {
		case sprmPJc:
			f.Justification = justificationFrom(s.byteOperand())
		case sprmPDxaLeft:
			f.LeftTwips = s.int16Operand()
		case sprmPDxaRight:
			f.RightTwips = s.int16Operand()
		case sprmPFInTable:
			f.InTable = s.byteOperand() != 0
		case sprmPFTtp:
			f.RowEnd = s.byteOperand() != 0
		case sprmPItap:
			f.Itap = int32(s.uint32Operand())
		}
	}
}
