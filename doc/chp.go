package doc

// Character property opcodes.
const (
	sprmCFRMarkDel   = 0x0800
	sprmCFBold       = 0x0835
	sprmCFItalic     = 0x0836
	sprmCFStrike     = 0x0837
	sprmCFSmallCaps  = 0x083A
	sprmCFCaps       = 0x083B
	sprmCFVanish     = 0x083C
	sprmCFObj        = 0x0856
	sprmCIco         = 0x2A42
	sprmCHighlight   = 0x2A0C
	sprmCKul         = 0x2A3E
	sprmCIss         = 0x2A48
	sprmCHps         = 0x4A43
	sprmCRgFtc0      = 0x4A4F
	sprmCCv          = 0x6870
	sprmCObjLocation = 0x680E
	sprmCPicLocation = 0x6A03
)

// Toggle is a tri-state boolean character property. The zero value means
// the property was never set by any SPRM, which renders the same as off
// but lets callers tell inherited defaults from explicit formatting.
type Toggle uint8

const (
	ToggleUnset Toggle = iota
	ToggleOff
	ToggleOn
)

// On reports whether the property is explicitly on.
func (t Toggle) On() bool { return t == ToggleOn }

// UnderlineStyle is the kul underline variant of a run.
type UnderlineStyle uint8

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSingle
	UnderlineWordsOnly
	UnderlineDouble
	UnderlineDotted
	UnderlineDashed
	UnderlineDashDot
	UnderlineDashDotDot
	UnderlineWavy
	UnderlineThick
)

// underlineFrom maps a kul operand byte to its style. Unrecognized values
// fall back to a single underline.
func underlineFrom(b byte) UnderlineStyle {
	switch b {
	case 0:
		return UnderlineNone
	case 1:
		return UnderlineSingle
	case 2:
		return UnderlineWordsOnly
	case 3:
		return UnderlineDouble
	case 4:
		return UnderlineDotted
	case 5, 10, 11:
		return UnderlineThick
	case 6:
		return UnderlineDashed
	case 7:
		return UnderlineDashDot
	case 8:
		return UnderlineDashDotDot
	case 9:
		return UnderlineWavy
	default:
		return UnderlineSingle
	}
}

// VerticalAlign is the superscript/subscript state of a run.
type VerticalAlign uint8

const (
	VerticalNormal VerticalAlign = iota
	VerticalSuperscript
	VerticalSubscript
)

// Color is a 24-bit RGB value resolved from either an explicit COLORREF or
// a legacy palette index.
type Color struct {
	R, G, B uint8
}

// The legacy 17-entry ico palette. Index 0 means "automatic" and is
// represented as no explicit color.
var icoPalette = [17]Color{
	1:  {0x00, 0x00, 0x00}, // black
	2:  {0x00, 0x00, 0xFF}, // blue
	3:  {0x00, 0xFF, 0xFF}, // cyan
	4:  {0x00, 0xFF, 0x00}, // green
	5:  {0xFF, 0x00, 0xFF}, // magenta
	6:  {0xFF, 0x00, 0x00}, // red
	7:  {0xFF, 0xFF, 0x00}, // yellow
	8:  {0xFF, 0xFF, 0xFF}, // white
	9:  {0x00, 0x00, 0x80}, // dark blue
	10: {0x00, 0x80, 0x80}, // dark cyan
	11: {0x00, 0x80, 0x00}, // dark green
	12: {0x80, 0x00, 0x80}, // dark magenta
	13: {0x80, 0x00, 0x00}, // dark red
	14: {0x80, 0x80, 0x00}, // dark yellow
	15: {0x80, 0x80, 0x80}, // dark gray
	16: {0xC0, 0xC0, 0xC0}, // light gray
}

// CharFormat holds the character-level formatting of a run after all
// applicable SPRMs have been applied over the defaults.
type CharFormat struct {
	Bold      Toggle
	Italic    Toggle
	Strike    Toggle
	SmallCaps Toggle
	Caps      Toggle
	Hidden    Toggle
	Deleted   Toggle
	Underline UnderlineStyle
	Vertical  VerticalAlign

	// Color is the explicit text color; nil means automatic.
	Color *Color
	// Highlight is the legacy palette index of the highlight color;
	// zero means none.
	Highlight uint8

	// FontSize is in half points; zero means inherited.
	FontSize uint16
	// FontIndex is an index into the document font table.
	FontIndex uint16

	// IsObject marks the run as an embedded OLE object anchor, with the
	// object's location in the data stream.
	IsObject    bool
	ObjLocation uint32

	// PicLocation is the offset of picture data for runs holding a
	// picture anchor character; hasPic records that it was set at all,
	// since zero is a valid offset.
	PicLocation uint32

	hasPic bool
}

// applyToggle implements the toggle-operand semantics shared by the
// tri-state character properties: 0 clears, 1 sets, 0x80 keeps the
// inherited value, and 0x81 inverts it. Other values clear. The result is
// always an explicit state; an inherited unset counts as off.
func applyToggle(current Toggle, operand byte) Toggle {
	switch operand {
	case 0:
		return ToggleOff
	case 1:
		return ToggleOn
	case 0x80:
		if current.On() {
			return ToggleOn
		}
		return ToggleOff
	case 0x81:
		if current.On() {
			return ToggleOff
		}
		return ToggleOn
	default:
		return ToggleOff
	}
}

// applyCHP folds a grpprl of character SPRMs into f. Unrecognized opcodes
// are stepped over by the generic size rule and otherwise ignored.
func (f *CharFormat) applyCHP(grpprl []byte) {
	for _, s := range parseSprms(grpprl) {
		switch s.opcode {
		case sprmCFBold:
			f.Bold = applyToggle(f.Bold, s.byteOperand())
		case sprmCFItalic:
			f.Italic = applyToggle(f.Italic, s.byteOperand())
		case sprmCFStrike:
			f.Strike = applyToggle(f.Strike, s.byteOperand())
		case sprmCFSmallCaps:
			f.SmallCaps = applyToggle(f.SmallCaps, s.byteOperand())
		case sprmCFCaps:
			f.Caps = applyToggle(f.Caps, s.byteOperand())
		case sprmCFVanish:
			f.Hidden = applyToggle(f.Hidden, s.byteOperand())
		case sprmCFRMarkDel:
			f.Deleted = applyToggle(f.Deleted, s.byteOperand())
		case sprmCKul:
			f.Underline = underlineFrom(s.byteOperand())
		case sprmCIss:
			switch s.byteOperand() {
			case 1:
				f.Vertical = VerticalSuperscript
			case 2:
				f.Vertical = VerticalSubscript
			default:
				f.Vertical = VerticalNormal
			}
		case sprmCIco:
			ico := s.byteOperand()
			if ico == 0 {
				f.Color = nil
			} else if int(ico) < len(icoPalette) {
				c := icoPalette[ico]
				f.Color = &c
			}
		case sprmCCv:
			// COLORREF layout 0x00BBGGRR.
			v := s.uint32Operand()
			f.Color = &Color{R: uint8(v), G: uint8(v >> 8), B: uint8(v >> 16)}
		case sprmCHighlight:
			f.Highlight = s.byteOperand()
		case sprmCHps:
			f.FontSize = s.uint16Operand()
		case sprmCRgFtc0:
			f.FontIndex = s.uint16Operand()
		case sprmCFObj:
			f.IsObject = s.byteOperand() != 0
		case sprmCObjLocation:
			f.ObjLocation = s.uint32Operand()
		case sprmCPicLocation:
			f.PicLocation = s.uint32Operand()
			f.hasPic = true
		}
	}
}

// HasPicture reports whether an explicit picture location was applied.
func (f *CharFormat) HasPicture() bool { return f.hasPic }
