package doc

import "testing"

func TestApplyCHPBasicFlags(t *testing.T) {
	g := grpprl(t,
		uint16(sprmCFBold), byte(1),
		uint16(sprmCFItalic), byte(1),
		uint16(sprmCFStrike), byte(1),
		uint16(sprmCFVanish), byte(1),
		uint16(sprmCKul), byte(1),
	)
	var f CharFormat
	f.applyCHP(g)
	if !f.Bold.On() || !f.Italic.On() || !f.Strike.On() || !f.Hidden.On() {
		t.Errorf("flags = %+v, want all set", f)
	}
	if f.Underline != UnderlineSingle {
		t.Errorf("Underline = %v, want single", f.Underline)
	}
	if f.SmallCaps != ToggleUnset || f.Caps != ToggleUnset {
		t.Errorf("untouched flags = %+v, want unset", f)
	}
}

func TestApplyCHPToggleSemantics(t *testing.T) {
	cases := []struct {
		name    string
		initial Toggle
		operand byte
		want    Toggle
	}{
		{"clear", ToggleOn, 0, ToggleOff},
		{"set", ToggleOff, 1, ToggleOn},
		{"keep set", ToggleOn, 0x80, ToggleOn},
		{"keep clear", ToggleOff, 0x80, ToggleOff},
		{"keep unset", ToggleUnset, 0x80, ToggleOff},
		{"invert set", ToggleOn, 0x81, ToggleOff},
		{"invert clear", ToggleOff, 0x81, ToggleOn},
		{"invert unset", ToggleUnset, 0x81, ToggleOn},
		{"other operand", ToggleOn, 0x7F, ToggleOff},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := CharFormat{Bold: tc.initial}
			f.applyCHP(grpprl(t, uint16(sprmCFBold), tc.operand))
			if f.Bold != tc.want {
				t.Errorf("Bold = %v, want %v", f.Bold, tc.want)
			}
		})
	}
}

func TestApplyCHPUnderlineStyles(t *testing.T) {
	cases := []struct {
		operand byte
		want    UnderlineStyle
	}{
		{0, UnderlineNone},
		{1, UnderlineSingle},
		{2, UnderlineWordsOnly},
		{3, UnderlineDouble},
		{4, UnderlineDotted},
		{5, UnderlineThick},
		{6, UnderlineDashed},
		{7, UnderlineDashDot},
		{8, UnderlineDashDotDot},
		{9, UnderlineWavy},
		{10, UnderlineThick},
		{11, UnderlineThick},
		{0x2F, UnderlineSingle},
	}
	for _, tc := range cases {
		var f CharFormat
		f.applyCHP(grpprl(t, uint16(sprmCKul), tc.operand))
		if f.Underline != tc.want {
			t.Errorf("kul %d: Underline = %v, want %v", tc.operand, f.Underline, tc.want)
		}
	}
}

func TestApplyCHPColors(t *testing.T) {
	var f CharFormat

	// Palette index 6 is red.
	f.applyCHP(grpprl(t, uint16(sprmCIco), byte(6)))
	if f.Color == nil || *f.Color != (Color{R: 0xFF}) {
		t.Errorf("palette color = %+v, want red", f.Color)
	}

	// COLORREF is 0x00BBGGRR.
	f.applyCHP(grpprl(t, uint16(sprmCCv), []byte{0x11, 0x22, 0x33, 0x00}))
	if f.Color == nil || *f.Color != (Color{R: 0x11, G: 0x22, B: 0x33}) {
		t.Errorf("rgb color = %+v, want #112233", f.Color)
	}

	// Index 0 resets to automatic.
	f.applyCHP(grpprl(t, uint16(sprmCIco), byte(0)))
	if f.Color != nil {
		t.Errorf("color after ico 0 = %+v, want nil", f.Color)
	}
}

func TestApplyCHPSizeAndFont(t *testing.T) {
	var f CharFormat
	f.applyCHP(grpprl(t,
		uint16(sprmCHps), uint16(28), // 14pt in half points
		uint16(sprmCRgFtc0), uint16(3),
		uint16(sprmCHighlight), byte(7),
	))
	if f.FontSize != 28 {
		t.Errorf("FontSize = %d, want 28", f.FontSize)
	}
	if f.FontIndex != 3 {
		t.Errorf("FontIndex = %d, want 3", f.FontIndex)
	}
	if f.Highlight != 7 {
		t.Errorf("Highlight = %d, want 7", f.Highlight)
	}
}

func TestApplyCHPVerticalAlign(t *testing.T) {
	var f CharFormat
	f.applyCHP(grpprl(t, uint16(sprmCIss), byte(1)))
	if f.Vertical != VerticalSuperscript {
		t.Errorf("Vertical = %v, want superscript", f.Vertical)
	}
	f.applyCHP(grpprl(t, uint16(sprmCIss), byte(2)))
	if f.Vertical != VerticalSubscript {
		t.Errorf("Vertical = %v, want subscript", f.Vertical)
	}
	f.applyCHP(grpprl(t, uint16(sprmCIss), byte(0)))
	if f.Vertical != VerticalNormal {
		t.Errorf("Vertical = %v, want normal", f.Vertical)
	}
}

func TestApplyCHPObjectAndPicture(t *testing.T) {
	var f CharFormat
	f.applyCHP(grpprl(t,
		uint16(sprmCFObj), byte(1),
		uint16(sprmCObjLocation), []byte{0x10, 0x00, 0x00, 0x00},
	))
	if !f.IsObject || f.ObjLocation != 0x10 {
		t.Errorf("object = %v/0x%X, want true/0x10", f.IsObject, f.ObjLocation)
	}

	var g CharFormat
	g.applyCHP(grpprl(t, uint16(sprmCPicLocation), []byte{0x00, 0x02, 0x00, 0x00}))
	if !g.HasPicture() || g.PicLocation != 0x200 {
		t.Errorf("picture = %v/0x%X, want true/0x200", g.HasPicture(), g.PicLocation)
	}
	var h CharFormat
	if h.HasPicture() {
		t.Error("HasPicture on zero value = true, want false")
	}
}

func TestApplyCHPIgnoresUnknownOpcodes(t *testing.T) {
	// An unknown opcode between two known ones is stepped over.
	g := grpprl(t,
		uint16(sprmCFBold), byte(1),
		uint16(0xF003), []byte{1, 2, 3, 4},
		uint16(sprmCFItalic), byte(1),
	)
	var f CharFormat
	f.applyCHP(g)
	if !f.Bold.On() || !f.Italic.On() {
		t.Errorf("flags = %+v, want bold and italic", f)
	}
}
