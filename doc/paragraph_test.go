package doc

import "testing"

// charsFor tags each rune of s with consecutive character positions
// starting at base.
func charsFor(s string, base uint32) []docChar {
	out := make([]docChar, 0, len(s))
	for i, r := range []rune(s) {
		out = append(out, docChar{r: r, cp: base + uint32(i)})
	}
	return out
}

func TestBuildParagraphsSplitsOnMarks(t *testing.T) {
	chars := charsFor("first\rsecond\rthird", 0)
	paras := buildParagraphs(chars, nil, nil)
	if len(paras) != 3 {
		t.Fatalf("paragraphs = %d, want 3", len(paras))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got := paras[i].Text(); got != want {
			t.Errorf("paragraph %d = %q, want %q", i, got, want)
		}
	}
}

func TestBuildParagraphsSplitsOnCellMark(t *testing.T) {
	chars := charsFor("a\x07b\x07", 0)
	paras := buildParagraphs(chars, nil, nil)
	if len(paras) != 2 {
		t.Fatalf("paragraphs = %d, want 2", len(paras))
	}
	if paras[0].Text() != "a" || paras[1].Text() != "b" {
		t.Errorf("paragraphs = %q/%q, want a/b", paras[0].Text(), paras[1].Text())
	}
}

func TestBuildParagraphsEmptyTrailing(t *testing.T) {
	// A final mark with nothing after it produces no empty paragraph.
	paras := buildParagraphs(charsFor("only\r", 0), nil, nil)
	if len(paras) != 1 {
		t.Fatalf("paragraphs = %d, want 1", len(paras))
	}
}

func TestBuildParagraphsAppliesPAPXAtMark(t *testing.T) {
	chars := charsFor("cell\x07", 0)
	papx := []cpRun{{
		startCP: 4, endCP: 5,
		grpprl: grpprl(t, uint16(sprmPFInTable), byte(1), uint16(sprmPFTtp), byte(1)),
	}}
	paras := buildParagraphs(chars, nil, papx)
	if len(paras) != 1 {
		t.Fatalf("paragraphs = %d, want 1", len(paras))
	}
	p := paras[0]
	if !p.Format.InTable || !p.Format.RowEnd {
		t.Errorf("format = %+v, want in-table row end", p.Format)
	}
	if p.rowFormat == nil {
		t.Error("rowFormat = nil, want decoded row properties on a row end")
	}
}

func TestBuildRunsSplitsAtFormatBoundaries(t *testing.T) {
	chars := charsFor("plainbold", 0)
	chpx := []cpRun{
		{startCP: 0, endCP: 5, grpprl: nil},
		{startCP: 5, endCP: 9, grpprl: grpprl(t, uint16(sprmCFBold), byte(1))},
	}
	runs := buildRuns(chars, chpx)
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if runs[0].Text != "plain" || runs[0].Format.Bold.On() {
		t.Errorf("run 0 = %q bold=%v, want plain/false", runs[0].Text, runs[0].Format.Bold)
	}
	if runs[1].Text != "bold" || !runs[1].Format.Bold.On() {
		t.Errorf("run 1 = %q bold=%v, want bold/true", runs[1].Text, runs[1].Format.Bold)
	}
}

func TestBuildRunsMergesEqualFormats(t *testing.T) {
	// Two adjacent CHPX runs that decode to identical formatting
	// collapse into one output run.
	bold := grpprl(t, uint16(sprmCFBold), byte(1))
	chars := charsFor("ab", 0)
	chpx := []cpRun{
		{startCP: 0, endCP: 1, grpprl: bold},
		{startCP: 1, endCP: 2, grpprl: grpprl(t, uint16(sprmCFBold), byte(1))},
	}
	runs := buildRuns(chars, chpx)
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1 after merge", len(runs))
	}
	if runs[0].Text != "ab" || !runs[0].Format.Bold.On() {
		t.Errorf("merged run = %q bold=%v", runs[0].Text, runs[0].Format.Bold)
	}
}

func TestSameFormat(t *testing.T) {
	red := Color{R: 0xFF}
	red2 := Color{R: 0xFF}
	a := CharFormat{Bold: ToggleOn, Color: &red}
	b := CharFormat{Bold: ToggleOn, Color: &red2}
	if !sameFormat(a, b) {
		t.Error("sameFormat with equal color values = false, want true")
	}
	b.Color = &Color{B: 0xFF}
	if sameFormat(a, b) {
		t.Error("sameFormat with different colors = true, want false")
	}
	b.Color = nil
	if sameFormat(a, b) {
		t.Error("sameFormat with nil vs set color = true, want false")
	}
}
