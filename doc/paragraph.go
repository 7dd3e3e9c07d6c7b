package doc

// Paragraph mark and cell mark characters. The cell mark doubles as the
// row terminator; the two are told apart by the paragraph's fTtp property.
const (
	paraMark = '\r'
	cellMark = 0x07
)

// Run is a maximal span of paragraph text with uniform character
// formatting.
type Run struct {
	Text   string
	Format CharFormat
}

// Paragraph is one paragraph of document text with its resolved
// paragraph-level properties.
type Paragraph struct {
	Runs   []Run
	Format ParaFormat

	// rowFormat is set on row-end paragraphs, whose property run also
	// carries the table-row definition.
	rowFormat *RowFormat
}

// Text concatenates the paragraph's run text.
func (p *Paragraph) Text() string {
	if len(p.Runs) == 1 {
		return p.Runs[0].Text
	}
	var out []byte
	for _, r := range p.Runs {
		out = append(out, r.Text...)
	}
	return string(out)
}

func (*Paragraph) block() {}

// sameFormat reports whether two character formats are identical, treating
// equal color values as equal regardless of pointer identity.
func sameFormat(a, b CharFormat) bool {
	ac, bc := a.Color, b.Color
	a.Color, b.Color = nil, nil
	if a != b {
		return false
	}
	if (ac == nil) != (bc == nil) {
		return false
	}
	return ac == nil || *ac == *bc
}

// buildParagraphs segments decoded characters into paragraphs at paragraph
// and cell marks, resolving paragraph properties from the PAPX runs and
// character properties from the CHPX runs. The terminating mark is excluded
// from the paragraph text but supplies the character position its
// properties are looked up at.
func buildParagraphs(chars []docChar, chpxRuns, papxRuns []cpRun) []*Paragraph {
	var paras []*Paragraph
	start := 0
	for i := 0; i <= len(chars); i++ {
		atEnd := i == len(chars)
		if !atEnd && chars[i].r != paraMark && chars[i].r != cellMark {
			continue
		}
		if atEnd && i == start {
			break
		}

		// Property lookups key off the mark's position; a final
		// unterminated paragraph uses its last character instead.
		markCP := chars[i-1].cp + 1
		if !atEnd {
			markCP = chars[i].cp
		}

		p := &Paragraph{Runs: buildRuns(chars[start:i], chpxRuns)}
		if grpprl := runAt(papxRuns, markCP); grpprl != nil {
			p.Format.applyPAP(grpprl)
			if p.Format.RowEnd {
				rf := defaultRowFormat()
				rf.applyTAP(grpprl)
				p.rowFormat = &rf
			}
		}
		paras = append(paras, p)
		start = i + 1
	}
	return paras
}

// buildRuns splits a paragraph's characters at CHPX run boundaries and
// folds each run's property modifiers over default character formatting.
// Adjacent runs that resolve to the same format are merged.
func buildRuns(chars []docChar, chpxRuns []cpRun) []Run {
	if len(chars) == 0 {
		return nil
	}
	var runs []Run
	start := 0
	cur := runAt(chpxRuns, chars[0].cp)
	for i := 1; i <= len(chars); i++ {
		var next []byte
		if i < len(chars) {
			next = runAt(chpxRuns, chars[i].cp)
			if sameGrpprl(next, cur) {
				continue
			}
		}
		var f CharFormat
		f.applyCHP(cur)
		text := charsString(chars[start:i])
		if n := len(runs); n > 0 && sameFormat(runs[n-1].Format, f) {
			runs[n-1].Text += text
		} else {
			runs = append(runs, Run{Text: text, Format: f})
		}
		start, cur = i, next
	}
	return runs
}

// sameGrpprl compares grpprls by content; two nil or empty grpprls match.
func sameGrpprl(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
