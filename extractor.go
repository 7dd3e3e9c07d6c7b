package worddoc

import (
	"fmt"
	"os"
	"strings"

	"github.com/tsawler/worddoc/cfb"
	"github.com/tsawler/worddoc/doc"
	"github.com/tsawler/worddoc/format"
)

// Extractor provides a fluent interface for extracting content from .doc
// files. Each configuration method returns a new Extractor instance, making
// it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	data     []byte
	format   format.Format

	// Decoded document, populated on first terminal operation.
	document *doc.Document
	opened   bool

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		data:     e.data,
		format:   e.format,
		document: e.document,
		opened:   e.opened,
		options:  e.options.clone(),
		err:      e.err,
		warnings: append([]Warning(nil), e.warnings...),
	}
}

// IncludeHidden keeps text formatted as hidden, which is dropped from
// extraction output by default.
func (e *Extractor) IncludeHidden() *Extractor {
	ne := e.clone()
	ne.options.includeHidden = true
	return ne
}

// JoinParagraphs joins paragraphs with spaces instead of newlines.
func (e *Extractor) JoinParagraphs() *Extractor {
	ne := e.clone()
	ne.options.joinParagraphs = true
	return ne
}

// ensureDocument loads and decodes the source if not already done.
func (e *Extractor) ensureDocument() error {
	if e.err != nil {
		return e.err
	}
	if e.opened {
		return nil
	}
	if e.data == nil {
		if e.filename == "" {
			e.err = fmt.Errorf("no source specified")
			return e.err
		}
		data, err := os.ReadFile(e.filename)
		if err != nil {
			e.err = fmt.Errorf("failed to read file: %w", err)
			return e.err
		}
		e.data = data
	}

	e.format = format.DetectFromMagic(e.data)
	if e.format == format.Unknown && e.filename != "" {
		e.format = format.Detect(e.filename)
	}
	if e.format != format.DOC {
		e.err = fmt.Errorf("unsupported file format: %s", e.format)
		return e.err
	}

	container, err := cfb.New(e.data)
	if err != nil {
		e.err = fmt.Errorf("failed to open container: %w", err)
		return e.err
	}
	d, err := doc.New(container)
	if err != nil {
		e.err = fmt.Errorf("failed to decode document: %w", err)
		return e.err
	}
	e.document = d
	e.opened = true
	return nil
}

// Close releases the decoded document. It is safe to call Close multiple
// times; the Extractor can be reused afterwards and will re-decode.
func (e *Extractor) Close() error {
	e.document = nil
	e.opened = false
	return nil
}

// Document decodes the source and returns the full document model along
// with any warnings accumulated during extraction.
func (e *Extractor) Document() (*doc.Document, []Warning, error) {
	if err := e.ensureDocument(); err != nil {
		return nil, nil, err
	}
	return e.document, e.warnings, nil
}

// DetectedFormat reports the source format without requiring a successful
// decode.
func (e *Extractor) DetectedFormat() (format.Format, error) {
	if e.data != nil || e.filename == "" {
		return format.DetectFromMagic(e.data), nil
	}
	data, err := os.ReadFile(e.filename)
	if err != nil {
		return format.Unknown, fmt.Errorf("failed to read file: %w", err)
	}
	if f := format.DetectFromMagic(data); f != format.Unknown {
		return f, nil
	}
	return format.Detect(e.filename), nil
}

// Text extracts the document's plain text. It returns the extracted text,
// warnings, and an error if extraction failed. Warnings indicate non-fatal
// issues such as hidden text that was skipped.
//
// Paragraphs are separated by newlines (spaces with JoinParagraphs) and
// table rows are rendered as tab-separated cell text.
func (e *Extractor) Text() (string, []Warning, error) {
	if err := e.ensureDocument(); err != nil {
		return "", nil, err
	}
	warnings := append([]Warning(nil), e.warnings...)

	sep := "\n"
	if e.options.joinParagraphs {
		sep = " "
	}

	var parts []string
	hiddenSkipped := false
	for _, b := range e.document.Blocks() {
		switch v := b.(type) {
		case *doc.Paragraph:
			text, skipped := e.paragraphText(v)
			hiddenSkipped = hiddenSkipped || skipped
			parts = append(parts, text)
		case *doc.Table:
			for _, row := range v.Rows {
				cells := make([]string, 0, len(row.Cells))
				for _, c := range row.Cells {
					text, skipped := e.cellText(c)
					hiddenSkipped = hiddenSkipped || skipped
					cells = append(cells, text)
				}
				parts = append(parts, strings.Join(cells, "\t"))
			}
		}
	}
	if hiddenSkipped {
		warnings = append(warnings, Warning{
			Code:    WarnHiddenText,
			Message: "hidden text was skipped; use IncludeHidden to keep it",
		})
	}
	return strings.Join(parts, sep), warnings, nil
}

// Paragraphs decodes the source and returns the body paragraphs outside
// any table.
func (e *Extractor) Paragraphs() ([]*doc.Paragraph, error) {
	if err := e.ensureDocument(); err != nil {
		return nil, err
	}
	return e.document.Paragraphs(), nil
}

// Tables decodes the source and returns its top-level tables.
func (e *Extractor) Tables() ([]*doc.Table, error) {
	if err := e.ensureDocument(); err != nil {
		return nil, err
	}
	return e.document.Tables(), nil
}

// Metadata decodes the source and returns the container's summary
// properties.
func (e *Extractor) Metadata() (doc.Metadata, error) {
	if err := e.ensureDocument(); err != nil {
		return doc.Metadata{}, err
	}
	return e.document.Metadata(), nil
}

// Pictures decodes the source and returns its embedded pictures.
func (e *Extractor) Pictures() ([]*doc.Picture, error) {
	if err := e.ensureDocument(); err != nil {
		return nil, err
	}
	return e.document.Pictures(), nil
}

// paragraphText assembles a paragraph's visible text, reporting whether any
// hidden run was skipped.
func (e *Extractor) paragraphText(p *doc.Paragraph) (string, bool) {
	var b strings.Builder
	skipped := false
	for _, r := range p.Runs {
		if r.Format.Hidden.On() && !e.options.includeHidden {
			skipped = true
			continue
		}
		b.WriteString(cleanText(r.Text))
	}
	return b.String(), skipped
}

// cellText assembles a cell's visible text, including any nested tables as
// space-joined rows.
func (e *Extractor) cellText(c *doc.Cell) (string, bool) {
	var parts []string
	skipped := false
	for _, p := range c.Paragraphs {
		text, s := e.paragraphText(p)
		skipped = skipped || s
		parts = append(parts, text)
	}
	for _, t := range c.Tables {
		for _, row := range t.Rows {
			for _, cell := range row.Cells {
				text, s := e.cellText(cell)
				skipped = skipped || s
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, " "), skipped
}

// cleanText strips the format's inline control characters from run text:
// anchors and field marks are dropped, line and page breaks become
// newlines, and the non-breaking hyphen becomes a plain one.
func cleanText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == 0x0B || r == 0x0C:
			b.WriteByte('\n')
		case r == 0x1E:
			b.WriteByte('-')
		case r == '\t':
			b.WriteByte('\t')
		case r < 0x20:
			// Control characters, including picture anchors,
			// field delimiters, and the soft hyphen.
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
