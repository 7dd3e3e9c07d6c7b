package doc

import (
	"fmt"
	"strings"

	"github.com/tsawler/worddoc/cfb"
)

// Stream names in the compound container.
const (
	mainStreamName = "WordDocument"
	dataStreamName = "Data"
)

// Container is the view of an OLE2 compound file the decoder needs. The
// cfb package's Reader satisfies it.
type Container interface {
	OpenStream(name string) ([]byte, error)
	Exists(name string) bool
}

// Document is a fully decoded .doc file.
type Document struct {
	fib      *fib
	blocks   []Block
	paras    []*Paragraph
	pictures []*Picture
	metadata Metadata
}

// Open decodes the .doc file at the given path.
func Open(filename string) (*Document, error) {
	container, err := cfb.Open(filename)
	if err != nil {
		return nil, err
	}
	return New(container)
}

// New decodes a document from an opened compound container. The container's
// streams are read eagerly; the returned Document does not retain it beyond
// the picture stream it references.
func New(container Container) (*Document, error) {
	main, err := container.OpenStream(mainStreamName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStreamNotFound, mainStreamName)
	}
	f, err := parseFIB(main)
	if err != nil {
		return nil, err
	}
	if f.Encrypted() {
		return nil, ErrEncrypted
	}

	// Word 6/95 era files have no table stream; everything downstream of
	// it degrades to the flat-text fallback.
	table, _ := container.OpenStream(f.TableStreamName())

	pieces, err := documentPieces(f, table)
	if err != nil {
		return nil, err
	}

	chars := reconstructChars(main, pieces)
	// The main document text is the first subrange; the rest is
	// footnotes, headers, and other subdocuments.
	if ccp := f.Ccp(0); ccp > 0 && len(pieces) > 0 {
		for i, c := range chars {
			if c.cp >= ccp {
				chars = chars[:i]
				break
			}
		}
	}

	chpxRuns := documentRuns(f, fibPtrPlcfBteChpx, main, table, pieces, parseCHPXPage)
	papxRuns := documentRuns(f, fibPtrPlcfBtePapx, main, table, pieces, parsePAPXPage)

	paras := buildParagraphs(chars, chpxRuns, papxRuns)

	picStream := main
	if container.Exists(dataStreamName) {
		if data, err := container.OpenStream(dataStreamName); err == nil {
			picStream = data
		}
	}

	return &Document{
		fib:      f,
		blocks:   buildBlocks(paras),
		paras:    paras,
		pictures: collectPictures(paras, picStream),
		metadata: parseMetadata(container),
	}, nil
}

// documentPieces parses the piece table out of the CLX, if the FIB points
// at one. A zero-length pointer is the legacy flat-text case.
func documentPieces(f *fib, table []byte) ([]piece, error) {
	off, length := f.Pointer(fibPtrClx)
	if length == 0 {
		return nil, nil
	}
	if int(off)+int(length) > len(table) {
		return nil, fmt.Errorf("%w: CLX pointer outside table stream", ErrCorrupted)
	}
	return parsePieceTable(table[off : off+length])
}

// documentRuns resolves one of the two formatting bin tables into
// character-position runs. Absent or malformed tables yield no runs.
func documentRuns(f *fib, ptr int, main, table []byte, pieces []piece, parsePage func([]byte) []fkpRun) []cpRun {
	off, length := f.Pointer(ptr)
	if length == 0 || int(off)+int(length) > len(table) {
		return nil
	}
	return resolveRuns(main, parseBinTable(table[off:off+length]), pieces, parsePage)
}

// The picture anchor character, alone or followed by the end-of-special
// mark, is the only run content a picture can hide behind.
func isPictureAnchor(text string) bool {
	return text == "\x01" || text == "\x01\x15"
}

// collectPictures scans every run for picture anchors whose PICF block
// holds stored image content.
func collectPictures(paras []*Paragraph, picStream []byte) []*Picture {
	var pics []*Picture
	for _, p := range paras {
		for _, r := range p.Runs {
			if !r.Format.HasPicture() || r.Format.IsObject || !isPictureAnchor(r.Text) {
				continue
			}
			if picfBlockHasImage(picStream, r.Format.PicLocation) {
				pics = append(pics, &Picture{Offset: r.Format.PicLocation, stream: picStream})
			}
		}
	}
	return pics
}

// Version reports the FIB nFib format revision.
func (d *Document) Version() uint16 { return d.fib.Version() }

// Language reports the language identifier the document was saved with.
func (d *Document) Language() uint16 { return d.fib.Language() }

// Metadata returns the container's summary properties.
func (d *Document) Metadata() Metadata { return d.metadata }

// Pictures returns the document's embedded pictures in document order.
func (d *Document) Pictures() []*Picture { return d.pictures }

// Blocks returns the document body: paragraphs and tables in order.
func (d *Document) Blocks() []Block { return d.blocks }

// Paragraphs returns the body paragraphs outside any table.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, b := range d.blocks {
		if p, ok := b.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Tables returns the top-level tables in document order.
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, b := range d.blocks {
		if t, ok := b.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// Text renders the document body as plain text: one line per paragraph,
// table rows as tab-separated cell text.
func (d *Document) Text() string {
	var b strings.Builder
	for _, blk := range d.blocks {
		switch v := blk.(type) {
		case *Paragraph:
			b.WriteString(v.Text())
			b.WriteByte('\n')
		case *Table:
			for _, row := range v.Rows {
				cells := make([]string, 0, len(row.Cells))
				for _, c := range row.Cells {
					cells = append(cells, c.Text())
				}
				b.WriteString(strings.Join(cells, "\t"))
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}
