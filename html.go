package worddoc

import (
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/worddoc/doc"
)

// HTML renders the decoded document as a standalone HTML page. Paragraph
// justification, the basic character styles, and tables are preserved;
// embedded pictures are inlined as data URIs when their content decodes.
func (e *Extractor) HTML() (string, []Warning, error) {
	if err := e.ensureDocument(); err != nil {
		return "", nil, err
	}
	warnings := append([]Warning(nil), e.warnings...)

	body := elem(atom.Body)
	for _, b := range e.document.Blocks() {
		switch v := b.(type) {
		case *doc.Paragraph:
			body.AppendChild(e.paragraphNode(v, &warnings))
		case *doc.Table:
			body.AppendChild(e.tableNode(v, &warnings))
		}
	}

	root := elem(atom.Html)
	head := elem(atom.Head)
	meta := elem(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)
	if title := e.document.Metadata().Title; title != "" {
		t := elem(atom.Title)
		t.AppendChild(textNode(title))
		head.AppendChild(t)
	}
	root.AppendChild(head)
	root.AppendChild(body)

	docNode := &html.Node{Type: html.DocumentNode}
	docNode.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	docNode.AppendChild(root)

	var sb strings.Builder
	if err := html.Render(&sb, docNode); err != nil {
		return "", warnings, fmt.Errorf("failed to render HTML: %w", err)
	}
	return sb.String(), warnings, nil
}

func elem(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func justifyStyle(j doc.Justification) string {
	switch j {
	case doc.JustifyCenter:
		return "text-align:center"
	case doc.JustifyRight:
		return "text-align:right"
	case doc.JustifyBoth:
		return "text-align:justify"
	default:
		return ""
	}
}

// paragraphNode renders one paragraph as a p element with its runs nested
// in style elements. Picture anchors become inline img elements.
func (e *Extractor) paragraphNode(p *doc.Paragraph, warnings *[]Warning) *html.Node {
	node := elem(atom.P)
	if style := justifyStyle(p.Format.Justification); style != "" {
		node.Attr = []html.Attribute{{Key: "style", Val: style}}
	}
	for _, r := range p.Runs {
		if r.Format.Hidden.On() && !e.options.includeHidden {
			continue
		}
		if r.Format.HasPicture() {
			if img := e.pictureNode(r.Format.PicLocation, warnings); img != nil {
				node.AppendChild(img)
			}
			continue
		}
		text := cleanText(r.Text)
		if text == "" {
			continue
		}
		node.AppendChild(runNode(r, text))
	}
	return node
}

// pictureNode inlines the picture anchored at the given offset as a data
// URI. Pictures whose content cannot be decoded produce a warning and no
// node.
func (e *Extractor) pictureNode(offset uint32, warnings *[]Warning) *html.Node {
	for _, pic := range e.document.Pictures() {
		if pic.Offset != offset {
			continue
		}
		data, err := pic.Data()
		if err != nil {
			*warnings = append(*warnings, Warning{
				Code:    WarnPicture,
				Message: fmt.Sprintf("picture at 0x%X could not be decoded: %v", offset, err),
			})
			return nil
		}
		img := elem(atom.Img)
		img.Attr = []html.Attribute{{
			Key: "src",
			Val: "data:" + pic.Type().MIMEType() + ";base64," + base64.StdEncoding.EncodeToString(data),
		}}
		return img
	}
	return nil
}

// runNode wraps run text in the elements its formatting calls for,
// innermost first.
func runNode(r doc.Run, text string) *html.Node {
	node := textNode(text)
	wrap := func(a atom.Atom) {
		w := elem(a)
		w.AppendChild(node)
		node = w
	}
	if r.Format.Bold.On() {
		wrap(atom.Strong)
	}
	if r.Format.Italic.On() {
		wrap(atom.Em)
	}
	if r.Format.Strike.On() {
		wrap(atom.S)
	}
	if r.Format.Underline != doc.UnderlineNone {
		wrap(atom.U)
	}
	switch r.Format.Vertical {
	case doc.VerticalSuperscript:
		wrap(atom.Sup)
	case doc.VerticalSubscript:
		wrap(atom.Sub)
	}
	var styles []string
	if c := r.Format.Color; c != nil {
		styles = append(styles, fmt.Sprintf("color:#%02x%02x%02x", c.R, c.G, c.B))
	}
	if r.Format.FontSize > 0 {
		styles = append(styles, fmt.Sprintf("font-size:%.1fpt", float64(r.Format.FontSize)/2))
	}
	if len(styles) > 0 {
		w := elem(atom.Span)
		w.Attr = []html.Attribute{{Key: "style", Val: strings.Join(styles, ";")}}
		w.AppendChild(node)
		node = w
	}
	return node
}

// tableNode renders a table with nested tables recursed into their cells.
func (e *Extractor) tableNode(t *doc.Table, warnings *[]Warning) *html.Node {
	node := elem(atom.Table)
	for _, row := range t.Rows {
		tr := elem(atom.Tr)
		cellAtom := atom.Td
		if row.Format.Header {
			cellAtom = atom.Th
		}
		for _, c := range row.Cells {
			td := elem(atom.Td)
			td.DataAtom = cellAtom
			td.Data = cellAtom.String()
			for _, p := range c.Paragraphs {
				td.AppendChild(e.paragraphNode(p, warnings))
			}
			for _, nested := range c.Tables {
				td.AppendChild(e.tableNode(nested, warnings))
			}
			tr.AppendChild(td)
		}
		node.AppendChild(tr)
	}
	return node
}
