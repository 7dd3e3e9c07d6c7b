package doc

import "strings"

// Cell is one table cell. In this format a cell at a given nesting level
// holds exactly one paragraph; tables nested inside the cell are decoded
// recursively and attached alongside it.
type Cell struct {
	Paragraphs []*Paragraph
	Tables     []*Table
}

// Text concatenates the cell's paragraph text, joined by spaces.
func (c *Cell) Text() string {
	parts := make([]string, 0, len(c.Paragraphs))
	for _, p := range c.Paragraphs {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, " ")
}

// Row is one table row with the properties carried on its row-end mark.
type Row struct {
	Cells  []*Cell
	Format RowFormat
}

// Table is a reconstructed table at one nesting level.
type Table struct {
	Rows []*Row
}

func (*Table) block() {}

// Block is one top-level element of the document body, either a *Paragraph
// or a *Table, in document order.
type Block interface {
	block()
}

// rowItem is the row accumulator's unit: a cell paragraph at the current
// level, or a nested table that attaches to the cell open when it appeared.
type rowItem struct {
	para  *Paragraph
	table *Table
}

// buildBlocks reconstructs the document body from the flat paragraph list:
// paragraphs outside any table pass through, and runs of table paragraphs
// are folded into Table values by the row machine at nesting level one.
func buildBlocks(paras []*Paragraph) []Block {
	var blocks []Block
	i := 0
	for i < len(paras) {
		if paras[i].Format.TableDepth() < 1 {
			blocks = append(blocks, paras[i])
			i++
			continue
		}
		var t *Table
		t, i = buildTable(paras, i, 1)
		if t != nil {
			blocks = append(blocks, t)
		}
	}
	return blocks
}

// buildTable accumulates rows starting at paras[i] until a paragraph leaves
// the given nesting level, returning the table (nil when no complete or
// partial row materialized) and the index of the first unconsumed
// paragraph. Deeper-nested paragraphs are folded into nested tables by
// recursing at level+1; a partial row with no trailing row-end mark is
// still flushed, so truncated documents keep their trailing structure.
func buildTable(paras []*Paragraph, i, level int) (*Table, int) {
	t := &Table{}
	var acc []rowItem
	for i < len(paras) {
		p := paras[i]
		depth := int(p.Format.TableDepth())
		if depth < level {
			break
		}
		if depth > level {
			var nested *Table
			nested, i = buildTable(paras, i, level+1)
			if nested != nil {
				acc = append(acc, rowItem{table: nested})
			}
			continue
		}
		i++
		if p.Format.RowEnd {
			t.Rows = append(t.Rows, flushRow(acc, p))
			acc = acc[:0]
			continue
		}
		acc = append(acc, rowItem{para: p})
	}
	if len(acc) > 0 {
		t.Rows = append(t.Rows, flushRow(acc, nil))
	}
	if len(t.Rows) == 0 {
		return nil, i
	}
	return t, i
}

// flushRow turns the accumulated items into a row. Each paragraph opens a
// new cell; nested tables join the open cell. A row whose accumulator holds
// no paragraph still yields one cell from the row-end mark's own text, so
// degenerate rows are never emitted empty.
func flushRow(items []rowItem, rowEnd *Paragraph) *Row {
	row := &Row{Format: defaultRowFormat()}
	if rowEnd != nil && rowEnd.rowFormat != nil {
		row.Format = *rowEnd.rowFormat
	}
	var cur *Cell
	for _, it := range items {
		if it.para != nil {
			cur = &Cell{Paragraphs: []*Paragraph{it.para}}
			row.Cells = append(row.Cells, cur)
			continue
		}
		if cur == nil {
			cur = &Cell{}
			row.Cells = append(row.Cells, cur)
		}
		cur.Tables = append(cur.Tables, it.table)
	}
	if len(row.Cells) == 0 && rowEnd != nil {
		row.Cells = append(row.Cells, &Cell{Paragraphs: []*Paragraph{rowEnd}})
	}
	return row
}
