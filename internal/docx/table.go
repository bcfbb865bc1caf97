package docx

import "github.com/antchfx/xmlquery"

// Table wraps a w:tbl element.
type Table struct {
	node *xmlquery.Node
}

// Node exposes the underlying element for low-level edits.
func (t *Table) Node() *xmlquery.Node { return t.node }

// Rows returns the table rows in order.
func (t *Table) Rows() []*Row {
	var out []*Row
	for _, n := range childElements(t.node, "w", "tr") {
		out = append(out, &Row{node: n})
	}
	return out
}

// Cells returns every cell in the table, row by row.
func (t *Table) Cells() []*Cell {
	var out []*Cell
	for _, r := range t.Rows() {
		out = append(out, r.Cells()...)
	}
	return out
}

// Row wraps a w:tr element.
type Row struct {
	node *xmlquery.Node
}

// Cells returns the row's cells in order.
func (r *Row) Cells() []*Cell {
	var out []*Cell
	for _, n := range childElements(r.node, "w", "tc") {
		out = append(out, &Cell{node: n})
	}
	return out
}

// Cell wraps a w:tc element. For traversal purposes a cell is a nested
// document scope: it owns its own paragraph sequence and may contain
// nested tables.
type Cell struct {
	node *xmlquery.Node
}

// Node exposes the underlying element for low-level edits.
func (c *Cell) Node() *xmlquery.Node { return c.node }

// Paragraphs returns the cell's directly owned paragraphs.
func (c *Cell) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, n := range childElements(c.node, "w", "p") {
		out = append(out, &Paragraph{node: n})
	}
	return out
}

// AllParagraphs returns the cell's paragraphs including those of nested
// tables.
func (c *Cell) AllParagraphs() []*Paragraph {
	return paragraphsUnder(c.node, true)
}
