package docx

import (
	"strconv"

	"github.com/antchfx/xmlquery"
)

// Page geometry constants, in twentieths of a point (twips). The target is
// portrait A4 with one-inch margins.
const (
	PageWidthTwips  = "11906"
	PageHeightTwips = "16838"
	MarginTwips     = "1440"
)

// Section wraps a w:sectPr element together with the owning document, which
// is needed to resolve header and footer references.
type Section struct {
	node *xmlquery.Node
	doc  *Document
}

// Node exposes the underlying element for low-level edits.
func (s *Section) Node() *xmlquery.Node { return s.node }

// Orientation returns the page orientation ("portrait" when unset, as in
// OOXML defaults).
func (s *Section) Orientation() string {
	sz := FirstChildElement(s.node, "w", "pgSz")
	if v := attrValue(sz, "w", "orient"); v != "" {
		return v
	}
	return "portrait"
}

// sectPrChildOrder is the CT_SectPr child sequence. Elements created from
// scratch must land at their schema position or Word rejects the part.
var sectPrChildOrder = []string{
	"headerReference", "footerReference", "footnotePr", "endnotePr",
	"type", "pgSz", "pgMar", "paperSrc", "pgBorders", "lnNumType",
	"pgNumType", "cols", "formProt", "vAlign", "noEndnote", "titlePg",
	"textDirection", "bidi", "rtlGutter", "docGrid", "printerSettings",
	"sectPrChange",
}

func sectPrRank(local string) int {
	for i, name := range sectPrChildOrder {
		if name == local {
			return i
		}
	}
	return len(sectPrChildOrder)
}

// insertSectPrChild places child before the first existing sibling that
// belongs later in the CT_SectPr sequence, appending when none follows.
func insertSectPrChild(sectPr, child *xmlquery.Node) {
	rank := sectPrRank(child.Data)
	for c := sectPr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Prefix == "w" && sectPrRank(c.Data) > rank {
			insertBefore(sectPr, child, c)
			return
		}
	}
	appendChild(sectPr, child)
}

// SetPortraitA4 forces portrait orientation with explicit A4 page size,
// regardless of the prior geometry.
func (s *Section) SetPortraitA4() {
	sz := FirstChildElement(s.node, "w", "pgSz")
	if sz == nil {
		sz = newElement("w", "pgSz")
		insertSectPrChild(s.node, sz)
	}
	SetAttr(sz, "w", "w", PageWidthTwips)
	SetAttr(sz, "w", "h", PageHeightTwips)
	SetAttr(sz, "w", "orient", "portrait")
}

// Margins returns the four page margins (top, right, bottom, left) as raw
// attribute strings; missing values are "".
func (s *Section) Margins() (top, right, bottom, left string) {
	mar := FirstChildElement(s.node, "w", "pgMar")
	return attrValue(mar, "w", "top"), attrValue(mar, "w", "right"),
		attrValue(mar, "w", "bottom"), attrValue(mar, "w", "left")
}

// SetUniformMargins sets all four margins to the given twips value.
func (s *Section) SetUniformMargins(twips string) {
	mar := FirstChildElement(s.node, "w", "pgMar")
	if mar == nil {
		mar = newElement("w", "pgMar")
		insertSectPrChild(s.node, mar)
	}
	for _, side := range []string{"top", "right", "bottom", "left"} {
		SetAttr(mar, "w", side, twips)
	}
}

// RemovePageBorders drops the w:pgBorders configuration. Absence is
// already-satisfied, not an error.
func (s *Section) RemovePageBorders() {
	removeChildren(s.node, "w", "pgBorders")
}

// HasPageBorders reports whether a page border configuration is present.
func (s *Section) HasPageBorders() bool {
	return FirstChildElement(s.node, "w", "pgBorders") != nil
}

// ColumnCount reads the declared column count. An absent w:cols element or
// unparseable w:num attribute counts as a single column.
func (s *Section) ColumnCount() int {
	cols := FirstChildElement(s.node, "w", "cols")
	if cols == nil {
		return 1
	}
	raw := attrValue(cols, "w", "num")
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// NormalizeColumns converts a multi-column section to single-column flow:
// count forced to 1, inter-column spacing zeroed, and all per-column width
// override children discarded. The paragraph sequence is unchanged; only
// the rendering hint changes. Returns the original column count.
func (s *Section) NormalizeColumns() int {
	cols := FirstChildElement(s.node, "w", "cols")
	if cols == nil {
		return 1
	}
	count := s.ColumnCount()
	if count > 1 {
		SetAttr(cols, "w", "num", "1")
		if hasAttr(cols, "w", "space") {
			SetAttr(cols, "w", "space", "0")
		}
		for c := cols.FirstChild; c != nil; {
			next := c.NextSibling
			removeNode(c)
			c = next
		}
	}
	return count
}

// ColumnOverrideCount returns the number of per-column w:col children.
func (s *Section) ColumnOverrideCount() int {
	cols := FirstChildElement(s.node, "w", "cols")
	return len(childElements(cols, "w", "col"))
}

// ColumnSpacing returns the w:space attribute of w:cols ("" when unset).
func (s *Section) ColumnSpacing() string {
	return attrValue(FirstChildElement(s.node, "w", "cols"), "w", "space")
}

// HeaderReferences returns the w:headerReference elements of this section.
func (s *Section) HeaderReferences() []*xmlquery.Node {
	return childElements(s.node, "w", "headerReference")
}

// FooterReferences returns the w:footerReference elements of this section.
func (s *Section) FooterReferences() []*xmlquery.Node {
	return childElements(s.node, "w", "footerReference")
}

// UnlinkHeadersAndFooters sets both header and footer to inherit from the
// previous section by removing every reference element, and deletes each
// paragraph the referenced parts owned. Returns the number of paragraphs
// deleted.
func (s *Section) UnlinkHeadersAndFooters() int {
	removed := 0
	refs := append(s.HeaderReferences(), s.FooterReferences()...)
	for _, ref := range refs {
		relID := attrValue(ref, "r", "id")
		if part := s.doc.headerFooterPart(relID); part != nil {
			for _, p := range DescendantElements(part, "w", "p") {
				removeNode(p)
				removed++
			}
		}
		removeNode(ref)
	}
	return removed
}
