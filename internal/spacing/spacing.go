// Package spacing applies the uniform line-spacing rule to every
// paragraph reachable from the document.
package spacing

import (
	"github.com/ebookpress/docforge/internal/docx"
)

// Result reports how many entities the enforcer touched.
type Result struct {
	Paragraphs             int `json:"paragraphs"               yaml:"paragraphs"`
	HeaderFooterParagraphs int `json:"header_footer_paragraphs" yaml:"header_footer_paragraphs"`
	Styles                 int `json:"styles"                   yaml:"styles"`
}

// Enforce sets the target 1.15x line spacing on every named style with a
// paragraph formatting facet, every paragraph in the main body and table
// cells, and every paragraph still owned by header and footer parts. The
// paragraph-level write both updates the semantic attribute and ensures a
// low-level w:spacing directive exists, so the value survives renderers
// that ignore style inheritance. Header and footer parts are normally
// already empty when this runs, but that is not assumed.
func Enforce(doc *docx.Document) Result {
	var res Result

	for _, st := range doc.Styles() {
		if !st.HasParagraphProps() {
			continue
		}
		st.SetLineSpacing(docx.LineSpacingValue, docx.LineSpacingRule)
		res.Styles++
	}

	for _, p := range doc.AllParagraphs() {
		p.SetLineSpacing(docx.LineSpacingValue, docx.LineSpacingRule)
		res.Paragraphs++
	}

	for _, p := range doc.HeaderFooterParagraphs() {
		p.SetLineSpacing(docx.LineSpacingValue, docx.LineSpacingRule)
		res.HeaderFooterParagraphs++
	}

	return res
}
