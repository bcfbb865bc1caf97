package layout

import (
	"log/slog"

	"github.com/antchfx/xmlquery"
	"github.com/ebookpress/docforge/internal/docx"
)

// FurnitureResult reports what the furniture pass removed.
type FurnitureResult struct {
	HeaderFooterParagraphs int `json:"header_footer_paragraphs" yaml:"header_footer_paragraphs"`
	WatermarkArtifacts     int `json:"watermark_artifacts"      yaml:"watermark_artifacts"`
}

// StripFurniture unlinks every section's header and footer (deleting the
// paragraphs they owned) and removes watermark artifacts: the document
// background reference, vector shapes and background fills in the legacy
// VML namespace hanging off section properties, and legacy picture fields
// there. Each artifact type is handled independently so one malformed
// element cannot block the others; absence is already-satisfied, not an
// error. Picture elements in body runs are content, not furniture, and
// are left for the image repositioner.
func StripFurniture(doc *docx.Document) FurnitureResult {
	var res FurnitureResult

	for _, s := range doc.Sections() {
		res.HeaderFooterParagraphs += s.UnlinkHeadersAndFooters()
		res.WatermarkArtifacts += removeSectionArtifacts(s.Node())
	}
	res.WatermarkArtifacts += removeDocumentBackground(doc)

	if res.HeaderFooterParagraphs > 0 || res.WatermarkArtifacts > 0 {
		slog.Debug("stripped page furniture",
			"header_footer_paragraphs", res.HeaderFooterParagraphs,
			"watermark_artifacts", res.WatermarkArtifacts)
	}
	return res
}

// removeSectionArtifacts drops watermark leftovers from one w:sectPr
// subtree: VML shapes and background fills, and legacy w:pict fields.
func removeSectionArtifacts(sectPr *xmlquery.Node) int {
	removed := 0
	removed += detachAll(docx.DescendantElements(sectPr, "v", "shape"))
	removed += detachAll(docx.DescendantElements(sectPr, "v", "shapetype"))
	removed += detachAll(docx.DescendantElements(sectPr, "v", "background"))
	removed += detachAll(docx.DescendantElements(sectPr, "w", "pict"))
	return removed
}

// removeDocumentBackground drops the w:background document background
// reference and any v:background fill directly beneath it.
func removeDocumentBackground(doc *docx.Document) int {
	root := doc.DocumentRoot()
	if root == nil {
		return 0
	}
	removed := 0
	for c := root.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == xmlquery.ElementNode && c.Data == "background" &&
			(c.Prefix == "w" || c.Prefix == "v") {
			xmlquery.RemoveFromTree(c)
			removed++
		}
		c = next
	}
	return removed
}

func detachAll(nodes []*xmlquery.Node) int {
	removed := 0
	for _, n := range nodes {
		if n.Parent != nil {
			xmlquery.RemoveFromTree(n)
			removed++
		}
	}
	return removed
}
