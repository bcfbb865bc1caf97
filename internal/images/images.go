// Package images centers paragraphs that embed pictures and normalizes
// the anchoring of floating images.
package images

import (
	"log/slog"

	"github.com/antchfx/xmlquery"
	"github.com/ebookpress/docforge/internal/docx"
)

// Result reports what the repositioning pass did.
type Result struct {
	// Paragraphs counts paragraphs centered because they embed a picture.
	Paragraphs int `json:"paragraphs" yaml:"paragraphs"`
	// Images counts pictures processed (inline, floating, and legacy).
	Images int `json:"images" yaml:"images"`
	// Floating counts anchors whose position was reset.
	Floating int `json:"floating" yaml:"floating"`
}

// Reposition traverses every paragraph in the body and table cells. A
// paragraph that embeds a picture is centered. Inline placements need
// nothing further; floating anchors get their horizontal position reset
// relative to the margin with centered alignment. A failure on one image
// must not abort the rest, so each picture is handled independently.
func Reposition(doc *docx.Document) Result {
	var res Result
	for _, p := range doc.AllParagraphs() {
		if !p.HasImage() {
			continue
		}
		p.SetAlignment("center")
		res.Paragraphs++

		for _, r := range p.Runs() {
			for _, d := range r.Drawings() {
				res.Images++
				if normalizeDrawing(d) {
					res.Floating++
				}
			}
			for range r.Picts() {
				// Legacy VML pictures have no anchor geometry to reset;
				// centering the paragraph is the whole treatment.
				res.Images++
			}
		}
	}
	if res.Images > 0 {
		slog.Info("repositioned embedded images",
			"images", res.Images, "paragraphs", res.Paragraphs, "floating", res.Floating)
	}
	return res
}

// normalizeDrawing fixes one w:drawing element. Returns true when the
// drawing was a floating anchor that needed a position reset.
func normalizeDrawing(drawing *xmlquery.Node) bool {
	anchor := docx.FirstChildElement(drawing, "wp", "anchor")
	if anchor == nil {
		// Inline placement flows with the text; paragraph centering is
		// sufficient.
		return false
	}

	posH := docx.FirstChildElement(anchor, "wp", "positionH")
	if posH == nil {
		return false
	}
	docx.SetAttr(posH, "", "relativeFrom", "margin")
	if align := docx.FirstChildElement(posH, "wp", "align"); align != nil {
		docx.SetElementText(align, "center")
	}
	return true
}
