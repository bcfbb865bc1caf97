package docx

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

// Line spacing constants shared by the spacing enforcer. 276 twentieths of
// a point with the "auto" rule is 1.15x single spacing.
const (
	LineSpacingValue = "276"
	LineSpacingRule  = "auto"
)

// Paragraph wraps a w:p element.
type Paragraph struct {
	node *xmlquery.Node
}

// Node exposes the underlying element for low-level edits.
func (p *Paragraph) Node() *xmlquery.Node { return p.node }

// Runs returns the paragraph's runs in order, including runs nested in
// hyperlinks and other inline wrappers.
func (p *Paragraph) Runs() []*Run {
	var out []*Run
	for _, n := range DescendantElements(p.node, "w", "r") {
		out = append(out, &Run{node: n})
	}
	return out
}

// Text concatenates the text of every run.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs() {
		b.WriteString(r.Text())
	}
	return b.String()
}

// properties returns the w:pPr child, creating it if absent. The pPr
// element must be the first child of w:p.
func (p *Paragraph) properties() *xmlquery.Node {
	return ensureChild(p.node, "w", "pPr")
}

// Alignment returns the paragraph justification value ("" when unset).
func (p *Paragraph) Alignment() string {
	pPr := FirstChildElement(p.node, "w", "pPr")
	jc := FirstChildElement(pPr, "w", "jc")
	return attrValue(jc, "w", "val")
}

// SetAlignment sets the paragraph justification (w:jc).
func (p *Paragraph) SetAlignment(val string) {
	pPr := p.properties()
	jc := FirstChildElement(pPr, "w", "jc")
	if jc == nil {
		jc = newElement("w", "jc")
		appendChild(pPr, jc)
	}
	SetAttr(jc, "w", "val", val)
}

// LineSpacing returns the w:spacing line and lineRule values.
func (p *Paragraph) LineSpacing() (line, rule string) {
	pPr := FirstChildElement(p.node, "w", "pPr")
	sp := FirstChildElement(pPr, "w", "spacing")
	return attrValue(sp, "w", "line"), attrValue(sp, "w", "lineRule")
}

// SetLineSpacing forces the paragraph line spacing, creating the low-level
// w:spacing element when it is missing so the value survives renderers that
// ignore inherited style attributes.
func (p *Paragraph) SetLineSpacing(line, rule string) {
	pPr := p.properties()
	sp := FirstChildElement(pPr, "w", "spacing")
	if sp == nil {
		sp = newElement("w", "spacing")
		appendChild(pPr, sp)
	}
	SetAttr(sp, "w", "line", line)
	SetAttr(sp, "w", "lineRule", rule)
}

// Remove detaches the paragraph from its owning parent (body, table cell,
// or header/footer part). Sibling paragraphs are untouched.
func (p *Paragraph) Remove() {
	removeNode(p.node)
}

// HasImage reports whether any run embeds a picture, either as a DrawingML
// w:drawing or a legacy VML w:pict.
func (p *Paragraph) HasImage() bool {
	return hasDescendant(p.node, "w", "drawing") || hasDescendant(p.node, "w", "pict")
}

// Run wraps a w:r element.
type Run struct {
	node *xmlquery.Node
}

// Node exposes the underlying element for low-level edits.
func (r *Run) Node() *xmlquery.Node { return r.node }

// Text concatenates the content of every w:t in the run.
func (r *Run) Text() string {
	var b strings.Builder
	for _, t := range childElements(r.node, "w", "t") {
		b.WriteString(innerText(t))
	}
	return b.String()
}

// SetText replaces the run's text with s. The text lands in the first w:t
// (created if needed); any further w:t elements are removed. Non-text
// children such as drawings are retained, and the run itself is kept even
// when s is empty.
func (r *Run) SetText(s string) {
	texts := childElements(r.node, "w", "t")
	if len(texts) == 0 {
		t := newElement("w", "t")
		appendChild(r.node, t)
		texts = []*xmlquery.Node{t}
	}
	for _, extra := range texts[1:] {
		removeNode(extra)
	}
	t := texts[0]
	SetElementText(t, s)
	if s != strings.TrimSpace(s) {
		SetAttr(t, "xml", "space", "preserve")
	}
}

// FontName returns the run's recorded font name. The w:ascii slot is
// authoritative for this corpus; w:hAnsi and w:cs are fallbacks. Runs with
// no explicit font report "".
func (r *Run) FontName() string {
	rPr := FirstChildElement(r.node, "w", "rPr")
	fonts := FirstChildElement(rPr, "w", "rFonts")
	if fonts == nil {
		return ""
	}
	for _, slot := range []string{"ascii", "hAnsi", "cs"} {
		if v := attrValue(fonts, "w", slot); v != "" {
			return v
		}
	}
	return ""
}

// SetFontName rewrites the run's font to name across the ascii, hAnsi and
// cs slots. Only the font-name attribute set is touched; all other run
// formatting is preserved.
func (r *Run) SetFontName(name string) {
	rPr := FirstChildElement(r.node, "w", "rPr")
	if rPr == nil {
		rPr = newElement("w", "rPr")
		prependChild(r.node, rPr)
	}
	fonts := FirstChildElement(rPr, "w", "rFonts")
	if fonts == nil {
		fonts = newElement("w", "rFonts")
		prependChild(rPr, fonts)
	}
	SetAttr(fonts, "w", "ascii", name)
	SetAttr(fonts, "w", "hAnsi", name)
	SetAttr(fonts, "w", "cs", name)
}

// Drawings returns the run's w:drawing elements.
func (r *Run) Drawings() []*xmlquery.Node {
	return childElements(r.node, "w", "drawing")
}

// Picts returns the run's legacy VML w:pict elements.
func (r *Run) Picts() []*xmlquery.Node {
	return childElements(r.node, "w", "pict")
}
