package docx

import "github.com/antchfx/xmlquery"

// Style wraps a w:style definition from the style registry.
type Style struct {
	node *xmlquery.Node
}

// ID returns the style identifier (w:styleId).
func (s *Style) ID() string {
	return attrValue(s.node, "w", "styleId")
}

// Name returns the style display name.
func (s *Style) Name() string {
	return attrValue(FirstChildElement(s.node, "w", "name"), "w", "val")
}

// HasParagraphProps reports whether the style carries a paragraph
// formatting facet (w:pPr).
func (s *Style) HasParagraphProps() bool {
	return FirstChildElement(s.node, "w", "pPr") != nil
}

// LineSpacing returns the style's w:spacing line and lineRule values.
func (s *Style) LineSpacing() (line, rule string) {
	pPr := FirstChildElement(s.node, "w", "pPr")
	sp := FirstChildElement(pPr, "w", "spacing")
	return attrValue(sp, "w", "line"), attrValue(sp, "w", "lineRule")
}

// SetLineSpacing forces the style's paragraph line spacing so every
// paragraph referencing the style without an explicit override inherits
// the enforced value.
func (s *Style) SetLineSpacing(line, rule string) {
	pPr := FirstChildElement(s.node, "w", "pPr")
	if pPr == nil {
		return
	}
	sp := FirstChildElement(pPr, "w", "spacing")
	if sp == nil {
		sp = newElement("w", "spacing")
		appendChild(pPr, sp)
	}
	SetAttr(sp, "w", "line", line)
	SetAttr(sp, "w", "lineRule", rule)
}
