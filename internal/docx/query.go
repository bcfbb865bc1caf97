package docx

import (
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Query runs an XPath expression against the main document part and
// returns the matching nodes. Expressions use the literal element prefixes
// of WordprocessingML (w:, wp:, v:).
func (d *Document) Query(expr string) ([]*xmlquery.Node, error) {
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath %q: %w", expr, err)
	}
	return xmlquery.QuerySelectorAll(d.document, e), nil
}

// QueryFirst returns the first node matching the XPath expression, or nil.
func (d *Document) QueryFirst(expr string) (*xmlquery.Node, error) {
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath %q: %w", expr, err)
	}
	return xmlquery.QuerySelector(d.document, e), nil
}
