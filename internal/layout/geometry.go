// Package layout rewrites section-level page geometry and strips page
// furniture: headers, footers, watermarks, borders, and multi-column
// configuration.
package layout

import (
	"log/slog"

	"github.com/ebookpress/docforge/internal/docx"
)

// GeometryResult reports what the geometry pass changed.
type GeometryResult struct {
	Sections         int `json:"sections"          yaml:"sections"`
	ColumnsCollapsed int `json:"columns_collapsed" yaml:"columns_collapsed"`
}

// NormalizeGeometry forces every section to portrait A4 with one-inch
// margins, removes page borders, and collapses multi-column layouts to
// single-column flow. Collapsing columns abandons column-specific text
// flow; the paragraph sequence itself is unchanged.
func NormalizeGeometry(doc *docx.Document) GeometryResult {
	var res GeometryResult
	for _, s := range doc.Sections() {
		res.Sections++
		s.SetPortraitA4()
		s.SetUniformMargins(docx.MarginTwips)
		s.RemovePageBorders()
		if orig := s.NormalizeColumns(); orig > 1 {
			res.ColumnsCollapsed++
			slog.Info("converted multi-column section to single column", "columns", orig)
		}
	}
	return res
}
