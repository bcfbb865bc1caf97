package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ebookpress/docforge/internal/fonts"
	"github.com/ebookpress/docforge/internal/images"
	"github.com/ebookpress/docforge/internal/layout"
	"github.com/ebookpress/docforge/internal/scrub"
	"github.com/ebookpress/docforge/internal/spacing"
)

// Result aggregates the per-stage outcomes for one document. A nil stage
// entry means the stage was disabled for this run.
type Result struct {
	Input        string        `json:"input,omitempty"  yaml:"input,omitempty"`
	Output       string        `json:"output,omitempty" yaml:"output,omitempty"`
	LegacyUIMode bool          `json:"legacy_ui_mode"   yaml:"legacy_ui_mode"`
	Duration     time.Duration `json:"duration_ns"      yaml:"duration_ns"`

	Fonts     *fonts.Result          `json:"fonts,omitempty"     yaml:"fonts,omitempty"`
	Scrub     *scrub.Result          `json:"scrub,omitempty"     yaml:"scrub,omitempty"`
	Geometry  *layout.GeometryResult `json:"geometry,omitempty"  yaml:"geometry,omitempty"`
	Furniture *layout.FurnitureResult `json:"furniture,omitempty" yaml:"furniture,omitempty"`
	Spacing   *spacing.Result        `json:"spacing,omitempty"   yaml:"spacing,omitempty"`
	Images    *images.Result         `json:"images,omitempty"    yaml:"images,omitempty"`
}

// ToJSON serializes a result to pretty JSON.
func ToJSON(res *Result) (string, error) {
	if res == nil {
		return "", errors.New("nil result")
	}
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Summary renders a compact human-readable account of one run.
func (r *Result) Summary() string {
	var b strings.Builder
	if r.Input != "" {
		fmt.Fprintf(&b, "%s -> %s\n", r.Input, r.Output)
	}
	fmt.Fprintf(&b, "  legacy UI mode: %v\n", r.LegacyUIMode)
	if r.Fonts != nil {
		fmt.Fprintf(&b, "  fonts: %d/%d runs retagged\n", r.Fonts.RunsRetagged, r.Fonts.RunsScanned)
	}
	if r.Scrub != nil {
		fmt.Fprintf(&b, "  scrub: %d spans removed, %d price paragraphs dropped, %d guarded\n",
			r.Scrub.SpansRemoved, r.Scrub.ParagraphsDropped, r.Scrub.Guarded)
	}
	if r.Geometry != nil {
		fmt.Fprintf(&b, "  geometry: %d sections normalized, %d multi-column collapsed\n",
			r.Geometry.Sections, r.Geometry.ColumnsCollapsed)
	}
	if r.Furniture != nil {
		fmt.Fprintf(&b, "  furniture: %d header/footer paragraphs, %d watermark artifacts removed\n",
			r.Furniture.HeaderFooterParagraphs, r.Furniture.WatermarkArtifacts)
	}
	if r.Spacing != nil {
		fmt.Fprintf(&b, "  spacing: %d paragraphs, %d styles\n",
			r.Spacing.Paragraphs+r.Spacing.HeaderFooterParagraphs, r.Spacing.Styles)
	}
	if r.Images != nil {
		fmt.Fprintf(&b, "  images: %d repositioned (%d floating)\n", r.Images.Images, r.Images.Floating)
	}
	fmt.Fprintf(&b, "  duration: %v\n", r.Duration.Round(time.Millisecond))
	return b.String()
}
