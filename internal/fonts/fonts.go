// Package fonts rewrites run fonts based on the per-run script and a
// document-wide encoding mode.
//
// The mode is a single boolean: whether any run in the document records
// the legacy mixed-script UI font (Nirmala UI) or the unified Bengali face
// it is substituted with. Documents authored with the UI font carry
// Unicode Bengali, so Bengali and English runs are unified onto one
// Bengali+Latin face; documents without it are assumed to carry
// legacy-encoded Bengali and keep the legacy face. The flag is computed
// once by a full scan before any mutation and passed by value into the
// substitution pass. Counting the unified face keeps detection stable
// when an already normalized document goes through the pipeline again.
package fonts

import (
	"log/slog"
	"strings"

	"github.com/ebookpress/docforge/internal/docx"
	"github.com/ebookpress/docforge/internal/script"
)

// Target font constants for the corpus.
const (
	// LegacyUIFont is the detection signal, not a target.
	LegacyUIFont = "Nirmala UI"

	UnifiedBengaliFont = "Kalpurush"          // Font A: unified Bengali+Latin face
	ArabicFont         = "Traditional Arabic" // Font B
	LegacyBengaliFont  = "SutonnyMJ"          // Font C: legacy Bengali encoding face
	SerifLatinFont     = "Times New Roman"    // Font D
)

// Result reports what the substitution pass did.
type Result struct {
	LegacyUIMode bool `json:"legacy_ui_mode" yaml:"legacy_ui_mode"`
	RunsScanned  int  `json:"runs_scanned"   yaml:"runs_scanned"`
	RunsRetagged int  `json:"runs_retagged"  yaml:"runs_retagged"`
}

// DetectLegacyUI scans every run in the main body and every table cell and
// reports whether any records the legacy UI font. Runs already carrying
// the unified Bengali face count as evidence too: only legacy-UI mode ever
// writes that face, so a document keeps its classification after the
// substitution pass has replaced the original signal.
func DetectLegacyUI(doc *docx.Document) bool {
	for _, p := range doc.AllParagraphs() {
		for _, r := range p.Runs() {
			name := strings.TrimSpace(r.FontName())
			if strings.EqualFold(name, LegacyUIFont) || strings.EqualFold(name, UnifiedBengaliFont) {
				return true
			}
		}
	}
	return false
}

// Apply rewrites the font of every non-empty run in the body and table
// cells according to the document mode and per-run script. Only the
// font-name attribute set is touched. Runs already carrying the target
// font for their script are left unchanged, which keeps the pass a stable
// fixed point.
func Apply(doc *docx.Document, legacyUIMode bool) Result {
	res := Result{LegacyUIMode: legacyUIMode}
	for _, p := range doc.AllParagraphs() {
		for _, r := range p.Runs() {
			text := r.Text()
			if text == "" {
				continue
			}
			res.RunsScanned++
			target := targetFont(script.Classify(text), legacyUIMode)
			current := r.FontName()
			if sameFont(current, target) {
				continue
			}
			r.SetFontName(target)
			res.RunsRetagged++
			slog.Debug("run refonted", "from", current, "to", target)
		}
	}
	return res
}

// targetFont maps (script, mode) to the font the run should carry.
func targetFont(s script.Script, legacyUIMode bool) string {
	if legacyUIMode {
		if s == script.Arabic {
			return ArabicFont
		}
		return UnifiedBengaliFont
	}
	switch s {
	case script.Bengali:
		return LegacyBengaliFont
	case script.Arabic:
		return ArabicFont
	default:
		return SerifLatinFont
	}
}

// sameFont reports whether a run already carries the target face. The
// unified Bengali face must match exactly, so a variant spelling still
// gets retagged to the canonical name; the other targets tolerate case
// and spacing variants such as "TraditionalArabic".
func sameFont(current, target string) bool {
	if target == UnifiedBengaliFont {
		return current == target
	}
	canon := func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, " ", ""))
	}
	return canon(current) == canon(target)
}
