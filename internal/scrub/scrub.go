package scrub

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ebookpress/docforge/internal/docx"
)

// Result reports what the two scrubbing passes did.
type Result struct {
	// SpansRemoved counts contact-detail spans deleted from run text.
	SpansRemoved int `json:"spans_removed" yaml:"spans_removed"`
	RunsEdited   int `json:"runs_edited"   yaml:"runs_edited"`
	// ParagraphsDropped counts price-line paragraphs removed entirely.
	ParagraphsDropped int `json:"paragraphs_dropped" yaml:"paragraphs_dropped"`
	// Guarded counts paragraphs exempted by a guard predicate.
	Guarded int `json:"guarded" yaml:"guarded"`
}

// Apply runs the contact-detail pass and then the price-line pass over
// the main body and every table cell.
func Apply(doc *docx.Document) Result {
	var res Result
	scrubContacts(doc, &res)
	dropPriceLines(doc, &res)
	if res.SpansRemoved > 0 || res.ParagraphsDropped > 0 {
		slog.Info("scrubbed content",
			"contact_spans", res.SpansRemoved,
			"runs_edited", res.RunsEdited,
			"price_paragraphs", res.ParagraphsDropped,
			"guarded", res.Guarded)
	}
	return res
}

// scrubContacts deletes contact-detail spans from run text. Guards are
// evaluated on the whole paragraph first and short-circuit it without any
// partial edit. Runs keep their formatting and survive even when their
// text becomes empty.
func scrubContacts(doc *docx.Document, res *Result) {
	for _, p := range doc.AllParagraphs() {
		text := norm.NFC.String(p.Text())
		if text == "" {
			continue
		}
		if contactGuard(text) {
			res.Guarded++
			continue
		}
		for _, r := range p.Runs() {
			runText := norm.NFC.String(r.Text())
			if runText == "" {
				continue
			}
			cleaned, removed := removeMatches(runText, contactPatterns)
			if removed == 0 {
				continue
			}
			r.SetText(strings.TrimSpace(cleaned))
			res.SpansRemoved += removed
			res.RunsEdited++
		}
	}
}

// dropPriceLines removes whole paragraphs that match a price pattern.
// Price lines are standalone paragraphs in the corpus; detaching one
// leaves its siblings untouched. Paragraphs carrying an ISBN are fully
// exempt.
func dropPriceLines(doc *docx.Document, res *Result) {
	for _, p := range doc.AllParagraphs() {
		text := norm.NFC.String(p.Text())
		if text == "" {
			continue
		}
		if isbnGuard(text) {
			res.Guarded++
			continue
		}
		if anyMatch(pricePatterns, text) {
			p.Remove()
			res.ParagraphsDropped++
		}
	}
}

// removeMatches deletes every span matched by any pattern from text,
// returning the cleaned string and the number of spans removed. The new
// string is built by copying unmatched spans in forward order, which
// sidesteps the offset invalidation that in-place splicing would face.
func removeMatches(text string, patterns []*regexp.Regexp) (string, int) {
	var spans [][]int
	for _, p := range patterns {
		spans = append(spans, p.FindAllStringIndex(text, -1)...)
	}
	if len(spans) == 0 {
		return text, 0
	}

	merged := mergeSpans(spans)
	var b strings.Builder
	last := 0
	for _, s := range merged {
		b.WriteString(text[last:s[0]])
		last = s[1]
	}
	b.WriteString(text[last:])
	return b.String(), len(merged)
}

// mergeSpans sorts byte-offset spans and coalesces overlaps.
func mergeSpans(spans [][]int) [][]int {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i][0] != spans[j][0] {
			return spans[i][0] < spans[j][0]
		}
		return spans[i][1] > spans[j][1]
	})
	merged := [][]int{spans[0]}
	for _, s := range spans[1:] {
		top := merged[len(merged)-1]
		if s[0] <= top[1] {
			if s[1] > top[1] {
				top[1] = s[1]
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
