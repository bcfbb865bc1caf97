// Package script classifies run text into one of the three scripts the
// normalization pipeline handles: Bengali, Arabic, and English.
//
// Bengali text appears in two encodings in the corpus: proper Unicode
// (U+0980 block), and a legacy 8-bit glyph mapping (Bijoy-style) where
// Latin-range byte values render as Bengali glyphs through fonts such as
// SutonnyMJ. The legacy detection is corpus-specific: any
// document that uses the pinned character set for actual Latin text will
// be misclassified. Classification never fails; everything unrecognized
// falls back to English.
package script

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Script identifies the writing system of a text run.
type Script int

const (
	English Script = iota
	Bengali
	Arabic
)

// String returns the lowercase script name.
func (s Script) String() string {
	switch s {
	case Bengali:
		return "bengali"
	case Arabic:
		return "arabic"
	default:
		return "english"
	}
}

// legacyMarkers are characters that essentially only occur in Bijoy-encoded
// Bengali text. Any single occurrence classifies the run as Bengali before
// the percentage threshold or any Unicode check is consulted: legacy
// encodings are byte-level indistinguishable from Latin prose, so the
// markers take priority. The set is pinned; tests assert it verbatim.
const legacyMarkers = "†‡ˆŠÔÕÖ×Ø"

// legacyGlyphs is the distinctive (non-ASCII) portion of the Bijoy glyph
// mapping. The fraction of run characters drawn from this set feeds the
// 10% threshold. Pinned like the markers.
const legacyGlyphs = legacyMarkers +
	"ŒŽ‘’“”•–—˜™š›œžŸ¡¢£¤¥¦§¨©ª«¬®¯°±²³´µ¶·¸¹º»¼½¾¿" +
	"ÀÁÂÃÄÅÆÇÈÉÊËÌÍÎÏÐÑÒÓÙÚÛÜÝÞßàáâãäåæçèéêëìíîïðñòóôõö÷øùúûüýþÿ~`"

// legacyThreshold is the fraction of legacy glyphs above which a run is
// treated as legacy-encoded Bengali.
const legacyThreshold = 0.10

// asciiProse matches strings made only of letters, digits, and basic
// punctuation: the restrictive "plain English" shape.
var asciiProse = regexp.MustCompile(`^[A-Za-z0-9\s.,;:'"!?()\[\]{}<>&@#$%^*/\\+=_|-]+$`)

// Classify determines the script of one run's text. The check order is a
// deliberate tie-break chain; see the package comment.
func Classify(text string) Script {
	if strings.TrimSpace(text) == "" {
		return English
	}
	text = norm.NFC.String(text)

	legacyCount, total := countLegacy(text)
	if strings.ContainsAny(text, legacyMarkers) {
		return Bengali
	}
	if total > 0 && float64(legacyCount)/float64(total) > legacyThreshold {
		return Bengali
	}

	if containsBengaliUnicode(text) {
		return Bengali
	}
	if containsArabicUnicode(text) {
		return Arabic
	}
	if asciiProse.MatchString(text) {
		return English
	}
	if legacyCount > 0 {
		return Bengali
	}
	return English
}

// countLegacy returns the number of legacy-glyph characters and the total
// number of non-space characters in text.
func countLegacy(text string) (legacy, total int) {
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if strings.ContainsRune(legacyGlyphs, r) {
			legacy++
		}
	}
	return legacy, total
}

// containsBengaliUnicode reports whether text contains a code point in the
// Bengali block or the zero-width joiners Bengali shaping relies on.
func containsBengaliUnicode(text string) bool {
	for _, r := range text {
		if r >= 0x0980 && r <= 0x09FF {
			return true
		}
		if r == 0x200C || r == 0x200D { // ZWNJ, ZWJ
			return true
		}
	}
	return false
}

// containsArabicUnicode reports whether text contains a code point in the
// Arabic, Arabic Supplement, or Arabic Presentation Forms blocks.
func containsArabicUnicode(text string) bool {
	for _, r := range text {
		switch {
		case r >= 0x0600 && r <= 0x06FF: // Arabic
			return true
		case r >= 0x0750 && r <= 0x077F: // Arabic Supplement
			return true
		case r >= 0xFB50 && r <= 0xFDFF: // Presentation Forms-A
			return true
		case r >= 0xFE70 && r <= 0xFEFF: // Presentation Forms-B
			return true
		}
	}
	return false
}
