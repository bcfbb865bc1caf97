package scrub

import "regexp"

// Guard predicates: content matching any of these is protected from the
// otherwise-applicable removal rules. The checks run before any pattern
// and short-circuit the whole paragraph, so a guarded paragraph is never
// partially edited.

var isbnPatterns = []*regexp.Regexp{
	// Labeled ISBNs: "ISBN: 978-3-16-148410-0", "ISBN-13 9783161484100".
	regexp.MustCompile(`(?i)\bISBN(?:-1[03])?\b\s*[:ঃ：]?\s*[\d][\dXx\s-]{8,}`),
	// Bare EAN-13 style ISBNs.
	regexp.MustCompile(`\b97[89][\s-]?\d{1,5}[\s-]?\d{1,7}[\s-]?\d{1,7}[\s-]?[\dXx]\b`),
}

var datePatterns = []*regexp.Regexp{
	// Numeric dates in any of the seen delimiter styles.
	regexp.MustCompile(`\b\d{1,2}[./-]\d{1,2}[./-]\d{2,4}\b`),
	regexp.MustCompile(`\b\d{4}[./-]\d{1,2}[./-]\d{1,2}\b`),
	// English month-name dates.
	regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s+\d{4}\b`),
	// Bengali-digit numeric dates.
	regexp.MustCompile(`[০-৯]{1,2}[./-][০-৯]{1,2}[./-][০-৯]{2,4}`),
}

var referencePatterns = []*regexp.Regexp{
	// Structured reference numbers: registration, serial, invoice codes.
	regexp.MustCompile(`(?i)\b(?:ref|reg|reference|serial|invoice|order|roll)\.?\s*(?:no\.?|#|নং)?\s*[:ঃ：]?\s*[A-Za-z0-9][A-Za-z0-9/-]{3,}`),
}

// isbnGuard reports whether text contains an ISBN.
func isbnGuard(text string) bool {
	return anyMatch(isbnPatterns, text)
}

// contactGuard reports whether text is protected from the contact pass:
// ISBNs, dates, and structured reference numbers all exempt it.
func contactGuard(text string) bool {
	return isbnGuard(text) || anyMatch(datePatterns, text) || anyMatch(referencePatterns, text)
}

func anyMatch(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
