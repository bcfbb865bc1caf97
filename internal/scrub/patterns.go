// Package scrub removes commercial and contact metadata from body text
// while protecting legitimate bibliographic content.
//
// The pattern libraries are heuristic and tuned to a known ebook corpus:
// Bangladeshi mobile numbers, Bengali-labeled contact and price lines, and
// their legacy Bijoy-encoded spellings. Coverage of arbitrary documents is
// explicitly not a goal. Go's regexp engine has no lookbehind, so the
// ISBN-context exclusion the price patterns need is enforced by the
// paragraph-level guard predicates in guards.go, which run before any
// pattern fires.
package scrub

import "regexp"

// contactPatterns match contact-detail spans that are deleted from run
// text in place. Ordering is not significant; all matches from all
// patterns are removed.
var contactPatterns = []*regexp.Regexp{
	// Bangladeshi mobile numbers: plain, hyphenated, country-code
	// prefixed, with optional separators.
	regexp.MustCompile(`(?:\+?88[\s-]?)?01[3-9]\d{2}[\s-]?\d{6}`),
	// Native-digit mobile numbers.
	regexp.MustCompile(`(?:\+?৮৮[\s-]?)?০১[৩-৯][০-৯]{2}[\s-]?[০-৯]{6}`),
	// Labeled contact lines in English.
	regexp.MustCompile(`(?i)\b(?:phone|mobile|mob|cell|tel|hotline|call)\s*(?:no\.?|number)?\s*[:ঃ：]\s*[+\d০-৯][\d০-৯\s,/-]{7,}`),
	// Labeled contact lines in Bengali.
	regexp.MustCompile(`(?:ফোন|মোবাইল|টেলিফোন|যোগাযোগ)\s*(?:নম্বর|নং)?\s*[:ঃ：]\s*[+\d০-৯][\d০-৯\s,/-]{7,}`),
	// URLs.
	regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s<>"']+`),
	// Email addresses.
	regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),
	// Social-media profile links.
	regexp.MustCompile(`(?i)\b(?:facebook|fb|youtube|instagram|twitter)\.com/[^\s<>"']+`),
	regexp.MustCompile(`(?i)\bfacebook\s*(?:page|group)?\s*[:ঃ：]\s*\S+`),
	// Messaging-app contact lines.
	regexp.MustCompile(`(?i)\b(?:whatsapp|imo|viber|telegram)\s*[:ঃ：]?\s*(?:\+?88[\s-]?)?01[3-9][\d\s-]{7,}`),
}

// pricePatterns match price-announcement lines. A paragraph matching any
// of them is removed in its entirety: price lines are standalone
// paragraphs by convention in the corpus, unlike inline contact details.
var pricePatterns = []*regexp.Regexp{
	// English price labels with optional currency.
	regexp.MustCompile(`(?i)\bprice\s*[:ঃ：]?\s*(?:tk\.?|bdt|৳)?\s*[\d০-৯][\d০-৯,.\s]*`),
	// Bengali price labels.
	regexp.MustCompile(`(?:মূল্য|দাম|হাদিয়া)\s*[:ঃ：]`),
	// Legacy Bijoy-encoded price label and Taka suffix.
	regexp.MustCompile(`g~j¨\s*[t:ঃ]?`),
	regexp.MustCompile(`[\d০-৯][\d০-৯,.]*\s*UvKv`),
	// Amounts with a Taka suffix, optionally with the trailing "only".
	regexp.MustCompile(`[\d০-৯][\d০-৯,.]*\s*(?:টাকা|taka|tk\.?)(?:\s*মাত্র)?`),
	// Currency-symbol-prefixed amounts.
	regexp.MustCompile(`৳\s*[\d০-৯]`),
	// Dot-leader-prefixed amounts.
	regexp.MustCompile(`\.{3,}\s*[\d০-৯][\d০-৯,.]*`),
}
