// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package phi scans clinical note text for protected health information
// using regex heuristics. False positives are acceptable: a borderline
// note is rejected rather than risked. Production systems would layer an
// NER model on top of these patterns.
package phi

import "regexp"

type pattern struct {
	label string
	re    *regexp.Regexp
}

// patterns covers the identifier classes a clinical note must not carry:
// titled names, numeric and long-form dates, phone numbers, medical record
// numbers, street addresses, emails, SSN, Aadhaar, PAN, and IP addresses.
var patterns = []pattern{
	{"names", regexp.MustCompile(`\b(Dr|Mr|Mrs|Ms)\.?\s+[A-Z][a-z]+(\s+[A-Z][a-z]+)*\b`)},
	{"dates", regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{4}\b`)},
	{"dates", regexp.MustCompile(`\b\d{4}[/-]\d{1,2}[/-]\d{1,2}\b`)},
	{"dates", regexp.MustCompile(`(?i)\b(Jan(uary)?|Feb(ruary)?|Mar(ch)?|Apr(il)?|May|Jun(e)?|Jul(y)?|Aug(ust)?|Sep(tember)?|Oct(ober)?|Nov(ember)?|Dec(ember)?)\s+\d{1,2},?\s+\d{4}\b`)},
	{"phone", regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`)},
	{"phone", regexp.MustCompile(`\b\d{3}[-.\s]\d{3}[-.\s]\d{4}\b`)},
	{"mrn", regexp.MustCompile(`(?i)\bMRN[:#]?\s*\d+`)},
	{"addresses", regexp.MustCompile(`\b\d+\s+[A-Z][a-z]+(\s+[A-Z][a-z]+)*\s+(Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Court|Ct|Way)\b`)},
	{"email", regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)},
	{"ssn", regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{"aadhaar", regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`)},
	{"pan_number", regexp.MustCompile(`\b[A-Z]{5}[0-9]{4}[A-Z]\b`)},
	{"ip_address", regexp.MustCompile(`\b(\d{1,3}\.){3}\d{1,3}\b`)},
}

// Detect reports whether text contains likely PHI and which pattern
// classes matched. Each class appears at most once, in detection order.
func Detect(text string) (bool, []string) {
	var detected []string
	seen := make(map[string]bool)
	for _, p := range patterns {
		if seen[p.label] {
			continue
		}
		if p.re.MatchString(text) {
			seen[p.label] = true
			detected = append(detected, p.label)
		}
	}
	return len(detected) > 0, detected
}
