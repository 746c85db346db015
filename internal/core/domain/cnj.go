package domain

import "strings"

// CNJDigits is the length of a complete unified case number:
// NNNNNNN-DD.AAAA.J.TR.OOOO without punctuation.
const CNJDigits = 20

// CanonicalProcessID strips a source's rendering of a case number
// down to its digits. The digits are the merge and storage key; the
// boolean reports whether they form a complete number. Incomplete
// digits are preserved, not rejected, so malformed source records
// still get a stable key.
func CanonicalProcessID(s string) (string, bool) {
	var b strings.Builder
	b.Grow(CNJDigits)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	id := b.String()
	return id, len(id) == CNJDigits
}

// FormatCaseNumber renders a canonical process ID in the standard
// NNNNNNN-DD.AAAA.J.TR.OOOO display format. Identifiers that do not
// carry the full 20 digits come back unchanged.
func FormatCaseNumber(id string) string {
	if len(id) != CNJDigits {
		return id
	}
	return id[0:7] + "-" + id[7:9] + "." + id[9:13] + "." + id[13:14] + "." + id[14:16] + "." + id[16:20]
}

// SegmentKey extracts the "J.TR" court segment of a canonical process
// ID, e.g. "8.26" for the São Paulo state courts. Returns "" when the
// identifier is too short to carry a segment.
func SegmentKey(id string) string {
	if len(id) != CNJDigits {
		return ""
	}
	return id[13:14] + "." + id[14:16]
}
