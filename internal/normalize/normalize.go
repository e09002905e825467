// Package normalize canonicalizes free text so that stored vocabulary and
// incoming queries compare consistently.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold decomposes to compatibility form and drops every code point
// outside ASCII, so "Café" becomes "Cafe" and "ﬁ" becomes "fi".
var asciiFold = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
)

// Text returns s folded to ASCII, lower-cased and trimmed.
// Empty input yields an empty string.
func Text(s string) string {
	if s == "" {
		return ""
	}
	folded, _, err := transform.String(asciiFold, s)
	if err != nil {
		// transform only fails on malformed input; fall back to a byte filter
		folded = stripNonASCII(s)
	}
	return strings.TrimSpace(strings.ToLower(folded))
}

// Fields normalizes s and splits it on whitespace.
func Fields(s string) []string {
	return strings.Fields(Text(s))
}

func stripNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}
