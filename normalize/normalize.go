// Package normalize defines the canonical form of a drug name. The
// normalized form is the sole lookup key for every reference table in the
// API: two names refer to the same drug iff their normalized forms are
// equal.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents decomposes characters and drops combining marks, so that
// brand names copied from European package inserts ("Dafalgan forté")
// match their plain-ASCII table entries.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Name lowercases and trims a drug name, folds diacritics, and strips every
// character outside [a-z0-9]. Empty input normalizes to the empty string,
// which matches nothing. Name is idempotent.
func Name(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	if folded, _, err := transform.String(foldAccents, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
