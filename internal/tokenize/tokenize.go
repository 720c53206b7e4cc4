// Package tokenize turns free service text into candidate keyword tokens.
package tokenize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// minTokenLen is the shortest token admitted as a keyword candidate.
const minTokenLen = 3

// wordPattern splits phrase text into alphabetic-only word tokens, dropping
// digits and punctuation fragments.
var wordPattern = regexp.MustCompile(`[a-z]+`)

// stopWords are domain terms excluded from keyword candidacy regardless of
// frequency. Both singular and plural forms are listed so the filter applies
// before and after singularization.
var stopWords = map[string]struct{}{
	"service":  {},
	"services": {},
	"layer":    {},
	"layers":   {},
	"data":     {},
	"map":      {},
	"portal":   {},
	"server":   {},
	"rest":     {},
}

// IsStopWord reports whether w is in the fixed stop-word set.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// normalizeText lower-cases and NFKC-normalizes raw text and strips control
// characters, so the downstream taggers see clean input.
func normalizeText(text string) string {
	text = norm.NFKC.String(strings.ToLower(text))
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, text)
}

// admissible applies the shared length and stop-word filters.
func admissible(w string) bool {
	return len(w) >= minTokenLen && !IsStopWord(w)
}
