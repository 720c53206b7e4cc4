package tokenize

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// StemTokenizer is an alternative Tokenizer that stems every word instead of
// POS-tagging and singularizing nouns. Selected via keywords.tokenizer=stem.
type StemTokenizer struct{}

// NewStemTokenizer constructs a StemTokenizer.
func NewStemTokenizer() *StemTokenizer {
	return &StemTokenizer{}
}

// ExtractCandidateWords returns deduplicated snowball stems of text, in
// first-appearance order, under the same length and stop-word filters as the
// noun-phrase tokenizer.
func (t *StemTokenizer) ExtractCandidateWords(text string) []string {
	text = normalizeText(text)
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	seen := make(map[string]struct{})
	var out []string
	for _, field := range fields {
		for _, w := range wordPattern.FindAllString(field, -1) {
			if !admissible(w) {
				continue
			}
			s := english.Stem(w, true)
			if !admissible(s) {
				continue
			}
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
