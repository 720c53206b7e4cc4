package tokenize

import (
	"strings"

	pluralize "github.com/gertd/go-pluralize"
	"github.com/jdkato/prose/v2"
	"go.uber.org/zap"
)

// NounPhraseTokenizer extracts noun-like tokens using the prose perceptron
// tagger and singularizes them. It is the default Tokenizer implementation.
type NounPhraseTokenizer struct {
	singular *pluralize.Client
	logger   *zap.Logger
}

// NewNounPhraseTokenizer constructs a NounPhraseTokenizer.
func NewNounPhraseTokenizer(logger *zap.Logger) *NounPhraseTokenizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NounPhraseTokenizer{
		singular: pluralize.NewClient(),
		logger:   logger,
	}
}

// ExtractCandidateWords returns the deduplicated singular noun tokens of text,
// in first-appearance order. Empty or whitespace-only text yields nothing.
func (t *NounPhraseTokenizer) ExtractCandidateWords(text string) []string {
	text = normalizeText(text)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		// Tagging failure is not fatal; the entity simply contributes no keywords.
		t.logger.Warn("POS tagging failed", zap.Error(err))
		return nil
	}

	seen := make(map[string]struct{})
	var out []string
	for _, tok := range doc.Tokens() {
		if !strings.HasPrefix(tok.Tag, "NN") {
			continue
		}
		for _, w := range wordPattern.FindAllString(tok.Text, -1) {
			if !admissible(w) {
				continue
			}
			s := t.singularize(w)
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

// singularize applies the noun singularization transform, falling back to the
// original token when the transform yields nothing.
func (t *NounPhraseTokenizer) singularize(w string) string {
	if s := t.singular.Singular(w); s != "" {
		return s
	}
	return w
}
