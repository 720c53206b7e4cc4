// Package keywords builds the keyword and category indices for the catalog.
package keywords

import (
	"github.com/dannyfullextent/explorer/internal/catalog"
	"go.uber.org/zap"
)

// DefaultMaxShare is the maximum fraction of entities a keyword may appear in
// before it is excluded as non-discriminative.
const DefaultMaxShare = 0.8

// Extractor computes a KeywordIndex over an ordered entity sequence.
// It is pure: each call owns its own accumulators and nothing escapes until
// the index is returned, so a single Extractor is safe for concurrent use.
type Extractor struct {
	tokenizer catalog.Tokenizer
	maxShare  float64
	logger    *zap.Logger
}

// NewExtractor constructs an Extractor. A maxShare outside (0, 1] falls back
// to DefaultMaxShare.
func NewExtractor(tokenizer catalog.Tokenizer, maxShare float64, logger *zap.Logger) *Extractor {
	if maxShare <= 0 || maxShare > 1 {
		maxShare = DefaultMaxShare
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		tokenizer: tokenizer,
		maxShare:  maxShare,
		logger:    logger,
	}
}

// Extract builds the KeywordIndex for entities in two passes: the first
// collects per-entity keyword sets and global counts, the second assigns
// entities under keywords whose global count stays at or below the share
// threshold. The threshold depends on the total entity count, so the passes
// cannot be fused. Empty input yields an empty index.
func (e *Extractor) Extract(entities []*catalog.ServiceEntity) catalog.KeywordIndex {
	perEntity := make([][]string, len(entities))
	counts := make(map[string]int)

	for i, ent := range entities {
		words := e.tokenizer.ExtractCandidateWords(ent.SearchText())
		perEntity[i] = words
		// One increment per entity regardless of how many phrases repeat the word;
		// the tokenizer already collapses duplicates within a single text.
		for _, w := range words {
			counts[w]++
		}
	}

	threshold := float64(len(entities)) * e.maxShare
	index := make(catalog.KeywordIndex)
	for i, ent := range entities {
		for _, w := range perEntity[i] {
			if float64(counts[w]) <= threshold {
				index[w] = append(index[w], ent)
			}
		}
	}

	e.logger.Debug("keyword index built",
		zap.Int("entities", len(entities)),
		zap.Int("candidates", len(counts)),
		zap.Int("keywords", len(index)),
	)
	return index
}
