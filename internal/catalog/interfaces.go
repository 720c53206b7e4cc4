package catalog

import (
	"context"
	"time"
)

// Tokenizer turns free text into candidate keyword tokens. Implementations
// must be deterministic on identical input; POS accuracy is not a contract.
type Tokenizer interface {
	ExtractCandidateWords(text string) []string
}

// Discoverer lists the services exposed by a portal.
type Discoverer interface {
	Discover(ctx context.Context) ([]*ServiceEntity, error)
}

// Enricher fills in metadata (description, extent, availability) in place.
type Enricher interface {
	Enrich(ctx context.Context, entities []*ServiceEntity)
}

// Fetcher retrieves a raw document by URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}
