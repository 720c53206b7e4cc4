package keywords

import "github.com/dannyfullextent/explorer/internal/catalog"

// Categorizer groups entities by type and attaches the keyword index.
type Categorizer struct {
	extractor *Extractor
}

// NewCategorizer constructs a Categorizer around an Extractor.
func NewCategorizer(extractor *Extractor) *Categorizer {
	return &Categorizer{extractor: extractor}
}

// Categorize makes a single pass over entities in input order, grouping by
// exact type value, then runs the extractor once over the full sequence.
// No entity is dropped; entities sharing a type keep their relative order.
// Empty input yields empty, non-nil maps.
func (c *Categorizer) Categorize(entities []*catalog.ServiceEntity) catalog.CategoryIndex {
	types := make(map[string][]*catalog.ServiceEntity)
	for _, ent := range entities {
		types[ent.Type] = append(types[ent.Type], ent)
	}
	return catalog.CategoryIndex{
		Types:    types,
		Keywords: c.extractor.Extract(entities),
	}
}
