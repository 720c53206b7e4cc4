package keywords

import (
	"sort"
	"strings"

	"github.com/dannyfullextent/explorer/internal/catalog"
)

// MatchRow returns the index keywords that tag an entity's row in the
// rendered table. A row matches a keyword when the lower-cased
// name+" "+description contains it as a substring. This is deliberately a
// different policy than the token-based membership used during extraction,
// mirroring how the table view has always tagged rows.
func MatchRow(entity *catalog.ServiceEntity, index catalog.KeywordIndex) []string {
	text := strings.ToLower(entity.SearchText())
	var tags []string
	for keyword := range index {
		if strings.Contains(text, keyword) {
			tags = append(tags, keyword)
		}
	}
	sort.Strings(tags)
	return tags
}
