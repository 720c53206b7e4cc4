package keywords

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dannyfullextent/explorer/internal/catalog"
)

func TestMatchRow_SubstringPolicy(t *testing.T) {
	t.Parallel()

	ent := &catalog.ServiceEntity{Name: "Stormwater Network", Description: "catch basins"}
	index := catalog.KeywordIndex{
		"storm":   nil, // substring of "stormwater" even though extraction never emitted it
		"basin":   nil,
		"culvert": nil,
	}

	tags := MatchRow(ent, index)

	require.Equal(t, []string{"basin", "storm"}, tags)
}

func TestMatchRow_CaseInsensitive(t *testing.T) {
	t.Parallel()

	ent := &catalog.ServiceEntity{Name: "ZONING Districts", Description: ""}
	index := catalog.KeywordIndex{"zoning": nil}

	require.Equal(t, []string{"zoning"}, MatchRow(ent, index))
}

func TestMatchRow_NoKeywords(t *testing.T) {
	t.Parallel()

	ent := &catalog.ServiceEntity{Name: "Parcels", Description: ""}
	require.Empty(t, MatchRow(ent, catalog.KeywordIndex{}))
}
