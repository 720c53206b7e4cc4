package keywords

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dannyfullextent/explorer/internal/catalog"
	"github.com/dannyfullextent/explorer/internal/tokenize"
)

// wordTokenizer is a deterministic fake that splits on whitespace and applies
// the shared length/stop-word filters, without POS tagging or singularizing.
type wordTokenizer struct{}

func (wordTokenizer) ExtractCandidateWords(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,;:!?")
		if len(w) < 3 || tokenize.IsStopWord(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func newTestExtractor() *Extractor {
	return NewExtractor(wordTokenizer{}, DefaultMaxShare, nil)
}

func TestExtract_NearUniversalKeywordExcluded(t *testing.T) {
	t.Parallel()

	// Both entities contain "road": count=2 > threshold=1.6, so it is excluded.
	entities := []*catalog.ServiceEntity{
		{Name: "Road Network", Type: "FeatureServer", Description: "roads and highways"},
		{Name: "Road Assets", Type: "FeatureServer", Description: "road maintenance"},
	}
	index := newTestExtractor().Extract(entities)

	require.NotContains(t, index, "road")
	require.Contains(t, index, "network")
	require.Contains(t, index, "maintenance")
	require.Equal(t, []*catalog.ServiceEntity{entities[0]}, index["network"])
}

func TestExtract_SingleEntityAlwaysEmpty(t *testing.T) {
	t.Parallel()

	// entityCount=1, threshold=0.8; any keyword has count=1 > 0.8.
	entities := []*catalog.ServiceEntity{
		{Name: "Water Mains", Type: "MapServer", Description: "pipe network"},
	}
	index := newTestExtractor().Extract(entities)

	require.Empty(t, index)
}

func TestExtract_ThresholdIsInclusive(t *testing.T) {
	t.Parallel()

	// Five entities, maxShare 0.8 -> threshold 4.0. A keyword in exactly four
	// entities sits on the threshold and is included; one in all five is not.
	entities := []*catalog.ServiceEntity{
		{Name: "parcel zoning", Description: ""},
		{Name: "parcel zoning", Description: ""},
		{Name: "parcel zoning", Description: ""},
		{Name: "parcel zoning", Description: ""},
		{Name: "parcel", Description: ""},
	}
	index := newTestExtractor().Extract(entities)

	require.NotContains(t, index, "parcel")
	require.Contains(t, index, "zoning")
	require.Len(t, index["zoning"], 4)
}

func TestExtract_EmptyInput(t *testing.T) {
	t.Parallel()

	index := newTestExtractor().Extract(nil)
	require.NotNil(t, index)
	require.Empty(t, index)
}

func TestExtract_EmptyTextContributesNothing(t *testing.T) {
	t.Parallel()

	entities := []*catalog.ServiceEntity{
		{Name: "", Type: "MapServer", Description: ""},
		{Name: "Flood Zones", Type: "MapServer", Description: "floodplain boundaries"},
		{Name: "Sewer Lines", Type: "MapServer", Description: "gravity mains"},
	}
	index := newTestExtractor().Extract(entities)

	for _, members := range index {
		require.NotContains(t, members, entities[0])
	}
	require.Contains(t, index, "floodplain")
}

func TestExtract_CountsOncePerEntity(t *testing.T) {
	t.Parallel()

	// "bridge" repeats within each entity's text but must count once per
	// entity: count=2 of 3 entities is under threshold 2.4, so it stays.
	entities := []*catalog.ServiceEntity{
		{Name: "Bridge Inventory", Description: "bridge spans and bridge decks"},
		{Name: "Bridge Inspections", Description: "bridge condition"},
		{Name: "Culverts", Description: "drainage crossings"},
	}
	index := newTestExtractor().Extract(entities)

	require.Contains(t, index, "bridge")
	require.Equal(t, []*catalog.ServiceEntity{entities[0], entities[1]}, index["bridge"])
}

func TestExtract_MemberOrderFollowsInputOrder(t *testing.T) {
	t.Parallel()

	entities := []*catalog.ServiceEntity{
		{Name: "Trails South", Description: "hiking"},
		{Name: "Parks", Description: "playgrounds"},
		{Name: "Trails North", Description: "hiking"},
	}
	index := newTestExtractor().Extract(entities)

	require.Equal(t, []*catalog.ServiceEntity{entities[0], entities[2]}, index["trails"])
	require.Equal(t, []*catalog.ServiceEntity{entities[0], entities[2]}, index["hiking"])
}
