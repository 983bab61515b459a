package elasticsearch

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxestech/foxes-search/internal/domain"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	log := slog.New(slog.NewJSONHandler(io.Discard, nil))
	eng, err := New(Config{URL: "http://localhost:9200"}, domain.DefaultSettings(""), log)
	require.NoError(t, err)
	return eng
}

func TestNew_RequiresURL(t *testing.T) {
	log := slog.New(slog.NewJSONHandler(io.Discard, nil))
	_, err := New(Config{}, domain.DefaultSettings(""), log)
	assert.Error(t, err)
}

func TestBuildIndexMapping_IsValidJSON(t *testing.T) {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(buildIndexMapping()), &body))

	props := body["mappings"].(map[string]interface{})["properties"].(map[string]interface{})
	for _, field := range []string{"objectID", "title", "description", "content", "url", "category", "tags", "image"} {
		assert.Contains(t, props, field)
	}

	// Facet fields must be keywords for terms aggregations.
	assert.Equal(t, "keyword", props["category"].(map[string]interface{})["type"])
	assert.Equal(t, "keyword", props["tags"].(map[string]interface{})["type"])
}

func TestBuildSearchQuery_FullText(t *testing.T) {
	eng := testEngine(t)

	q := eng.buildSearchQuery(&domain.SearchQuery{Query: "booking"}, 2, 10)

	assert.Equal(t, 10, q["from"])
	assert.Equal(t, 10, q["size"])

	boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
	must := boolQuery["must"].([]interface{})
	require.Len(t, must, 1)
	multiMatch := must[0].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "booking", multiMatch["query"])
	assert.Equal(t, "AUTO", multiMatch["fuzziness"])
	assert.Contains(t, multiMatch["fields"], "title^3")

	// Relevance ties break on objectID descending.
	sort := q["sort"].([]interface{})
	require.Len(t, sort, 2)
	assert.Equal(t, "desc", sort[1].(map[string]interface{})["objectID"])
}

func TestBuildSearchQuery_MatchAllWhenEmpty(t *testing.T) {
	eng := testEngine(t)

	q := eng.buildSearchQuery(&domain.SearchQuery{}, 1, 10)

	boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
	must := boolQuery["must"].([]interface{})
	_, ok := must[0].(map[string]interface{})["match_all"]
	assert.True(t, ok)
}

func TestBuildSearchQuery_Filters(t *testing.T) {
	eng := testEngine(t)
	category := domain.CategorySolutions
	tag := "ai"

	q := eng.buildSearchQuery(&domain.SearchQuery{Query: "x", Category: &category, Tag: &tag}, 1, 10)

	boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
	filters := boolQuery["filter"].([]interface{})
	require.Len(t, filters, 2)
}

func TestBuildHighlight_UsesSettings(t *testing.T) {
	eng := testEngine(t)

	h := eng.buildHighlight()

	assert.Equal(t, []string{"<mark>"}, h["pre_tags"])
	assert.Equal(t, []string{"</mark>"}, h["post_tags"])

	fields := h["fields"].(map[string]interface{})
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "content")
	assert.Contains(t, fields, "description")

	content := fields["content"].(map[string]interface{})
	assert.Equal(t, 140, content["fragment_size"])
}

func TestBuildAggregations_CoversFacetAttributes(t *testing.T) {
	eng := testEngine(t)

	aggs := eng.buildAggregations()

	require.Len(t, aggs, 2)
	assert.Contains(t, aggs, "category")
	assert.Contains(t, aggs, "tags")
}

func TestDecodeFacets(t *testing.T) {
	var resp esSearchResponse
	raw := `{
		"aggregations": {
			"category": {"buckets": [{"key": "solutions", "doc_count": 4}, {"key": "pricing", "doc_count": 1}]},
			"tags": {"buckets": [{"key": "ai", "doc_count": 2}]}
		}
	}`
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))

	facets := decodeFacets(resp)
	assert.Equal(t, 4, facets["category"]["solutions"])
	assert.Equal(t, 1, facets["category"]["pricing"])
	assert.Equal(t, 2, facets["tags"]["ai"])

	assert.Nil(t, decodeFacets(esSearchResponse{}))
}
