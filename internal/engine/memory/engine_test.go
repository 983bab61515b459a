package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxestech/foxes-search/internal/domain"
)

func testRecords() []domain.SearchRecord {
	return []domain.SearchRecord{
		{
			ObjectID:    "solution-ai",
			Title:       "AI Booking Engine",
			Description: "Machine learning powered booking flows for travel agencies.",
			Content:     "Our AI booking engine learns from traveler behavior to surface the best itineraries and raise conversion across every sales channel.",
			URL:         "/solutions/ai",
			Category:    domain.CategorySolutions,
			Tags:        []string{"ai", "booking"},
		},
		{
			ObjectID:    "pricing",
			Title:       "Plans and Pricing",
			Description: "Simple usage based pricing for teams of every size.",
			Content:     "Start free and scale as you grow. Every plan includes booking tools, reporting, and support.",
			URL:         "/pricing",
			Category:    domain.CategoryPricing,
			Tags:        []string{"pricing"},
		},
		{
			ObjectID:    "faq-refunds",
			Title:       "How do refunds work?",
			Description: "Everything about refund timelines and partial refunds.",
			Content:     "Refunds are issued back to the original payment method within five business days of approval.",
			URL:         "/faqs#refunds",
			Category:    domain.CategoryFAQs,
		},
	}
}

func seededEngine(t *testing.T) *Engine {
	t.Helper()
	eng := New(domain.DefaultSettings(""))
	require.NoError(t, eng.BulkIndex(context.Background(), testRecords()))
	return eng
}

func TestEngine_IndexAndCount(t *testing.T) {
	eng := New(domain.DefaultSettings(""))
	ctx := context.Background()

	count, err := eng.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	rec := testRecords()[0]
	require.NoError(t, eng.Index(ctx, &rec))

	// Indexing the same objectID again is an upsert, not a duplicate.
	rec.Title = "AI Booking Engine v2"
	require.NoError(t, eng.Index(ctx, &rec))

	count, err = eng.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEngine_IndexRequiresObjectID(t *testing.T) {
	eng := New(domain.DefaultSettings(""))
	err := eng.Index(context.Background(), &domain.SearchRecord{Title: "No ID"})
	assert.Error(t, err)
}

func TestEngine_BulkIndexRejectsMissingObjectID(t *testing.T) {
	eng := New(domain.DefaultSettings(""))
	records := testRecords()
	records[1].ObjectID = ""

	err := eng.BulkIndex(context.Background(), records)
	require.Error(t, err)

	// Nothing was written.
	count, err := eng.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestEngine_Delete(t *testing.T) {
	eng := seededEngine(t)
	ctx := context.Background()

	require.NoError(t, eng.Delete(ctx, "pricing"))
	require.NoError(t, eng.Delete(ctx, "pricing")) // absent record is fine

	count, err := eng.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestEngine_SearchRanksTitleMatchesFirst(t *testing.T) {
	eng := seededEngine(t)

	result, err := eng.Search(context.Background(), &domain.SearchQuery{Query: "booking"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)

	// "booking" appears in the title of solution-ai but only in the content
	// of pricing, so the title match ranks first.
	assert.Equal(t, "solution-ai", result.Hits[0].ObjectID)
	assert.Equal(t, 2, result.Total)
}

func TestEngine_SearchNoMatches(t *testing.T) {
	eng := seededEngine(t)

	result, err := eng.Search(context.Background(), &domain.SearchQuery{Query: "blockchain"})
	require.NoError(t, err)
	assert.Empty(t, result.Hits)
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0, result.TotalPages)
}

func TestEngine_SearchCategoryFilter(t *testing.T) {
	eng := seededEngine(t)
	category := domain.CategoryPricing

	result, err := eng.Search(context.Background(), &domain.SearchQuery{Query: "booking", Category: &category})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "pricing", result.Hits[0].ObjectID)
}

func TestEngine_SearchTagFilter(t *testing.T) {
	eng := seededEngine(t)
	tag := "ai"

	result, err := eng.Search(context.Background(), &domain.SearchQuery{Tag: &tag})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "solution-ai", result.Hits[0].ObjectID)
}

func TestEngine_SearchEmptyQueryMatchesAll(t *testing.T) {
	eng := seededEngine(t)

	result, err := eng.Search(context.Background(), &domain.SearchQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.PerPage)
}

func TestEngine_SearchFacets(t *testing.T) {
	eng := seededEngine(t)

	result, err := eng.Search(context.Background(), &domain.SearchQuery{})
	require.NoError(t, err)
	require.NotNil(t, result.Facets)

	assert.Equal(t, 1, result.Facets["category"][domain.CategorySolutions])
	assert.Equal(t, 1, result.Facets["category"][domain.CategoryPricing])
	assert.Equal(t, 1, result.Facets["tags"]["booking"])
}

func TestEngine_SearchHighlighting(t *testing.T) {
	eng := seededEngine(t)

	result, err := eng.Search(context.Background(), &domain.SearchQuery{Query: "refunds"})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)

	hit := result.Hits[0]
	assert.Contains(t, hit.Highlight.Title, "<mark>refunds</mark>")
	assert.Contains(t, hit.Highlight.Description, "<mark>refunds</mark>")
	// The original record stays unmarked.
	assert.NotContains(t, hit.Title, "<mark>")
}

func TestEngine_SearchSnippet(t *testing.T) {
	eng := seededEngine(t)

	result, err := eng.Search(context.Background(), &domain.SearchQuery{Query: "itineraries"})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)

	snippet := result.Hits[0].Snippet
	assert.Contains(t, snippet, "<mark>itineraries</mark>")
	assert.LessOrEqual(t, len(strings.Fields(snippet)), 21)
}

func TestEngine_SearchPagination(t *testing.T) {
	eng := seededEngine(t)

	result, err := eng.Search(context.Background(), &domain.SearchQuery{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, result.Hits, 2)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.TotalPages)

	result, err = eng.Search(context.Background(), &domain.SearchQuery{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, result.Hits, 1)

	// A page past the end is empty, not an error.
	result, err = eng.Search(context.Background(), &domain.SearchQuery{Page: 9, PerPage: 2})
	require.NoError(t, err)
	assert.Empty(t, result.Hits)
}

func TestEngine_Suggest(t *testing.T) {
	eng := seededEngine(t)
	ctx := context.Background()

	titles, err := eng.Suggest(ctx, "pla", 5)
	require.NoError(t, err)
	require.Len(t, titles, 1)
	assert.Equal(t, "Plans and Pricing", titles[0])

	// Prefix matches sort ahead of mid-title matches.
	titles, err = eng.Suggest(ctx, "ai", 5)
	require.NoError(t, err)
	require.NotEmpty(t, titles)
	assert.Equal(t, "AI Booking Engine", titles[0])

	titles, err = eng.Suggest(ctx, "", 5)
	require.NoError(t, err)
	assert.Empty(t, titles)
}

func TestEngine_ApplySettingsNoop(t *testing.T) {
	eng := New(domain.DefaultSettings(""))
	assert.NoError(t, eng.ApplySettings(context.Background()))
}
