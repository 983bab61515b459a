package domain

// SearchRecord is a single searchable page of the marketing site.
// Records are authored in the content catalog and published verbatim to the
// search index, keyed by ObjectID.
// The validate tags encode the catalog data-quality rules; they are enforced
// by the catalog test suite, not by a runtime guard.
type SearchRecord struct {
	ObjectID    string   `json:"objectID" validate:"required"`
	Title       string   `json:"title" validate:"required,min=5,max=100"`
	Description string   `json:"description" validate:"required,min=10,max=250"`
	Content     string   `json:"content" validate:"required"`
	URL         string   `json:"url" validate:"required,startswith=/"`
	Category    string   `json:"category" validate:"required,oneof=company solutions features pricing resources faqs"`
	Tags        []string `json:"tags,omitempty" validate:"omitempty,min=1,dive,required"`
	Image       string   `json:"image,omitempty"`
}

// Record categories. Every catalog record carries exactly one of these.
const (
	CategoryCompany   = "company"
	CategorySolutions = "solutions"
	CategoryFeatures  = "features"
	CategoryPricing   = "pricing"
	CategoryResources = "resources"
	CategoryFAQs      = "faqs"
)

// ValidCategories returns the full set of record categories.
func ValidCategories() []string {
	return []string{
		CategoryCompany,
		CategorySolutions,
		CategoryFeatures,
		CategoryPricing,
		CategoryResources,
		CategoryFAQs,
	}
}

// IsValidCategory checks whether the given string is a known record category.
func IsValidCategory(category string) bool {
	for _, c := range ValidCategories() {
		if c == category {
			return true
		}
	}
	return false
}

// Category is a filter entry exposed to search clients as a top-level
// category refinement. Value is matched against SearchRecord.Category; the
// empty value means "no category filter".
type Category struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Categories returns the fixed category filter list. The first entry is
// always the "All" pseudo-category. FAQ records are searchable but not
// browsable as a top-level filter, so the list carries five non-empty values.
func Categories() []Category {
	return []Category{
		{Label: "All", Value: ""},
		{Label: "Solutions", Value: CategorySolutions},
		{Label: "Features", Value: CategoryFeatures},
		{Label: "Pricing", Value: CategoryPricing},
		{Label: "Resources", Value: CategoryResources},
		{Label: "Company", Value: CategoryCompany},
	}
}

// SnippetRule declares the word budget for one truncated attribute.
type SnippetRule struct {
	Attribute string `json:"attribute"`
	Words     int    `json:"words"`
}

// Settings describes how the search index ranks, highlights, and snippets
// results. The publisher declares these against the backend at publish time
// and the query side mirrors them at query time.
type Settings struct {
	IndexName            string        `json:"index_name"`
	HitsPerPage          int           `json:"hits_per_page"`
	SearchableAttributes []string      `json:"searchable_attributes"`
	FacetAttributes      []string      `json:"facet_attributes"`
	AttributesToSnippet  []SnippetRule `json:"attributes_to_snippet"`
	SnippetEllipsisText  string        `json:"snippet_ellipsis_text"`
	HighlightPreTag      string        `json:"highlight_pre_tag"`
	HighlightPostTag     string        `json:"highlight_post_tag"`
	QueryLanguages       []string      `json:"query_languages"`
}

// DefaultIndexName is used when no index name override is configured.
const DefaultIndexName = "foxes_technology"

// DefaultSettings returns the index settings for the site search index.
// Ties in relevance are broken by objectID descending so result order is
// deterministic for equally scored records.
func DefaultSettings(indexName string) Settings {
	if indexName == "" {
		indexName = DefaultIndexName
	}
	return Settings{
		IndexName:            indexName,
		HitsPerPage:          10,
		SearchableAttributes: []string{"title", "description", "content", "tags", "category"},
		FacetAttributes:      []string{"category", "tags"},
		AttributesToSnippet: []SnippetRule{
			{Attribute: "content", Words: 20},
			{Attribute: "description", Words: 30},
		},
		SnippetEllipsisText: "...",
		HighlightPreTag:     "<mark>",
		HighlightPostTag:    "</mark>",
		QueryLanguages:      []string{"en", "ar"},
	}
}

// SearchQuery holds all parameters for a search request.
type SearchQuery struct {
	Query    string  `json:"query"`
	Category *string `json:"category,omitempty"`
	Tag      *string `json:"tag,omitempty"`
	Page     int     `json:"page"`
	PerPage  int     `json:"per_page"`
}

// Highlight carries backend-computed highlight markup for one hit. The
// values are HTML fragments with matched terms wrapped in the configured
// highlight tags; the content catalog is editorially controlled, so the
// markup is trusted and passed through to clients as-is.
type Highlight struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Hit is a single search result: the matched record plus the highlight and
// snippet markup computed by the search backend.
type Hit struct {
	SearchRecord
	Highlight Highlight `json:"highlight"`
	Snippet   string    `json:"snippet,omitempty"`
}

// FacetCounts maps facet attribute -> value -> number of matching records
// for the current query.
type FacetCounts map[string]map[string]int

// SearchResult holds the paginated search response.
type SearchResult struct {
	Hits       []Hit       `json:"hits"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PerPage    int         `json:"per_page"`
	TotalPages int         `json:"total_pages"`
	Facets     FacetCounts `json:"facets,omitempty"`
	TookMs     int64       `json:"took_ms"`
}
