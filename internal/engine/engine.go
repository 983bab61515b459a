package engine

import (
	"context"

	"github.com/foxestech/foxes-search/internal/domain"
)

// SearchEngine is the narrow contract between the service and its search
// backend. The hosted Elasticsearch adapter is the production
// implementation; the in-memory engine serves tests and credential-free
// local development.
type SearchEngine interface {
	// Index adds or updates a single record, keyed by its ObjectID.
	Index(ctx context.Context, record *domain.SearchRecord) error

	// Delete removes a record from the index by its ObjectID.
	Delete(ctx context.Context, objectID string) error

	// Search executes a query and returns matching hits with highlight
	// markup, snippets, and facet counts.
	Search(ctx context.Context, query *domain.SearchQuery) (*domain.SearchResult, error)

	// BulkIndex upserts multiple records in a single round trip.
	BulkIndex(ctx context.Context, records []domain.SearchRecord) error

	// ApplySettings declares the index's search behavior (searchable
	// attributes, facets, highlighting, snippets, analysis). Idempotent.
	ApplySettings(ctx context.Context) error

	// Count returns the number of indexed objects.
	Count(ctx context.Context) (int, error)

	// Suggest returns up to limit typeahead suggestions for the prefix.
	Suggest(ctx context.Context, prefix string, limit int) ([]string, error)
}
