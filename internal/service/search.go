package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/foxestech/foxes-search/internal/catalog"
	"github.com/foxestech/foxes-search/internal/domain"
	"github.com/foxestech/foxes-search/internal/engine"
	apperrors "github.com/foxestech/foxes-search/pkg/errors"
)

const maxPerPage = 100

// SearchService coordinates search operations between the HTTP and event
// surfaces and the search engine.
type SearchService struct {
	engine engine.SearchEngine
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(eng engine.SearchEngine, logger *slog.Logger) *SearchService {
	return &SearchService{
		engine: eng,
		logger: logger,
	}
}

// Search validates and normalizes the query, then executes it against the
// engine. Page defaults to 1 and per-page to the index's hits-per-page
// setting, capped at maxPerPage.
func (s *SearchService) Search(ctx context.Context, query *domain.SearchQuery) (*domain.SearchResult, error) {
	if query.Category != nil && *query.Category != "" && !domain.IsValidCategory(*query.Category) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown category %q", *query.Category))
	}

	if query.Page < 1 {
		query.Page = 1
	}
	if query.PerPage < 1 {
		query.PerPage = domain.DefaultSettings("").HitsPerPage
	}
	if query.PerPage > maxPerPage {
		query.PerPage = maxPerPage
	}

	result, err := s.engine.Search(ctx, query)
	if err != nil {
		s.logger.Error("search failed", "query", query.Query, "error", err)
		return nil, apperrors.Internal(err)
	}

	s.logger.Debug("search executed",
		"query", query.Query,
		"total", result.Total,
		"page", result.Page,
	)
	return result, nil
}

// Suggest returns autocomplete suggestions for a title prefix.
func (s *SearchService) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	if limit < 1 || limit > maxPerPage {
		limit = domain.DefaultSettings("").HitsPerPage
	}

	suggestions, err := s.engine.Suggest(ctx, prefix, limit)
	if err != nil {
		s.logger.Error("suggest failed", "prefix", prefix, "error", err)
		return nil, apperrors.Internal(err)
	}
	return suggestions, nil
}

// IndexRecord adds or updates a single record in the index.
func (s *SearchService) IndexRecord(ctx context.Context, record *domain.SearchRecord) error {
	if record == nil || record.ObjectID == "" {
		return apperrors.InvalidInput("record objectID is required")
	}

	if err := s.engine.Index(ctx, record); err != nil {
		s.logger.Error("failed to index record", "objectID", record.ObjectID, "error", err)
		return apperrors.Internal(err)
	}

	s.logger.Info("record indexed", "objectID", record.ObjectID)
	return nil
}

// DeleteRecord removes a record from the index.
func (s *SearchService) DeleteRecord(ctx context.Context, objectID string) error {
	if objectID == "" {
		return apperrors.InvalidInput("record objectID is required")
	}

	if err := s.engine.Delete(ctx, objectID); err != nil {
		s.logger.Error("failed to delete record", "objectID", objectID, "error", err)
		return apperrors.Internal(err)
	}

	s.logger.Info("record deleted", "objectID", objectID)
	return nil
}

// Reindex republishes the full compiled-in catalog: index settings first,
// then every record as an upsert. Records already in the index and absent
// from the catalog are left in place.
func (s *SearchService) Reindex(ctx context.Context) (int, error) {
	records := catalog.Records()

	if err := s.engine.ApplySettings(ctx); err != nil {
		s.logger.Error("failed to apply index settings", "error", err)
		return 0, apperrors.Internal(err)
	}

	if err := s.engine.BulkIndex(ctx, records); err != nil {
		s.logger.Error("reindex failed", "count", len(records), "error", err)
		return 0, apperrors.Internal(err)
	}

	s.logger.Info("catalog reindexed", "count", len(records))
	return len(records), nil
}

// PopularSearches returns the curated list of popular search terms shown
// before the visitor has typed anything.
func (s *SearchService) PopularSearches() []string {
	return catalog.PopularSearches()
}

// Categories returns the category filter list shown in the search UI.
func (s *SearchService) Categories() []domain.Category {
	return domain.Categories()
}
