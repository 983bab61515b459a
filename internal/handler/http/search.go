package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/foxestech/foxes-search/internal/catalog"
	"github.com/foxestech/foxes-search/internal/config"
	"github.com/foxestech/foxes-search/internal/domain"
	"github.com/foxestech/foxes-search/internal/service"
	apperrors "github.com/foxestech/foxes-search/pkg/errors"
	"github.com/foxestech/foxes-search/pkg/httputil"
	"github.com/foxestech/foxes-search/pkg/logger"
)

// ReindexNotifier announces completed reindex runs to interested consumers.
type ReindexNotifier interface {
	ReindexCompleted(ctx context.Context, records int) error
}

// defaultSuggestLimit caps inline typeahead results.
const defaultSuggestLimit = 6

// SearchHandler serves the site-search HTTP API. When the search backend is
// not configured the handler still registers every route; query endpoints
// answer with setup instructions instead of results.
type SearchHandler struct {
	service    *service.SearchService
	configured bool
	notifier   ReindexNotifier
	logger     *slog.Logger
}

// NewSearchHandler creates a new search handler. configured reflects whether
// backend credentials were present at startup; notifier may be nil when
// event publishing is disabled.
func NewSearchHandler(svc *service.SearchService, configured bool, notifier ReindexNotifier, log *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service:    svc,
		configured: configured,
		notifier:   notifier,
		logger:     log,
	}
}

// idleResponse is returned for an empty query with no filters: the search
// panel's starting state, served without touching the backend.
type idleResponse struct {
	Idle            bool     `json:"idle"`
	PopularSearches []string `json:"popular_searches"`
}

// searchResponse wraps a result, appending the popular-search fallback
// when the query matched nothing.
type searchResponse struct {
	*domain.SearchResult
	PopularSearches []string `json:"popular_searches,omitempty"`
}

// suggestResponse wraps autocomplete suggestions.
type suggestResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

// reindexResponse acknowledges an accepted reindex request.
type reindexResponse struct {
	Status string `json:"status"`
}

// Search handles GET /api/v1/search.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	if !h.configured {
		httputil.WriteError(w, r, apperrors.NotConfigured(config.SetupInstructions()), h.logger)
		return
	}

	query, err := parseSearchQuery(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	// Nothing typed and nothing filtered: serve the idle panel without a
	// backend round trip.
	if query.Query == "" && query.Category == nil && query.Tag == nil {
		httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: idleResponse{
			Idle:            true,
			PopularSearches: h.service.PopularSearches(),
		}})
		return
	}

	result, err := h.service.Search(r.Context(), query)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	resp := searchResponse{SearchResult: result}
	if result.Total == 0 {
		resp.PopularSearches = h.service.PopularSearches()
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: resp})
}

// Suggest handles GET /api/v1/search/suggest.
func (h *SearchHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	if !h.configured {
		httputil.WriteError(w, r, apperrors.NotConfigured(config.SetupInstructions()), h.logger)
		return
	}

	prefix := r.URL.Query().Get("q")
	limit := parseIntParam(r, "limit", defaultSuggestLimit)

	suggestions, err := h.service.Suggest(r.Context(), prefix, limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: suggestResponse{
		Query:       prefix,
		Suggestions: suggestions,
	}})
}

// Popular handles GET /api/v1/search/popular. The list is curated and
// static, so it is served even in the disabled state.
func (h *SearchHandler) Popular(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.PopularSearches()})
}

// Categories handles GET /api/v1/search/categories.
func (h *SearchHandler) Categories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.Categories()})
}

// GetRecord handles GET /api/v1/search/records/{objectID}, serving the catalog
// directly. Works in the disabled state too: the catalog is compiled in.
func (h *SearchHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	objectID := chi.URLParam(r, "objectID")

	record, ok := catalog.Find(objectID)
	if !ok {
		httputil.WriteError(w, r, apperrors.NotFound("record", objectID), h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: record})
}

// Reindex handles POST /api/v1/search/reindex. The republish of the
// compiled-in catalog runs in the background; the request is acknowledged
// immediately.
func (h *SearchHandler) Reindex(w http.ResponseWriter, r *http.Request) {
	if !h.configured {
		httputil.WriteError(w, r, apperrors.NotConfigured(config.SetupInstructions()), h.logger)
		return
	}

	correlationID := logger.CorrelationIDFromContext(r.Context())
	go func() {
		ctx := logger.WithCorrelationID(context.Background(), correlationID)
		count, err := h.service.Reindex(ctx)
		if err != nil {
			h.logger.Error("background reindex failed", "error", err, "correlation_id", correlationID)
			return
		}
		h.logger.Info("background reindex complete", "count", count, "correlation_id", correlationID)

		if h.notifier != nil {
			if err := h.notifier.ReindexCompleted(ctx, count); err != nil {
				h.logger.Error("failed to publish reindex event", "error", err)
			}
		}
	}()

	httputil.WriteJSON(w, http.StatusAccepted, httputil.Response{Data: reindexResponse{Status: "reindex started"}})
}

// parseSearchQuery extracts and validates search parameters from the URL.
func parseSearchQuery(r *http.Request) (*domain.SearchQuery, error) {
	params := r.URL.Query()

	query := &domain.SearchQuery{
		Query:   strings.TrimSpace(params.Get("q")),
		Page:    parseIntParam(r, "page", 1),
		PerPage: parseIntParam(r, "per_page", 0),
	}

	if query.Page < 1 {
		return nil, apperrors.InvalidInput("page must be a positive integer")
	}
	if query.PerPage < 0 {
		return nil, apperrors.InvalidInput("per_page must be a positive integer")
	}

	if category := params.Get("category"); category != "" {
		if !domain.IsValidCategory(category) {
			return nil, apperrors.InvalidInput("unknown category " + strconv.Quote(category))
		}
		query.Category = &category
	}
	if tag := params.Get("tag"); tag != "" {
		query.Tag = &tag
	}

	return query, nil
}

// parseIntParam reads an integer query parameter, falling back to def when
// absent or malformed.
func parseIntParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
