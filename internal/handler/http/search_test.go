package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxestech/foxes-search/internal/catalog"
	"github.com/foxestech/foxes-search/internal/domain"
	"github.com/foxestech/foxes-search/internal/engine/memory"
	"github.com/foxestech/foxes-search/internal/service"
	"github.com/foxestech/foxes-search/pkg/health"
	"github.com/foxestech/foxes-search/pkg/httputil"
)

func newTestRouter(t *testing.T, configured bool) http.Handler {
	t.Helper()

	log := slog.New(slog.NewJSONHandler(io.Discard, nil))
	eng := memory.New(domain.DefaultSettings(""))
	require.NoError(t, eng.BulkIndex(context.Background(), catalog.Records()))

	svc := service.NewSearchService(eng, log)
	handler := NewSearchHandler(svc, configured, nil, log)

	return NewRouter(RouterConfig{
		Handler:     handler,
		Health:      health.NewHandler(),
		ServiceName: "site-search-test",
	})
}

func doRequest(t *testing.T, router http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSearch_IdleStateServesPopularSearches(t *testing.T) {
	router := newTestRouter(t, true)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/search")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Idle            bool     `json:"idle"`
			PopularSearches []string `json:"popular_searches"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Idle)
	assert.Equal(t, catalog.PopularSearches(), resp.Data.PopularSearches)

	// Whitespace-only queries are idle too.
	rec = doRequest(t, router, http.MethodGet, "/api/v1/search?q=%20%20")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Idle)
}

func TestSearch_ReturnsHits(t *testing.T) {
	router := newTestRouter(t, true)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/search?q=booking")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data domain.SearchResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Greater(t, resp.Data.Total, 0)
	assert.NotEmpty(t, resp.Data.Hits)
	assert.Equal(t, 1, resp.Data.Page)
}

func TestSearch_CategoryFilterAppliesWithoutQuery(t *testing.T) {
	router := newTestRouter(t, true)

	// A filter alone is a real search, not the idle state.
	rec := doRequest(t, router, http.MethodGet, "/api/v1/search?category=solutions")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data domain.SearchResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Hits)
	for _, hit := range resp.Data.Hits {
		assert.Equal(t, domain.CategorySolutions, hit.Category)
	}
}

func TestSearch_ZeroHitsCarriesPopularFallback(t *testing.T) {
	router := newTestRouter(t, true)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/search?q=blockchain")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Hits            []domain.Hit `json:"hits"`
			Total           int          `json:"total"`
			PopularSearches []string     `json:"popular_searches"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data.Hits)
	assert.Equal(t, 0, resp.Data.Total)
	assert.Equal(t, catalog.PopularSearches(), resp.Data.PopularSearches)
}

func TestSearch_UnknownCategoryRejected(t *testing.T) {
	router := newTestRouter(t, true)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/search?q=x&category=blog")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
}

func TestSearch_NotConfiguredReturns503(t *testing.T) {
	router := newTestRouter(t, false)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/search?q=booking")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SEARCH_NOT_CONFIGURED", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "SEARCH_URL")
	assert.Contains(t, resp.Error.Message, "SEARCH_API_KEY")
}

func TestSuggest(t *testing.T) {
	router := newTestRouter(t, true)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/search/suggest?q=pri&limit=3")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Query       string   `json:"query"`
			Suggestions []string `json:"suggestions"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pri", resp.Data.Query)
	assert.LessOrEqual(t, len(resp.Data.Suggestions), 3)
}

func TestSuggest_NotConfiguredReturns503(t *testing.T) {
	router := newTestRouter(t, false)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/search/suggest?q=pri")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPopular_ServedEvenWhenNotConfigured(t *testing.T) {
	router := newTestRouter(t, false)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/search/popular")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, catalog.PopularSearches(), resp.Data)
}

func TestCategories(t *testing.T) {
	router := newTestRouter(t, true)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/search/categories")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []domain.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data)
	assert.Equal(t, "All", resp.Data[0].Label)
}

func TestGetRecord(t *testing.T) {
	router := newTestRouter(t, true)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/search/records/home")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data domain.SearchRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "home", resp.Data.ObjectID)
	assert.Equal(t, "/", resp.Data.URL)
}

func TestGetRecord_NotFound(t *testing.T) {
	router := newTestRouter(t, true)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/search/records/ghost")
	require.Equal(t, http.StatusNotFound, rec.Code)

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestReindex_Accepted(t *testing.T) {
	router := newTestRouter(t, true)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/search/reindex")
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

type recordingNotifier struct {
	ch chan int
}

func (n *recordingNotifier) ReindexCompleted(_ context.Context, records int) error {
	n.ch <- records
	return nil
}

func TestReindex_NotifiesOnCompletion(t *testing.T) {
	log := slog.New(slog.NewJSONHandler(io.Discard, nil))
	eng := memory.New(domain.DefaultSettings(""))
	svc := service.NewSearchService(eng, log)
	notifier := &recordingNotifier{ch: make(chan int, 1)}
	handler := NewSearchHandler(svc, true, notifier, log)

	router := NewRouter(RouterConfig{
		Handler:     handler,
		Health:      health.NewHandler(),
		ServiceName: "site-search-test",
	})

	rec := doRequest(t, router, http.MethodPost, "/api/v1/search/reindex")
	require.Equal(t, http.StatusAccepted, rec.Code)

	select {
	case records := <-notifier.ch:
		assert.Equal(t, len(catalog.Records()), records)
	case <-time.After(2 * time.Second):
		t.Fatal("reindex completion was not announced")
	}
}

func TestReindex_NotConfiguredReturns503(t *testing.T) {
	router := newTestRouter(t, false)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/search/reindex")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t, true)

	rec := doRequest(t, router, http.MethodGet, "/health/live")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/health/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
}
