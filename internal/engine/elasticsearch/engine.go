package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/foxestech/foxes-search/internal/domain"
)

// Config holds connection settings for the hosted search backend.
type Config struct {
	URL    string
	APIKey string
}

// Engine is the Elasticsearch-backed implementation of the SearchEngine
// interface. All relevance, highlighting, snippeting, and facet counting is
// delegated to the backend; the engine only shapes queries and decodes
// responses.
type Engine struct {
	client   *elasticsearch.Client
	settings domain.Settings
	logger   *slog.Logger
}

// esSearchResponse decodes Elasticsearch search responses, including the
// per-hit highlight fragments and the facet aggregations.
type esSearchResponse struct {
	Took int `json:"took"`
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source    domain.SearchRecord `json:"_source"`
			Highlight map[string][]string `json:"highlight"`
		} `json:"hits"`
	} `json:"hits"`
	Aggregations map[string]struct {
		Buckets []struct {
			Key      string `json:"key"`
			DocCount int    `json:"doc_count"`
		} `json:"buckets"`
	} `json:"aggregations"`
}

// esBulkResponse decodes Elasticsearch bulk responses.
type esBulkResponse struct {
	Errors bool `json:"errors"`
	Items  []struct {
		Index struct {
			ID     string `json:"_id"`
			Status int    `json:"status"`
			Error  struct {
				Type   string `json:"type"`
				Reason string `json:"reason"`
			} `json:"error"`
		} `json:"index"`
	} `json:"items"`
}

// esErrorResponse decodes Elasticsearch error responses.
type esErrorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
	Status int `json:"status"`
}

// esCountResponse decodes Elasticsearch count responses.
type esCountResponse struct {
	Count int `json:"count"`
}

// New creates a new Elasticsearch engine connected to the given backend.
// The index itself is created lazily by ApplySettings; a freshly started
// server against an unpublished index simply returns zero hits.
func New(cfg Config, settings domain.Settings, logger *slog.Logger) (*Engine, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("elasticsearch: backend URL is required")
	}

	esCfg := elasticsearch.Config{
		Addresses: []string{cfg.URL},
		APIKey:    cfg.APIKey,
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: failed to create client: %w", err)
	}

	return &Engine{
		client:   client,
		settings: settings,
		logger:   logger,
	}, nil
}

// Ping checks whether the backend is reachable.
func (e *Engine) Ping(ctx context.Context) error {
	res, err := e.client.Ping(e.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping: unexpected status %s", res.Status())
	}
	return nil
}

// ApplySettings declares the index's search behavior: analyzed fields for
// English and Arabic queries, keyword facets for category and tags, and the
// autocomplete field. Creating the index is idempotent; an existing index is
// left untouched so a re-run of the publisher never disturbs live settings.
func (e *Engine) ApplySettings(ctx context.Context) error {
	existsRes, err := e.client.Indices.Exists(
		[]string{e.settings.IndexName},
		e.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	exists := existsRes.StatusCode == 200
	_ = existsRes.Body.Close()

	if exists {
		e.logger.Info("search index already exists", "index", e.settings.IndexName)
		return nil
	}

	res, err := e.client.Indices.Create(
		e.settings.IndexName,
		e.client.Indices.Create.WithBody(strings.NewReader(buildIndexMapping())),
		e.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("create index: %s", decodeError(res.Body, res.Status()))
	}

	e.logger.Info("search index created", "index", e.settings.IndexName)
	return nil
}

// Index adds or updates a single record, keyed by its ObjectID.
func (e *Engine) Index(ctx context.Context, record *domain.SearchRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("elasticsearch index: marshal record: %w", err)
	}

	res, err := e.client.Index(
		e.settings.IndexName,
		bytes.NewReader(data),
		e.client.Index.WithDocumentID(record.ObjectID),
		e.client.Index.WithRefresh("true"),
		e.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("elasticsearch index: %s", decodeError(res.Body, res.Status()))
	}

	e.logger.Debug("indexed record", "objectID", record.ObjectID, "title", record.Title)
	return nil
}

// Delete removes a record from the index by its ObjectID.
// A 404 is not an error; the record might already be gone.
func (e *Engine) Delete(ctx context.Context, objectID string) error {
	res, err := e.client.Delete(
		e.settings.IndexName,
		objectID,
		e.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch delete: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("elasticsearch delete: %s", decodeError(res.Body, res.Status()))
	}

	e.logger.Debug("deleted record", "objectID", objectID)
	return nil
}

// Search executes a query against the backend and returns matching hits
// with highlight markup, snippets, and facet counts.
func (e *Engine) Search(ctx context.Context, query *domain.SearchQuery) (*domain.SearchResult, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	perPage := query.PerPage
	if perPage < 1 {
		perPage = e.settings.HitsPerPage
	}
	if perPage > 100 {
		perPage = 100
	}

	esQuery := e.buildSearchQuery(query, page, perPage)

	data, err := json.Marshal(esQuery)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: marshal query: %w", err)
	}

	res, err := e.client.Search(
		e.client.Search.WithIndex(e.settings.IndexName),
		e.client.Search.WithBody(bytes.NewReader(data)),
		e.client.Search.WithContext(ctx),
		e.client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search: %s", decodeError(res.Body, res.Status()))
	}

	var esResp esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, fmt.Errorf("elasticsearch search: decode response: %w", err)
	}

	hits := make([]domain.Hit, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		hit := domain.Hit{SearchRecord: h.Source}
		if frags := h.Highlight["title"]; len(frags) > 0 {
			hit.Highlight.Title = frags[0]
		}
		if frags := h.Highlight["description"]; len(frags) > 0 {
			hit.Highlight.Description = frags[0]
		}
		if frags := h.Highlight["content"]; len(frags) > 0 {
			hit.Snippet = frags[0] + e.settings.SnippetEllipsisText
		}
		hits = append(hits, hit)
	}

	total := esResp.Hits.Total.Value
	totalPages := total / perPage
	if total%perPage > 0 {
		totalPages++
	}

	return &domain.SearchResult{
		Hits:       hits,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		Facets:     decodeFacets(esResp),
		TookMs:     int64(esResp.Took),
	}, nil
}

// decodeFacets converts terms aggregations into facet counts.
func decodeFacets(resp esSearchResponse) domain.FacetCounts {
	if len(resp.Aggregations) == 0 {
		return nil
	}
	facets := make(domain.FacetCounts, len(resp.Aggregations))
	for attr, agg := range resp.Aggregations {
		values := make(map[string]int, len(agg.Buckets))
		for _, b := range agg.Buckets {
			values[b.Key] = b.DocCount
		}
		facets[attr] = values
	}
	return facets
}

// buildSearchQuery constructs the Elasticsearch query DSL as a map.
func (e *Engine) buildSearchQuery(query *domain.SearchQuery, page, perPage int) map[string]interface{} {
	var mustClause interface{}
	if query.Query != "" {
		mustClause = map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query": query.Query,
				"fields": []string{
					"title^3", "title.ar^3", "title.autocomplete^2",
					"description^2", "description.ar^2",
					"content", "content.ar",
					"tags", "category",
				},
				"type":          "best_fields",
				"fuzziness":     "AUTO",
				"prefix_length": 1,
			},
		}
	} else {
		mustClause = map[string]interface{}{
			"match_all": map[string]interface{}{},
		}
	}

	boolQuery := map[string]interface{}{
		"must": []interface{}{mustClause},
	}
	if filters := e.buildFilters(query); len(filters) > 0 {
		boolQuery["filter"] = filters
	}

	esQuery := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
		"from":             (page - 1) * perPage,
		"size":             perPage,
		"track_total_hits": true,
		"sort": []interface{}{
			map[string]interface{}{"_score": "desc"},
			map[string]interface{}{"objectID": "desc"},
		},
		"highlight":    e.buildHighlight(),
		"aggregations": e.buildAggregations(),
	}

	return esQuery
}

// buildFilters constructs term filters for the category and tag facets.
func (e *Engine) buildFilters(query *domain.SearchQuery) []interface{} {
	var filters []interface{}

	if query.Category != nil && *query.Category != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{
				"category": *query.Category,
			},
		})
	}

	if query.Tag != nil && *query.Tag != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{
				"tags": *query.Tag,
			},
		})
	}

	return filters
}

// buildHighlight constructs the highlight clause from the index settings.
// Snippet word budgets are approximated as character budgets for the
// highlighter's fragment size.
func (e *Engine) buildHighlight() map[string]interface{} {
	fields := map[string]interface{}{
		"title": map[string]interface{}{
			"number_of_fragments": 0,
		},
	}
	for _, rule := range e.settings.AttributesToSnippet {
		fields[rule.Attribute] = map[string]interface{}{
			"fragment_size":       rule.Words * 7,
			"number_of_fragments": 1,
		}
	}

	return map[string]interface{}{
		"pre_tags":  []string{e.settings.HighlightPreTag},
		"post_tags": []string{e.settings.HighlightPostTag},
		"fields":    fields,
	}
}

// buildAggregations constructs terms aggregations for every facet attribute.
func (e *Engine) buildAggregations() map[string]interface{} {
	aggs := make(map[string]interface{}, len(e.settings.FacetAttributes))
	for _, attr := range e.settings.FacetAttributes {
		aggs[attr] = map[string]interface{}{
			"terms": map[string]interface{}{
				"field": attr,
				"size":  50,
			},
		}
	}
	return aggs
}

// BulkIndex upserts multiple records using the bulk NDJSON API.
// A record without an ObjectID aborts the whole call before any network
// traffic; the catalog is never auto-repaired.
func (e *Engine) BulkIndex(ctx context.Context, records []domain.SearchRecord) error {
	if len(records) == 0 {
		return nil
	}

	var buf bytes.Buffer

	for i := range records {
		if records[i].ObjectID == "" {
			return fmt.Errorf("elasticsearch bulk index: record %d has no objectID", i)
		}

		action := map[string]interface{}{
			"index": map[string]interface{}{
				"_index": e.settings.IndexName,
				"_id":    records[i].ObjectID,
			},
		}
		if err := json.NewEncoder(&buf).Encode(action); err != nil {
			return fmt.Errorf("elasticsearch bulk index: encode action: %w", err)
		}
		if err := json.NewEncoder(&buf).Encode(records[i]); err != nil {
			return fmt.Errorf("elasticsearch bulk index: encode record: %w", err)
		}
	}

	res, err := e.client.Bulk(
		bytes.NewReader(buf.Bytes()),
		e.client.Bulk.WithIndex(e.settings.IndexName),
		e.client.Bulk.WithRefresh("true"),
		e.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch bulk index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("elasticsearch bulk index: %s", decodeError(res.Body, res.Status()))
	}

	var bulkResp esBulkResponse
	if err := json.NewDecoder(res.Body).Decode(&bulkResp); err != nil {
		return fmt.Errorf("elasticsearch bulk index: decode response: %w", err)
	}

	if bulkResp.Errors {
		var errMsgs []string
		for _, item := range bulkResp.Items {
			if item.Index.Error.Type != "" {
				errMsgs = append(errMsgs, fmt.Sprintf("id=%s: %s: %s", item.Index.ID, item.Index.Error.Type, item.Index.Error.Reason))
			}
		}
		return fmt.Errorf("elasticsearch bulk index: partial errors: %s", strings.Join(errMsgs, "; "))
	}

	e.logger.Info("bulk indexed records", "count", len(records))
	return nil
}

// Count returns the number of objects in the index.
func (e *Engine) Count(ctx context.Context) (int, error) {
	res, err := e.client.Count(
		e.client.Count.WithIndex(e.settings.IndexName),
		e.client.Count.WithContext(ctx),
	)
	if err != nil {
		return 0, fmt.Errorf("elasticsearch count: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return 0, fmt.Errorf("elasticsearch count: %s", decodeError(res.Body, res.Status()))
	}

	var countResp esCountResponse
	if err := json.NewDecoder(res.Body).Decode(&countResp); err != nil {
		return 0, fmt.Errorf("elasticsearch count: decode response: %w", err)
	}
	return countResp.Count, nil
}

// DeleteIndex removes the entire index. Intended for tests and
// administrative operations only; a 404 is treated as success.
func (e *Engine) DeleteIndex(ctx context.Context) error {
	res, err := e.client.Indices.Delete(
		[]string{e.settings.IndexName},
		e.client.Indices.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch delete index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("elasticsearch delete index: %s", decodeError(res.Body, res.Status()))
	}

	e.logger.Info("search index deleted", "index", e.settings.IndexName)
	return nil
}

// decodeError extracts a readable message from an Elasticsearch error body,
// falling back to the HTTP status.
func decodeError(body io.Reader, status string) string {
	var errResp esErrorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err == nil && errResp.Error.Type != "" {
		return fmt.Sprintf("%s: %s", errResp.Error.Type, errResp.Error.Reason)
	}
	return "unexpected status " + status
}
