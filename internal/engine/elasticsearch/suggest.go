package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Suggest returns up to limit record titles whose title matches the given
// prefix, using the edge n-gram autocomplete field. Titles are returned in
// relevance order and deduplicated.
func (e *Engine) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	if prefix == "" {
		return nil, nil
	}
	if limit < 1 {
		limit = e.settings.HitsPerPage
	}

	esQuery := map[string]interface{}{
		"query": map[string]interface{}{
			"match": map[string]interface{}{
				"title.autocomplete": map[string]interface{}{
					"query":    prefix,
					"operator": "and",
				},
			},
		},
		"size":    limit,
		"_source": []string{"title"},
		"sort": []interface{}{
			map[string]interface{}{"_score": "desc"},
			map[string]interface{}{"objectID": "desc"},
		},
	}

	data, err := json.Marshal(esQuery)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch suggest: marshal query: %w", err)
	}

	res, err := e.client.Search(
		e.client.Search.WithIndex(e.settings.IndexName),
		e.client.Search.WithBody(bytes.NewReader(data)),
		e.client.Search.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch suggest: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch suggest: %s", decodeError(res.Body, res.Status()))
	}

	var esResp esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, fmt.Errorf("elasticsearch suggest: decode response: %w", err)
	}

	seen := make(map[string]struct{}, len(esResp.Hits.Hits))
	suggestions := make([]string, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		title := h.Source.Title
		if title == "" {
			continue
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		suggestions = append(suggestions, title)
	}
	return suggestions, nil
}
