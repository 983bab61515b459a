package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/foxestech/foxes-search/internal/domain"
)

// Relevance weights per matched attribute. Title matches dominate, mirroring
// the field boosts of the hosted backend.
const (
	scoreTitle       = 30
	scoreDescription = 15
	scoreContent     = 5
	scoreTag         = 10
	scoreCategory    = 3
)

// Engine is an in-memory implementation of the SearchEngine interface used
// for development and tests when no search backend is configured. Matching
// is case-insensitive substring search; highlighting and snippeting are
// computed locally from the index settings.
type Engine struct {
	mu       sync.RWMutex
	records  map[string]domain.SearchRecord
	settings domain.Settings
}

// New creates an empty in-memory engine.
func New(settings domain.Settings) *Engine {
	return &Engine{
		records:  make(map[string]domain.SearchRecord),
		settings: settings,
	}
}

// ApplySettings is a no-op: settings are fixed at construction.
func (e *Engine) ApplySettings(_ context.Context) error {
	return nil
}

// Index adds or updates a single record, keyed by its ObjectID.
func (e *Engine) Index(_ context.Context, record *domain.SearchRecord) error {
	if record.ObjectID == "" {
		return fmt.Errorf("memory index: record has no objectID")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.records[record.ObjectID] = *record
	return nil
}

// Delete removes a record by its ObjectID. Deleting an absent record is
// not an error.
func (e *Engine) Delete(_ context.Context, objectID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.records, objectID)
	return nil
}

// BulkIndex upserts multiple records. A record without an ObjectID aborts
// the whole call before any writes.
func (e *Engine) BulkIndex(_ context.Context, records []domain.SearchRecord) error {
	for i := range records {
		if records[i].ObjectID == "" {
			return fmt.Errorf("memory bulk index: record %d has no objectID", i)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range records {
		e.records[records[i].ObjectID] = records[i]
	}
	return nil
}

// Count returns the number of indexed records.
func (e *Engine) Count(_ context.Context) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.records), nil
}

type scoredRecord struct {
	record domain.SearchRecord
	score  int
}

// Search runs a case-insensitive substring match across the searchable
// attributes, applies category and tag filters, and returns a page of hits
// with highlight markup, snippets, and facet counts.
func (e *Engine) Search(_ context.Context, query *domain.SearchQuery) (*domain.SearchResult, error) {
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

	term := strings.ToLower(strings.TrimSpace(query.Query))

	e.mu.RLock()
	matched := make([]scoredRecord, 0, len(e.records))
	for _, rec := range e.records {
		if !passesFilters(rec, query) {
			continue
		}
		score := matchScore(rec, term)
		if term != "" && score == 0 {
			continue
		}
		matched = append(matched, scoredRecord{record: rec, score: score})
	}
	e.mu.RUnlock()

	// Score descending, then objectID descending for a stable order.
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].score != matched[j].score {
			return matched[i].score > matched[j].score
		}
		return matched[i].record.ObjectID > matched[j].record.ObjectID
	})

	facets := e.countFacets(matched)

	total := len(matched)
	totalPages := total / perPage
	if total%perPage > 0 {
		totalPages++
	}

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	hits := make([]domain.Hit, 0, end-start)
	for _, sr := range matched[start:end] {
		hits = append(hits, e.buildHit(sr.record, term))
	}

	return &domain.SearchResult{
		Hits:       hits,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		Facets:     facets,
		TookMs:     0,
	}, nil
}

// Suggest returns up to limit record titles containing the given prefix,
// preferring titles that start with it.
func (e *Engine) Suggest(_ context.Context, prefix string, limit int) ([]string, error) {
	if prefix == "" {
		return nil, nil
	}
	if limit < 1 {
		limit = e.settings.HitsPerPage
	}
	term := strings.ToLower(strings.TrimSpace(prefix))

	e.mu.RLock()
	type suggestion struct {
		title    string
		hasPfx   bool
		objectID string
	}
	matches := make([]suggestion, 0, len(e.records))
	for _, rec := range e.records {
		lower := strings.ToLower(rec.Title)
		if !strings.Contains(lower, term) {
			continue
		}
		matches = append(matches, suggestion{
			title:    rec.Title,
			hasPfx:   strings.HasPrefix(lower, term),
			objectID: rec.ObjectID,
		})
	}
	e.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].hasPfx != matches[j].hasPfx {
			return matches[i].hasPfx
		}
		return matches[i].objectID > matches[j].objectID
	})

	seen := make(map[string]struct{}, len(matches))
	titles := make([]string, 0, limit)
	for _, m := range matches {
		if _, ok := seen[m.title]; ok {
			continue
		}
		seen[m.title] = struct{}{}
		titles = append(titles, m.title)
		if len(titles) == limit {
			break
		}
	}
	return titles, nil
}

func passesFilters(rec domain.SearchRecord, query *domain.SearchQuery) bool {
	if query.Category != nil && *query.Category != "" && rec.Category != *query.Category {
		return false
	}
	if query.Tag != nil && *query.Tag != "" {
		found := false
		for _, t := range rec.Tags {
			if t == *query.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// matchScore returns the relevance score for a record against a lowercased
// search term. An empty term matches everything with a zero score.
func matchScore(rec domain.SearchRecord, term string) int {
	if term == "" {
		return 0
	}

	score := 0
	if strings.Contains(strings.ToLower(rec.Title), term) {
		score += scoreTitle
	}
	if strings.Contains(strings.ToLower(rec.Description), term) {
		score += scoreDescription
	}
	if strings.Contains(strings.ToLower(rec.Content), term) {
		score += scoreContent
	}
	for _, t := range rec.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			score += scoreTag
			break
		}
	}
	if strings.Contains(strings.ToLower(rec.Category), term) {
		score += scoreCategory
	}
	return score
}

// countFacets tallies category and tag counts over the full matched set,
// not just the returned page.
func (e *Engine) countFacets(matched []scoredRecord) domain.FacetCounts {
	categories := make(map[string]int)
	tags := make(map[string]int)
	for _, sr := range matched {
		categories[sr.record.Category]++
		for _, t := range sr.record.Tags {
			tags[t]++
		}
	}
	facets := domain.FacetCounts{}
	if len(categories) > 0 {
		facets["category"] = categories
	}
	if len(tags) > 0 {
		facets["tags"] = tags
	}
	if len(facets) == 0 {
		return nil
	}
	return facets
}

// buildHit wraps a record with locally computed highlight markup and a
// content snippet honoring the configured word budgets.
func (e *Engine) buildHit(rec domain.SearchRecord, term string) domain.Hit {
	hit := domain.Hit{SearchRecord: rec}
	if term == "" {
		return hit
	}

	if h := e.highlight(rec.Title, term); h != rec.Title {
		hit.Highlight.Title = h
	}
	if h := e.highlight(rec.Description, term); h != rec.Description {
		hit.Highlight.Description = h
	}

	for _, rule := range e.settings.AttributesToSnippet {
		if rule.Attribute != "content" {
			continue
		}
		if snippet := e.snippet(rec.Content, term, rule.Words); snippet != "" {
			hit.Snippet = snippet
		}
	}
	return hit
}

// highlight wraps every case-insensitive occurrence of term in the
// configured highlight tags, preserving the original casing of the text.
func (e *Engine) highlight(text, term string) string {
	if term == "" || text == "" {
		return text
	}

	var b strings.Builder
	lower := strings.ToLower(text)
	for {
		idx := strings.Index(lower, term)
		if idx < 0 {
			b.WriteString(text)
			break
		}
		b.WriteString(text[:idx])
		b.WriteString(e.settings.HighlightPreTag)
		b.WriteString(text[idx : idx+len(term)])
		b.WriteString(e.settings.HighlightPostTag)
		text = text[idx+len(term):]
		lower = lower[idx+len(term):]
	}
	return b.String()
}

// snippet extracts a window of at most budget words around the first
// occurrence of term, highlights the term, and appends the ellipsis marker
// when text was truncated. It returns "" when the term does not occur.
func (e *Engine) snippet(text, term string, budget int) string {
	lower := strings.ToLower(text)
	idx := strings.Index(lower, term)
	if idx < 0 {
		return ""
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	// Locate the word containing the first match.
	matchWord := 0
	offset := 0
	for i, w := range words {
		pos := strings.Index(lower[offset:], strings.ToLower(w))
		if pos < 0 {
			break
		}
		wordStart := offset + pos
		offset = wordStart + len(w)
		if wordStart <= idx && idx < offset {
			matchWord = i
			break
		}
	}

	start := matchWord - budget/4
	if start < 0 {
		start = 0
	}
	end := start + budget
	if end > len(words) {
		end = len(words)
	}

	out := e.highlight(strings.Join(words[start:end], " "), term)
	if start > 0 {
		out = e.settings.SnippetEllipsisText + out
	}
	if end < len(words) {
		out += e.settings.SnippetEllipsisText
	}
	return out
}
