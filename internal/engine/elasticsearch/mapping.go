package elasticsearch

// buildIndexMapping returns the full JSON body for the site-search index:
// English and Arabic analysis chains with stop-word removal, an edge n-gram
// autocomplete field for typeahead, and keyword fields for the category and
// tag facets. objectID is a sortable keyword so ties in relevance break
// deterministically on it.
func buildIndexMapping() string {
	return `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0,
    "analysis": {
      "analyzer": {
        "english_analyzer": {
          "type": "custom",
          "tokenizer": "standard",
          "filter": ["lowercase", "english_stop", "english_stemmer"]
        },
        "arabic_analyzer": {
          "type": "custom",
          "tokenizer": "standard",
          "filter": ["lowercase", "arabic_normalization", "arabic_stop", "arabic_stemmer"]
        },
        "autocomplete_analyzer": {
          "type": "custom",
          "tokenizer": "autocomplete_tokenizer",
          "filter": ["lowercase"]
        },
        "autocomplete_search": {
          "type": "custom",
          "tokenizer": "standard",
          "filter": ["lowercase"]
        }
      },
      "tokenizer": {
        "autocomplete_tokenizer": {
          "type": "edge_ngram",
          "min_gram": 2,
          "max_gram": 20,
          "token_chars": ["letter", "digit"]
        }
      },
      "filter": {
        "english_stop": {
          "type": "stop",
          "stopwords": "_english_"
        },
        "english_stemmer": {
          "type": "stemmer",
          "language": "english"
        },
        "arabic_stop": {
          "type": "stop",
          "stopwords": "_arabic_"
        },
        "arabic_stemmer": {
          "type": "stemmer",
          "language": "arabic"
        }
      }
    }
  },
  "mappings": {
    "properties": {
      "objectID":    { "type": "keyword" },
      "title":       { "type": "text", "analyzer": "english_analyzer", "fields": { "keyword": { "type": "keyword", "ignore_above": 256 }, "ar": { "type": "text", "analyzer": "arabic_analyzer" }, "autocomplete": { "type": "text", "analyzer": "autocomplete_analyzer", "search_analyzer": "autocomplete_search" } } },
      "description": { "type": "text", "analyzer": "english_analyzer", "fields": { "ar": { "type": "text", "analyzer": "arabic_analyzer" } } },
      "content":     { "type": "text", "analyzer": "english_analyzer", "fields": { "ar": { "type": "text", "analyzer": "arabic_analyzer" } } },
      "url":         { "type": "keyword", "index": false },
      "category":    { "type": "keyword" },
      "tags":        { "type": "keyword" },
      "image":       { "type": "keyword", "index": false }
    }
  }
}`
}
