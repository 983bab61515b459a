// Command publisher pushes the compiled-in content catalog to the search
// backend as a one-shot batch: index settings first, then every record as
// an upsert. It is intended to run from CI on every content change.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/foxestech/foxes-search/internal/catalog"
	"github.com/foxestech/foxes-search/internal/config"
	"github.com/foxestech/foxes-search/internal/domain"
	"github.com/foxestech/foxes-search/internal/engine/elasticsearch"
	"github.com/foxestech/foxes-search/internal/publisher"
	"github.com/foxestech/foxes-search/pkg/logger"
)

const publishTimeout = 2 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "publisher: %v\n", err)
		os.Exit(1)
	}

	// Publishing needs the admin credential, not the search-only key.
	if !cfg.PublisherConfigured() {
		fmt.Fprintln(os.Stderr, "publisher:", config.SetupInstructions())
		os.Exit(1)
	}

	log := logger.New("search-publisher", cfg.LogLevel)
	settings := domain.DefaultSettings(cfg.SearchIndex)

	eng, err := elasticsearch.New(elasticsearch.Config{
		URL:    cfg.SearchURL,
		APIKey: cfg.AdminAPIKey,
	}, settings, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "publisher: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := eng.Ping(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "publisher: backend unreachable: %v\n", err)
		os.Exit(1)
	}

	report, err := publisher.New(eng, settings, log).Publish(ctx, catalog.Records())
	if err != nil {
		fmt.Fprintf(os.Stderr, "publisher: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("published %d records to index %q\n", report.Published, report.IndexName)
}
