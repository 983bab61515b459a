package publisher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/foxestech/foxes-search/internal/domain"
	"github.com/foxestech/foxes-search/internal/engine"
	apperrors "github.com/foxestech/foxes-search/pkg/errors"
)

// Report summarizes a completed publish run.
type Report struct {
	IndexName string
	Published int
}

// Publisher pushes the compiled-in content catalog to the search backend as
// a one-shot batch. Runs are idempotent: records are upserted by objectID,
// so re-running after a partial failure converges on the same index state.
type Publisher struct {
	engine   engine.SearchEngine
	settings domain.Settings
	logger   *slog.Logger
}

// New creates a publisher for the given engine and index settings.
func New(eng engine.SearchEngine, settings domain.Settings, logger *slog.Logger) *Publisher {
	return &Publisher{
		engine:   eng,
		settings: settings,
		logger:   logger,
	}
}

// Publish declares the index settings, then upserts every record in one
// batch. A record without an objectID aborts the run before any network
// traffic; the catalog is the source of truth and is never auto-repaired.
func (p *Publisher) Publish(ctx context.Context, records []domain.SearchRecord) (*Report, error) {
	if len(records) == 0 {
		return nil, apperrors.InvalidInput("no records to publish")
	}
	for i := range records {
		if records[i].ObjectID == "" {
			return nil, apperrors.InvalidInput(fmt.Sprintf("record %d has no objectID", i))
		}
	}

	p.logger.Info("publishing catalog",
		"index", p.settings.IndexName,
		"records", len(records),
	)

	if err := p.engine.ApplySettings(ctx); err != nil {
		return nil, apperrors.Wrap(err, "apply index settings")
	}

	if err := p.engine.BulkIndex(ctx, records); err != nil {
		return nil, apperrors.Wrap(err, "publish records")
	}

	p.logger.Info("catalog published",
		"index", p.settings.IndexName,
		"records", len(records),
	)

	return &Report{
		IndexName: p.settings.IndexName,
		Published: len(records),
	}, nil
}
