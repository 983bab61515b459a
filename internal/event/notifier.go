package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/foxestech/foxes-search/pkg/kafka"
)

// Reindex completion events, consumed by the content pipeline to verify
// that a triggered republish actually landed.
const (
	TopicSearchReindexed = "foxes.search.reindexed"
	EventSearchReindexed = "search.reindexed"
)

// ReindexedPayload is the data payload of a search.reindexed event.
type ReindexedPayload struct {
	IndexName string `json:"index_name"`
	Records   int    `json:"records"`
}

// Notifier publishes search lifecycle events.
type Notifier struct {
	producer  *kafka.Producer
	indexName string
	logger    *slog.Logger
}

// NewNotifier creates a notifier publishing to the given brokers.
func NewNotifier(brokers []string, indexName string, logger *slog.Logger) *Notifier {
	return &Notifier{
		producer:  kafka.NewProducer(kafka.DefaultProducerConfig(brokers), logger),
		indexName: indexName,
		logger:    logger,
	}
}

// ReindexCompleted announces that a reindex run finished with the given
// record count.
func (n *Notifier) ReindexCompleted(ctx context.Context, records int) error {
	evt, err := kafka.NewEvent(EventSearchReindexed, n.indexName, "search_index", "site-search",
		ReindexedPayload{IndexName: n.indexName, Records: records})
	if err != nil {
		return fmt.Errorf("build reindex event: %w", err)
	}

	if err := n.producer.Publish(ctx, TopicSearchReindexed, evt); err != nil {
		return fmt.Errorf("publish reindex event: %w", err)
	}

	n.logger.Info("reindex event published", "index", n.indexName, "records", records)
	return nil
}

// Close releases the underlying producer.
func (n *Notifier) Close() error {
	return n.producer.Close()
}
