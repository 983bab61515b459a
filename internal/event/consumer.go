package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/foxestech/foxes-search/internal/domain"
	"github.com/foxestech/foxes-search/internal/service"
	"github.com/foxestech/foxes-search/pkg/kafka"
)

// Content event topics and types. Published by the content pipeline whenever
// a catalog page changes outside the regular publisher run.
const (
	TopicContentUpdated = "foxes.content.updated"
	TopicContentDeleted = "foxes.content.deleted"

	EventContentUpdated = "content.updated"
	EventContentDeleted = "content.deleted"

	consumerGroup = "site-search"
)

// ContentUpdatedPayload is the data payload of a content.updated event.
// It carries the full record; the index upserts it as-is.
type ContentUpdatedPayload struct {
	Record domain.SearchRecord `json:"record"`
}

// ContentDeletedPayload is the data payload of a content.deleted event.
type ContentDeletedPayload struct {
	ObjectID string `json:"object_id"`
}

// ContentConsumer keeps the search index in sync with content events.
type ContentConsumer struct {
	service *service.SearchService
	logger  *slog.Logger
	updated *kafka.Consumer
	deleted *kafka.Consumer
}

// NewContentConsumer creates consumers for both content topics.
func NewContentConsumer(brokers []string, svc *service.SearchService, logger *slog.Logger) *ContentConsumer {
	c := &ContentConsumer{
		service: svc,
		logger:  logger,
	}

	c.updated = kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: brokers,
		GroupID: consumerGroup,
		Topic:   TopicContentUpdated,
	}, c.handleUpdated, logger)

	c.deleted = kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: brokers,
		GroupID: consumerGroup,
		Topic:   TopicContentDeleted,
	}, c.handleDeleted, logger)

	return c
}

// Start runs both topic consumers until the context is canceled. Each
// consumer blocks, so they run on their own goroutines; the first error
// is returned after both have stopped.
func (c *ContentConsumer) Start(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() { errCh <- c.updated.Start(ctx) }()
	go func() { errCh <- c.deleted.Start(ctx) }()

	var firstErr error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close stops both consumers.
func (c *ContentConsumer) Close() error {
	errU := c.updated.Close()
	errD := c.deleted.Close()
	if errU != nil {
		return errU
	}
	return errD
}

// handleUpdated upserts the record carried by a content.updated event.
func (c *ContentConsumer) handleUpdated(ctx context.Context, evt *kafka.Event) error {
	if evt.EventType != EventContentUpdated {
		c.logger.Warn("skipping unexpected event type", "event_type", evt.EventType, "event_id", evt.EventID)
		return nil
	}

	var payload ContentUpdatedPayload
	if err := evt.UnmarshalData(&payload); err != nil {
		return fmt.Errorf("decode content.updated payload: %w", err)
	}

	if err := c.service.IndexRecord(ctx, &payload.Record); err != nil {
		return fmt.Errorf("index record %s: %w", payload.Record.ObjectID, err)
	}

	c.logger.Info("content update applied",
		"objectID", payload.Record.ObjectID,
		"event_id", evt.EventID,
	)
	return nil
}

// handleDeleted removes the record named by a content.deleted event.
func (c *ContentConsumer) handleDeleted(ctx context.Context, evt *kafka.Event) error {
	if evt.EventType != EventContentDeleted {
		c.logger.Warn("skipping unexpected event type", "event_type", evt.EventType, "event_id", evt.EventID)
		return nil
	}

	var payload ContentDeletedPayload
	if err := evt.UnmarshalData(&payload); err != nil {
		return fmt.Errorf("decode content.deleted payload: %w", err)
	}

	if err := c.service.DeleteRecord(ctx, payload.ObjectID); err != nil {
		return fmt.Errorf("delete record %s: %w", payload.ObjectID, err)
	}

	c.logger.Info("content deletion applied",
		"objectID", payload.ObjectID,
		"event_id", evt.EventID,
	)
	return nil
}
