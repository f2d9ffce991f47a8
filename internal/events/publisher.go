// Package events publishes content lifecycle events to Redis Streams so
// downstream consumers (cache invalidators, notification workers) can react
// to edits.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ustaweb/content-manager/internal/logger"
)

// StreamName is the Redis stream content events are appended to.
const StreamName = "content:events"

// asyncPublishTimeout bounds fire-and-forget publishes.
const asyncPublishTimeout = 5 * time.Second

// Event actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ContentEvent describes one change to a content collection.
type ContentEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Action     string    `json:"action"`
	Collection string    `json:"collection"`
	DocumentID string    `json:"document_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher publishes content events to Redis Streams. A nil Publisher is a
// valid no-op, which keeps event wiring optional.
type Publisher struct {
	client *redis.Client
	log    logger.Logger
}

// NewPublisher creates a publisher. Returns nil if client is nil.
func NewPublisher(client *redis.Client, log logger.Logger) *Publisher {
	if client == nil {
		return nil
	}
	return &Publisher{
		client: client,
		log:    log,
	}
}

// Publish appends an event to the stream.
func (p *Publisher) Publish(ctx context.Context, event ContentEvent) error {
	if p == nil || p.client == nil {
		return nil
	}

	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	result := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamName,
		Values: map[string]any{
			"event": string(payload),
		},
	})

	if publishErr := result.Err(); publishErr != nil {
		if p.log != nil {
			p.log.Error("Failed to publish content event",
				logger.String("action", event.Action),
				logger.String("collection", event.Collection),
				logger.Error(publishErr),
			)
		}
		return fmt.Errorf("publish to stream: %w", publishErr)
	}

	if p.log != nil {
		p.log.Debug("Published content event",
			logger.String("action", event.Action),
			logger.String("collection", event.Collection),
			logger.String("document_id", event.DocumentID),
			logger.String("stream_id", result.Val()),
		)
	}

	return nil
}

// PublishAsync publishes without blocking the caller. Errors are logged,
// not returned: content writes never fail because the event stream is down.
func (p *Publisher) PublishAsync(event ContentEvent) {
	if p == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncPublishTimeout)
		defer cancel()

		if err := p.Publish(ctx, event); err != nil && p.log != nil {
			p.log.Error("Async publish failed",
				logger.String("action", event.Action),
				logger.String("collection", event.Collection),
				logger.Error(err),
			)
		}
	}()
}
