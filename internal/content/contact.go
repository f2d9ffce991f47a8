package content

import (
	"context"
	"fmt"

	"github.com/ustaweb/content-manager/internal/events"
	"github.com/ustaweb/content-manager/internal/logger"
	"github.com/ustaweb/content-manager/internal/models"
	"github.com/ustaweb/content-manager/internal/store"
	"github.com/ustaweb/content-manager/internal/timeutil"
)

// ContactService stores contact-form submissions. Unlike the display
// collections it keeps no in-memory snapshot; messages are written through
// and listed on demand by the admin surface.
type ContactService struct {
	store     store.Store
	publisher *events.Publisher
	log       logger.Logger
}

func NewContactService(st store.Store, publisher *events.Publisher, log logger.Logger) *ContactService {
	return &ContactService{
		store:     st,
		publisher: publisher,
		log:       log,
	}
}

// Submit derives the message's subject, priority and status, stamps it, and
// stores it.
func (s *ContactService) Submit(ctx context.Context, msg models.ContactMessage) (models.ContactMessage, error) {
	msg.Derive()
	now := timeutil.NowRFC3339()
	msg.CreatedAt = now
	msg.UpdatedAt = now

	fields, err := msg.Fields()
	if err != nil {
		return models.ContactMessage{}, fmt.Errorf("encode message: %w", err)
	}

	doc, err := s.store.Add(ctx, models.CollectionContactMessages, fields)
	if err != nil {
		return models.ContactMessage{}, err
	}
	msg.ID = doc.ID

	s.log.Info("Contact message received",
		logger.String("id", msg.ID),
		logger.String("service_type", msg.ServiceType),
		logger.String("priority", msg.Priority))

	s.publisher.PublishAsync(events.ContentEvent{
		Action:     events.ActionCreated,
		Collection: models.CollectionContactMessages,
		DocumentID: msg.ID,
	})

	return msg, nil
}

// List returns all messages, newest first when the store honors ordering.
func (s *ContactService) List(ctx context.Context) ([]models.ContactMessage, error) {
	docs, err := s.store.List(ctx, models.CollectionContactMessages, store.ListOptions{})
	if err != nil {
		return nil, err
	}

	messages := make([]models.ContactMessage, 0, len(docs))
	for _, doc := range docs {
		msg, parseErr := models.ContactMessageFromDocument(doc)
		if parseErr != nil {
			return nil, fmt.Errorf("parse message %s: %w", doc.ID, parseErr)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// MarkRead flips a message's status to read.
func (s *ContactService) MarkRead(ctx context.Context, id string) error {
	return s.store.Update(ctx, models.CollectionContactMessages, id, map[string]any{
		"status":    models.ContactStatusRead,
		"updatedAt": timeutil.NowRFC3339(),
	})
}

// Delete removes a message.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, models.CollectionContactMessages, id)
}
