package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ustaweb/content-manager/internal/logger"
)

func TestNewPublisher_NilClient(t *testing.T) {
	p := NewPublisher(nil, logger.NewNopLogger())
	assert.Nil(t, p)
}

func TestPublish_NilPublisherIsNoOp(t *testing.T) {
	var p *Publisher

	err := p.Publish(context.Background(), ContentEvent{
		Action:     ActionCreated,
		Collection: "haberler",
		DocumentID: "n1",
	})
	assert.NoError(t, err)
}

func TestPublishAsync_NilPublisherIsNoOp(t *testing.T) {
	var p *Publisher

	assert.NotPanics(t, func() {
		p.PublishAsync(ContentEvent{Action: ActionDeleted, Collection: "haberler"})
	})
}
