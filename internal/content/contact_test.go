package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ustaweb/content-manager/internal/logger"
	"github.com/ustaweb/content-manager/internal/models"
	"github.com/ustaweb/content-manager/internal/store"
)

func newContactService(fs *fakeStore) *ContactService {
	return NewContactService(fs, nil, logger.NewNopLogger())
}

func TestContactService_Submit(t *testing.T) {
	fs := newFakeStore()
	svc := newContactService(fs)

	msg, err := svc.Submit(context.Background(), models.ContactMessage{
		Name:        "Mehmet Kaya",
		Phone:       "05321234567",
		ServiceType: "kombi-servisi",
		Urgency:     models.UrgencyVeryUrgent,
		Message:     "Kombi su kaçırıyor",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "kombi-servisi - cok-acil", msg.Subject)
	assert.Equal(t, models.PriorityHigh, msg.Priority)
	assert.Equal(t, models.ContactStatusNew, msg.Status)
	assert.NotEmpty(t, msg.CreatedAt)

	stored := fs.docs[models.CollectionContactMessages]
	require.Len(t, stored, 1)
	assert.Equal(t, models.PriorityHigh, stored[0].Fields["priority"])
}

func TestContactService_ListAndMarkRead(t *testing.T) {
	fs := newFakeStore()
	svc := newContactService(fs)

	msg, err := svc.Submit(context.Background(), models.ContactMessage{
		Name:        "Ayşe Yılmaz",
		Phone:       "05421112233",
		ServiceType: "petek-temizligi",
		Urgency:     models.UrgencyNormal,
		Message:     "Fiyat bilgisi",
	})
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(context.Background(), msg.ID))

	messages, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, models.ContactStatusRead, messages[0].Status)
}

func TestContactService_Delete(t *testing.T) {
	fs := newFakeStore()
	svc := newContactService(fs)

	msg, err := svc.Submit(context.Background(), models.ContactMessage{
		Name: "Test", Phone: "0", ServiceType: "x", Urgency: "normal", Message: "m",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), msg.ID))
	assert.Empty(t, fs.docs[models.CollectionContactMessages])

	err = svc.Delete(context.Background(), msg.ID)
	assert.True(t, store.IsNotFound(err))
}
