package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ustaweb/content-manager/internal/store"
)

func TestContactPriority(t *testing.T) {
	tests := []struct {
		urgency string
		want    string
	}{
		{UrgencyVeryUrgent, PriorityHigh},
		{UrgencyUrgent, PriorityMedium},
		{UrgencyNormal, PriorityLow},
		{"", PriorityLow},
		{"unknown", PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.urgency, func(t *testing.T) {
			assert.Equal(t, tt.want, ContactPriority(tt.urgency))
		})
	}
}

func TestContactMessage_Derive(t *testing.T) {
	m := ContactMessage{
		Name:        "Mehmet Kaya",
		Phone:       "05321234567",
		ServiceType: "kombi-servisi",
		Urgency:     UrgencyVeryUrgent,
		Message:     "Kombi su kaçırıyor",
	}
	m.Derive()

	assert.Equal(t, "kombi-servisi - cok-acil", m.Subject)
	assert.Equal(t, PriorityHigh, m.Priority)
	assert.Equal(t, ContactStatusNew, m.Status)
}

func TestContactMessage_DeriveKeepsStatus(t *testing.T) {
	m := ContactMessage{ServiceType: "petek", Urgency: UrgencyNormal, Status: ContactStatusRead}
	m.Derive()
	assert.Equal(t, ContactStatusRead, m.Status)
}

func TestContactMessage_DocumentRoundTrip(t *testing.T) {
	m := ContactMessage{
		Name:        "Ayşe Yılmaz",
		Phone:       "05421112233",
		ServiceType: "dogalgaz-tesisati",
		Urgency:     UrgencyUrgent,
		Message:     "Randevu almak istiyorum",
	}
	m.Derive()

	fields, err := m.Fields()
	require.NoError(t, err)
	assert.NotContains(t, fields, "id")
	assert.Equal(t, "dogalgaz-tesisati - acil", fields["subject"])

	got, err := ContactMessageFromDocument(store.Document{ID: "c1", Fields: fields})
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)
	assert.Equal(t, m.Name, got.Name)
	assert.Equal(t, m.Priority, got.Priority)
}
