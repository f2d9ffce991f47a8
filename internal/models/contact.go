package models

import (
	"fmt"

	"github.com/ustaweb/content-manager/internal/store"
)

// Urgency values submitted by the contact form.
const (
	UrgencyVeryUrgent = "cok-acil"
	UrgencyUrgent     = "acil"
	UrgencyNormal     = "normal"
)

// Priority levels derived from urgency.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Contact message statuses.
const (
	ContactStatusNew  = "new"
	ContactStatusRead = "read"
)

// ContactMessage is a submission from the contact form.
type ContactMessage struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone"`
	ServiceType string `json:"serviceType"`
	Urgency     string `json:"urgency"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// ContactSubject derives the stored subject line from the form selection.
func ContactSubject(serviceType, urgency string) string {
	return fmt.Sprintf("%s - %s", serviceType, urgency)
}

// ContactPriority maps the form's urgency to a triage priority.
func ContactPriority(urgency string) string {
	switch urgency {
	case UrgencyVeryUrgent:
		return PriorityHigh
	case UrgencyUrgent:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Derive fills the computed fields of a message before it is stored.
func (m *ContactMessage) Derive() {
	m.Subject = ContactSubject(m.ServiceType, m.Urgency)
	m.Priority = ContactPriority(m.Urgency)
	if m.Status == "" {
		m.Status = ContactStatusNew
	}
}

func ContactMessageFromDocument(doc store.Document) (ContactMessage, error) {
	var m ContactMessage
	if err := decodeFields(doc.Fields, &m); err != nil {
		return ContactMessage{}, err
	}
	m.ID = doc.ID
	return m, nil
}

func (m ContactMessage) Fields() (map[string]any, error) {
	return encodeFields(m)
}
