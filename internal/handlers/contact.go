package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ustaweb/content-manager/internal/content"
	"github.com/ustaweb/content-manager/internal/logger"
	"github.com/ustaweb/content-manager/internal/models"
	"github.com/ustaweb/content-manager/internal/telemetry"
)

// ContactHandler accepts contact-form submissions.
type ContactHandler struct {
	contacts *content.ContactService
	metrics  *telemetry.Metrics
	logger   logger.Logger
}

func NewContactHandler(contacts *content.ContactService, metrics *telemetry.Metrics, log logger.Logger) *ContactHandler {
	return &ContactHandler{
		contacts: contacts,
		metrics:  metrics,
		logger:   log,
	}
}

// contactRequest is the contact form payload. Subject, priority and status
// are derived server-side, never accepted from the client.
type contactRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone" binding:"required"`
	ServiceType string `json:"serviceType" binding:"required"`
	Urgency     string `json:"urgency" binding:"required"`
	Message     string `json:"message" binding:"required"`
}

// Submit stores a contact message.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Invalid contact submission",
			logger.String("error", err.Error()),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	msg, err := h.contacts.Submit(c.Request.Context(), models.ContactMessage{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		ServiceType: req.ServiceType,
		Urgency:     req.Urgency,
		Message:     req.Message,
	})
	if err != nil {
		h.logger.Error("Failed to store contact message", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit message"})
		return
	}

	h.metrics.ContactSubmissions.Inc()

	c.JSON(http.StatusCreated, gin.H{
		"id":       msg.ID,
		"subject":  msg.Subject,
		"priority": msg.Priority,
		"status":   msg.Status,
	})
}
