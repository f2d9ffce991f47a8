package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ustaweb/content-manager/internal/content"
	"github.com/ustaweb/content-manager/internal/importer"
	"github.com/ustaweb/content-manager/internal/logger"
	"github.com/ustaweb/content-manager/internal/models"
	"github.com/ustaweb/content-manager/internal/store"
)

// AdminHandler exposes the write surface used by the management UI. It sees
// every document, inactive ones included.
type AdminHandler struct {
	manager *content.Manager
	logger  logger.Logger
}

func NewAdminHandler(manager *content.Manager, log logger.Logger) *AdminHandler {
	return &AdminHandler{
		manager: manager,
		logger:  log,
	}
}

// adminList fetches the full collection, inactive documents included.
func adminList[T any](c *gin.Context, slice *content.Slice[T], log logger.Logger) {
	if err := slice.FetchAll(c.Request.Context(), false); err != nil {
		log.Error("Failed to list collection",
			logger.String("collection", slice.Collection()),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list collection"})
		return
	}

	items := slice.Items()
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// adminCreate binds the request body to the entity type and stores it.
func adminCreate[T any](c *gin.Context, slice *content.Slice[T], log logger.Logger) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	created, err := slice.Add(c.Request.Context(), item)
	if err != nil {
		log.Error("Failed to create document",
			logger.String("collection", slice.Collection()),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create document"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// adminUpdate shallow-merges the request body into the document.
func adminUpdate[T any](c *gin.Context, slice *content.Slice[T], log logger.Logger) {
	id := c.Param("id")

	var changes map[string]any
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	// The id lives outside the document body.
	delete(changes, "id")

	if err := slice.Update(c.Request.Context(), id, changes); err != nil {
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		log.Error("Failed to update document",
			logger.String("collection", slice.Collection()),
			logger.String("id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": "updated"})
}

func adminDelete[T any](c *gin.Context, slice *content.Slice[T], log logger.Logger) {
	id := c.Param("id")

	if err := slice.Remove(c.Request.Context(), id); err != nil {
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		log.Error("Failed to delete document",
			logger.String("collection", slice.Collection()),
			logger.String("id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// Service areas.

func (h *AdminHandler) ListServiceAreas(c *gin.Context) {
	adminList(c, h.manager.ServiceAreas, h.logger)
}

func (h *AdminHandler) CreateServiceArea(c *gin.Context) {
	adminCreate(c, h.manager.ServiceAreas, h.logger)
}

func (h *AdminHandler) UpdateServiceArea(c *gin.Context) {
	adminUpdate(c, h.manager.ServiceAreas, h.logger)
}

func (h *AdminHandler) DeleteServiceArea(c *gin.Context) {
	adminDelete(c, h.manager.ServiceAreas, h.logger)
}

// Gallery categories.

func (h *AdminHandler) ListGalleryCategories(c *gin.Context) {
	adminList(c, h.manager.GalleryCategories, h.logger)
}

func (h *AdminHandler) CreateGalleryCategory(c *gin.Context) {
	adminCreate(c, h.manager.GalleryCategories, h.logger)
}

func (h *AdminHandler) UpdateGalleryCategory(c *gin.Context) {
	adminUpdate(c, h.manager.GalleryCategories, h.logger)
}

func (h *AdminHandler) DeleteGalleryCategory(c *gin.Context) {
	adminDelete(c, h.manager.GalleryCategories, h.logger)
}

// Gallery items.

func (h *AdminHandler) ListGalleryItems(c *gin.Context) {
	adminList(c, h.manager.GalleryItems, h.logger)
}

func (h *AdminHandler) CreateGalleryItem(c *gin.Context) {
	adminCreate(c, h.manager.GalleryItems, h.logger)
}

func (h *AdminHandler) UpdateGalleryItem(c *gin.Context) {
	adminUpdate(c, h.manager.GalleryItems, h.logger)
}

func (h *AdminHandler) DeleteGalleryItem(c *gin.Context) {
	adminDelete(c, h.manager.GalleryItems, h.logger)
}

// ImportGalleryItems bulk-loads gallery items from an uploaded xlsx file.
// Valid rows are stored; invalid rows are reported back per row.
func (h *AdminHandler) ImportGalleryItems(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing upload, expected multipart field 'file'"})
		return
	}
	defer file.Close()

	rows, importErrs, err := importer.ParseWorkbook(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read workbook", "details": err.Error()})
		return
	}

	imported := 0
	for _, row := range rows {
		if _, addErr := h.manager.GalleryItems.Add(c.Request.Context(), importer.ToItem(row)); addErr != nil {
			h.logger.Error("Failed to import gallery item",
				logger.Int("row", row.Row),
				logger.Error(addErr),
			)
			importErrs = append(importErrs, importer.ImportError{Row: row.Row, Error: "store write failed"})
			continue
		}
		imported++
	}

	h.logger.Info("Gallery import finished",
		logger.Int("imported", imported),
		logger.Int("failed", len(importErrs)),
	)

	c.JSON(http.StatusOK, gin.H{
		"imported": imported,
		"errors":   importErrs,
	})
}

// News.

func (h *AdminHandler) ListNews(c *gin.Context) {
	adminList(c, h.manager.News, h.logger)
}

func (h *AdminHandler) CreateNewsArticle(c *gin.Context) {
	adminCreate(c, h.manager.News, h.logger)
}

func (h *AdminHandler) UpdateNewsArticle(c *gin.Context) {
	adminUpdate(c, h.manager.News, h.logger)
}

func (h *AdminHandler) DeleteNewsArticle(c *gin.Context) {
	adminDelete(c, h.manager.News, h.logger)
}

// Contact messages.

func (h *AdminHandler) ListContactMessages(c *gin.Context) {
	messages, err := h.manager.Contacts.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list contact messages", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"count":    len(messages),
	})
}

func (h *AdminHandler) MarkContactMessageRead(c *gin.Context) {
	id := c.Param("id")

	if err := h.manager.Contacts.MarkRead(c.Request.Context(), id); err != nil {
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		h.logger.Error("Failed to mark message read",
			logger.String("id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": models.ContactStatusRead})
}

func (h *AdminHandler) DeleteContactMessage(c *gin.Context) {
	id := c.Param("id")

	if err := h.manager.Contacts.Delete(c.Request.Context(), id); err != nil {
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		h.logger.Error("Failed to delete message",
			logger.String("id", id),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
