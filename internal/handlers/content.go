// Package handlers contains the gin handlers for the public site API and
// the admin surface.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ustaweb/content-manager/internal/content"
	"github.com/ustaweb/content-manager/internal/listing"
	"github.com/ustaweb/content-manager/internal/logger"
	"github.com/ustaweb/content-manager/internal/models"
	"github.com/ustaweb/content-manager/internal/telemetry"
)

// Page sizes the site renders with.
const (
	GalleryPageSize      = 12
	NewsPageSize         = 6
	DefaultFeaturedLimit = 6
)

// ContentHandler serves the public read endpoints.
type ContentHandler struct {
	manager *content.Manager
	metrics *telemetry.Metrics
	logger  logger.Logger
}

func NewContentHandler(manager *content.Manager, metrics *telemetry.Metrics, log logger.Logger) *ContentHandler {
	return &ContentHandler{
		manager: manager,
		metrics: metrics,
		logger:  log,
	}
}

// ListServiceAreas returns the active service areas in display order.
func (h *ContentHandler) ListServiceAreas(c *gin.Context) {
	slice := h.manager.ServiceAreas
	h.metrics.ContentFetchesTotal.WithLabelValues(slice.Collection()).Inc()

	if err := slice.FetchAll(c.Request.Context(), true); err != nil {
		h.fetchFailed(c, slice.Collection(), err)
		return
	}

	areas := slice.Items()
	c.JSON(http.StatusOK, gin.H{
		"serviceAreas": areas,
		"count":        len(areas),
	})
}

// GetServiceAreaBySlug returns one service area addressed by its URL slug.
// The slug is recomputed from the title on every lookup, so it always tracks
// the current title.
func (h *ContentHandler) GetServiceAreaBySlug(c *gin.Context) {
	slug := c.Param("slug")
	slice := h.manager.ServiceAreas

	if err := slice.FetchAll(c.Request.Context(), true); err != nil {
		h.fetchFailed(c, slice.Collection(), err)
		return
	}

	for _, area := range slice.Items() {
		if models.Slugify(area.Title) == slug {
			c.JSON(http.StatusOK, area)
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Service area not found"})
}

// ListGalleryCategories returns the active gallery categories.
func (h *ContentHandler) ListGalleryCategories(c *gin.Context) {
	slice := h.manager.GalleryCategories
	h.metrics.ContentFetchesTotal.WithLabelValues(slice.Collection()).Inc()

	if err := slice.FetchAll(c.Request.Context(), true); err != nil {
		h.fetchFailed(c, slice.Collection(), err)
		return
	}

	categories := slice.Items()
	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// ListGalleryItems returns one page of active gallery items, optionally
// narrowed to a category.
func (h *ContentHandler) ListGalleryItems(c *gin.Context) {
	slice := h.manager.GalleryItems
	h.metrics.ContentFetchesTotal.WithLabelValues(slice.Collection()).Inc()

	if err := slice.FetchAll(c.Request.Context(), true); err != nil {
		h.fetchFailed(c, slice.Collection(), err)
		return
	}

	items := slice.Items()
	if category := c.Query("category"); category != "" && category != "all" {
		items = listing.Filter(items, func(g models.GalleryItem) bool {
			return g.CategoryID == category
		})
	}

	page := listing.Paginate(items, queryInt(c, "page", 1), GalleryPageSize)
	c.JSON(http.StatusOK, gin.H{
		"items": page.Items,
		"pagination": gin.H{
			"page":        page.Number,
			"pageSize":    page.Size,
			"totalItems":  page.TotalItems,
			"totalPages":  page.TotalPages,
			"pageNumbers": listing.PageNumbers(page.TotalPages, page.Number),
		},
	})
}

// ListFeaturedGalleryItems returns the featured photos for the homepage.
func (h *ContentHandler) ListFeaturedGalleryItems(c *gin.Context) {
	slice := h.manager.GalleryItems
	h.metrics.ContentFetchesTotal.WithLabelValues(slice.Collection()).Inc()

	limit := queryInt(c, "limit", DefaultFeaturedLimit)
	if err := slice.FetchFeatured(c.Request.Context(), limit); err != nil {
		h.fetchFailed(c, slice.Collection(), err)
		return
	}

	items := slice.Items()
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

func (h *ContentHandler) fetchFailed(c *gin.Context, collection string, err error) {
	h.metrics.ContentFetchErrors.WithLabelValues(collection).Inc()
	h.logger.Error("Failed to fetch content",
		logger.String("collection", collection),
		logger.Error(err),
	)
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Content temporarily unavailable"})
}

// queryInt reads an integer query parameter with a fallback.
func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
