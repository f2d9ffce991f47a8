package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ustaweb/content-manager/internal/listing"
	"github.com/ustaweb/content-manager/internal/models"
	"github.com/ustaweb/content-manager/internal/richtext"
	"github.com/ustaweb/content-manager/internal/store"
)

// excerptLength is how much of a news body the listing shows.
const excerptLength = 160

// newsListItem is a news article as shown in listings: full body replaced
// by a plain-text excerpt.
type newsListItem struct {
	models.NewsArticle
	Excerpt string `json:"excerpt"`
}

func toListItem(article models.NewsArticle) newsListItem {
	item := newsListItem{NewsArticle: article}
	if article.Description != "" {
		item.Excerpt = article.Description
	} else {
		item.Excerpt = richtext.Excerpt(article.Content, excerptLength)
	}
	item.Content = ""
	return item
}

// ListNews returns one page of active news, optionally narrowed to a tag.
// The single highlighted article is listed separately and excluded from the
// page; when several are flagged, the first in display order wins.
func (h *ContentHandler) ListNews(c *gin.Context) {
	slice := h.manager.News
	h.metrics.ContentFetchesTotal.WithLabelValues(slice.Collection()).Inc()

	if err := slice.FetchAll(c.Request.Context(), true); err != nil {
		h.fetchFailed(c, slice.Collection(), err)
		return
	}

	articles := slice.Items()
	if tag := c.Query("tag"); tag != "" && tag != "all" {
		articles = listing.Filter(articles, func(n models.NewsArticle) bool {
			for _, t := range n.Tags {
				if t == tag {
					return true
				}
			}
			return false
		})
	}

	featured := listing.Filter(articles, func(n models.NewsArticle) bool { return n.Featured })
	regular := listing.Filter(articles, func(n models.NewsArticle) bool { return !n.Featured })
	if len(featured) > 1 {
		featured = featured[:1]
	}

	page := listing.Paginate(regular, queryInt(c, "page", 1), NewsPageSize)

	featuredItems := make([]newsListItem, 0, len(featured))
	for _, article := range featured {
		featuredItems = append(featuredItems, toListItem(article))
	}
	pageItems := make([]newsListItem, 0, len(page.Items))
	for _, article := range page.Items {
		pageItems = append(pageItems, toListItem(article))
	}

	c.JSON(http.StatusOK, gin.H{
		"featured": featuredItems,
		"articles": pageItems,
		"pagination": gin.H{
			"page":        page.Number,
			"pageSize":    page.Size,
			"totalItems":  page.TotalItems,
			"totalPages":  page.TotalPages,
			"pageNumbers": listing.PageNumbers(page.TotalPages, page.Number),
		},
	})
}

// GetNewsArticle returns one article with its full body. Unpublished
// articles are indistinguishable from missing ones.
func (h *ContentHandler) GetNewsArticle(c *gin.Context) {
	id := c.Param("id")

	article, err := h.manager.News.FetchByID(c.Request.Context(), id)
	if err != nil {
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "News article not found"})
			return
		}
		h.fetchFailed(c, h.manager.News.Collection(), err)
		return
	}
	if !article.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "News article not found"})
		return
	}

	c.JSON(http.StatusOK, article)
}

// ListFeaturedNews returns the featured articles for the homepage.
func (h *ContentHandler) ListFeaturedNews(c *gin.Context) {
	slice := h.manager.News
	h.metrics.ContentFetchesTotal.WithLabelValues(slice.Collection()).Inc()

	limit := queryInt(c, "limit", DefaultFeaturedLimit)
	if err := slice.FetchFeatured(c.Request.Context(), limit); err != nil {
		h.fetchFailed(c, slice.Collection(), err)
		return
	}

	articles := slice.Items()
	items := make([]newsListItem, 0, len(articles))
	for _, article := range articles {
		items = append(items, toListItem(article))
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": items,
		"count":    len(items),
	})
}
