package content

import (
	"github.com/ustaweb/content-manager/internal/events"
	"github.com/ustaweb/content-manager/internal/logger"
	"github.com/ustaweb/content-manager/internal/models"
	"github.com/ustaweb/content-manager/internal/store"
)

// NewServiceAreas builds the slice backing the services page.
func NewServiceAreas(st store.Store, pub *events.Publisher, log logger.Logger) *Slice[models.ServiceArea] {
	return NewSlice(st, pub, log, Descriptor[models.ServiceArea]{
		Collection: models.CollectionServiceAreas,
		Parse:      models.ServiceAreaFromDocument,
		Fields:     models.ServiceArea.Fields,
		ID:         func(a models.ServiceArea) string { return a.ID },
		Order:      func(a models.ServiceArea) int { return a.Order },
		IsActive:   func(a models.ServiceArea) bool { return a.IsActive },
	})
}

// NewGalleryCategories builds the slice of gallery categories.
func NewGalleryCategories(st store.Store, pub *events.Publisher, log logger.Logger) *Slice[models.GalleryCategory] {
	return NewSlice(st, pub, log, Descriptor[models.GalleryCategory]{
		Collection: models.CollectionGalleryCategories,
		Parse:      models.GalleryCategoryFromDocument,
		Fields:     models.GalleryCategory.Fields,
		ID:         func(c models.GalleryCategory) string { return c.ID },
		Order:      func(c models.GalleryCategory) int { return c.Order },
		IsActive:   func(c models.GalleryCategory) bool { return c.IsActive },
	})
}

// NewGalleryItems builds the slice of gallery photos.
func NewGalleryItems(st store.Store, pub *events.Publisher, log logger.Logger) *Slice[models.GalleryItem] {
	return NewSlice(st, pub, log, Descriptor[models.GalleryItem]{
		Collection: models.CollectionGalleryItems,
		Parse:      models.GalleryItemFromDocument,
		Fields:     models.GalleryItem.Fields,
		ID:         func(g models.GalleryItem) string { return g.ID },
		Order:      func(g models.GalleryItem) int { return g.Order },
		IsActive:   func(g models.GalleryItem) bool { return g.IsActive },
		IsFeatured: func(g models.GalleryItem) bool { return g.IsFeatured },
	})
}

// NewNews builds the slice of news articles.
func NewNews(st store.Store, pub *events.Publisher, log logger.Logger) *Slice[models.NewsArticle] {
	return NewSlice(st, pub, log, Descriptor[models.NewsArticle]{
		Collection: models.CollectionNews,
		Parse:      models.NewsArticleFromDocument,
		Fields:     models.NewsArticle.Fields,
		ID:         func(n models.NewsArticle) string { return n.ID },
		Order:      func(n models.NewsArticle) int { return n.Order },
		IsActive:   func(n models.NewsArticle) bool { return n.IsActive },
		// The haberler documents store the flag as "featured".
		IsFeatured:    func(n models.NewsArticle) bool { return n.Featured },
		FeaturedField: "featured",
	})
}

// Manager aggregates every content slice the service exposes.
type Manager struct {
	ServiceAreas      *Slice[models.ServiceArea]
	GalleryCategories *Slice[models.GalleryCategory]
	GalleryItems      *Slice[models.GalleryItem]
	News              *Slice[models.NewsArticle]
	Contacts          *ContactService
}

// NewManager wires all slices against one store and publisher.
func NewManager(st store.Store, pub *events.Publisher, log logger.Logger) *Manager {
	return &Manager{
		ServiceAreas:      NewServiceAreas(st, pub, log),
		GalleryCategories: NewGalleryCategories(st, pub, log),
		GalleryItems:      NewGalleryItems(st, pub, log),
		News:              NewNews(st, pub, log),
		Contacts:          NewContactService(st, pub, log),
	}
}
