// Package models defines the content entities the service manages and their
// mapping to store documents.
package models

import (
	"encoding/json"
	"fmt"

	"github.com/ustaweb/content-manager/internal/store"
)

// Collection names in the document store. The news collection keeps its
// original Turkish name for compatibility with existing data.
const (
	CollectionServiceAreas      = "service_areas"
	CollectionGalleryCategories = "gallery_categories"
	CollectionGalleryItems      = "gallery_items"
	CollectionNews              = "haberler"
	CollectionContactMessages   = "contact_messages"
)

// ServiceArea is one service the contractor offers, shown on the services
// page. Its URL slug is derived from the title on every request, never
// stored.
type ServiceArea struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Order       int    `json:"order"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// GalleryCategory groups gallery items.
type GalleryCategory struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
	Order       int    `json:"order"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// GalleryItem is a single photo in the gallery.
type GalleryItem struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	ImageURL     string   `json:"imageUrl"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty"`
	CategoryID   string   `json:"categoryId,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Order        int      `json:"order"`
	IsActive     bool     `json:"isActive"`
	IsFeatured   bool     `json:"isFeatured"`
	CreatedAt    string   `json:"createdAt,omitempty"`
	UpdatedAt    string   `json:"updatedAt,omitempty"`
}

// NewsArticle is a news post. The featured flag lives in the document as
// "featured", matching the documents already in the haberler collection.
type NewsArticle struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Description string   `json:"description,omitempty"`
	Content     string   `json:"content"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Order       int      `json:"order"`
	IsActive    bool     `json:"isActive"`
	Featured    bool     `json:"featured"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// decodeFields fills out from a document field map via a JSON round-trip,
// which keeps the struct tags as the single source of field names.
func decodeFields(fields map[string]any, out any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal fields: %w", err)
	}
	return nil
}

// encodeFields converts an entity into a document field map. The id never
// lives inside the document body.
func encodeFields(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal entity: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("unmarshal entity: %w", err)
	}
	delete(fields, "id")
	return fields, nil
}

func ServiceAreaFromDocument(doc store.Document) (ServiceArea, error) {
	var a ServiceArea
	if err := decodeFields(doc.Fields, &a); err != nil {
		return ServiceArea{}, err
	}
	a.ID = doc.ID
	return a, nil
}

func (a ServiceArea) Fields() (map[string]any, error) {
	return encodeFields(a)
}

func GalleryCategoryFromDocument(doc store.Document) (GalleryCategory, error) {
	var c GalleryCategory
	if err := decodeFields(doc.Fields, &c); err != nil {
		return GalleryCategory{}, err
	}
	c.ID = doc.ID
	return c, nil
}

func (c GalleryCategory) Fields() (map[string]any, error) {
	return encodeFields(c)
}

func GalleryItemFromDocument(doc store.Document) (GalleryItem, error) {
	var g GalleryItem
	if err := decodeFields(doc.Fields, &g); err != nil {
		return GalleryItem{}, err
	}
	g.ID = doc.ID
	return g, nil
}

func (g GalleryItem) Fields() (map[string]any, error) {
	return encodeFields(g)
}

func NewsArticleFromDocument(doc store.Document) (NewsArticle, error) {
	var n NewsArticle
	if err := decodeFields(doc.Fields, &n); err != nil {
		return NewsArticle{}, err
	}
	n.ID = doc.ID
	return n, nil
}

func (n NewsArticle) Fields() (map[string]any, error) {
	return encodeFields(n)
}
