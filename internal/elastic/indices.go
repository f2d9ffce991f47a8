package elastic

import (
	"context"
	"fmt"
	"io"
	"strings"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/ustaweb/content-manager/internal/logger"
)

// collectionMappings holds the index mapping for each content collection.
// Sort and filter fields get explicit types so queries behave consistently;
// everything else is left to dynamic mapping.
var collectionMappings = map[string]string{
	"service_areas": `{
		"mappings": {
			"properties": {
				"title":       {"type": "text"},
				"description": {"type": "text"},
				"content":     {"type": "text"},
				"imageUrl":    {"type": "keyword"},
				"icon":        {"type": "keyword"},
				"order":       {"type": "integer"},
				"isActive":    {"type": "boolean"},
				"createdAt":   {"type": "date"},
				"updatedAt":   {"type": "date"}
			}
		}
	}`,
	"gallery_categories": `{
		"mappings": {
			"properties": {
				"name":        {"type": "text"},
				"description": {"type": "text"},
				"icon":        {"type": "keyword"},
				"color":       {"type": "keyword"},
				"order":       {"type": "integer"},
				"isActive":    {"type": "boolean"},
				"createdAt":   {"type": "date"},
				"updatedAt":   {"type": "date"}
			}
		}
	}`,
	"gallery_items": `{
		"mappings": {
			"properties": {
				"title":        {"type": "text"},
				"description":  {"type": "text"},
				"imageUrl":     {"type": "keyword"},
				"thumbnailUrl": {"type": "keyword"},
				"categoryId":   {"type": "keyword"},
				"tags":         {"type": "keyword"},
				"order":        {"type": "integer"},
				"isActive":     {"type": "boolean"},
				"isFeatured":   {"type": "boolean"},
				"createdAt":    {"type": "date"},
				"updatedAt":    {"type": "date"}
			}
		}
	}`,
	"haberler": `{
		"mappings": {
			"properties": {
				"title":       {"type": "text"},
				"subtitle":    {"type": "text"},
				"description": {"type": "text"},
				"content":     {"type": "text"},
				"imageUrl":    {"type": "keyword"},
				"tags":        {"type": "keyword"},
				"order":       {"type": "integer"},
				"isActive":    {"type": "boolean"},
				"featured":    {"type": "boolean"},
				"createdAt":   {"type": "date"},
				"updatedAt":   {"type": "date"}
			}
		}
	}`,
	"contact_messages": `{
		"mappings": {
			"properties": {
				"name":        {"type": "text"},
				"email":       {"type": "keyword"},
				"phone":       {"type": "keyword"},
				"serviceType": {"type": "keyword"},
				"urgency":     {"type": "keyword"},
				"subject":     {"type": "text"},
				"message":     {"type": "text"},
				"priority":    {"type": "keyword"},
				"status":      {"type": "keyword"},
				"createdAt":   {"type": "date"},
				"updatedAt":   {"type": "date"}
			}
		}
	}`,
}

// EnsureCollections creates every content index that does not exist yet.
func EnsureCollections(ctx context.Context, client *es.Client, log logger.Logger) error {
	for name, mapping := range collectionMappings {
		if err := ensureIndex(ctx, client, name, mapping); err != nil {
			return fmt.Errorf("failed to ensure index %s: %w", name, err)
		}
		log.Debug("Index ready", logger.String("index", name))
	}
	return nil
}

func ensureIndex(ctx context.Context, client *es.Client, name, mapping string) error {
	res, err := client.Indices.Exists([]string{name}, client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		return nil
	}

	createRes, err := client.Indices.Create(
		name,
		client.Indices.Create.WithContext(ctx),
		client.Indices.Create.WithBody(strings.NewReader(mapping)),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		body, _ := io.ReadAll(createRes.Body)
		// Another process may have created the index between the check
		// and the create call.
		if strings.Contains(string(body), "resource_already_exists_exception") {
			return nil
		}
		return fmt.Errorf("create index returned error [%s]: %s", createRes.Status(), string(body))
	}

	return nil
}
