package bootstrap

import (
	"context"
	"fmt"

	"github.com/ustaweb/content-manager/internal/config"
	"github.com/ustaweb/content-manager/internal/elastic"
	"github.com/ustaweb/content-manager/internal/logger"
	"github.com/ustaweb/content-manager/internal/store"
)

// SetupStore connects to Elasticsearch, makes sure every content index
// exists, and wraps the client in the document-store interface.
func SetupStore(ctx context.Context, cfg *config.Config, log logger.Logger) (*store.ElasticStore, error) {
	client, err := elastic.NewClient(ctx, cfg.Elasticsearch, log)
	if err != nil {
		return nil, err
	}

	if err := elastic.EnsureCollections(ctx, client, log); err != nil {
		return nil, fmt.Errorf("ensure collections: %w", err)
	}

	return store.NewElasticStore(client, log), nil
}
