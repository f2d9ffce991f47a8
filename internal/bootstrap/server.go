package bootstrap

import (
	"context"

	"github.com/ustaweb/content-manager/internal/api"
	"github.com/ustaweb/content-manager/internal/config"
	"github.com/ustaweb/content-manager/internal/content"
	"github.com/ustaweb/content-manager/internal/events"
	"github.com/ustaweb/content-manager/internal/handlers"
	"github.com/ustaweb/content-manager/internal/logger"
	"github.com/ustaweb/content-manager/internal/store"
	"github.com/ustaweb/content-manager/internal/telemetry"
)

// SetupHTTPServer wires the content manager, metrics and router into a
// runnable server.
func SetupHTTPServer(
	cfg *config.Config,
	contentStore *store.ElasticStore,
	publisher *events.Publisher,
	log logger.Logger,
) *api.Server {
	manager := content.NewManager(contentStore, publisher, log)
	metrics := telemetry.NewDefault()

	router := api.NewRouter(api.RouterDeps{
		Manager:     manager,
		Metrics:     metrics,
		Logger:      log,
		CORSOrigins: cfg.Server.CORSOrigins,
		Debug:       cfg.Debug,
		Health: map[string]handlers.HealthCheck{
			"elasticsearch": func(ctx context.Context) error {
				return contentStore.Ping(ctx)
			},
		},
	})

	return api.NewServer(cfg.Server, router, log)
}
