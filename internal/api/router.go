// Package api assembles the HTTP surface: routing, middleware, and server
// lifecycle.
package api

import (
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ustaweb/content-manager/internal/content"
	"github.com/ustaweb/content-manager/internal/handlers"
	"github.com/ustaweb/content-manager/internal/logger"
	"github.com/ustaweb/content-manager/internal/telemetry"
)

const corsMaxAgeHours = 12

// RouterDeps carries everything the router needs.
type RouterDeps struct {
	Manager     *content.Manager
	Metrics     *telemetry.Metrics
	Logger      logger.Logger
	CORSOrigins []string
	Health      map[string]handlers.HealthCheck
	Debug       bool
}

// NewRouter builds the gin engine with all routes and middleware attached.
func NewRouter(deps RouterDeps) *gin.Engine {
	if !deps.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// CORS first so preflights never hit other middleware.
	router.Use(cors.New(cors.Config{
		AllowOrigins: deps.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"X-CSRF-Token", "Authorization", "accept", "origin",
			"Cache-Control", "X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           corsMaxAgeHours * time.Hour,
	}))

	router.Use(ginLogger(deps.Logger))
	router.Use(ginMetrics(deps.Metrics))
	router.Use(gin.Recovery())

	healthHandler := handlers.NewHealthHandler(deps.Health)
	router.GET("/health", healthHandler.Live)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	contentHandler := handlers.NewContentHandler(deps.Manager, deps.Metrics, deps.Logger)
	contactHandler := handlers.NewContactHandler(deps.Manager.Contacts, deps.Metrics, deps.Logger)
	adminHandler := handlers.NewAdminHandler(deps.Manager, deps.Logger)

	v1 := router.Group("/api/v1")

	v1.GET("/service-areas", contentHandler.ListServiceAreas)
	v1.GET("/service-areas/:slug", contentHandler.GetServiceAreaBySlug)

	gallery := v1.Group("/gallery")
	gallery.GET("/categories", contentHandler.ListGalleryCategories)
	gallery.GET("/items", contentHandler.ListGalleryItems)
	gallery.GET("/featured", contentHandler.ListFeaturedGalleryItems)

	news := v1.Group("/news")
	news.GET("", contentHandler.ListNews)
	news.GET("/featured", contentHandler.ListFeaturedNews)
	news.GET("/:id", contentHandler.GetNewsArticle)

	v1.POST("/contact", contactHandler.Submit)

	admin := v1.Group("/admin")

	areas := admin.Group("/service-areas")
	areas.GET("", adminHandler.ListServiceAreas)
	areas.POST("", adminHandler.CreateServiceArea)
	areas.PUT("/:id", adminHandler.UpdateServiceArea)
	areas.DELETE("/:id", adminHandler.DeleteServiceArea)

	categories := admin.Group("/gallery/categories")
	categories.GET("", adminHandler.ListGalleryCategories)
	categories.POST("", adminHandler.CreateGalleryCategory)
	categories.PUT("/:id", adminHandler.UpdateGalleryCategory)
	categories.DELETE("/:id", adminHandler.DeleteGalleryCategory)

	items := admin.Group("/gallery/items")
	items.GET("", adminHandler.ListGalleryItems)
	items.POST("", adminHandler.CreateGalleryItem)
	items.POST("/import", adminHandler.ImportGalleryItems)
	items.PUT("/:id", adminHandler.UpdateGalleryItem)
	items.DELETE("/:id", adminHandler.DeleteGalleryItem)

	adminNews := admin.Group("/news")
	adminNews.GET("", adminHandler.ListNews)
	adminNews.POST("", adminHandler.CreateNewsArticle)
	adminNews.PUT("/:id", adminHandler.UpdateNewsArticle)
	adminNews.DELETE("/:id", adminHandler.DeleteNewsArticle)

	contacts := admin.Group("/contact-messages")
	contacts.GET("", adminHandler.ListContactMessages)
	contacts.PUT("/:id/read", adminHandler.MarkContactMessageRead)
	contacts.DELETE("/:id", adminHandler.DeleteContactMessage)

	return router
}

func ginLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("HTTP request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status_code", c.Writer.Status()),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("duration", time.Since(start)),
		)
	}
}

func ginMetrics(metrics *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// FullPath keeps label cardinality bounded; unmatched routes
		// collapse into one label.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		metrics.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
