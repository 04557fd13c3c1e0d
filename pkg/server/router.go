package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bookvault/bookvault/pkg/cache"
	"github.com/bookvault/bookvault/pkg/db"
	"github.com/bookvault/bookvault/pkg/logger"
)

// Deps bundles everything the router needs.
type Deps struct {
	Books    *BookHandler
	Contacts *ContactHandler
	DB       *db.Manager
	Cache    *cache.Manager
	Log      logger.Logger
}

// NewRouter assembles the gin engine: request logging, the /api route groups
// and a health endpoint probing store and cache connectivity.
func NewRouter(deps Deps) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))

	api := r.Group("/api")
	deps.Books.Register(api)
	deps.Contacts.Register(api)

	r.GET("/healthz", healthHandler(deps.DB, deps.Cache))

	return r
}

// requestLogger logs one structured line per request.
func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// healthHandler pings the store and cache and reports the cache counters.
// Cache connectivity is reported but does not fail the probe; the API degrades
// to direct store access without it.
func healthHandler(dbManager *db.Manager, cacheManager *cache.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		body := gin.H{"status": "ok", "database": "ok", "cache": "ok"}

		if dbManager != nil {
			if err := dbManager.Ping(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body["database"] = err.Error()
			}
		}
		if cacheManager != nil {
			if err := cacheManager.Ping(ctx); err != nil {
				body["cache"] = err.Error()
			}
			body["cacheMetrics"] = cacheManager.Metrics().Snapshot()
		}

		c.JSON(status, body)
	}
}
