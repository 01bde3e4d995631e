package api

import (
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"equipment-feasibility-backend/config"
	"equipment-feasibility-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(svc SnapshotService, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(svc, cfg.Analysis.CriticalThreshold)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	// Responses are keyed by data version, so they are dropped together with the snapshots.
	cacheStore := cache.New(cfg.Server.CacheTTL, 2*cfg.Server.CacheTTL)
	svc.OnInvalidate(cacheStore.Flush)
	caching := mw.Cache(cacheStore, cfg.Server.CacheTTL, handler.cacheKey)

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/insights", caching, handler.GetInsights)
		api.GET("/insights/:kode", caching, handler.GetInsight)
		api.GET("/lifecycle", caching, handler.GetLifecycle)
		api.GET("/recommendations", caching, handler.GetRecommendations)
		api.GET("/categories", caching, handler.GetCategories)
		api.GET("/critical", caching, handler.GetCritical)
		api.GET("/strategic", caching, handler.GetStrategic)
		api.GET("/maintenance/summary", caching, handler.GetMaintenanceSummary)
		api.GET("/maintenance/top", caching, handler.GetTopMaintenance)
		api.GET("/rentals/trends", caching, handler.GetRentalTrends)
		api.GET("/utilization", caching, handler.GetUtilization)

		api.POST("/cache/invalidate", handler.InvalidateCache)
	}

	return r
}
