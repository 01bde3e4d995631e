package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"equipment-feasibility-backend/internal/analytics"
	"equipment-feasibility-backend/internal/feasibility"
)

// GetLifecycle handles GET /api/lifecycle.
func (h *Handler) GetLifecycle(c *gin.Context) {
	snap := h.snapshot(c)
	if snap == nil {
		return
	}
	c.JSON(http.StatusOK, feasibility.ClassifyLifecycle(snap.Insights))
}

// GetRecommendations handles GET /api/recommendations.
func (h *Handler) GetRecommendations(c *gin.Context) {
	snap := h.snapshot(c)
	if snap == nil {
		return
	}
	c.JSON(http.StatusOK, analytics.RecommendationDistribution(snap.Insights))
}

// GetCategories handles GET /api/categories.
func (h *Handler) GetCategories(c *gin.Context) {
	snap := h.snapshot(c)
	if snap == nil {
		return
	}
	c.JSON(http.StatusOK, analytics.CategoryPerformance(snap.Insights))
}

// GetCritical handles GET /api/critical?threshold=.
func (h *Handler) GetCritical(c *gin.Context) {
	threshold := h.threshold
	if raw := c.Query("threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid 'threshold' parameter"})
			return
		}
		threshold = v
	}

	snap := h.snapshot(c)
	if snap == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"threshold": threshold,
		"items":     analytics.CriticalItems(snap.Insights, threshold),
	})
}

// GetStrategic handles GET /api/strategic.
func (h *Handler) GetStrategic(c *gin.Context) {
	snap := h.snapshot(c)
	if snap == nil {
		return
	}
	s := analytics.StrategicInsights(snap.Insights)
	if s == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, s)
}

// GetMaintenanceSummary handles GET /api/maintenance/summary.
func (h *Handler) GetMaintenanceSummary(c *gin.Context) {
	snap := h.snapshot(c)
	if snap == nil {
		return
	}
	s := analytics.SummarizeMaintenance(snap.Tables.Maintenance)
	if s == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, s)
}

// GetTopMaintenance handles GET /api/maintenance/top?n=.
func (h *Handler) GetTopMaintenance(c *gin.Context) {
	n, ok := positiveInt(c, "n")
	if !ok {
		return
	}
	snap := h.snapshot(c)
	if snap == nil {
		return
	}
	c.JSON(http.StatusOK, analytics.TopMaintenanceItems(snap.Tables.Maintenance, n))
}

// GetRentalTrends handles GET /api/rentals/trends.
func (h *Handler) GetRentalTrends(c *gin.Context) {
	snap := h.snapshot(c)
	if snap == nil {
		return
	}
	c.JSON(http.StatusOK, analytics.RentalTrends(snap.Tables.Rentals, h.svc.Location()))
}

// GetUtilization handles GET /api/utilization?n=.
func (h *Handler) GetUtilization(c *gin.Context) {
	n, ok := positiveInt(c, "n")
	if !ok {
		return
	}
	snap := h.snapshot(c)
	if snap == nil {
		return
	}
	c.JSON(http.StatusOK, analytics.Utilization(snap.Insights, n))
}
