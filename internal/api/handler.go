package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"equipment-feasibility-backend/internal/insight"
	"equipment-feasibility-backend/internal/loader"
	"equipment-feasibility-backend/internal/parse"
)

// SnapshotService provides insight snapshots to the handlers.
type SnapshotService interface {
	Snapshot(ctx context.Context, ref time.Time) (*insight.Snapshot, error)
	CacheKey(ref time.Time) string
	Invalidate()
	OnInvalidate(fn func())
	Location() *time.Location
}

var errBadReference = errors.New("invalid 'at' parameter, expected RFC3339 or YYYY-MM-DD")

// Handler holds shared dependencies for API handlers.
type Handler struct {
	svc       SnapshotService
	threshold float64
}

// NewHandler creates a new API handler.
func NewHandler(svc SnapshotService, criticalThreshold float64) *Handler {
	return &Handler{
		svc:       svc,
		threshold: criticalThreshold,
	}
}

// reference reads the optional "at" query parameter. Zero means now.
func (h *Handler) reference(c *gin.Context) (time.Time, error) {
	at := c.Query("at")
	if at == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, at); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", at, h.svc.Location()); err == nil {
		return t, nil
	}
	return time.Time{}, errBadReference
}

// snapshot resolves the request's snapshot, writing the error response itself
// and returning nil on failure.
func (h *Handler) snapshot(c *gin.Context) *insight.Snapshot {
	ref, err := h.reference(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil
	}
	snap, err := h.svc.Snapshot(c.Request.Context(), ref)
	if err != nil {
		log.Printf("Error computing insights: %v", err)
		switch {
		case errors.Is(err, loader.ErrMissingColumn), errors.Is(err, loader.ErrUnsupportedFormat):
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute insights"})
		}
		return nil
	}
	return snap
}

// cacheKey is the response cache key function for the router.
func (h *Handler) cacheKey(c *gin.Context) string {
	ref, err := h.reference(c)
	if err != nil {
		return ""
	}
	return h.svc.CacheKey(ref)
}

// positiveInt reads an optional positive integer query parameter.
func positiveInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid '" + name + "' parameter"})
		return 0, false
	}
	return n, true
}

// GetInsights handles GET /api/insights.
func (h *Handler) GetInsights(c *gin.Context) {
	snap := h.snapshot(c)
	if snap == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reference": snap.Reference,
		"count":     len(snap.Insights),
		"items":     snap.Insights,
	})
}

// GetInsight handles GET /api/insights/:kode.
func (h *Handler) GetInsight(c *gin.Context) {
	code := parse.Code(c.Param("kode"))
	snap := h.snapshot(c)
	if snap == nil {
		return
	}
	record, ok := snap.Insights.Find(code)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Equipment not found"})
		return
	}
	c.JSON(http.StatusOK, record)
}

// InvalidateCache handles POST /api/cache/invalidate.
func (h *Handler) InvalidateCache(c *gin.Context) {
	h.svc.Invalidate()
	c.Status(http.StatusNoContent)
}
