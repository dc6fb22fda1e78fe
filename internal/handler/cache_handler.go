package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dabidoe/hotspots-backend-go/internal/service"
	"github.com/dabidoe/hotspots-backend-go/pkg/response"
)

// CacheHandler exposes admin operations over the places cache
type CacheHandler struct {
	service *service.PlacesService
}

// NewCacheHandler creates a new cache handler
func NewCacheHandler(service *service.PlacesService) *CacheHandler {
	return &CacheHandler{service: service}
}

// Stats reports cache entry and stale counts
// GET /api/v1/admin/cache/stats
func (h *CacheHandler) Stats(c *gin.Context) {
	stats, err := h.service.CacheStats()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, stats)
}

// Purge deletes stale cache entries
// POST /api/v1/admin/cache/purge
func (h *CacheHandler) Purge(c *gin.Context) {
	purged, err := h.service.PurgeStaleCache()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"purged": purged})
}
