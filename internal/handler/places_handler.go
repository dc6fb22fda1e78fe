package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dabidoe/hotspots-backend-go/internal/models"
	"github.com/dabidoe/hotspots-backend-go/internal/service"
	"github.com/dabidoe/hotspots-backend-go/pkg/response"
)

const (
	defaultRadiusMeters = 24140 // ~15 miles
	minRadiusMeters     = 100
	maxRadiusMeters     = 50000
)

// PlacesHandler handles HTTP requests for nearby places
type PlacesHandler struct {
	service *service.PlacesService
}

// NewPlacesHandler creates a new places handler
func NewPlacesHandler(service *service.PlacesService) *PlacesHandler {
	return &PlacesHandler{service: service}
}

// Nearby returns merged nearby places for a center point
// GET /api/v1/places?lat=40.758&lng=-73.9855&radiusMeters=1609
func (h *PlacesHandler) Nearby(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		response.BadRequest(c, "Missing or invalid lat/lng")
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		response.BadRequest(c, "Missing or invalid lat/lng")
		return
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		response.BadRequest(c, "lat/lng out of range")
		return
	}

	radius := defaultRadiusMeters
	if raw := c.Query("radiusMeters"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			radius = v
		}
	}
	if radius < minRadiusMeters {
		radius = minRadiusMeters
	}
	if radius > maxRadiusMeters {
		radius = maxRadiusMeters
	}

	result, err := h.service.Nearby(c.Request.Context(), models.NearbyQuery{
		Lat:          lat,
		Lng:          lng,
		RadiusMeters: radius,
	})
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"places": result})
}
