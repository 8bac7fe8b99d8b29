package handler

import (
	"errors"
	"net/http"
	"strconv"

	"iftarmap/internal/geo"
	"iftarmap/internal/httpapi/dto"
	"iftarmap/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type PlaceHandler struct {
	placeService service.PlaceService
}

func NewPlaceHandler(placeService service.PlaceService) *PlaceHandler {
	return &PlaceHandler{
		placeService: placeService,
	}
}

// RegisterRoutes registers the public place routes plus the authenticated
// create route.
func (h *PlaceHandler) RegisterRoutes(api *gin.RouterGroup, auth gin.HandlerFunc) {
	api.GET("/places", h.List)
	api.GET("/places/nearby", h.Nearby)
	api.GET("/places/:id", h.Detail)
	api.POST("/places", auth, h.Create)
}

// List returns approved places with aggregates
// GET /api/places?limit=50
func (h *PlaceHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	places, err := h.placeService.ListApproved(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list places"})
		return
	}

	c.JSON(http.StatusOK, places)
}

// Nearby returns the closest approved places to a query origin
// GET /api/places/nearby?lat=25.2&lng=55.3
func (h *PlaceHandler) Nearby(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng query parameters are required"})
		return
	}

	if !geo.InUAEBounds(lat, lng) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates outside the supported area"})
		return
	}

	places, err := h.placeService.Nearby(c.Request.Context(), lat, lng)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not rank places"})
		return
	}

	c.JSON(http.StatusOK, places)
}

// Detail returns one place with its full review list
// GET /api/places/:id
func (h *PlaceHandler) Detail(c *gin.Context) {
	detail, err := h.placeService.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "place not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load place"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Create submits a new pending place
// POST /api/places
func (h *PlaceHandler) Create(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	place, err := h.placeService.Create(c.Request.Context(), &req, userID.(string))
	if err != nil {
		if errors.Is(err, service.ErrImageHostNotAllowed) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image host not allowed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create place"})
		return
	}

	c.JSON(http.StatusCreated, place)
}
