package handler

import (
	"errors"
	"net/http"

	"iftarmap/internal/httpapi/dto"
	"iftarmap/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// RegisterRoutes registers the authenticated review route.
func (h *ReviewHandler) RegisterRoutes(api *gin.RouterGroup, auth gin.HandlerFunc) {
	api.POST("/places/:id/reviews", auth, h.Create)
}

// Create leaves a star rating for a place
// POST /api/places/:id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), c.Param("id"), userID.(string), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlaceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "place not found"})
		case errors.Is(err, service.ErrAlreadyReviewed):
			c.JSON(http.StatusConflict, gin.H{"error": "you have already reviewed this place"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create review"})
		}
		return
	}

	c.JSON(http.StatusCreated, review)
}
