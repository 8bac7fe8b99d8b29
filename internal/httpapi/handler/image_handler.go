package handler

import (
	"errors"
	"net/http"

	"iftarmap/internal/httpapi/dto"
	"iftarmap/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type ImageHandler struct {
	moderationService service.ModerationService
}

func NewImageHandler(moderationService service.ModerationService) *ImageHandler {
	return &ImageHandler{
		moderationService: moderationService,
	}
}

// RegisterRoutes registers the authenticated photo-submission route.
func (h *ImageHandler) RegisterRoutes(api *gin.RouterGroup, auth gin.HandlerFunc) {
	api.POST("/places/:id/images", auth, h.Create)
}

// Create queues a photo proposal for a place
// POST /api/places/:id/images
func (h *ImageHandler) Create(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateImageSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission, err := h.moderationService.SubmitImage(c.Request.Context(), c.Param("id"), userID.(string), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlaceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "place not found"})
		case errors.Is(err, service.ErrImageHostNotAllowed):
			c.JSON(http.StatusBadRequest, gin.H{"error": "image host not allowed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not submit image"})
		}
		return
	}

	c.JSON(http.StatusCreated, submission)
}
