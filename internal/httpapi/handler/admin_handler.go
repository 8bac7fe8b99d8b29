package handler

import (
	"errors"
	"net/http"
	"strconv"

	"iftarmap/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	moderationService service.ModerationService
	statsService      service.StatsService
}

func NewAdminHandler(moderationService service.ModerationService, statsService service.StatsService) *AdminHandler {
	return &AdminHandler{
		moderationService: moderationService,
		statsService:      statsService,
	}
}

// RegisterRoutes registers the moderation surface. The group passed in must
// already carry the auth and admin middleware.
func (h *AdminHandler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/places", h.ListPlaces)
	admin.GET("/places/pending", h.ListPendingPlaces)
	admin.PATCH("/places/:id/approve", h.ApprovePlace)
	admin.DELETE("/places/:id/reject", h.RejectPlace)
	admin.GET("/stats", h.Stats)
	admin.GET("/images/pending", h.ListPendingImages)
	admin.PATCH("/images/:id/approve", h.ApproveImage)
	admin.DELETE("/images/:id/reject", h.RejectImage)
}

// ListPlaces returns every place regardless of approval state
// GET /api/admin/places
func (h *AdminHandler) ListPlaces(c *gin.Context) {
	places, err := h.moderationService.ListAllPlaces(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list places"})
		return
	}

	c.JSON(http.StatusOK, places)
}

// ListPendingPlaces returns the places awaiting a decision
// GET /api/admin/places/pending
func (h *AdminHandler) ListPendingPlaces(c *gin.Context) {
	places, err := h.moderationService.ListPendingPlaces(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list pending places"})
		return
	}

	c.JSON(http.StatusOK, places)
}

// ApprovePlace approves a pending place and re-routes its direct images into
// the submission queue
// PATCH /api/admin/places/:id/approve
func (h *AdminHandler) ApprovePlace(c *gin.Context) {
	adminID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	place, err := h.moderationService.ApprovePlace(c.Request.Context(), c.Param("id"), adminID.(string))
	if err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "place not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not approve place"})
		return
	}

	c.JSON(http.StatusOK, place)
}

// RejectPlace deletes a place and everything attached to it
// DELETE /api/admin/places/:id/reject
func (h *AdminHandler) RejectPlace(c *gin.Context) {
	if err := h.moderationService.RejectPlace(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "place not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not reject place"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "place rejected"})
}

// Stats returns the moderation dashboard counters
// GET /api/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.statsService.AdminStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListPendingImages returns the photo review queue
// GET /api/admin/images/pending
func (h *AdminHandler) ListPendingImages(c *gin.Context) {
	images, err := h.moderationService.ListPendingImages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list pending images"})
		return
	}

	c.JSON(http.StatusOK, images)
}

// ApproveImage accepts a queued photo and surfaces it on the parent place
// PATCH /api/admin/images/:id/approve
func (h *AdminHandler) ApproveImage(c *gin.Context) {
	adminID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	submissionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission id"})
		return
	}

	submission, err := h.moderationService.ApproveImage(c.Request.Context(), submissionID, adminID.(string))
	if err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "image submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not approve image"})
		return
	}

	c.JSON(http.StatusOK, submission)
}

// RejectImage deletes a queued photo proposal
// DELETE /api/admin/images/:id/reject
func (h *AdminHandler) RejectImage(c *gin.Context) {
	submissionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission id"})
		return
	}

	if err := h.moderationService.RejectImage(c.Request.Context(), submissionID); err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "image submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not reject image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "image submission rejected"})
}
