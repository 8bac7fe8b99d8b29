package dto

import (
	"time"

	"iftarmap/internal/httpapi/models"
)

// CreateReviewRequest is the payload for rating a place.
type CreateReviewRequest struct {
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

// ReviewResponse is a single review as shown on a place detail page.
type ReviewResponse struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name,omitempty"`
	Rating      int       `json:"rating"`
	Comment     *string   `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromModelToReviewResponse converts a Review model to its response DTO.
func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:          review.ID,
		UserID:      review.UserID,
		DisplayName: review.User.DisplayName,
		Rating:      review.Rating,
		Comment:     review.Comment,
		CreatedAt:   review.CreatedAt,
	}
}
