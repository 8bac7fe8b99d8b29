package dto

import (
	"time"

	"iftarmap/internal/httpapi/models"
)

// CreateImageSubmissionRequest attaches a photo proposal to an existing place.
type CreateImageSubmissionRequest struct {
	ImageURL string `json:"image_url" binding:"required,url"`
}

// ImageSubmissionResponse is the base submission shape.
type ImageSubmissionResponse struct {
	ID          int64      `json:"id"`
	PlaceID     string     `json:"place_id"`
	ImageURL    string     `json:"image_url"`
	SubmittedBy string     `json:"submitted_by"`
	CreatedAt   time.Time  `json:"created_at"`
	Approved    bool       `json:"approved"`
	ApprovedBy  *string    `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
}

// FromModelToImageSubmissionResponse converts an ImageSubmission model to its
// response DTO.
func FromModelToImageSubmissionResponse(submission *models.ImageSubmission) *ImageSubmissionResponse {
	return &ImageSubmissionResponse{
		ID:          submission.ID,
		PlaceID:     submission.PlaceID,
		ImageURL:    submission.ImageURL,
		SubmittedBy: submission.SubmittedBy,
		CreatedAt:   submission.CreatedAt,
		Approved:    submission.Approved,
		ApprovedBy:  submission.ApprovedBy,
		ApprovedAt:  submission.ApprovedAt,
	}
}

// PendingImageResponse enriches a queued submission with the parent place's
// name and location so moderators can judge it without another lookup.
type PendingImageResponse struct {
	ImageSubmissionResponse
	PlaceName     string `json:"place_name"`
	PlaceLocation string `json:"place_location"`
}

// FromModelToPendingImageResponse converts a submission with its Place
// association preloaded into the moderation-queue DTO.
func FromModelToPendingImageResponse(submission *models.ImageSubmission) *PendingImageResponse {
	return &PendingImageResponse{
		ImageSubmissionResponse: *FromModelToImageSubmissionResponse(submission),
		PlaceName:               submission.Place.Name,
		PlaceLocation:           submission.Place.Location,
	}
}
