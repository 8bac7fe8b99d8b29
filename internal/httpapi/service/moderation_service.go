package service

import (
	"context"
	"errors"
	"log/slog"

	"iftarmap/internal/httpapi/dto"
	"iftarmap/internal/httpapi/models"
	"iftarmap/internal/httpapi/repository"

	"gorm.io/gorm"
)

var ErrSubmissionNotFound = errors.New("image submission not found")

// ModerationService drives the approval state machine for places and image
// submissions. Places move PENDING→APPROVED or PENDING→deleted; approved
// places can only be deleted, never un-approved. The transactional cascades
// (image re-routing on place approval, slot filling on image approval) live
// in the repositories; this layer maps absences to sentinels and builds
// responses.
type ModerationService interface {
	ListAllPlaces(ctx context.Context) ([]dto.PlaceResponse, error)
	ListPendingPlaces(ctx context.Context) ([]dto.PlaceResponse, error)
	ApprovePlace(ctx context.Context, placeID, adminID string) (*dto.PlaceResponse, error)
	RejectPlace(ctx context.Context, placeID string) error
	SubmitImage(ctx context.Context, placeID, userID string, req *dto.CreateImageSubmissionRequest) (*dto.ImageSubmissionResponse, error)
	ListPendingImages(ctx context.Context) ([]dto.PendingImageResponse, error)
	ApproveImage(ctx context.Context, submissionID int64, adminID string) (*dto.ImageSubmissionResponse, error)
	RejectImage(ctx context.Context, submissionID int64) error
}

type moderationService struct {
	placeRepo         repository.PlaceRepository
	reviewRepo        repository.ReviewRepository
	imageRepo         repository.ImageSubmissionRepository
	imageAllowedHosts []string
	logger            *slog.Logger
}

func NewModerationService(
	placeRepo repository.PlaceRepository,
	reviewRepo repository.ReviewRepository,
	imageRepo repository.ImageSubmissionRepository,
	imageAllowedHosts []string,
	logger *slog.Logger,
) ModerationService {
	return &moderationService{
		placeRepo:         placeRepo,
		reviewRepo:        reviewRepo,
		imageRepo:         imageRepo,
		imageAllowedHosts: imageAllowedHosts,
		logger:            logger,
	}
}

// ListAllPlaces returns every place, any approval state, with aggregates.
func (s *moderationService) ListAllPlaces(ctx context.Context) ([]dto.PlaceResponse, error) {
	places, err := s.placeRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return annotatePlaces(ctx, s.reviewRepo, places, true)
}

// ListPendingPlaces returns the places awaiting a decision.
func (s *moderationService) ListPendingPlaces(ctx context.Context) ([]dto.PlaceResponse, error) {
	places, err := s.placeRepo.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	return annotatePlaces(ctx, s.reviewRepo, places, true)
}

// ApprovePlace flips a place to approved. Its direct images are cleared and
// re-queued as pending submissions attributed to the original creator, so
// photo content still passes independent review even when the place itself
// is fast-tracked.
func (s *moderationService) ApprovePlace(ctx context.Context, placeID, adminID string) (*dto.PlaceResponse, error) {
	place, err := s.placeRepo.Approve(ctx, placeID, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}

	s.logger.Info("place_approved",
		"place_id", place.ID,
		"admin_id", adminID,
	)
	return dto.FromModelToPlaceResponse(place, 0, 0, false), nil
}

// RejectPlace deletes a place; reviews and queued submissions cascade with it.
func (s *moderationService) RejectPlace(ctx context.Context, placeID string) error {
	deleted, err := s.placeRepo.Delete(ctx, placeID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPlaceNotFound
	}

	s.logger.Info("place_rejected", "place_id", placeID)
	return nil
}

// SubmitImage queues a user's photo proposal for an existing place. The URL
// must point at an allow-listed hosting domain.
func (s *moderationService) SubmitImage(ctx context.Context, placeID, userID string, req *dto.CreateImageSubmissionRequest) (*dto.ImageSubmissionResponse, error) {
	if !HostAllowed(req.ImageURL, s.imageAllowedHosts) {
		return nil, ErrImageHostNotAllowed
	}

	if _, err := s.placeRepo.GetByID(ctx, placeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}

	submission := &models.ImageSubmission{
		PlaceID:     placeID,
		ImageURL:    req.ImageURL,
		SubmittedBy: userID,
	}
	if err := s.imageRepo.Create(ctx, submission); err != nil {
		return nil, err
	}
	return dto.FromModelToImageSubmissionResponse(submission), nil
}

// ListPendingImages returns the photo review queue enriched with each parent
// place's name and location.
func (s *moderationService) ListPendingImages(ctx context.Context) ([]dto.PendingImageResponse, error) {
	submissions, err := s.imageRepo.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PendingImageResponse, 0, len(submissions))
	for i := range submissions {
		responses = append(responses, *dto.FromModelToPendingImageResponse(&submissions[i]))
	}
	return responses, nil
}

// ApproveImage accepts a queued photo. The repository copies its URL into the
// parent place's first empty display slot; when all three slots are taken the
// approval still stands and the image just never surfaces.
func (s *moderationService) ApproveImage(ctx context.Context, submissionID int64, adminID string) (*dto.ImageSubmissionResponse, error) {
	submission, err := s.imageRepo.Approve(ctx, submissionID, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}

	s.logger.Info("image_submission_approved",
		"submission_id", submission.ID,
		"place_id", submission.PlaceID,
		"admin_id", adminID,
	)
	return dto.FromModelToImageSubmissionResponse(submission), nil
}

// RejectImage deletes a queued photo proposal.
func (s *moderationService) RejectImage(ctx context.Context, submissionID int64) error {
	deleted, err := s.imageRepo.Delete(ctx, submissionID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrSubmissionNotFound
	}

	s.logger.Info("image_submission_rejected", "submission_id", submissionID)
	return nil
}
