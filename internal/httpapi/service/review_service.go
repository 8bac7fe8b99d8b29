package service

import (
	"context"
	"errors"

	"iftarmap/internal/httpapi/dto"
	"iftarmap/internal/httpapi/models"
	"iftarmap/internal/httpapi/repository"

	"gorm.io/gorm"
)

var ErrAlreadyReviewed = errors.New("user has already reviewed this place")

type ReviewService interface {
	Create(ctx context.Context, placeID, userID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	HasReviewed(ctx context.Context, userID, placeID string) (bool, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	placeRepo  repository.PlaceRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, placeRepo repository.PlaceRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		placeRepo:  placeRepo,
	}
}

// Create inserts one review per (user, place). The pre-check keeps the common
// duplicate path a friendly conflict; the unique index behind
// ErrDuplicateReview catches the concurrent double-submit the pre-check
// cannot see, and both surface as ErrAlreadyReviewed.
func (s *reviewService) Create(ctx context.Context, placeID, userID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if _, err := s.placeRepo.GetByID(ctx, placeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}

	reviewed, err := s.reviewRepo.HasReviewed(ctx, userID, placeID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, ErrAlreadyReviewed
	}

	review := &models.Review{
		PlaceID: placeID,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) HasReviewed(ctx context.Context, userID, placeID string) (bool, error) {
	return s.reviewRepo.HasReviewed(ctx, userID, placeID)
}
