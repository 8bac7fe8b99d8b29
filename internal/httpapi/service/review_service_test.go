package service

import (
	"context"
	"testing"

	"iftarmap/internal/httpapi/dto"
	"iftarmap/internal/httpapi/models"
	"iftarmap/internal/httpapi/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestCreateReview_Success(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	placeRepo := new(MockPlaceRepository)

	placeRepo.On("GetByID", mock.Anything, "p1").Return(&models.Place{ID: "p1"}, nil)
	reviewRepo.On("HasReviewed", mock.Anything, "u1", "p1").Return(false, nil)
	reviewRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Review) bool {
		return r.PlaceID == "p1" && r.UserID == "u1" && r.Rating == 5
	})).Return(nil)

	svc := NewReviewService(reviewRepo, placeRepo)
	review, err := svc.Create(context.Background(), "p1", "u1", &dto.CreateReviewRequest{Rating: 5})

	assert.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	reviewRepo.AssertExpectations(t)
}

func TestCreateReview_PlaceNotFound(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	placeRepo := new(MockPlaceRepository)

	placeRepo.On("GetByID", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	svc := NewReviewService(reviewRepo, placeRepo)
	_, err := svc.Create(context.Background(), "missing", "u1", &dto.CreateReviewRequest{Rating: 4})

	assert.ErrorIs(t, err, ErrPlaceNotFound)
}

func TestCreateReview_DuplicateCaughtByPrecheck(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	placeRepo := new(MockPlaceRepository)

	placeRepo.On("GetByID", mock.Anything, "p1").Return(&models.Place{ID: "p1"}, nil)
	reviewRepo.On("HasReviewed", mock.Anything, "u1", "p1").Return(true, nil)

	svc := NewReviewService(reviewRepo, placeRepo)
	_, err := svc.Create(context.Background(), "p1", "u1", &dto.CreateReviewRequest{Rating: 4})

	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReview_DuplicateCaughtByUniqueIndex(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	placeRepo := new(MockPlaceRepository)

	// The losing writer of a concurrent double-submit passes the pre-check
	// but trips the unique index on insert.
	placeRepo.On("GetByID", mock.Anything, "p1").Return(&models.Place{ID: "p1"}, nil)
	reviewRepo.On("HasReviewed", mock.Anything, "u1", "p1").Return(false, nil)
	reviewRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateReview)

	svc := NewReviewService(reviewRepo, placeRepo)
	_, err := svc.Create(context.Background(), "p1", "u1", &dto.CreateReviewRequest{Rating: 4})

	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestHasReviewed_DelegatesToRepository(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	placeRepo := new(MockPlaceRepository)

	reviewRepo.On("HasReviewed", mock.Anything, "u1", "p1").Return(true, nil)

	svc := NewReviewService(reviewRepo, placeRepo)
	reviewed, err := svc.HasReviewed(context.Background(), "u1", "p1")

	assert.NoError(t, err)
	assert.True(t, reviewed)
}
