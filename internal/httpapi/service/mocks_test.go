package service

import (
	"context"
	"time"

	"iftarmap/internal/httpapi/models"

	"github.com/stretchr/testify/mock"
)

// MockPlaceRepository mocks repository.PlaceRepository.
type MockPlaceRepository struct {
	mock.Mock
}

func (m *MockPlaceRepository) Create(ctx context.Context, place *models.Place) error {
	args := m.Called(ctx, place)
	return args.Error(0)
}

func (m *MockPlaceRepository) GetByID(ctx context.Context, id string) (*models.Place, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Place), args.Error(1)
}

func (m *MockPlaceRepository) ListApproved(ctx context.Context, limit int) ([]models.Place, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Place), args.Error(1)
}

func (m *MockPlaceRepository) ListAll(ctx context.Context) ([]models.Place, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Place), args.Error(1)
}

func (m *MockPlaceRepository) ListPending(ctx context.Context) ([]models.Place, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Place), args.Error(1)
}

func (m *MockPlaceRepository) Approve(ctx context.Context, id, adminID string) (*models.Place, error) {
	args := m.Called(ctx, id, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Place), args.Error(1)
}

func (m *MockPlaceRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlaceRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlaceRepository) CountApproved(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlaceRepository) CountPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPlaceRepository) CountApprovedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

// MockReviewRepository mocks repository.ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) HasReviewed(ctx context.Context, userID, placeID string) (bool, error) {
	args := m.Called(ctx, userID, placeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) ListByPlace(ctx context.Context, placeID string) ([]models.Review, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) MapByPlaceIDs(ctx context.Context, placeIDs []string) (map[string][]models.Review, error) {
	args := m.Called(ctx, placeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]models.Review), args.Error(1)
}

// MockImageSubmissionRepository mocks repository.ImageSubmissionRepository.
type MockImageSubmissionRepository struct {
	mock.Mock
}

func (m *MockImageSubmissionRepository) Create(ctx context.Context, submission *models.ImageSubmission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockImageSubmissionRepository) GetByID(ctx context.Context, id int64) (*models.ImageSubmission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImageSubmission), args.Error(1)
}

func (m *MockImageSubmissionRepository) ListPending(ctx context.Context) ([]models.ImageSubmission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ImageSubmission), args.Error(1)
}

func (m *MockImageSubmissionRepository) Approve(ctx context.Context, id int64, adminID string) (*models.ImageSubmission, error) {
	args := m.Called(ctx, id, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImageSubmission), args.Error(1)
}

func (m *MockImageSubmissionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockImageSubmissionRepository) CountPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository mocks repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
