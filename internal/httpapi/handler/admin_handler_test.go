package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"iftarmap/internal/httpapi/dto"
	"iftarmap/internal/httpapi/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockModerationService mocks the ModerationService interface
type MockModerationService struct {
	mock.Mock
}

func (m *MockModerationService) ListAllPlaces(ctx context.Context) ([]dto.PlaceResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.PlaceResponse), args.Error(1)
}

func (m *MockModerationService) ListPendingPlaces(ctx context.Context) ([]dto.PlaceResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.PlaceResponse), args.Error(1)
}

func (m *MockModerationService) ApprovePlace(ctx context.Context, placeID, adminID string) (*dto.PlaceResponse, error) {
	args := m.Called(ctx, placeID, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PlaceResponse), args.Error(1)
}

func (m *MockModerationService) RejectPlace(ctx context.Context, placeID string) error {
	args := m.Called(ctx, placeID)
	return args.Error(0)
}

func (m *MockModerationService) SubmitImage(ctx context.Context, placeID, userID string, req *dto.CreateImageSubmissionRequest) (*dto.ImageSubmissionResponse, error) {
	args := m.Called(ctx, placeID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ImageSubmissionResponse), args.Error(1)
}

func (m *MockModerationService) ListPendingImages(ctx context.Context) ([]dto.PendingImageResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.PendingImageResponse), args.Error(1)
}

func (m *MockModerationService) ApproveImage(ctx context.Context, submissionID int64, adminID string) (*dto.ImageSubmissionResponse, error) {
	args := m.Called(ctx, submissionID, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ImageSubmissionResponse), args.Error(1)
}

func (m *MockModerationService) RejectImage(ctx context.Context, submissionID int64) error {
	args := m.Called(ctx, submissionID)
	return args.Error(0)
}

// MockStatsService mocks the StatsService interface
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) AdminStats(ctx context.Context) (*service.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AdminStats), args.Error(1)
}

func setupAdminRouter(moderation *MockModerationService, stats *MockStatsService) *gin.Engine {
	router := setupRouter()
	admin := router.Group("/api/admin", fakeAuth("admin-1", true))
	NewAdminHandler(moderation, stats).RegisterRoutes(admin)
	return router
}

func TestApprovePlace_Success(t *testing.T) {
	moderation := new(MockModerationService)
	stats := new(MockStatsService)
	router := setupAdminRouter(moderation, stats)

	adminID := "admin-1"
	moderation.On("ApprovePlace", mock.Anything, "p1", "admin-1").Return(&dto.PlaceResponse{
		ID:         "p1",
		Approved:   true,
		ApprovedBy: &adminID,
	}, nil)

	req, _ := http.NewRequest("PATCH", "/api/admin/places/p1/approve", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.PlaceResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.True(t, response.Approved)
	assert.Nil(t, response.ImageURL1)

	moderation.AssertExpectations(t)
}

func TestApprovePlace_NotFound(t *testing.T) {
	moderation := new(MockModerationService)
	stats := new(MockStatsService)
	router := setupAdminRouter(moderation, stats)

	moderation.On("ApprovePlace", mock.Anything, "missing", "admin-1").Return(nil, service.ErrPlaceNotFound)

	req, _ := http.NewRequest("PATCH", "/api/admin/places/missing/approve", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRejectPlace_Success(t *testing.T) {
	moderation := new(MockModerationService)
	stats := new(MockStatsService)
	router := setupAdminRouter(moderation, stats)

	moderation.On("RejectPlace", mock.Anything, "p1").Return(nil)

	req, _ := http.NewRequest("DELETE", "/api/admin/places/p1/reject", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	moderation.AssertExpectations(t)
}

func TestRejectPlace_NotFound(t *testing.T) {
	moderation := new(MockModerationService)
	stats := new(MockStatsService)
	router := setupAdminRouter(moderation, stats)

	moderation.On("RejectPlace", mock.Anything, "gone").Return(service.ErrPlaceNotFound)

	req, _ := http.NewRequest("DELETE", "/api/admin/places/gone/reject", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminStats_Success(t *testing.T) {
	moderation := new(MockModerationService)
	stats := new(MockStatsService)
	router := setupAdminRouter(moderation, stats)

	stats.On("AdminStats", mock.Anything).Return(&service.AdminStats{
		TotalPlaces:             10,
		ApprovedPlaces:          7,
		PendingPlaces:           3,
		ApprovedToday:           2,
		PendingImageSubmissions: 4,
	}, nil)

	req, _ := http.NewRequest("GET", "/api/admin/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response service.AdminStats
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, int64(3), response.PendingPlaces)
	assert.Equal(t, int64(4), response.PendingImageSubmissions)
}

func TestListPendingImages_Success(t *testing.T) {
	moderation := new(MockModerationService)
	stats := new(MockStatsService)
	router := setupAdminRouter(moderation, stats)

	moderation.On("ListPendingImages", mock.Anything).Return([]dto.PendingImageResponse{
		{
			ImageSubmissionResponse: dto.ImageSubmissionResponse{ID: 1, PlaceID: "p1"},
			PlaceName:               "Tent A",
			PlaceLocation:           "Dubai",
		},
	}, nil)

	req, _ := http.NewRequest("GET", "/api/admin/images/pending", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []dto.PendingImageResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Tent A", response[0].PlaceName)
}

func TestApproveImage_InvalidID(t *testing.T) {
	moderation := new(MockModerationService)
	stats := new(MockStatsService)
	router := setupAdminRouter(moderation, stats)

	req, _ := http.NewRequest("PATCH", "/api/admin/images/not-a-number/approve", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	moderation.AssertNotCalled(t, "ApproveImage", mock.Anything, mock.Anything, mock.Anything)
}

func TestApproveImage_Success(t *testing.T) {
	moderation := new(MockModerationService)
	stats := new(MockStatsService)
	router := setupAdminRouter(moderation, stats)

	moderation.On("ApproveImage", mock.Anything, int64(7), "admin-1").Return(&dto.ImageSubmissionResponse{
		ID:       7,
		PlaceID:  "p1",
		Approved: true,
	}, nil)

	req, _ := http.NewRequest("PATCH", "/api/admin/images/7/approve", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	moderation.AssertExpectations(t)
}

func TestRejectImage_NotFound(t *testing.T) {
	moderation := new(MockModerationService)
	stats := new(MockStatsService)
	router := setupAdminRouter(moderation, stats)

	moderation.On("RejectImage", mock.Anything, int64(99)).Return(service.ErrSubmissionNotFound)

	req, _ := http.NewRequest("DELETE", "/api/admin/images/99/reject", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
