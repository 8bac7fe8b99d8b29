package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"iftarmap/internal/httpapi/dto"
	"iftarmap/internal/httpapi/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSubmitImage_Created(t *testing.T) {
	moderation := new(MockModerationService)
	handler := NewImageHandler(moderation)
	router := setupRouter()
	router.POST("/api/places/:id/images", fakeAuth("u1", false), handler.Create)

	moderation.On("SubmitImage", mock.Anything, "p1", "u1", mock.Anything).Return(&dto.ImageSubmissionResponse{
		ID:       1,
		PlaceID:  "p1",
		ImageURL: "https://res.cloudinary.com/x.jpg",
	}, nil)

	body, _ := json.Marshal(dto.CreateImageSubmissionRequest{ImageURL: "https://res.cloudinary.com/x.jpg"})
	req, _ := http.NewRequest("POST", "/api/places/p1/images", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	moderation.AssertExpectations(t)
}

func TestSubmitImage_HostRejected(t *testing.T) {
	moderation := new(MockModerationService)
	handler := NewImageHandler(moderation)
	router := setupRouter()
	router.POST("/api/places/:id/images", fakeAuth("u1", false), handler.Create)

	moderation.On("SubmitImage", mock.Anything, "p1", "u1", mock.Anything).Return(nil, service.ErrImageHostNotAllowed)

	body, _ := json.Marshal(dto.CreateImageSubmissionRequest{ImageURL: "https://imgur.com/x.jpg"})
	req, _ := http.NewRequest("POST", "/api/places/p1/images", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitImage_MissingURL(t *testing.T) {
	moderation := new(MockModerationService)
	handler := NewImageHandler(moderation)
	router := setupRouter()
	router.POST("/api/places/:id/images", fakeAuth("u1", false), handler.Create)

	body, _ := json.Marshal(map[string]string{})
	req, _ := http.NewRequest("POST", "/api/places/p1/images", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	moderation.AssertNotCalled(t, "SubmitImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
