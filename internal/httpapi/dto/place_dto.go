package dto

import (
	"time"

	"iftarmap/internal/httpapi/models"
)

// CreatePlaceRequest is the payload for submitting a new place. Coordinates
// and images are optional; image URLs are checked against the hosting
// allow-list in the service layer.
type CreatePlaceRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=120"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Location    string  `json:"location" binding:"required,min=2,max=255"`
	Latitude    *string `json:"latitude" binding:"omitempty,max=32"`
	Longitude   *string `json:"longitude" binding:"omitempty,max=32"`
	ImageURL1   *string `json:"image_url1" binding:"omitempty,url"`
	ImageURL2   *string `json:"image_url2" binding:"omitempty,url"`
	ImageURL3   *string `json:"image_url3" binding:"omitempty,url"`
}

// PlaceResponse is the list-view shape: place fields plus the derived
// aggregates, without the review list.
type PlaceResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   *string    `json:"description,omitempty"`
	Location      string     `json:"location"`
	Latitude      *string    `json:"latitude,omitempty"`
	Longitude     *string    `json:"longitude,omitempty"`
	CreatedBy     string     `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	ImageURL1     *string    `json:"image_url1,omitempty"`
	ImageURL2     *string    `json:"image_url2,omitempty"`
	ImageURL3     *string    `json:"image_url3,omitempty"`
	Approved      bool       `json:"approved"`
	ApprovedBy    *string    `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	ReviewCount   int        `json:"review_count"`
	AverageRating float64    `json:"average_rating"`
}

// FromModelToPlaceResponse converts a Place model plus its aggregates into
// the list-view DTO. shrink drops the 2nd and 3rd image URLs to slim down
// list payloads.
func FromModelToPlaceResponse(place *models.Place, reviewCount int, averageRating float64, shrink bool) *PlaceResponse {
	resp := &PlaceResponse{
		ID:            place.ID,
		Name:          place.Name,
		Description:   place.Description,
		Location:      place.Location,
		Latitude:      place.Latitude,
		Longitude:     place.Longitude,
		CreatedBy:     place.CreatedBy,
		CreatedAt:     place.CreatedAt,
		ImageURL1:     place.ImageURL1,
		ImageURL2:     place.ImageURL2,
		ImageURL3:     place.ImageURL3,
		Approved:      place.Approved,
		ApprovedBy:    place.ApprovedBy,
		ApprovedAt:    place.ApprovedAt,
		ReviewCount:   reviewCount,
		AverageRating: averageRating,
	}
	if shrink {
		resp.ImageURL2 = nil
		resp.ImageURL3 = nil
	}
	return resp
}

// PlaceDetailResponse is the detail-view shape: the full place with its
// ordered review list.
type PlaceDetailResponse struct {
	PlaceResponse
	Reviews []ReviewResponse `json:"reviews"`
}

// NearbyPlaceResponse annotates a list-view place with its great-circle
// distance from the query origin in kilometres.
type NearbyPlaceResponse struct {
	PlaceResponse
	DistanceKM float64 `json:"distance_km"`
}
