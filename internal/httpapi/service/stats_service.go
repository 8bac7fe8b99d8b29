package service

import (
	"context"
	"math"
	"time"

	"iftarmap/internal/httpapi/models"
	"iftarmap/internal/httpapi/repository"
)

// PlaceStats are the derived aggregate fields attached to every place view.
// They are recomputed from the reviews table on each read, never stored.
type PlaceStats struct {
	ReviewCount   int     `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}

// AdminStats is the moderation dashboard snapshot. The five counters are
// independent queries; a write landing between them can skew the totals
// against each other, which the dashboard tolerates.
type AdminStats struct {
	TotalPlaces             int64 `json:"total_places"`
	ApprovedPlaces          int64 `json:"approved_places"`
	PendingPlaces           int64 `json:"pending_places"`
	ApprovedToday           int64 `json:"approved_today"`
	PendingImageSubmissions int64 `json:"pending_image_submissions"`
}

// ComputePlaceStats reduces a review set to its count and mean rating. The
// mean is rounded half-up to one decimal; an empty set yields zeros.
func ComputePlaceStats(reviews []models.Review) PlaceStats {
	if len(reviews) == 0 {
		return PlaceStats{}
	}

	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}
	avg := float64(sum) / float64(len(reviews))

	return PlaceStats{
		ReviewCount:   len(reviews),
		AverageRating: math.Round(avg*10) / 10,
	}
}

type StatsService interface {
	AdminStats(ctx context.Context) (*AdminStats, error)
}

type statsService struct {
	placeRepo repository.PlaceRepository
	imageRepo repository.ImageSubmissionRepository
	now       func() time.Time
}

func NewStatsService(placeRepo repository.PlaceRepository, imageRepo repository.ImageSubmissionRepository) StatsService {
	return &statsService{
		placeRepo: placeRepo,
		imageRepo: imageRepo,
		now:       time.Now,
	}
}

// AdminStats gathers the dashboard counters. Pending places come from their
// own filtered count rather than total minus approved.
func (s *statsService) AdminStats(ctx context.Context) (*AdminStats, error) {
	total, err := s.placeRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	approved, err := s.placeRepo.CountApproved(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.placeRepo.CountPending(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	approvedToday, err := s.placeRepo.CountApprovedSince(ctx, midnight)
	if err != nil {
		return nil, err
	}

	pendingImages, err := s.imageRepo.CountPending(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminStats{
		TotalPlaces:             total,
		ApprovedPlaces:          approved,
		PendingPlaces:           pending,
		ApprovedToday:           approvedToday,
		PendingImageSubmissions: pendingImages,
	}, nil
}
