package service

import (
	"context"
	"errors"
	"math"
	"net/url"
	"sort"

	"iftarmap/internal/geo"
	"iftarmap/internal/httpapi/dto"
	"iftarmap/internal/httpapi/models"
	"iftarmap/internal/httpapi/repository"

	"gorm.io/gorm"
)

var (
	ErrPlaceNotFound       = errors.New("place not found")
	ErrImageHostNotAllowed = errors.New("image host not allowed")
)

// nearbyLimit caps how many ranked places a nearby query returns.
const nearbyLimit = 20

type PlaceService interface {
	ListApproved(ctx context.Context, limit int) ([]dto.PlaceResponse, error)
	GetDetail(ctx context.Context, id string) (*dto.PlaceDetailResponse, error)
	Create(ctx context.Context, req *dto.CreatePlaceRequest, creatorID string) (*dto.PlaceResponse, error)
	Nearby(ctx context.Context, lat, lng float64) ([]dto.NearbyPlaceResponse, error)
}

type placeService struct {
	placeRepo         repository.PlaceRepository
	reviewRepo        repository.ReviewRepository
	imageAllowedHosts []string
}

func NewPlaceService(placeRepo repository.PlaceRepository, reviewRepo repository.ReviewRepository, imageAllowedHosts []string) PlaceService {
	return &placeService{
		placeRepo:         placeRepo,
		reviewRepo:        reviewRepo,
		imageAllowedHosts: imageAllowedHosts,
	}
}

// ListApproved returns approved places newest-first with fresh aggregates.
// Reviews for the whole page come back in one batched query; responses are
// shrunk to the first image slot to keep the list payload small.
func (s *placeService) ListApproved(ctx context.Context, limit int) ([]dto.PlaceResponse, error) {
	places, err := s.placeRepo.ListApproved(ctx, limit)
	if err != nil {
		return nil, err
	}
	return annotatePlaces(ctx, s.reviewRepo, places, true)
}

// GetDetail returns one place, approved or not, with its full review list.
func (s *placeService) GetDetail(ctx context.Context, id string) (*dto.PlaceDetailResponse, error) {
	place, err := s.placeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByPlace(ctx, id)
	if err != nil {
		return nil, err
	}

	stats := ComputePlaceStats(reviews)
	detail := &dto.PlaceDetailResponse{
		PlaceResponse: *dto.FromModelToPlaceResponse(place, stats.ReviewCount, stats.AverageRating, false),
		Reviews:       make([]dto.ReviewResponse, 0, len(reviews)),
	}
	for _, review := range reviews {
		detail.Reviews = append(detail.Reviews, *dto.FromModelToReviewResponse(&review))
	}
	return detail, nil
}

// Create validates and inserts a pending place. Any direct image URLs must
// point at an allow-listed hosting domain, the same rule applied to the
// photo-submission endpoint.
func (s *placeService) Create(ctx context.Context, req *dto.CreatePlaceRequest, creatorID string) (*dto.PlaceResponse, error) {
	for _, u := range []*string{req.ImageURL1, req.ImageURL2, req.ImageURL3} {
		if u == nil || *u == "" {
			continue
		}
		if !HostAllowed(*u, s.imageAllowedHosts) {
			return nil, ErrImageHostNotAllowed
		}
	}

	place := &models.Place{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ImageURL1:   req.ImageURL1,
		ImageURL2:   req.ImageURL2,
		ImageURL3:   req.ImageURL3,
		CreatedBy:   creatorID,
	}
	if err := s.placeRepo.Create(ctx, place); err != nil {
		return nil, err
	}
	return dto.FromModelToPlaceResponse(place, 0, 0, false), nil
}

// Nearby ranks the approved places by great-circle distance from the query
// origin and returns the closest ones. Places with missing, unparseable or
// (0,0) coordinates get infinite distance and sort last.
func (s *placeService) Nearby(ctx context.Context, lat, lng float64) ([]dto.NearbyPlaceResponse, error) {
	annotated, err := s.ListApproved(ctx, 0)
	if err != nil {
		return nil, err
	}

	ranked := make([]dto.NearbyPlaceResponse, 0, len(annotated))
	for _, place := range annotated {
		distance := math.Inf(1)
		if placeLat, placeLng, ok := geo.ParseCoords(place.Latitude, place.Longitude); ok {
			distance = geo.Haversine(lat, lng, placeLat, placeLng)
		}
		ranked = append(ranked, dto.NearbyPlaceResponse{
			PlaceResponse: place,
			DistanceKM:    distance,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKM < ranked[j].DistanceKM
	})

	if len(ranked) > nearbyLimit {
		ranked = ranked[:nearbyLimit]
	}
	return ranked, nil
}

// annotatePlaces attaches fresh review aggregates to a page of places using
// one batched review query.
func annotatePlaces(ctx context.Context, reviewRepo repository.ReviewRepository, places []models.Place, shrink bool) ([]dto.PlaceResponse, error) {
	ids := make([]string, 0, len(places))
	for _, place := range places {
		ids = append(ids, place.ID)
	}

	reviewsByPlace, err := reviewRepo.MapByPlaceIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PlaceResponse, 0, len(places))
	for i := range places {
		stats := ComputePlaceStats(reviewsByPlace[places[i].ID])
		responses = append(responses, *dto.FromModelToPlaceResponse(&places[i], stats.ReviewCount, stats.AverageRating, shrink))
	}
	return responses, nil
}

// HostAllowed reports whether rawURL's hostname matches one of the allowed
// hosting domains exactly.
func HostAllowed(rawURL string, allowed []string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := parsed.Hostname()
	for _, candidate := range allowed {
		if host == candidate {
			return true
		}
	}
	return false
}
