package repository

import (
	"context"
	"errors"
	"fmt"

	"iftarmap/internal/httpapi/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateReview is returned when the (user, place) unique index rejects
// an insert. The service pre-checks before inserting, so this only fires for
// the losing writer of a concurrent double-submit.
var ErrDuplicateReview = errors.New("review already exists for this user and place")

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	HasReviewed(ctx context.Context, userID, placeID string) (bool, error)
	ListByPlace(ctx context.Context, placeID string) ([]models.Review, error)
	MapByPlaceIDs(ctx context.Context, placeIDs []string) (map[string][]models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts a review row. Unique-index violations come back as
// ErrDuplicateReview so callers can surface a conflict instead of a 500.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateReview
		}
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// HasReviewed reports whether the user already left a review for the place.
func (r *reviewRepository) HasReviewed(ctx context.Context, userID, placeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("user_id = ? AND place_id = ?", userID, placeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByPlace returns a place's reviews newest-first with the reviewer loaded.
func (r *reviewRepository) ListByPlace(ctx context.Context, placeID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("place_id = ?", placeID).
		Preload("User").
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// MapByPlaceIDs fetches the reviews for a batch of places in one query and
// groups them by place id, so list views avoid a query per place.
func (r *reviewRepository) MapByPlaceIDs(ctx context.Context, placeIDs []string) (map[string][]models.Review, error) {
	grouped := make(map[string][]models.Review, len(placeIDs))
	if len(placeIDs) == 0 {
		return grouped, nil
	}

	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("place_id IN ?", placeIDs).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}

	for _, review := range reviews {
		grouped[review.PlaceID] = append(grouped[review.PlaceID], review)
	}
	return grouped, nil
}
