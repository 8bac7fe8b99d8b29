package repository

import (
	"context"
	"fmt"
	"time"

	"iftarmap/internal/httpapi/models"

	"gorm.io/gorm"
)

// maxListLimit bounds every place list query to keep response payloads sane.
const maxListLimit = 200

type PlaceRepository interface {
	Create(ctx context.Context, place *models.Place) error
	GetByID(ctx context.Context, id string) (*models.Place, error)
	ListApproved(ctx context.Context, limit int) ([]models.Place, error)
	ListAll(ctx context.Context) ([]models.Place, error)
	ListPending(ctx context.Context) ([]models.Place, error)
	Approve(ctx context.Context, id, adminID string) (*models.Place, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountAll(ctx context.Context) (int64, error)
	CountApproved(ctx context.Context) (int64, error)
	CountPending(ctx context.Context) (int64, error)
	CountApprovedSince(ctx context.Context, since time.Time) (int64, error)
}

type placeRepository struct {
	db *gorm.DB
}

func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

// Create inserts a pending place; the uuid and timestamp come from hooks.
func (r *placeRepository) Create(ctx context.Context, place *models.Place) error {
	if err := r.db.WithContext(ctx).Create(place).Error; err != nil {
		return fmt.Errorf("create place: %w", err)
	}
	return nil
}

// GetByID retrieves a place regardless of approval state.
func (r *placeRepository) GetByID(ctx context.Context, id string) (*models.Place, error) {
	var place models.Place
	if err := r.db.WithContext(ctx).First(&place, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &place, nil
}

// ListApproved returns approved places newest-first, capped at maxListLimit.
func (r *placeRepository) ListApproved(ctx context.Context, limit int) ([]models.Place, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	var places []models.Place
	if err := r.db.WithContext(ctx).
		Where("approved = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}

// ListAll returns every place newest-first for the admin overview.
func (r *placeRepository) ListAll(ctx context.Context) ([]models.Place, error) {
	var places []models.Place
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(maxListLimit).
		Find(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}

// ListPending returns places awaiting a decision, newest-first.
func (r *placeRepository) ListPending(ctx context.Context) ([]models.Place, error) {
	var places []models.Place
	if err := r.db.WithContext(ctx).
		Where("approved = ?", false).
		Order("created_at DESC").
		Limit(maxListLimit).
		Find(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}

// Approve flips the place to approved and reroutes its direct images into the
// submission queue in one transaction: the approval update clears all three
// slots, and each captured URL becomes a pending ImageSubmission attributed to
// the original creator, so photo content still passes independent review.
// Returns gorm.ErrRecordNotFound when the id does not exist.
func (r *placeRepository) Approve(ctx context.Context, id, adminID string) (*models.Place, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var place models.Place
	if err := tx.First(&place, "id = ?", id).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	images := place.DirectImageURLs()
	now := time.Now()

	if err := tx.Model(&place).Updates(map[string]interface{}{
		"approved":    true,
		"approved_by": adminID,
		"approved_at": now,
		"image_url1":  nil,
		"image_url2":  nil,
		"image_url3":  nil,
	}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("approve place: %w", err)
	}

	for _, url := range images {
		submission := models.ImageSubmission{
			PlaceID:     place.ID,
			ImageURL:    url,
			SubmittedBy: place.CreatedBy,
		}
		if err := tx.Create(&submission).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("enqueue rerouted image: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("approve place: %w", err)
	}

	place.Approved = true
	place.ApprovedBy = &adminID
	place.ApprovedAt = &now
	place.ImageURL1, place.ImageURL2, place.ImageURL3 = nil, nil, nil
	return &place, nil
}

// Delete removes a place; reviews and image submissions go with it via the
// schema-level cascades. The bool reports whether a row actually existed.
func (r *placeRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Place{}, "id = ?", id)
	if result.Error != nil {
		return false, fmt.Errorf("delete place: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *placeRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Place{}).Count(&count).Error
	return count, err
}

func (r *placeRepository) CountApproved(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Place{}).
		Where("approved = ?", true).
		Count(&count).Error
	return count, err
}

// CountPending is a filtered count of its own rather than total minus
// approved, so a skewed reading never goes negative.
func (r *placeRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Place{}).
		Where("approved = ?", false).
		Count(&count).Error
	return count, err
}

func (r *placeRepository) CountApprovedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Place{}).
		Where("approved = ? AND approved_at >= ?", true, since).
		Count(&count).Error
	return count, err
}
