package repository

import (
	"context"
	"fmt"
	"time"

	"iftarmap/internal/httpapi/models"

	"gorm.io/gorm"
)

type ImageSubmissionRepository interface {
	Create(ctx context.Context, submission *models.ImageSubmission) error
	GetByID(ctx context.Context, id int64) (*models.ImageSubmission, error)
	ListPending(ctx context.Context) ([]models.ImageSubmission, error)
	Approve(ctx context.Context, id int64, adminID string) (*models.ImageSubmission, error)
	Delete(ctx context.Context, id int64) (bool, error)
	CountPending(ctx context.Context) (int64, error)
}

type imageSubmissionRepository struct {
	db *gorm.DB
}

func NewImageSubmissionRepository(db *gorm.DB) ImageSubmissionRepository {
	return &imageSubmissionRepository{db: db}
}

// Create queues a photo proposal for admin review.
func (r *imageSubmissionRepository) Create(ctx context.Context, submission *models.ImageSubmission) error {
	if err := r.db.WithContext(ctx).Create(submission).Error; err != nil {
		return fmt.Errorf("create image submission: %w", err)
	}
	return nil
}

func (r *imageSubmissionRepository) GetByID(ctx context.Context, id int64) (*models.ImageSubmission, error) {
	var submission models.ImageSubmission
	if err := r.db.WithContext(ctx).First(&submission, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// ListPending returns submissions awaiting a decision with the parent place
// loaded, oldest-first so the queue drains in arrival order.
func (r *imageSubmissionRepository) ListPending(ctx context.Context) ([]models.ImageSubmission, error) {
	var submissions []models.ImageSubmission
	err := r.db.WithContext(ctx).
		Where("approved = ?", false).
		Preload("Place").
		Order("created_at ASC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

// Approve marks the submission approved and copies its URL into the parent
// place's first empty display slot (1, then 2, then 3), all in one
// transaction. When every slot is taken the submission stays approved but no
// slot changes; the image simply never surfaces.
// Returns gorm.ErrRecordNotFound when the id does not exist.
func (r *imageSubmissionRepository) Approve(ctx context.Context, id int64, adminID string) (*models.ImageSubmission, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var submission models.ImageSubmission
	if err := tx.First(&submission, "id = ?", id).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	now := time.Now()
	if err := tx.Model(&submission).Updates(map[string]interface{}{
		"approved":    true,
		"approved_by": adminID,
		"approved_at": now,
	}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("approve image submission: %w", err)
	}

	var place models.Place
	if err := tx.First(&place, "id = ?", submission.PlaceID).Error; err == nil {
		if column, ok := place.FillFirstEmptyImageSlot(submission.ImageURL); ok {
			if err := tx.Model(&place).Update(column, submission.ImageURL).Error; err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("fill image slot: %w", err)
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("approve image submission: %w", err)
	}

	submission.Approved = true
	submission.ApprovedBy = &adminID
	submission.ApprovedAt = &now
	return &submission, nil
}

// Delete rejects a submission outright. The bool reports whether a row existed.
func (r *imageSubmissionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.ImageSubmission{}, "id = ?", id)
	if result.Error != nil {
		return false, fmt.Errorf("delete image submission: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *imageSubmissionRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ImageSubmission{}).
		Where("approved = ?", false).
		Count(&count).Error
	return count, err
}
