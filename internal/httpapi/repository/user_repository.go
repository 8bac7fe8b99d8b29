package repository

import (
	"context"
	"fmt"

	"iftarmap/internal/httpapi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Upsert provisions the local row for an identity-provider subject on first
// sight and refreshes profile fields on later sign-ins. The is_admin flag is
// deliberately left out of the update set so a moderation grant survives
// subsequent logins.
func (r *userRepository) Upsert(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "display_name", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}
