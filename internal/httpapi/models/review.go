package models

import "time"

// Review is a star rating (1-5) a user leaves for a place, optionally with a
// comment. The composite unique index keeps a user to one review per place;
// the service layer still pre-checks so the common duplicate path stays a
// friendly conflict instead of a constraint error.
type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	PlaceID   string    `json:"place_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_reviews_user_place"`
	UserID    string    `json:"user_id" gorm:"type:varchar(128);not null;index;uniqueIndex:idx_reviews_user_place"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   *string   `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Place Place `json:"-" gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}
