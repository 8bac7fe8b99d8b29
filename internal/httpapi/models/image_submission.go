package models

import "time"

// ImageSubmission is a photo proposal queued for admin review before it can
// occupy one of the parent place's three display slots. Rows cascade-delete
// with the place so a racing reject can never strand them.
type ImageSubmission struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	PlaceID     string     `json:"place_id" gorm:"type:uuid;not null;index"`
	ImageURL    string     `json:"image_url" gorm:"not null;type:text"`
	SubmittedBy string     `json:"submitted_by" gorm:"type:varchar(128);not null;index"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	Approved    bool       `json:"approved" gorm:"default:false;not null;index"`
	ApprovedBy  *string    `json:"approved_by,omitempty" gorm:"type:varchar(128)"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`

	// Associations
	Place     Place `json:"place,omitempty" gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE;"`
	Submitter User  `json:"submitter,omitempty" gorm:"foreignKey:SubmittedBy;constraint:OnDelete:CASCADE;"`
}

func (ImageSubmission) TableName() string {
	return "place_image_submissions"
}
