package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Place is a candidate or approved Iftar location. A row is either pending
// (approved=false, approver fields null) or approved (approved=true, approver
// fields set); no other combination is written.
type Place struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid"`
	Name        string     `json:"name" gorm:"not null"`
	Description *string    `json:"description,omitempty" gorm:"type:text"`
	Location    string     `json:"location" gorm:"not null"`
	Latitude    *string    `json:"latitude,omitempty" gorm:"size:32"`
	Longitude   *string    `json:"longitude,omitempty" gorm:"size:32"`
	CreatedBy   string     `json:"created_by" gorm:"type:varchar(128);not null;index"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	ImageURL1   *string    `json:"image_url1,omitempty" gorm:"type:text"`
	ImageURL2   *string    `json:"image_url2,omitempty" gorm:"type:text"`
	ImageURL3   *string    `json:"image_url3,omitempty" gorm:"type:text"`
	Approved    bool       `json:"approved" gorm:"default:false;not null;index"`
	ApprovedBy  *string    `json:"approved_by,omitempty" gorm:"type:varchar(128)"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`

	// Associations
	Creator User `json:"creator,omitempty" gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE;"`
}

// BeforeCreate hook to set UUID before creating a Place
func (p *Place) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

// DirectImageURLs returns the non-empty direct display URLs in slot order.
func (p *Place) DirectImageURLs() []string {
	urls := make([]string, 0, 3)
	for _, u := range []*string{p.ImageURL1, p.ImageURL2, p.ImageURL3} {
		if u != nil && *u != "" {
			urls = append(urls, *u)
		}
	}
	return urls
}

// FillFirstEmptyImageSlot copies url into the first empty display slot
// (1, then 2, then 3) and reports which column changed. ok is false when
// all three slots are already taken; the caller treats that as a no-op.
func (p *Place) FillFirstEmptyImageSlot(url string) (column string, ok bool) {
	switch {
	case p.ImageURL1 == nil:
		p.ImageURL1 = &url
		return "image_url1", true
	case p.ImageURL2 == nil:
		p.ImageURL2 = &url
		return "image_url2", true
	case p.ImageURL3 == nil:
		p.ImageURL3 = &url
		return "image_url3", true
	}
	return "", false
}

func (Place) TableName() string {
	return "places"
}
