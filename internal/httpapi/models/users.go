package models

import "time"

// User is the local row for an identity-provider subject. Rows are provisioned
// on first sight of a verified token; credentials never live here.
type User struct {
	ID          string    `gorm:"primaryKey;type:varchar(128)" json:"id"` // provider subject id
	Email       string    `gorm:"index" json:"email"`
	DisplayName string    `json:"display_name"`
	IsAdmin     bool      `gorm:"default:false;not null" json:"is_admin"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
