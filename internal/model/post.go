package model

import "time"

// Post keeps UserID nullable so rows survive a missing author association.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CoverImage  *string   `gorm:"size:512" json:"cover_image"`
	UserID      *uint     `gorm:"index" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
