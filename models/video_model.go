package models

import (
	"time"

	"github.com/google/uuid"
)

type Video struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Source     string    `gorm:"size:50;not null" json:"source"`
	SourceID   string    `gorm:"size:255;not null" json:"source_id"`
	EmbedToken string    `gorm:"size:16;not null;unique" json:"embed_token"`
	Views      int64     `gorm:"not null;default:0" json:"views"`

	User User `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
