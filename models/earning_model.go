package models

import (
	"time"

	"github.com/google/uuid"
)

// Earning is a user's running account. Balance is the withdrawable credit,
// Withdrawn the lifetime amount requested for payout. Balance + Withdrawn
// always equals the sum of per-view credits ever granted to the user.
// Created lazily on the first admitted view, never deleted.
type Earning struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;unique" json:"user_id"`
	Balance   float64   `gorm:"type:numeric(14,4);not null;default:0" json:"balance"`
	Withdrawn float64   `gorm:"type:numeric(14,4);not null;default:0" json:"withdrawn"`
	UpdatedAt time.Time `json:"updated_at"`
}
