package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	WithdrawalPending  = "pending"
	WithdrawalApproved = "approved"
	WithdrawalRejected = "rejected"
)

type Withdrawal struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount float64   `gorm:"type:numeric(14,4);not null" json:"amount"`
	Method string    `gorm:"size:20;not null" json:"method"`
	Status string    `gorm:"size:20;not null;default:'pending'" json:"status"`

	User User `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
