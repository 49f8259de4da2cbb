package models

import (
	"time"

	"github.com/google/uuid"
)

// DailyStat is the per-user per-calendar-day aggregate served to dashboards.
// The live view path merges deltas into it; the rollup job overwrites it from
// the raw view log. Views folded after their video was deleted land on the
// uuid.Nil bucket so total served views are preserved.
type DailyStat struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_daily_stats_user_date" json:"user_id"`
	Date     string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_daily_stats_user_date" json:"date"`
	Views    int64     `gorm:"not null;default:0" json:"views"`
	Earnings float64   `gorm:"type:numeric(14,4);not null;default:0" json:"earnings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
