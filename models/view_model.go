package models

import (
	"time"

	"github.com/google/uuid"
)

// View is one admitted playback event. Rows are immutable once written and
// are reclaimed by the daily rollup after they have been folded into
// DailyStat. OriginHash is a sha256 of the caller's address; the raw address
// is never stored.
type View struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	VideoID    uuid.UUID `gorm:"type:uuid;not null;index:idx_views_video_origin_time" json:"video_id"`
	OriginHash string    `gorm:"size:64;not null;index:idx_views_video_origin_time" json:"-"`
	CreatedAt  time.Time `gorm:"index:idx_views_video_origin_time" json:"created_at"`
}
