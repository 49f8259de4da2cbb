package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	config "github.com/alfianmal/vidshare/configs"
	"github.com/alfianmal/vidshare/database"
	"github.com/alfianmal/vidshare/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ViewQuotaPerDay is the ceiling of billable views for one origin on one
// video within a trailing 24 hour window. Repeat views beyond it are served
// normally but not counted.
const ViewQuotaPerDay = 2

// admissionLocks serializes the count-then-insert admission check per
// (video, origin) key so concurrent requests from the same origin cannot
// slip past the quota together.
var admissionLocks sync.Map

func admissionLock(key string) *sync.Mutex {
	mu, _ := admissionLocks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// HashOrigin returns the stable non-reversible form of a caller's network
// address. Only this hash is ever persisted.
func HashOrigin(originAddress string) string {
	sum := sha256.Sum256([]byte(originAddress))
	return hex.EncodeToString(sum[:])
}

// RecordView decides whether a playback event is billable and, if so,
// persists it and credits the video owner in a single transaction. A quota
// rejection is a normal outcome: counted=false, nil error. An unknown video
// fails with ErrVideoNotFound.
func RecordView(videoID uuid.UUID, originAddress string, now time.Time) (bool, error) {
	var video models.Video
	if err := database.DB.Select("id").First(&video, "id = ?", videoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrVideoNotFound
		}
		return false, err
	}

	originHash := HashOrigin(originAddress)

	mu := admissionLock(videoID.String() + ":" + originHash)
	mu.Lock()
	defer mu.Unlock()

	var recent int64
	err := database.DB.Model(&models.View{}).
		Where("video_id = ? AND origin_hash = ? AND created_at >= ?", videoID, originHash, now.Add(-24*time.Hour)).
		Count(&recent).Error
	if err != nil {
		return false, err
	}
	if recent >= ViewQuotaPerDay {
		return false, nil
	}

	if err := creditView(videoID, originHash, now); err != nil {
		return false, err
	}
	return true, nil
}

// creditView applies the full effect of one admitted view atomically: the
// raw view row, the video's lifetime counter, the owner's balance and the
// owner's daily aggregate. If the video vanished since admission the view
// row is still written but the credit is dropped.
func creditView(videoID uuid.UUID, originHash string, now time.Time) error {
	credit := config.CreditPerView()
	date := now.UTC().Format("2006-01-02")

	return database.DB.Transaction(func(tx *gorm.DB) error {
		view := models.View{
			VideoID:    videoID,
			OriginHash: originHash,
			CreatedAt:  now,
		}
		if err := tx.Create(&view).Error; err != nil {
			return err
		}

		var video models.Video
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "user_id").
			First(&video, "id = ?", videoID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		err = tx.Model(&models.Video{}).Where("id = ?", videoID).
			Update("views", gorm.Expr("views + 1")).Error
		if err != nil {
			return err
		}

		err = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"balance":    gorm.Expr("balance + ?", credit),
				"updated_at": now,
			}),
		}).Create(&models.Earning{
			UserID:  video.UserID,
			Balance: credit,
		}).Error
		if err != nil {
			return err
		}

		return MergeDaily(tx, video.UserID, date, 1, credit)
	})
}
