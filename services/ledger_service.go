package services

import (
	"errors"

	"github.com/alfianmal/vidshare/database"
	"github.com/alfianmal/vidshare/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetAccount returns a user's running balance and lifetime withdrawn total.
// Users with no admitted views yet get zero values; no row is created here,
// accounts come into existence only through the view credit path.
func GetAccount(userID uuid.UUID) (models.Earning, error) {
	var earning models.Earning
	err := database.DB.Where("user_id = ?", userID).First(&earning).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Earning{UserID: userID}, nil
		}
		return models.Earning{}, err
	}
	return earning, nil
}

// MergeDaily adds the given deltas to the (user, date) aggregate row,
// creating it if absent. The additive upsert is race-safe: two concurrent
// merges for the same key both land.
func MergeDaily(tx *gorm.DB, userID uuid.UUID, date string, viewsDelta int64, earningsDelta float64) error {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"views":    gorm.Expr("daily_stats.views + ?", viewsDelta),
			"earnings": gorm.Expr("daily_stats.earnings + ?", earningsDelta),
		}),
	}).Create(&models.DailyStat{
		UserID:   userID,
		Date:     date,
		Views:    viewsDelta,
		Earnings: earningsDelta,
	}).Error
}
