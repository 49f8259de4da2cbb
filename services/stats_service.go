package services

import (
	"errors"
	"time"

	"github.com/alfianmal/vidshare/database"
	"github.com/alfianmal/vidshare/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DayStat struct {
	Date     string  `json:"date"`
	Views    int64   `json:"views"`
	Earnings float64 `json:"earnings"`
}

// TodayStats returns the aggregate row for the current UTC day, zero-valued
// if the user has no views yet today.
func TodayStats(userID uuid.UUID, now time.Time) (DayStat, error) {
	date := now.UTC().Format("2006-01-02")

	var stat models.DailyStat
	err := database.DB.Where("user_id = ? AND date = ?", userID, date).First(&stat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DayStat{Date: date}, nil
		}
		return DayStat{}, err
	}
	return DayStat{Date: stat.Date, Views: stat.Views, Earnings: stat.Earnings}, nil
}

// WeeklyStats returns one row per calendar day for the 7 days ending today,
// oldest first. Days without an aggregate come back zero-valued.
func WeeklyStats(userID uuid.UUID, now time.Time) ([]DayStat, error) {
	end := now.UTC()
	start := end.AddDate(0, 0, -6)

	var rows []models.DailyStat
	err := database.DB.
		Where("user_id = ? AND date >= ?", userID, start.Format("2006-01-02")).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]models.DailyStat, len(rows))
	for _, r := range rows {
		byDate[r.Date] = r
	}

	week := make([]DayStat, 0, 7)
	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		stat := DayStat{Date: date}
		if row, ok := byDate[date]; ok {
			stat.Views = row.Views
			stat.Earnings = row.Earnings
		}
		week = append(week, stat)
	}
	return week, nil
}

// HistoryStats returns the user's most recent daily aggregates, newest
// first, capped at limit (default 30).
func HistoryStats(userID uuid.UUID, limit int) ([]DayStat, error) {
	if limit <= 0 {
		limit = 30
	}

	var rows []models.DailyStat
	err := database.DB.
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	history := make([]DayStat, 0, len(rows))
	for _, r := range rows {
		history = append(history, DayStat{Date: r.Date, Views: r.Views, Earnings: r.Earnings})
	}
	return history, nil
}
