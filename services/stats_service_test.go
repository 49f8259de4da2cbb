package services

import (
	"testing"
	"time"

	"github.com/alfianmal/vidshare/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayStats(t *testing.T) {
	setupTestDB(t)
	user := seedUser(t)
	now := time.Now()
	today := now.UTC().Format("2006-01-02")

	stat, err := TodayStats(user.ID, now)
	require.NoError(t, err)
	assert.Equal(t, today, stat.Date)
	assert.Zero(t, stat.Views)

	require.NoError(t, MergeDaily(database.DB, user.ID, today, 4, 0.0032))

	stat, err = TodayStats(user.ID, now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stat.Views)
	assert.InDelta(t, 0.0032, stat.Earnings, 1e-9)
}

func TestWeeklyStatsZeroFillsQuietDays(t *testing.T) {
	setupTestDB(t)
	user := seedUser(t)
	now := time.Now()

	today := now.UTC().Format("2006-01-02")
	threeDaysAgo := now.UTC().AddDate(0, 0, -3).Format("2006-01-02")
	require.NoError(t, MergeDaily(database.DB, user.ID, today, 2, 0.0016))
	require.NoError(t, MergeDaily(database.DB, user.ID, threeDaysAgo, 7, 0.0056))

	week, err := WeeklyStats(user.ID, now)
	require.NoError(t, err)
	require.Len(t, week, 7)

	assert.Equal(t, now.UTC().AddDate(0, 0, -6).Format("2006-01-02"), week[0].Date)
	assert.Equal(t, today, week[6].Date)

	for _, day := range week {
		switch day.Date {
		case today:
			assert.Equal(t, int64(2), day.Views)
		case threeDaysAgo:
			assert.Equal(t, int64(7), day.Views)
		default:
			assert.Zero(t, day.Views)
			assert.Zero(t, day.Earnings)
		}
	}
}

func TestHistoryStatsNewestFirstWithLimit(t *testing.T) {
	setupTestDB(t)
	user := seedUser(t)
	now := time.Now().UTC()

	for i := 0; i < 10; i++ {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		require.NoError(t, MergeDaily(database.DB, user.ID, date, int64(i+1), float64(i+1)*0.0008))
	}
	// Another user's rows must not leak in.
	require.NoError(t, MergeDaily(database.DB, uuid.New(), now.Format("2006-01-02"), 99, 1))

	history, err := HistoryStats(user.ID, 5)
	require.NoError(t, err)
	require.Len(t, history, 5)
	assert.Equal(t, now.Format("2006-01-02"), history[0].Date)
	assert.Equal(t, int64(1), history[0].Views)

	history, err = HistoryStats(user.ID, 0)
	require.NoError(t, err)
	assert.Len(t, history, 10)
}
