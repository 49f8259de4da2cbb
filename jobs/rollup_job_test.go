package jobs

import (
	"testing"
	"time"

	config "github.com/alfianmal/vidshare/configs"
	"github.com/alfianmal/vidshare/database"
	"github.com/alfianmal/vidshare/models"
	"github.com/alfianmal/vidshare/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Video{},
		&models.View{},
		&models.Earning{},
		&models.DailyStat{},
		&models.Withdrawal{},
	))

	database.DB = db
}

func seedVideoWithOwner(t *testing.T) models.Video {
	t.Helper()

	user := models.User{
		ID:       uuid.New(),
		Username: "creator-" + uuid.NewString()[:8],
		Email:    uuid.NewString()[:8] + "@example.com",
		Password: "x",
	}
	require.NoError(t, database.DB.Create(&user).Error)

	video := models.Video{
		ID:         uuid.New(),
		UserID:     user.ID,
		Title:      "clip",
		Source:     "videy",
		SourceID:   "abc",
		EmbedToken: uuid.NewString()[:9],
	}
	require.NoError(t, database.DB.Create(&video).Error)
	return video
}

func seedViews(t *testing.T, videoID uuid.UUID, n int, at time.Time) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, database.DB.Create(&models.View{
			VideoID:    videoID,
			OriginHash: services.HashOrigin(uuid.NewString()),
			CreatedAt:  at,
		}).Error)
	}
}

func statFor(t *testing.T, userID uuid.UUID, date string) models.DailyStat {
	t.Helper()
	var stat models.DailyStat
	require.NoError(t, database.DB.Where("user_id = ? AND date = ?", userID, date).First(&stat).Error)
	return stat
}

func TestRollupFoldsAndReclaims(t *testing.T) {
	setupTestDB(t)
	video := seedVideoWithOwner(t)
	credit := config.CreditPerView()

	now := time.Now().UTC()
	yesterday := now.AddDate(0, 0, -1)
	seedViews(t, video.ID, 3, yesterday)
	seedViews(t, video.ID, 2, now)

	folded, deleted, err := rollupOnce()
	require.NoError(t, err)
	assert.Equal(t, 2, folded)
	assert.Equal(t, int64(5), deleted)

	stat := statFor(t, video.UserID, yesterday.Format("2006-01-02"))
	assert.Equal(t, int64(3), stat.Views)
	assert.InDelta(t, 3*credit, stat.Earnings, 1e-9)

	stat = statFor(t, video.UserID, now.Format("2006-01-02"))
	assert.Equal(t, int64(2), stat.Views)

	var remaining int64
	require.NoError(t, database.DB.Model(&models.View{}).Count(&remaining).Error)
	assert.Zero(t, remaining, "folded raw views must be reclaimed")
}

func TestRollupOverwritesLiveMerges(t *testing.T) {
	setupTestDB(t)
	video := seedVideoWithOwner(t)
	credit := config.CreditPerView()

	now := time.Now().UTC()
	date := now.Format("2006-01-02")
	seedViews(t, video.ID, 4, now)

	// The live path already merged an aggregate for the same day. The
	// recompute from the raw log is authoritative and replaces it.
	require.NoError(t, services.MergeDaily(database.DB, video.UserID, date, 4, 4*credit))

	_, _, err := rollupOnce()
	require.NoError(t, err)

	stat := statFor(t, video.UserID, date)
	assert.Equal(t, int64(4), stat.Views, "overwrite, not add")
	assert.InDelta(t, 4*credit, stat.Earnings, 1e-9)
}

func TestRollupIdempotent(t *testing.T) {
	setupTestDB(t)
	video := seedVideoWithOwner(t)

	now := time.Now().UTC()
	seedViews(t, video.ID, 5, now)

	_, _, err := rollupOnce()
	require.NoError(t, err)
	first := statFor(t, video.UserID, now.Format("2006-01-02"))

	// Second run with no new events: raw log is empty, aggregates stand.
	folded, deleted, err := rollupOnce()
	require.NoError(t, err)
	assert.Zero(t, folded)
	assert.Zero(t, deleted)

	second := statFor(t, video.UserID, now.Format("2006-01-02"))
	assert.Equal(t, first.Views, second.Views)
	assert.InDelta(t, first.Earnings, second.Earnings, 1e-9)
}

func TestRollupBucketsOrphanViews(t *testing.T) {
	setupTestDB(t)
	video := seedVideoWithOwner(t)
	credit := config.CreditPerView()

	now := time.Now().UTC()
	seedViews(t, video.ID, 3, now)
	require.NoError(t, database.DB.Delete(&models.Video{}, "id = ?", video.ID).Error)

	_, _, err := rollupOnce()
	require.NoError(t, err)

	// Views of a deleted video land in the sentinel bucket instead of
	// disappearing, so the total served count is preserved.
	stat := statFor(t, uuid.Nil, now.Format("2006-01-02"))
	assert.Equal(t, int64(3), stat.Views)
	assert.InDelta(t, 3*credit, stat.Earnings, 1e-9)
}

func TestRollupReclaimsOnlyFoldedViews(t *testing.T) {
	setupTestDB(t)
	video := seedVideoWithOwner(t)

	now := time.Now().UTC()
	yesterday := now.AddDate(0, 0, -1)
	seedViews(t, video.ID, 2, yesterday)

	folded, deleted, err := rollupOnce()
	require.NoError(t, err)
	assert.Equal(t, 1, folded)
	assert.Equal(t, int64(2), deleted)

	// A view that lands after the fold read its batch must survive the
	// reclaim and be folded by the next run.
	seedViews(t, video.ID, 1, now)

	var remaining int64
	require.NoError(t, database.DB.Model(&models.View{}).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)

	folded, deleted, err = rollupOnce()
	require.NoError(t, err)
	assert.Equal(t, 1, folded)
	assert.Equal(t, int64(1), deleted)

	stat := statFor(t, video.UserID, now.Format("2006-01-02"))
	assert.Equal(t, int64(1), stat.Views)
}

func TestRollupEmptyLog(t *testing.T) {
	setupTestDB(t)

	folded, deleted, err := rollupOnce()
	require.NoError(t, err)
	assert.Zero(t, folded)
	assert.Zero(t, deleted)
}
