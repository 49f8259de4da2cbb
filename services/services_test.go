package services

import (
	"testing"

	"github.com/alfianmal/vidshare/database"
	"github.com/alfianmal/vidshare/models"
	"github.com/google/uuid"
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

func seedUser(t *testing.T) models.User {
	t.Helper()

	user := models.User{
		ID:       uuid.New(),
		Username: "creator-" + uuid.NewString()[:8],
		Email:    uuid.NewString()[:8] + "@example.com",
		Password: "x",
		Role:     "user",
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func seedVideo(t *testing.T, ownerID uuid.UUID) models.Video {
	t.Helper()

	video := models.Video{
		ID:         uuid.New(),
		UserID:     ownerID,
		Title:      "clip",
		Source:     "videy",
		SourceID:   "abc123",
		EmbedToken: uuid.NewString()[:9],
	}
	require.NoError(t, database.DB.Create(&video).Error)
	return video
}

func seedBalance(t *testing.T, userID uuid.UUID, balance, withdrawn float64) {
	t.Helper()

	require.NoError(t, database.DB.Create(&models.Earning{
		UserID:    userID,
		Balance:   balance,
		Withdrawn: withdrawn,
	}).Error)
}
