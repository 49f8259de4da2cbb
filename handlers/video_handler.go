package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	config "github.com/alfianmal/vidshare/configs"
	"github.com/alfianmal/vidshare/database"
	"github.com/alfianmal/vidshare/models"
	"github.com/alfianmal/vidshare/services"
	"github.com/alfianmal/vidshare/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateVideoRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=255"`
	SourceID string `json:"source_id" validate:"required"`
	Source   string `json:"source"`
}

type RemoteVideoRequest struct {
	Title     string `json:"title" validate:"required,min=1,max=255"`
	SourceURL string `json:"source_url" validate:"required,url"`
}

type RenameVideoRequest struct {
	Title string `json:"title" validate:"required,min=1,max=255"`
}

func CreateVideo(c *fiber.Ctx) error {
	var req CreateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	source := req.Source
	if source == "" {
		source = "videy"
	}

	video := models.Video{
		ID:       uuid.New(),
		UserID:   currentUserID(c),
		Title:    req.Title,
		Source:   source,
		SourceID: req.SourceID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		token, err := utils.GenerateEmbedToken(tx)
		if err != nil {
			return err
		}
		video.EmbedToken = token
		return tx.Create(&video).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create video"})
	}

	return c.Status(fiber.StatusCreated).JSON(video)
}

func CreateRemoteVideo(c *fiber.Ctx) error {
	var req RemoteVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	source, sourceID := services.NormalizeSource(req.SourceURL)

	video := models.Video{
		ID:       uuid.New(),
		UserID:   currentUserID(c),
		Title:    req.Title,
		Source:   source,
		SourceID: sourceID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		token, err := utils.GenerateEmbedToken(tx)
		if err != nil {
			return err
		}
		video.EmbedToken = token
		return tx.Create(&video).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create video"})
	}

	return c.Status(fiber.StatusCreated).JSON(video)
}

func ListVideos(c *fiber.Ctx) error {
	userID := currentUserID(c)

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}

	var total int64
	if err := database.DB.Model(&models.Video{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	var videos []models.Video
	err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&videos).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{
		"items": videos,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func GetVideoByToken(c *fiber.Ctx) error {
	var video models.Video
	err := database.DB.Where("embed_token = ?", c.Params("token")).First(&video).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Video not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(video)
}

func RenameVideo(c *fiber.Ctx) error {
	videoID, err := uuid.Parse(c.Params("videoId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid video id"})
	}

	var req RenameVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	res := database.DB.Model(&models.Video{}).
		Where("id = ? AND user_id = ?", videoID, currentUserID(c)).
		Update("title", req.Title)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Video not found"})
	}
	return c.JSON(fiber.Map{"message": "Video renamed"})
}

func DeleteVideo(c *fiber.Ctx) error {
	videoID, err := uuid.Parse(c.Params("videoId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid video id"})
	}

	res := database.DB.Where("id = ? AND user_id = ?", videoID, currentUserID(c)).Delete(&models.Video{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Video not found"})
	}
	return c.JSON(fiber.Map{"message": "Video deleted"})
}

// RecordView is the public playback-counting endpoint. Exceeding the
// per-origin quota is not an error: the response just carries
// counted=false so the player is never disturbed.
func RecordView(c *fiber.Ctx) error {
	videoID, err := uuid.Parse(c.Params("videoId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid video id"})
	}

	counted, err := services.RecordView(videoID, clientAddress(c), time.Now())
	if err != nil {
		if errors.Is(err, services.ErrVideoNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Video not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record view"})
	}

	if !counted {
		return c.JSON(fiber.Map{"success": true, "counted": false, "reason": "quota_exceeded"})
	}
	return c.JSON(fiber.Map{"success": true, "counted": true})
}

func clientAddress(c *fiber.Ctx) string {
	addr := c.IP()
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		addr = strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	addr = strings.TrimPrefix(addr, "::ffff:")
	if addr == "::1" {
		addr = "127.0.0.1"
	}
	return addr
}

// SignVideoURL issues a short-lived stream token for a video the caller owns.
func SignVideoURL(c *fiber.Ctx) error {
	videoID, err := uuid.Parse(c.Params("videoId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid video id"})
	}

	var video models.Video
	err = database.DB.Where("id = ? AND user_id = ?", videoID, currentUserID(c)).First(&video).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Video not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	claims := jwt.MapClaims{
		"vid": video.ID.String(),
		"exp": time.Now().Add(60 * time.Second).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.Config("STREAM_SECRET")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to sign URL"})
	}

	return c.JSON(fiber.Map{"url": "/api/v1/videos/" + video.ID.String() + "/stream?token=" + signed})
}

// StreamVideo verifies a stream token and redirects to the mapped CDN URL,
// leaving HLS/MP4 handling to the browser.
func StreamVideo(c *fiber.Ctx) error {
	tokenString := c.Query("token")

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.Config("STREAM_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusForbidden).SendString("Token expired/invalid")
	}

	claims := token.Claims.(jwt.MapClaims)
	vid, _ := claims["vid"].(string)
	if vid != c.Params("videoId") {
		return c.Status(fiber.StatusForbidden).SendString("Invalid token")
	}

	var video models.Video
	if err := database.DB.Where("id = ?", vid).First(&video).Error; err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Video not found")
	}

	return c.Redirect(services.CDNURL(video.Source, video.SourceID), fiber.StatusFound)
}
