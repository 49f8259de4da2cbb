package handlers

import (
	"errors"

	"github.com/alfianmal/vidshare/database"
	"github.com/alfianmal/vidshare/models"
	"github.com/alfianmal/vidshare/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func AdminDashboard(c *fiber.Ctx) error {
	var totalUsers, totalVideos, pendingWithdrawals int64

	if err := database.DB.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if err := database.DB.Model(&models.Video{}).Count(&totalVideos).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	err := database.DB.Model(&models.Withdrawal{}).
		Where("status = ?", models.WithdrawalPending).
		Count(&pendingWithdrawals).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{
		"total_users":         totalUsers,
		"total_videos":        totalVideos,
		"pending_withdrawals": pendingWithdrawals,
	})
}

func AdminListWithdrawals(c *fiber.Ctx) error {
	var withdrawals []models.Withdrawal
	err := database.DB.Preload("User").Order("created_at DESC").Find(&withdrawals).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	type adminWithdrawal struct {
		models.Withdrawal
		Username string `json:"username"`
	}
	items := make([]adminWithdrawal, 0, len(withdrawals))
	for _, w := range withdrawals {
		items = append(items, adminWithdrawal{Withdrawal: w, Username: w.User.Username})
	}
	return c.JSON(items)
}

type SetWithdrawalStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func AdminSetWithdrawalStatus(c *fiber.Ctx) error {
	withdrawalID, err := uuid.Parse(c.Params("withdrawalId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid withdrawal id"})
	}

	var req SetWithdrawalStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	withdrawal, err := services.SetWithdrawalStatus(withdrawalID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWithdrawalNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrInvalidTransition):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update withdrawal"})
	}

	return c.JSON(withdrawal)
}

func AdminListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(users)
}

func AdminDeleteUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}
	if userID == currentUserID(c) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot delete own account"})
	}

	res := database.DB.Where("id = ?", userID).Delete(&models.User{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

func AdminMakeAdmin(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}
	if userID == currentUserID(c) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot change own role"})
	}

	res := database.DB.Model(&models.User{}).Where("id = ?", userID).Update("role", "admin")
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(fiber.Map{"message": "User promoted to admin"})
}

func AdminListVideos(c *fiber.Ctx) error {
	var videos []models.Video
	err := database.DB.Preload("User").Order("created_at DESC").Find(&videos).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	type adminVideo struct {
		models.Video
		Username string `json:"username"`
	}
	items := make([]adminVideo, 0, len(videos))
	for _, v := range videos {
		items = append(items, adminVideo{Video: v, Username: v.User.Username})
	}
	return c.JSON(items)
}

func AdminDeleteVideo(c *fiber.Ctx) error {
	videoID, err := uuid.Parse(c.Params("videoId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid video id"})
	}

	res := database.DB.Where("id = ?", videoID).Delete(&models.Video{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Video not found"})
	}
	return c.JSON(fiber.Map{"message": "Video deleted"})
}
