package handlers

import (
	"errors"

	"github.com/alfianmal/vidshare/database"
	"github.com/alfianmal/vidshare/models"
	"github.com/alfianmal/vidshare/services"
	"github.com/gofiber/fiber/v2"
)

type WithdrawalRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Method string  `json:"method" validate:"required"`
}

func CreateWithdrawal(c *fiber.Ctx) error {
	var req WithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	withdrawal, err := services.RequestWithdrawal(currentUserID(c), req.Amount, req.Method)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount),
			errors.Is(err, services.ErrInvalidMethod),
			errors.Is(err, services.ErrInsufficientBalance):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create withdrawal"})
	}

	return c.Status(fiber.StatusCreated).JSON(withdrawal)
}

func ListOwnWithdrawals(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var withdrawals []models.Withdrawal
	err := database.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&withdrawals).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	account, err := services.GetAccount(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{
		"items":     withdrawals,
		"balance":   account.Balance,
		"withdrawn": account.Withdrawn,
	})
}
