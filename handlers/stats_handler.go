package handlers

import (
	"strconv"
	"time"

	"github.com/alfianmal/vidshare/services"
	"github.com/gofiber/fiber/v2"
)

// GetStats serves the earnings dashboard: today's aggregate, running
// totals and the trailing 7 days (zero-filled for quiet days).
func GetStats(c *fiber.Ctx) error {
	userID := currentUserID(c)
	now := time.Now()

	today, err := services.TodayStats(userID, now)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	account, err := services.GetAccount(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	weekly, err := services.WeeklyStats(userID, now)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{
		"today": fiber.Map{
			"views":    today.Views,
			"earnings": today.Earnings,
		},
		"total": fiber.Map{
			"balance":   account.Balance,
			"withdrawn": account.Withdrawn,
			"lifetime":  account.Balance + account.Withdrawn,
		},
		"weekly": weekly,
	})
}

func GetStatsHistory(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "30"))

	history, err := services.HistoryStats(currentUserID(c), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(history)
}
