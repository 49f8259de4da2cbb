package routes

import (
	"github.com/alfianmal/vidshare/handlers"
	"github.com/alfianmal/vidshare/middleware"
	"github.com/gofiber/fiber/v2"
)

func WithdrawalRoutes(app *fiber.App) {
	withdrawals := app.Group("/api/v1/withdrawals", middleware.Protected())

	withdrawals.Post("", handlers.CreateWithdrawal)
	withdrawals.Get("", handlers.ListOwnWithdrawals)
}
