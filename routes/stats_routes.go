package routes

import (
	"github.com/alfianmal/vidshare/handlers"
	"github.com/alfianmal/vidshare/middleware"
	"github.com/gofiber/fiber/v2"
)

func StatsRoutes(app *fiber.App) {
	stats := app.Group("/api/v1/stats", middleware.Protected())

	stats.Get("", handlers.GetStats)
	stats.Get("/history", handlers.GetStatsHistory)
}
