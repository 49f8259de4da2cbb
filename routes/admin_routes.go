package routes

import (
	"github.com/alfianmal/vidshare/handlers"
	"github.com/alfianmal/vidshare/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	admin := app.Group("/api/v1/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/dashboard", handlers.AdminDashboard)

	admin.Get("/withdrawals", handlers.AdminListWithdrawals)
	admin.Put("/withdrawals/:withdrawalId/status", handlers.AdminSetWithdrawalStatus)

	users := admin.Group("/users")
	users.Get("", handlers.AdminListUsers)
	users.Delete("/:userId", handlers.AdminDeleteUser)
	users.Post("/:userId/make-admin", handlers.AdminMakeAdmin)

	videos := admin.Group("/videos")
	videos.Get("", handlers.AdminListVideos)
	videos.Delete("/:videoId", handlers.AdminDeleteVideo)
}
