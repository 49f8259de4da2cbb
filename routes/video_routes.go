package routes

import (
	"github.com/alfianmal/vidshare/handlers"
	"github.com/alfianmal/vidshare/middleware"
	"github.com/gofiber/fiber/v2"
)

func VideoRoutes(app *fiber.App) {
	videos := app.Group("/api/v1/videos")

	// Public playback surface.
	videos.Get("/by-token/:token", handlers.GetVideoByToken)
	videos.Post("/:videoId/view", handlers.RecordView)
	videos.Get("/:videoId/stream", handlers.StreamVideo)

	// Owner surface.
	videos.Get("", middleware.Protected(), handlers.ListVideos)
	videos.Post("", middleware.Protected(), handlers.CreateVideo)
	videos.Post("/remote", middleware.Protected(), handlers.CreateRemoteVideo)
	videos.Put("/:videoId", middleware.Protected(), handlers.RenameVideo)
	videos.Delete("/:videoId", middleware.Protected(), handlers.DeleteVideo)
	videos.Get("/:videoId/signed", middleware.Protected(), handlers.SignVideoURL)
}
