package routes

import (
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/handler"
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUploadRoutes(app *fiber.App) {
	hdl := handler.NewUploadHandler()

	api := app.Group("/api/upload", middleware.Auth)

	api.Post("/", hdl.Upload)
}
