package routes

import (
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/handler"
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupGeolocationRoutes(app *fiber.App) {
	hdl := handler.NewGeolocationHandler()

	api := app.Group("/api/geolocation", middleware.Auth)

	api.Get("/", hdl.Lookup)
}
