package routes

import (
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/handler"
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/middleware"
	"github.com/FrisSoftwareteam/AttendanceApp-V1/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupSettingsRoutes(app *fiber.App, db *gorm.DB) {
	settingRepo := repository.NewSettingRepository(db)
	hdl := handler.NewSettingsHandler(settingRepo)

	api := app.Group("/api/settings", middleware.Auth)

	api.Get("/cutoff", hdl.GetCutoff)
	api.Put("/cutoff", middleware.Role("admin"), hdl.PutCutoff)
}
